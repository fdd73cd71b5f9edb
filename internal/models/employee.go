package models

import (
	"fmt"
	"time"
)

type Employee struct {
	ID              uint       `gorm:"primaryKey;column:EmployeeID"`
	LastName        string     `gorm:"column:LastName;size:20;not null;index"`
	FirstName       string     `gorm:"column:FirstName;size:10;not null"`
	Title           *string    `gorm:"column:Title;size:30"`
	TitleOfCourtesy *string    `gorm:"column:TitleOfCourtesy;size:25"`
	BirthDate       *time.Time `gorm:"column:BirthDate"`
	HireDate        *time.Time `gorm:"column:HireDate"`
	Address         *string    `gorm:"column:Address;size:60"`
	City            *string    `gorm:"column:City;size:15"`
	Region          *string    `gorm:"column:Region;size:15"`
	PostalCode      *string    `gorm:"column:PostalCode;size:10;index"`
	Country         *string    `gorm:"column:Country;size:15"`
	HomePhone       *string    `gorm:"column:HomePhone;size:24"`
	Extension       *string    `gorm:"column:Extension;size:4"`
	Photo           []byte     `gorm:"column:Photo"`
	Notes           *string    `gorm:"column:Notes;type:text"`
	ReportsTo       *uint      `gorm:"column:ReportsTo"`
}

func (Employee) TableName() string { return "employees" }

func (e Employee) EntityKey() any { return e.ID }

func (e Employee) String() string { return fmt.Sprintf("%d - %s %s", e.ID, e.FirstName, e.LastName) }
