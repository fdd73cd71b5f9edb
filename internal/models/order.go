package models

import (
	"fmt"
	"time"
)

// Order is the root of a one-to-many relation to OrderDetail; the two are
// created together and deleted together.
type Order struct {
	ID             uint       `gorm:"primaryKey;column:OrderID"`
	CustomerID     *string    `gorm:"column:CustomerID;size:5;index"`
	EmployeeID     *uint      `gorm:"column:EmployeeID;index"`
	OrderDate      *time.Time `gorm:"column:OrderDate;index"`
	RequiredDate   *time.Time `gorm:"column:RequiredDate"`
	ShippedDate    *time.Time `gorm:"column:ShippedDate;index"`
	ShipVia        *uint      `gorm:"column:ShipVia;index"`
	Freight        *float64   `gorm:"column:Freight;type:decimal(19,4);default:0"`
	ShipName       *string    `gorm:"column:ShipName;size:40"`
	ShipAddress    *string    `gorm:"column:ShipAddress;size:60"`
	ShipCity       *string    `gorm:"column:ShipCity;size:15"`
	ShipRegion     *string    `gorm:"column:ShipRegion;size:15"`
	ShipPostalCode *string    `gorm:"column:ShipPostalCode;size:10;index"`
	ShipCountry    *string    `gorm:"column:ShipCountry;size:15"`

	Customer *Customer     `gorm:"foreignKey:CustomerID"`
	Employee *Employee     `gorm:"foreignKey:EmployeeID"`
	Shipper  *Shipper      `gorm:"foreignKey:ShipVia"`
	Details  []OrderDetail `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string { return "orders" }

func (o Order) EntityKey() any { return o.ID }

func (o Order) String() string {
	if o.OrderDate == nil {
		return fmt.Sprintf("%d", o.ID)
	}
	return fmt.Sprintf("%d - %s", o.ID, o.OrderDate.Format("2006-01-02"))
}

// OrderDetail is one line of an order. Its unit price is captured at order
// time and does not follow the product's current price.
type OrderDetail struct {
	OrderID   uint    `gorm:"primaryKey;autoIncrement:false;column:OrderID"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false;column:ProductID"`
	UnitPrice float64 `gorm:"column:UnitPrice;type:decimal(19,4);not null;default:0"`
	Quantity  int     `gorm:"column:Quantity;type:smallint;not null;default:1"`
	Discount  float64 `gorm:"column:Discount;not null;default:0"`

	Order   *Order   `gorm:"foreignKey:OrderID"`
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (OrderDetail) TableName() string { return "orderdetails" }

// OrderDetailKey is the composite identity of an order line.
type OrderDetailKey struct {
	OrderID   uint
	ProductID uint
}

func (d OrderDetail) EntityKey() any { return OrderDetailKey{d.OrderID, d.ProductID} }

func (d OrderDetail) String() string {
	return fmt.Sprintf("%d - %d x %d - %.2f", d.OrderID, d.Quantity, d.ProductID, d.UnitPrice)
}
