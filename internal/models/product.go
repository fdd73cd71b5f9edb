package models

import "fmt"

// Product mirrors one row of the products table. Optional columns are
// pointers; unit prices carry the store's decimal(19,4) precision.
type Product struct {
	ID              uint     `gorm:"primaryKey;column:ProductID"`
	ProductName     string   `gorm:"column:ProductName;size:40;not null;index"`
	SupplierID      *uint    `gorm:"column:SupplierID;index"`
	CategoryID      *uint    `gorm:"column:CategoryID;index"`
	QuantityPerUnit *string  `gorm:"column:QuantityPerUnit;size:20"`
	UnitPrice       *float64 `gorm:"column:UnitPrice;type:decimal(19,4);default:0"`
	UnitsInStock    *int     `gorm:"column:UnitsInStock;type:smallint;default:0"`
	UnitsOnOrder    *int     `gorm:"column:UnitsOnOrder;type:smallint;default:0"`
	ReorderLevel    *int     `gorm:"column:ReorderLevel;type:smallint;default:0"`
	Discontinued    *bool    `gorm:"column:Discontinued;default:false"`

	Category *Category `gorm:"foreignKey:CategoryID"`
	Supplier *Supplier `gorm:"foreignKey:SupplierID"`
}

func (Product) TableName() string { return "products" }

func (p Product) EntityKey() any { return p.ID }

func (p Product) String() string { return fmt.Sprintf("%d - %s", p.ID, p.ProductName) }
