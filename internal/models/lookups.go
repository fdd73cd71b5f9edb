package models

// Reference entities: lookup targets for joins and filters.

type Category struct {
	ID           uint    `gorm:"primaryKey;column:CategoryID"`
	CategoryName string  `gorm:"column:CategoryName;size:15;not null;uniqueIndex"`
	Description  *string `gorm:"column:Description;type:text"`
	Picture      []byte  `gorm:"column:Picture"`
}

func (Category) TableName() string { return "categories" }

func (c Category) EntityKey() any { return c.ID }

type Supplier struct {
	ID           uint    `gorm:"primaryKey;column:SupplierID"`
	CompanyName  string  `gorm:"column:CompanyName;size:40;not null;index"`
	ContactName  *string `gorm:"column:ContactName;size:30"`
	ContactTitle *string `gorm:"column:ContactTitle;size:30"`
	Address      *string `gorm:"column:Address;size:60"`
	City         *string `gorm:"column:City;size:15"`
	Region       *string `gorm:"column:Region;size:15"`
	PostalCode   *string `gorm:"column:PostalCode;size:10;index"`
	Country      *string `gorm:"column:Country;size:15"`
	Phone        *string `gorm:"column:Phone;size:24"`
	Fax          *string `gorm:"column:Fax;size:24"`
	HomePage     *string `gorm:"column:HomePage;type:text"`
}

func (Supplier) TableName() string { return "suppliers" }

func (s Supplier) EntityKey() any { return s.ID }

// Customer keys on a fixed five-character code rather than a generated id.
type Customer struct {
	ID           string  `gorm:"primaryKey;column:CustomerID;size:5"`
	CompanyName  string  `gorm:"column:CompanyName;size:40;not null;index"`
	ContactName  *string `gorm:"column:ContactName;size:30"`
	ContactTitle *string `gorm:"column:ContactTitle;size:30"`
	Address      *string `gorm:"column:Address;size:60"`
	City         *string `gorm:"column:City;size:15;index"`
	Region       *string `gorm:"column:Region;size:15;index"`
	PostalCode   *string `gorm:"column:PostalCode;size:10;index"`
	Country      *string `gorm:"column:Country;size:15"`
	Phone        *string `gorm:"column:Phone;size:24"`
	Fax          *string `gorm:"column:Fax;size:24"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) EntityKey() any { return c.ID }

type Shipper struct {
	ID          uint    `gorm:"primaryKey;column:ShipperID"`
	CompanyName string  `gorm:"column:CompanyName;size:40;not null"`
	Phone       *string `gorm:"column:Phone;size:24"`
}

func (Shipper) TableName() string { return "shippers" }

func (s Shipper) EntityKey() any { return s.ID }
