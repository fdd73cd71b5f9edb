package db

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mccreemainwoody/northwind/internal/models"
)

func ptr[T any](v T) *T { return &v }

func date(year int, month time.Month, day int) *time.Time {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &t
}

// Seed inserts a small classic sample dataset. Rows are looked up by their
// natural name first, so seeding an already seeded database changes nothing.
func Seed(conn *gorm.DB) error {
	categories := []models.Category{
		{CategoryName: "Beverages", Description: ptr("Soft drinks, coffees, teas, beers, and ales")},
		{CategoryName: "Condiments", Description: ptr("Sweet and savory sauces, relishes, spreads, and seasonings")},
		{CategoryName: "Dairy Products", Description: ptr("Cheeses")},
		{CategoryName: "Seafood", Description: ptr("Seaweed and fish")},
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		var existing models.Category
		err := conn.Where(&models.Category{CategoryName: c.CategoryName}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&c).Error; err != nil {
				return err
			}
			byName[c.CategoryName] = c.ID
			continue
		}
		if err != nil {
			return err
		}
		byName[c.CategoryName] = existing.ID
	}

	suppliers := []models.Supplier{
		{CompanyName: "Exotic Liquids", ContactName: ptr("Charlotte Cooper"), City: ptr("London"), Country: ptr("UK")},
		{CompanyName: "Cooperativa de Quesos 'Las Cabras'", ContactName: ptr("Antonio del Valle Saavedra"), City: ptr("Oviedo"), Country: ptr("Spain")},
		{CompanyName: "Tokyo Traders", ContactName: ptr("Yoshi Nagase"), City: ptr("Tokyo"), Country: ptr("Japan")},
	}
	supplierByName := make(map[string]uint, len(suppliers))
	for _, sup := range suppliers {
		var existing models.Supplier
		err := conn.Where(&models.Supplier{CompanyName: sup.CompanyName}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&sup).Error; err != nil {
				return err
			}
			supplierByName[sup.CompanyName] = sup.ID
			continue
		}
		if err != nil {
			return err
		}
		supplierByName[sup.CompanyName] = existing.ID
	}

	products := []models.Product{
		{ProductName: "Chai", CategoryID: ptr(byName["Beverages"]), SupplierID: ptr(supplierByName["Exotic Liquids"]), QuantityPerUnit: ptr("10 boxes x 20 bags"), UnitPrice: ptr(18.0), UnitsInStock: ptr(39)},
		{ProductName: "Chang", CategoryID: ptr(byName["Beverages"]), SupplierID: ptr(supplierByName["Exotic Liquids"]), QuantityPerUnit: ptr("24 - 12 oz bottles"), UnitPrice: ptr(19.0), UnitsInStock: ptr(17)},
		{ProductName: "Aniseed Syrup", CategoryID: ptr(byName["Condiments"]), SupplierID: ptr(supplierByName["Exotic Liquids"]), QuantityPerUnit: ptr("12 - 550 ml bottles"), UnitPrice: ptr(10.0), UnitsInStock: ptr(13)},
		{ProductName: "Queso Manchego La Pastora", CategoryID: ptr(byName["Dairy Products"]), SupplierID: ptr(supplierByName["Cooperativa de Quesos 'Las Cabras'"]), QuantityPerUnit: ptr("10 - 500 g pkgs."), UnitPrice: ptr(38.0), UnitsInStock: ptr(86)},
		{ProductName: "Ikura", CategoryID: ptr(byName["Seafood"]), SupplierID: ptr(supplierByName["Tokyo Traders"]), QuantityPerUnit: ptr("12 - 200 ml jars"), UnitPrice: ptr(31.0), UnitsInStock: ptr(31)},
		{ProductName: "Boston Crab Meat", CategoryID: ptr(byName["Seafood"]), QuantityPerUnit: ptr("24 - 4 oz tins"), UnitPrice: ptr(18.4), UnitsInStock: ptr(123)},
	}
	for _, p := range products {
		var existing models.Product
		err := conn.Where(&models.Product{ProductName: p.ProductName}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&p).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	employees := []models.Employee{
		{FirstName: "Nancy", LastName: "Davolio", Title: ptr("Sales Representative"), City: ptr("Seattle"), Country: ptr("USA"), HireDate: date(1992, time.May, 1)},
		{FirstName: "Steven", LastName: "Buchanan", Title: ptr("Sales Manager"), City: ptr("London"), Country: ptr("UK"), HireDate: date(1993, time.October, 17)},
		{FirstName: "Robert", LastName: "King", Title: ptr("Sales Representative"), City: ptr("London"), Country: ptr("UK"), HireDate: date(1994, time.January, 2)},
		{FirstName: "Anne", LastName: "Dodsworth", Title: ptr("Sales Representative"), City: ptr("London"), Country: ptr("UK"), HireDate: date(1994, time.November, 15)},
	}
	for _, e := range employees {
		var existing models.Employee
		err := conn.Where(&models.Employee{FirstName: e.FirstName, LastName: e.LastName}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&e).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	shippers := []models.Shipper{
		{CompanyName: "Speedy Express", Phone: ptr("(503) 555-9831")},
		{CompanyName: "United Package", Phone: ptr("(503) 555-3199")},
		{CompanyName: "Federal Shipping", Phone: ptr("(503) 555-9931")},
	}
	for _, sh := range shippers {
		var existing models.Shipper
		err := conn.Where(&models.Shipper{CompanyName: sh.CompanyName}).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := conn.Create(&sh).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}

	var customer models.Customer
	err := conn.Where(&models.Customer{ID: "ALFKI"}).First(&customer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		customer = models.Customer{ID: "ALFKI", CompanyName: "Alfreds Futterkiste", ContactName: ptr("Maria Anders"), City: ptr("Berlin"), Country: ptr("Germany")}
		return conn.Create(&customer).Error
	}
	return err
}
