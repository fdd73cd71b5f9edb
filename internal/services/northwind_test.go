package services

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mccreemainwoody/northwind/internal/models"
	"github.com/mccreemainwoody/northwind/internal/store"
)

func setupService(t *testing.T) (*NorthwindService, *gorm.DB) {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	err = conn.AutoMigrate(
		&models.Category{}, &models.Supplier{}, &models.Customer{},
		&models.Shipper{}, &models.Employee{},
		&models.Product{}, &models.Order{}, &models.OrderDetail{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewNorthwindService(conn), conn
}

func ptrOf[T any](v T) *T { return &v }

func hiredAt(year int, city string) models.Employee {
	hire := time.Date(year, time.March, 14, 0, 0, 0, 0, time.UTC)
	return models.Employee{FirstName: "Test", LastName: city, City: &city, HireDate: &hire}
}

func mustCreate(t *testing.T, conn *gorm.DB, v any) {
	t.Helper()
	if err := conn.Create(v).Error; err != nil {
		t.Fatalf("create %T: %v", v, err)
	}
}

func TestEmployeesByYearAndCity(t *testing.T) {
	svc, conn := setupService(t)
	london := hiredAt(1994, "London")
	paris := hiredAt(1994, "Paris")
	earlier := hiredAt(1993, "London")
	mustCreate(t, conn, &london)
	mustCreate(t, conn, &paris)
	mustCreate(t, conn, &earlier)

	got, err := svc.EmployeesByYearAndCity(1994, "London")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != london.ID {
		t.Fatalf("expected only the London 1994 hire, got %v", got)
	}
}

func TestEmployeesByTitleSubstringIsCaseSensitive(t *testing.T) {
	svc, conn := setupService(t)
	mustCreate(t, conn, &models.Employee{FirstName: "Nancy", LastName: "Davolio", Title: ptrOf("Sales Representative")})
	mustCreate(t, conn, &models.Employee{FirstName: "Andrew", LastName: "Fuller", Title: ptrOf("Vice President, Sales")})
	mustCreate(t, conn, &models.Employee{FirstName: "No", LastName: "Title"})

	got, err := svc.EmployeesByTitleSubstring("Representative")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].LastName != "Davolio" {
		t.Fatalf("expected only Davolio, got %v", got)
	}

	got, err = svc.EmployeesByTitleSubstring("representative")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("substring match must be case-sensitive, got %v", got)
	}
}

func TestAveragePriceByCategory(t *testing.T) {
	svc, conn := setupService(t)
	seafood := models.Category{CategoryName: "Seafood"}
	beverages := models.Category{CategoryName: "Beverages"}
	mustCreate(t, conn, &seafood)
	mustCreate(t, conn, &beverages)
	mustCreate(t, conn, &models.Product{ProductName: "Ikura", CategoryID: &seafood.ID, UnitPrice: ptrOf(10.0)})
	mustCreate(t, conn, &models.Product{ProductName: "Boston Crab Meat", CategoryID: &seafood.ID, UnitPrice: ptrOf(20.0)})
	mustCreate(t, conn, &models.Product{ProductName: "Unpriced Roe", CategoryID: &seafood.ID})
	mustCreate(t, conn, &models.Product{ProductName: "Chai", CategoryID: &beverages.ID, UnitPrice: ptrOf(99.0)})

	avg, err := svc.AveragePriceByCategory("Seafood")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !avg.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("average = %s, want 15", avg)
	}
}

func TestAveragePriceByCategoryWithoutProductsIsZero(t *testing.T) {
	svc, conn := setupService(t)
	mustCreate(t, conn, &models.Category{CategoryName: "Seafood"})

	avg, err := svc.AveragePriceByCategory("Seafood")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if !avg.IsZero() {
		t.Fatalf("average of an empty category = %s, want 0", avg)
	}
}

func TestOrdersAfterIsStrict(t *testing.T) {
	svc, conn := setupService(t)
	cutoff := time.Date(1996, time.June, 2, 0, 0, 0, 0, time.UTC)
	later := cutoff.AddDate(0, 0, 1)
	mustCreate(t, conn, &models.Order{OrderDate: &cutoff})
	after := models.Order{OrderDate: &later}
	mustCreate(t, conn, &after)

	got, err := svc.OrdersAfter(cutoff)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != after.ID {
		t.Fatalf("expected only the later order, got %v", got)
	}
}

func TestOrdersWithLineAbove(t *testing.T) {
	svc, conn := setupService(t)
	cheap := models.Order{}
	expensive := models.Order{}
	mustCreate(t, conn, &cheap)
	mustCreate(t, conn, &expensive)
	mustCreate(t, conn, &models.OrderDetail{OrderID: cheap.ID, ProductID: 1, UnitPrice: 100, Quantity: 1})
	mustCreate(t, conn, &models.OrderDetail{OrderID: expensive.ID, ProductID: 1, UnitPrice: 250, Quantity: 1})
	mustCreate(t, conn, &models.OrderDetail{OrderID: expensive.ID, ProductID: 2, UnitPrice: 5, Quantity: 1})

	got, err := svc.OrdersWithLineAbove(230)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0] == nil || got[0].ID != expensive.ID {
		t.Fatalf("expected only the expensive order, got %v", got)
	}
}

func TestProductsNeverOrderedLifecycle(t *testing.T) {
	svc, conn := setupService(t)
	fresh := models.Product{ProductName: "Chai", UnitPrice: ptrOf(18.0), UnitsInStock: ptrOf(10)}
	mustCreate(t, conn, &fresh)

	got, err := svc.ProductsNeverOrdered()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != fresh.ID {
		t.Fatalf("a product with no order lines must be reported, got %v", got)
	}

	if _, err := svc.PlaceOrder([]*models.Product{&fresh}); err != nil {
		t.Fatalf("place order: %v", err)
	}
	got, err = svc.ProductsNeverOrdered()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("an ordered product must disappear from the report, got %v", got)
	}
}

func TestOrderDetailsInDiscountBand(t *testing.T) {
	qualifying := [][3]float64{ // price, discount, quantity
		{15, 0.1, 41},
		{18, 0.1, 42},
		{19, 0.1, 45},
	}

	t.Run("qualifying order is returned once", func(t *testing.T) {
		svc, conn := setupService(t)
		order := models.Order{}
		mustCreate(t, conn, &order)
		for i, line := range qualifying {
			mustCreate(t, conn, &models.OrderDetail{
				OrderID: order.ID, ProductID: uint(i + 1),
				UnitPrice: line[0], Discount: line[1], Quantity: int(line[2]),
			})
		}

		got, err := svc.OrderDetailsInDiscountBand(0.2, 0.3, 20, 40)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(got) != 1 || got[0].OrderID != order.ID {
			t.Fatalf("expected one representative line of order %d, got %v", order.ID, got)
		}
	})

	t.Run("a single quantity at the bound excludes the order", func(t *testing.T) {
		svc, conn := setupService(t)
		order := models.Order{}
		mustCreate(t, conn, &order)
		for i, line := range qualifying {
			qty := int(line[2])
			if i == 1 {
				qty = 40 // strictly-greater-than boundary
			}
			mustCreate(t, conn, &models.OrderDetail{
				OrderID: order.ID, ProductID: uint(i + 1),
				UnitPrice: line[0], Discount: line[1], Quantity: qty,
			})
		}

		got, err := svc.OrderDetailsInDiscountBand(0.2, 0.3, 20, 40)
		if err != nil {
			t.Fatalf("query: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("quantity 40 must not qualify under a strict bound, got %v", got)
		}
	})
}

func TestEmployeesWithOrderQuantityAbove(t *testing.T) {
	svc, conn := setupService(t)
	heavy := models.Employee{FirstName: "Robert", LastName: "King"}
	light := models.Employee{FirstName: "Anne", LastName: "Dodsworth"}
	mustCreate(t, conn, &heavy)
	mustCreate(t, conn, &light)
	big := models.Order{EmployeeID: &heavy.ID}
	small := models.Order{EmployeeID: &light.ID}
	mustCreate(t, conn, &big)
	mustCreate(t, conn, &small)
	mustCreate(t, conn, &models.OrderDetail{OrderID: big.ID, ProductID: 1, Quantity: 70})
	mustCreate(t, conn, &models.OrderDetail{OrderID: big.ID, ProductID: 2, Quantity: 60})
	mustCreate(t, conn, &models.OrderDetail{OrderID: small.ID, ProductID: 1, Quantity: 50})

	got, err := svc.EmployeesWithOrderQuantityAbove(120)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 1 || got[0].ID != heavy.ID {
		t.Fatalf("expected only the heavy seller, got %v", got)
	}
}

func TestPlaceOrderCoalescesDuplicateProducts(t *testing.T) {
	svc, conn := setupService(t)
	a := models.Product{ProductName: "Aniseed Syrup", UnitPrice: ptrOf(10.0), UnitsInStock: ptrOf(13)}
	b := models.Product{ProductName: "Queso Manchego La Pastora", UnitPrice: ptrOf(38.0), UnitsInStock: ptrOf(86)}
	mustCreate(t, conn, &a)
	mustCreate(t, conn, &b)

	order, err := svc.PlaceOrder([]*models.Product{&a, &b, &a})
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order == nil || order.ID == 0 {
		t.Fatal("expected a persisted order with a generated id")
	}
	if order.OrderDate == nil {
		t.Fatal("expected the order stamped with the current time")
	}

	var details []models.OrderDetail
	if err := conn.Where(&models.OrderDetail{OrderID: order.ID}).Find(&details).Error; err != nil {
		t.Fatalf("load details: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 coalesced lines got %d", len(details))
	}
	byProduct := map[uint]models.OrderDetail{}
	for _, d := range details {
		byProduct[d.ProductID] = d
	}
	if d := byProduct[a.ID]; d.Quantity != 2 || d.UnitPrice != 10 {
		t.Errorf("line for A = qty %d price %.2f, want qty 2 price 10", d.Quantity, d.UnitPrice)
	}
	if d := byProduct[b.ID]; d.Quantity != 1 || d.UnitPrice != 38 {
		t.Errorf("line for B = qty %d price %.2f, want qty 1 price 38", d.Quantity, d.UnitPrice)
	}

	var reread models.Product
	if err := conn.First(&reread, a.ID).Error; err != nil {
		t.Fatalf("reread A: %v", err)
	}
	if *reread.UnitsInStock != 11 || *reread.UnitsOnOrder != 2 {
		t.Errorf("A stock = %d on-order = %d, want 11 and 2", *reread.UnitsInStock, *reread.UnitsOnOrder)
	}
	if err := conn.First(&reread, b.ID).Error; err != nil {
		t.Fatalf("reread B: %v", err)
	}
	if *reread.UnitsInStock != 85 || *reread.UnitsOnOrder != 1 {
		t.Errorf("B stock = %d on-order = %d, want 85 and 1", *reread.UnitsInStock, *reread.UnitsOnOrder)
	}
}

func TestPlaceOrderRejectsEmptyBasket(t *testing.T) {
	svc, conn := setupService(t)
	for name, basket := range map[string][]*models.Product{
		"nil list":    nil,
		"empty list":  {},
		"nil product": {nil},
	} {
		if _, err := svc.PlaceOrder(basket); !errors.Is(err, store.ErrInvalidArgument) {
			t.Errorf("%s: expected ErrInvalidArgument got %v", name, err)
		}
	}
	var n int64
	conn.Model(&models.Order{}).Count(&n)
	if n != 0 {
		t.Fatalf("a rejected order must not persist anything, found %d orders", n)
	}
}

func TestPlaceOrderRejectsUnknownProduct(t *testing.T) {
	svc, conn := setupService(t)
	known := models.Product{ProductName: "Chai", UnitPrice: ptrOf(18.0), UnitsInStock: ptrOf(39)}
	mustCreate(t, conn, &known)

	for name, basket := range map[string][]*models.Product{
		"never persisted": {&known, {ProductName: "Gnocchi di nonna Alice"}},
		"stale id":        {{ID: known.ID + 1, ProductName: "Gnocchi di nonna Alice"}},
	} {
		if _, err := svc.PlaceOrder(basket); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound got %v", name, err)
		}
	}

	var n int64
	conn.Model(&models.Order{}).Count(&n)
	if n != 0 {
		t.Fatalf("a rejected order must not persist anything, found %d orders", n)
	}
	conn.Model(&models.OrderDetail{}).Count(&n)
	if n != 0 {
		t.Fatalf("a rejected order must not persist any lines, found %d", n)
	}
	conn.Model(&models.Product{}).Count(&n)
	if n != 1 {
		t.Fatalf("a rejected order must not insert product rows, found %d", n)
	}

	var reread models.Product
	if err := conn.First(&reread, known.ID).Error; err != nil {
		t.Fatalf("reread: %v", err)
	}
	if *reread.UnitsInStock != 39 {
		t.Errorf("stock = %d, want untouched 39", *reread.UnitsInStock)
	}
}

func TestAddProduct(t *testing.T) {
	svc, conn := setupService(t)

	if _, err := svc.AddProduct(nil); !errors.Is(err, store.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", err)
	}

	p, err := svc.AddProduct(&models.Product{ProductName: "Chai", UnitPrice: ptrOf(18.0)})
	if err != nil {
		t.Fatalf("add product: %v", err)
	}
	if p.ID == 0 {
		t.Fatal("expected a generated product id")
	}
	var n int64
	conn.Model(&models.Product{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 product got %d", n)
	}
}

func TestAddProductsBatch(t *testing.T) {
	svc, conn := setupService(t)
	if err := svc.AddProducts(nil); !errors.Is(err, store.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument got %v", err)
	}

	batch := []*models.Product{
		{ProductName: "Chai"},
		{ProductName: "Chang"},
	}
	if err := svc.AddProducts(batch); err != nil {
		t.Fatalf("add products: %v", err)
	}
	var n int64
	conn.Model(&models.Product{}).Count(&n)
	if n != 2 {
		t.Fatalf("expected 2 products got %d", n)
	}
}

func TestRemoveProductByID(t *testing.T) {
	svc, conn := setupService(t)
	p := models.Product{ProductName: "Chai"}
	mustCreate(t, conn, &p)

	if err := svc.RemoveProductByID(p.ID + 99); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound got %v", err)
	}
	if err := svc.RemoveProductByID(p.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	var n int64
	conn.Model(&models.Product{}).Count(&n)
	if n != 0 {
		t.Fatalf("expected physical removal, found %d rows", n)
	}
}

func TestProductByNameAbsentIsNotAnError(t *testing.T) {
	svc, _ := setupService(t)
	p, err := svc.ProductByName("ghost")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil for an absent product, got %v", p)
	}
}

func TestUpdateProduct(t *testing.T) {
	svc, conn := setupService(t)
	p := models.Product{ProductName: "Chai", UnitPrice: ptrOf(18.0)}
	mustCreate(t, conn, &p)

	p.UnitPrice = ptrOf(21.5)
	if _, err := svc.UpdateProduct(&p); err != nil {
		t.Fatalf("update: %v", err)
	}
	var reread models.Product
	if err := conn.First(&reread, p.ID).Error; err != nil {
		t.Fatalf("reread: %v", err)
	}
	if reread.UnitPrice == nil || *reread.UnitPrice != 21.5 {
		t.Fatalf("price not updated, got %v", reread.UnitPrice)
	}
}

func TestOrderTotals(t *testing.T) {
	svc, conn := setupService(t)
	order := models.Order{}
	mustCreate(t, conn, &order)
	mustCreate(t, conn, &models.OrderDetail{OrderID: order.ID, ProductID: 1, UnitPrice: 10.5, Quantity: 2})
	mustCreate(t, conn, &models.OrderDetail{OrderID: order.ID, ProductID: 2, UnitPrice: 3, Quantity: 1})

	totals, err := svc.OrderTotals()
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(totals) != 1 {
		t.Fatalf("expected totals for 1 order got %d", len(totals))
	}
	if totals[0].OrderID != order.ID || !totals[0].Total.Equal(decimal.NewFromInt(24)) {
		t.Fatalf("total = %s for order %d, want 24", totals[0].Total, totals[0].OrderID)
	}
}
