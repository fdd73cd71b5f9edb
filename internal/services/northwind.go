package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mccreemainwoody/northwind/internal/models"
	"github.com/mccreemainwoody/northwind/internal/query"
	"github.com/mccreemainwoody/northwind/internal/store"
)

// NorthwindService exposes the named reporting queries and the write
// operations over the Northwind store. Every read is a parameterization of
// the query composer; every write goes through the staged persistence
// context.
type NorthwindService struct {
	db  *gorm.DB
	ctx *store.Context
}

func NewNorthwindService(db *gorm.DB) *NorthwindService {
	return &NorthwindService{db: db, ctx: store.New(db)}
}

// byOrder keys order lines by their parent order.
func byOrder(d models.OrderDetail) uint { return d.OrderID }

// ---- Product CRUD ----

// Products returns every product.
func (s *NorthwindService) Products() ([]models.Product, error) {
	return query.Select[models.Product](s.db, nil)
}

// ProductByID returns the product with the given id, nil when absent.
func (s *NorthwindService) ProductByID(id uint) (*models.Product, error) {
	var p models.Product
	found, err := s.ctx.Find(&p, id)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

// ProductByName returns the first product with the given name, nil when absent.
func (s *NorthwindService) ProductByName(name string) (*models.Product, error) {
	var p models.Product
	err := s.db.Where(&models.Product{ProductName: name}).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("product by name: %w: %w", store.ErrPersistenceFailure, err)
	}
	return &p, nil
}

// AddProduct persists a single product and returns it with its generated id.
func (s *NorthwindService) AddProduct(p *models.Product) (*models.Product, error) {
	if err := s.ctx.Add(p); err != nil {
		return nil, fmt.Errorf("add product: %w", err)
	}
	n, err := s.ctx.Flush()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("add product: no row persisted: %w", store.ErrPersistenceFailure)
	}
	return p, nil
}

// AddProducts persists a batch of products with one staged insert, which is
// cheaper than adding them one by one.
func (s *NorthwindService) AddProducts(ps []*models.Product) error {
	if err := s.ctx.AddRange(ps); err != nil {
		return fmt.Errorf("add products: %w", err)
	}
	n, err := s.ctx.Flush()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("add products: no row persisted: %w", store.ErrPersistenceFailure)
	}
	return nil
}

// UpdateProduct writes back every attribute of an already persisted product.
func (s *NorthwindService) UpdateProduct(p *models.Product) (*models.Product, error) {
	if err := s.ctx.MarkModified(p); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	n, err := s.ctx.Flush()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("update product: no row persisted: %w", store.ErrPersistenceFailure)
	}
	return p, nil
}

// RemoveProduct physically deletes a product.
func (s *NorthwindService) RemoveProduct(p *models.Product) error {
	if err := s.ctx.Remove(p); err != nil {
		return fmt.Errorf("remove product: %w", err)
	}
	n, err := s.ctx.Flush()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("remove product: no row deleted: %w", store.ErrPersistenceFailure)
	}
	return nil
}

// RemoveProductByID deletes the product with the given id; a missing id is
// fatal here because the caller asked for that exact row to go away.
func (s *NorthwindService) RemoveProductByID(id uint) error {
	p, err := s.ProductByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("remove product %d: %w", id, store.ErrNotFound)
	}
	return s.RemoveProduct(p)
}

// RemoveProducts physically deletes a batch of products.
func (s *NorthwindService) RemoveProducts(ps []*models.Product) error {
	if err := s.ctx.RemoveRange(ps); err != nil {
		return fmt.Errorf("remove products: %w", err)
	}
	n, err := s.ctx.Flush()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("remove products: no row deleted: %w", store.ErrPersistenceFailure)
	}
	return nil
}

// ---- Order placement ----

// PlaceOrder creates an order stamped with the current time plus one line per
// distinct product in the list, quantity being the number of occurrences and
// unit price the product's current price (0 when absent). Each line moves the
// product's stock to on-order by its quantity. Every product must already be
// persisted; a missing one fails with ErrNotFound. Everything commits in one
// transaction or not at all.
func (s *NorthwindService) PlaceOrder(products []*models.Product) (*models.Order, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("place order: at least one product is required: %w", store.ErrInvalidArgument)
	}
	for _, p := range products {
		if p == nil {
			return nil, fmt.Errorf("place order: nil product: %w", store.ErrInvalidArgument)
		}
	}
	now := time.Now()
	order := &models.Order{OrderDate: &now}
	err := s.ctx.Transaction(func(tc *store.Context) error {
		if err := tc.Add(order); err != nil {
			return err
		}
		n, err := tc.Flush()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("place order: order insert affected no rows: %w", store.ErrPersistenceFailure)
		}
		// Coalesce duplicate products into one line each, keeping the order
		// in which they first appear.
		counts := make(map[uint]int, len(products))
		lines := make([]*models.Product, 0, len(products))
		for _, p := range products {
			if counts[p.ID] == 0 {
				lines = append(lines, p)
			}
			counts[p.ID]++
		}
		// Every line must reference a persisted product before anything is
		// written for it; a stale or never-saved product aborts the whole
		// order.
		for _, p := range lines {
			if p.ID == 0 {
				return fmt.Errorf("place order: product %q was never persisted: %w", p.ProductName, store.ErrNotFound)
			}
			if found, err := tc.Find(&models.Product{}, p.ID); err != nil {
				return err
			} else if !found {
				return fmt.Errorf("place order: product %d: %w", p.ID, store.ErrNotFound)
			}
		}
		for _, p := range lines {
			qty := counts[p.ID]
			price := 0.0
			if p.UnitPrice != nil {
				price = *p.UnitPrice
			}
			detail := &models.OrderDetail{
				OrderID:   order.ID,
				ProductID: p.ID,
				Quantity:  qty,
				UnitPrice: price,
				Discount:  0,
			}
			if err := tc.Add(detail); err != nil {
				return err
			}
			if err := adjustStock(tc, p, qty); err != nil {
				return err
			}
		}
		_, err = tc.Flush()
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// adjustStock stages the stock movement an order line causes: on-hand units
// drop and on-order units rise by the same quantity.
func adjustStock(tc *store.Context, p *models.Product, qty int) error {
	inStock, onOrder := 0, 0
	if p.UnitsInStock != nil {
		inStock = *p.UnitsInStock
	}
	if p.UnitsOnOrder != nil {
		onOrder = *p.UnitsOnOrder
	}
	inStock -= qty
	onOrder += qty
	p.UnitsInStock = &inStock
	p.UnitsOnOrder = &onOrder
	return tc.MarkModified(p)
}

// ---- Reporting queries ----

// EmployeesByYearAndCity returns the employees hired during the given year
// whose city matches exactly.
func (s *NorthwindService) EmployeesByYearAndCity(year int, city string) ([]models.Employee, error) {
	return query.Select(s.db, func(e models.Employee) bool {
		return e.City != nil && *e.City == city &&
			e.HireDate != nil && e.HireDate.Year() == year
	})
}

// EmployeesByTitleSubstring returns the employees whose title contains text,
// case-sensitively.
func (s *NorthwindService) EmployeesByTitleSubstring(text string) ([]models.Employee, error) {
	return query.Select(s.db, func(e models.Employee) bool {
		return e.Title != nil && strings.Contains(*e.Title, text)
	})
}

// AveragePriceByCategory averages the distinct unit prices of the named
// category's products, rounded to two places. Zero when the category has no
// products or none of them carries a price.
func (s *NorthwindService) AveragePriceByCategory(categoryName string) (decimal.Decimal, error) {
	prices, err := query.SelectProject(s.db,
		func(p models.Product) float64 { return *p.UnitPrice },
		func(p models.Product) bool {
			return p.UnitPrice != nil &&
				p.Category != nil && p.Category.CategoryName == categoryName
		},
		models.ProductCategory)
	if err != nil {
		return decimal.Zero, err
	}
	if len(prices) == 0 {
		return decimal.Zero, nil
	}
	sum := decimal.Zero
	for _, price := range prices {
		sum = sum.Add(decimal.NewFromFloat(price))
	}
	return sum.Div(decimal.NewFromInt(int64(len(prices)))).Round(2), nil
}

// OrdersAfter returns the orders placed strictly after t.
func (s *NorthwindService) OrdersAfter(t time.Time) ([]models.Order, error) {
	return query.Select(s.db, func(o models.Order) bool {
		return o.OrderDate != nil && o.OrderDate.After(t)
	})
}

// OrdersWithLineAbove returns the orders having at least one line whose
// captured unit price exceeds minPrice.
func (s *NorthwindService) OrdersWithLineAbove(minPrice float64) ([]*models.Order, error) {
	orders, err := query.GroupByProject(s.db, byOrder,
		func(g query.Group[uint, models.OrderDetail]) *models.Order { return g.First().Order },
		func(g query.Group[uint, models.OrderDetail]) bool {
			return g.Any(func(d models.OrderDetail) bool { return d.UnitPrice > minPrice })
		},
		models.DetailOrder)
	if err != nil {
		return nil, err
	}
	return withoutNils(orders), nil
}

// ProductsNeverOrdered returns the products no order line references. The
// referenced ids are materialized first so the product scan needs no nested
// per-row lookup.
func (s *NorthwindService) ProductsNeverOrdered() ([]models.Product, error) {
	ordered, err := query.SelectProject(s.db,
		func(d models.OrderDetail) uint { return d.ProductID }, nil)
	if err != nil {
		return nil, err
	}
	referenced := make(map[uint]struct{}, len(ordered))
	for _, id := range ordered {
		referenced[id] = struct{}{}
	}
	return query.Select(s.db, func(p models.Product) bool {
		_, ok := referenced[p.ID]
		return !ok
	})
}

// OrderDetailsInDiscountBand returns one representative line per order where
// every line's price is below priceMax, every line's quantity is strictly
// above quantityMin, and the order's summed discounts fall within
// [discountMin, discountMax]. Discounts are summed as decimals so a boundary
// sum like 0.1+0.1+0.1 = 0.3 lands inside the band instead of drifting out.
func (s *NorthwindService) OrderDetailsInDiscountBand(discountMin, discountMax, priceMax float64, quantityMin int) ([]models.OrderDetail, error) {
	lo := decimal.NewFromFloat(discountMin)
	hi := decimal.NewFromFloat(discountMax)
	return query.GroupByProject(s.db, byOrder,
		func(g query.Group[uint, models.OrderDetail]) models.OrderDetail { return g.First() },
		func(g query.Group[uint, models.OrderDetail]) bool {
			if !g.All(func(d models.OrderDetail) bool { return d.UnitPrice < priceMax }) {
				return false
			}
			if !g.All(func(d models.OrderDetail) bool { return d.Quantity > quantityMin }) {
				return false
			}
			total := query.SumDecimal(g, func(d models.OrderDetail) decimal.Decimal {
				return decimal.NewFromFloat(d.Discount)
			})
			return total.GreaterThanOrEqual(lo) && total.LessThanOrEqual(hi)
		})
}

// EmployeesWithOrderQuantityAbove returns the employees owning at least one
// order whose summed line quantities exceed the threshold.
func (s *NorthwindService) EmployeesWithOrderQuantityAbove(quantity int) ([]*models.Employee, error) {
	emps, err := query.GroupByProject(s.db, byOrder,
		func(g query.Group[uint, models.OrderDetail]) *models.Employee {
			if o := g.First().Order; o != nil {
				return o.Employee
			}
			return nil
		},
		func(g query.Group[uint, models.OrderDetail]) bool {
			return query.Sum(g, func(d models.OrderDetail) int { return d.Quantity }) > quantity
		},
		models.DetailOrder, models.DetailOrderEmployee)
	if err != nil {
		return nil, err
	}
	return withoutNils(emps), nil
}

// withoutNils drops the nil entry a group without the requested relation
// projects to.
func withoutNils[T any](in []*T) []*T {
	out := make([]*T, 0, len(in))
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// OrderTotal pairs an order with the money total of its lines.
type OrderTotal struct {
	OrderID uint
	Detail  models.OrderDetail
	Total   decimal.Decimal
}

// OrderTotals computes each order's total (unit price times quantity per
// line, ignoring discounts) with exact decimal arithmetic.
func (s *NorthwindService) OrderTotals() ([]OrderTotal, error) {
	groups, err := query.GroupBy(s.db, byOrder, nil, models.DetailOrder)
	if err != nil {
		return nil, err
	}
	totals := make([]OrderTotal, 0, len(groups))
	for _, g := range groups {
		total := query.SumDecimal(g, func(d models.OrderDetail) decimal.Decimal {
			return decimal.NewFromFloat(d.UnitPrice).Mul(decimal.NewFromInt(int64(d.Quantity)))
		})
		totals = append(totals, OrderTotal{OrderID: g.Key, Detail: g.First(), Total: total})
	}
	return totals, nil
}
