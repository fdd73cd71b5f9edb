package models

import "github.com/mccreemainwoody/northwind/internal/query"

// Eager-load paths usable with the query composer. Each constant binds a
// traversal to its root entity type, so a path cannot be handed to a query
// over the wrong table.
var (
	ProductCategory = query.Relation[Product]("Category")
	ProductSupplier = query.Relation[Product]("Supplier")

	OrderCustomer = query.Relation[Order]("Customer")
	OrderEmployee = query.Relation[Order]("Employee")
	OrderShipper  = query.Relation[Order]("Shipper")
	OrderLines    = query.Relation[Order]("Details")

	DetailOrder         = query.Relation[OrderDetail]("Order")
	DetailProduct       = query.Relation[OrderDetail]("Product")
	DetailOrderEmployee = query.Relation[OrderDetail]("Order.Employee")
)
