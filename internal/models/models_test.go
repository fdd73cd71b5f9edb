package models

import (
	"testing"
	"time"
)

func TestEntityKeys(t *testing.T) {
	d := OrderDetail{OrderID: 7, ProductID: 3}
	if got := d.EntityKey(); got != (OrderDetailKey{OrderID: 7, ProductID: 3}) {
		t.Errorf("OrderDetail.EntityKey() = %v", got)
	}
	if got := (Product{ID: 5}).EntityKey(); got != uint(5) {
		t.Errorf("Product.EntityKey() = %v, want 5", got)
	}
	if got := (Customer{ID: "ALFKI"}).EntityKey(); got != "ALFKI" {
		t.Errorf("Customer.EntityKey() = %v, want ALFKI", got)
	}
}

func TestStringRenderings(t *testing.T) {
	when := time.Date(1996, time.July, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"product", Product{ID: 1, ProductName: "Chai"}.String(), "1 - Chai"},
		{"order with date", Order{ID: 2, OrderDate: &when}.String(), "2 - 1996-07-04"},
		{"order without date", Order{ID: 3}.String(), "3"},
		{"order detail", OrderDetail{OrderID: 4, ProductID: 9, Quantity: 2, UnitPrice: 12.5}.String(), "4 - 2 x 9 - 12.50"},
		{"employee", Employee{ID: 5, FirstName: "Robert", LastName: "King"}.String(), "5 - Robert King"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("String() = %q, want %q", tt.got, tt.want)
			}
		})
	}
}
