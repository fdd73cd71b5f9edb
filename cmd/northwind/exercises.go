package main

import (
	"fmt"
	"time"

	"github.com/mccreemainwoody/northwind/internal/models"
	"github.com/mccreemainwoody/northwind/internal/services"
)

func exercise(n int) { fmt.Printf("\nExercise %d\n", n) }

func printAll[T fmt.Stringer](items []T) {
	for _, item := range items {
		fmt.Println(item)
	}
}

// runExercises walks the reporting queries with the classic parameters and,
// when asked, finishes by placing an order for Aniseed Syrup (twice) and
// Queso Manchego La Pastora.
func runExercises(svc *services.NorthwindService, placeOrder bool) error {
	exercise(1)
	employees, err := svc.EmployeesByYearAndCity(1994, "London")
	if err != nil {
		return err
	}
	printAll(employees)

	exercise(2)
	employees, err = svc.EmployeesByTitleSubstring("Representative")
	if err != nil {
		return err
	}
	printAll(employees)

	exercise(3)
	avg, err := svc.AveragePriceByCategory("Seafood")
	if err != nil {
		return err
	}
	fmt.Println(avg)

	exercise(4)
	orders, err := svc.OrdersAfter(time.Date(1996, time.June, 2, 0, 0, 0, 0, time.UTC))
	if err != nil {
		return err
	}
	printAll(orders)

	exercise(5)
	ordersAbove, err := svc.OrdersWithLineAbove(230)
	if err != nil {
		return err
	}
	for _, o := range ordersAbove {
		fmt.Println(o)
	}

	exercise(6)
	products, err := svc.ProductsNeverOrdered()
	if err != nil {
		return err
	}
	printAll(products)

	exercise(7)
	details, err := svc.OrderDetailsInDiscountBand(0.2, 0.3, 20, 40)
	if err != nil {
		return err
	}
	printAll(details)

	exercise(8)
	heavySellers, err := svc.EmployeesWithOrderQuantityAbove(120)
	if err != nil {
		return err
	}
	for _, e := range heavySellers {
		fmt.Println(e)
	}

	if !placeOrder {
		return nil
	}
	basket := make([]*models.Product, 0, 3)
	for _, name := range []string{"Aniseed Syrup", "Queso Manchego La Pastora", "Aniseed Syrup"} {
		p, err := svc.ProductByName(name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("product %q is not in the store; run with -seed first", name)
		}
		basket = append(basket, p)
	}
	order, err := svc.PlaceOrder(basket)
	if err != nil {
		return err
	}
	fmt.Printf("\nCreated order %d with %d product(s)\n", order.ID, len(basket))
	return nil
}
