package main

import (
	"context"
	"fmt"
	"strings"

	"localmart/internal/cart"
	"localmart/internal/food"
	"localmart/internal/utils"

	"github.com/shopspring/decimal"
)

func (a *app) cmdFood(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"restaurants"}
	}
	sub, rest := args[0], args[1:]

	switch sub {
	case "restaurants":
		fs := newFlags("food restaurants", a.stderr)
		search := fs.String("search", "", "restaurant or cuisine")
		if err := parse(fs, rest); err != nil {
			return err
		}
		list, err := a.food.Restaurants(ctx, *search)
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(a.stdout, "No restaurants found.")
			return nil
		}
		for _, r := range list {
			status := "open"
			if !r.IsOpen {
				status = "closed"
			}
			fmt.Fprintf(a.stdout, "%-12s %-24s %-6s %s\n", r.ID, r.Name, status, strings.Join(r.Cuisines, ", "))
		}
		return nil

	case "menu":
		if len(rest) != 1 {
			fmt.Fprintln(a.stderr, "usage: localmart food menu <restaurant-id>")
			return errUsage
		}
		menu, err := a.food.Menu(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, menu.Restaurant.Name)
		for _, it := range menu.Items {
			mark := "non-veg"
			if it.Veg {
				mark = "veg"
			}
			avail := ""
			if !it.Available {
				avail = "  unavailable"
			}
			fmt.Fprintf(a.stdout, "  %-12s %-28s %-7s %s%s\n",
				it.ID, it.Name, mark, utils.Rupees(decimal.NewFromFloat(it.Price)), avail)
		}
		return nil

	case "add":
		if len(rest) != 2 {
			fmt.Fprintln(a.stderr, "usage: localmart food add <restaurant-id> <item-id>")
			return errUsage
		}
		if err := a.food.AddToCart(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Added to your food order.")
		return nil

	case "cart":
		a.printCart(a.foodCart.Snapshot(ctx), cart.StandardDelivery)
		return nil

	case "remove":
		if len(rest) != 1 {
			fmt.Fprintln(a.stderr, "usage: localmart food remove <item-id>")
			return errUsage
		}
		return a.foodCart.Remove(ctx, rest[0])

	case "clear":
		if err := a.foodCart.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Food order cleared.")
		return nil

	case "order":
		fs := newFlags("food order", a.stderr)
		var form food.Checkout
		addressID := fs.String("address-id", "", "use a saved address")
		fs.StringVar(&form.Address, "address", "", "delivery address; defaults to your default saved address")
		fs.StringVar(&form.ContactNumber, "phone", "", "contact number")
		fs.StringVar(&form.PaymentMethod, "pay", "", strings.Join(methodNames(), ", "))
		fs.StringVar(&form.Notes, "notes", "", "notes for the restaurant")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if form.Address == "" {
			form.Address = a.savedAddress(ctx, *addressID)
		}

		o, err := a.food.PlaceOrder(ctx, form)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Food order %s placed: %s\n", o.ID, utils.Rupees(decimal.NewFromFloat(o.Total)))
		if o.EstimatedMinutes > 0 {
			fmt.Fprintf(a.stdout, "Arriving in about %d minutes.\n", o.EstimatedMinutes)
		}
		return nil
	}

	fmt.Fprintf(a.stderr, "unknown food command %q (restaurants, menu, add, cart, remove, clear, order)\n", sub)
	return errUsage
}
