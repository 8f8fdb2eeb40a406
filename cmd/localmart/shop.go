package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"localmart/internal/cart"
	"localmart/internal/catalog"
	"localmart/internal/checkout"
	"localmart/internal/order"
	"localmart/internal/payment"
	"localmart/internal/utils"

	"github.com/shopspring/decimal"
)

func (a *app) cmdCart(ctx context.Context, args []string) error {
	sub, rest := "show", args
	if len(args) > 0 {
		sub, rest = args[0], args[1:]
	}

	switch sub {
	case "show":
		a.printCart(a.cart.Snapshot(ctx), cart.StandardDelivery)
		return nil

	case "add":
		fs := newFlags("cart add", a.stderr)
		qty := fs.Int("qty", 1, "how many to add")
		if err := parse(fs, rest); err != nil {
			return err
		}
		if fs.NArg() != 1 || *qty < 1 {
			fmt.Fprintln(a.stderr, "usage: localmart cart add [-qty n] <product-id>")
			return errUsage
		}

		p, err := a.catalog.Product(ctx, fs.Arg(0))
		if err != nil {
			return err
		}
		if !p.InStock {
			return fmt.Errorf("%s is out of stock", p.Name)
		}
		if err := a.cart.AddItem(ctx, p.CartProduct()); err != nil {
			return err
		}
		if *qty > 1 {
			li, _ := a.cart.Snapshot(ctx).Find(p.ID)
			if err := a.cart.UpdateQuantity(ctx, p.ID, li.Quantity+*qty-1); err != nil {
				return err
			}
		}
		fmt.Fprintf(a.stdout, "Added %s to your cart.\n", p.Name)
		return nil

	case "set":
		if len(rest) != 2 {
			fmt.Fprintln(a.stderr, "usage: localmart cart set <product-id> <quantity>")
			return errUsage
		}
		n, err := strconv.Atoi(rest[1])
		if err != nil {
			fmt.Fprintf(a.stderr, "quantity %q is not a number\n", rest[1])
			return errUsage
		}
		return a.cart.UpdateQuantity(ctx, rest[0], n)

	case "remove":
		if len(rest) != 1 {
			fmt.Fprintln(a.stderr, "usage: localmart cart remove <product-id>")
			return errUsage
		}
		return a.cart.RemoveItem(ctx, rest[0])

	case "clear":
		if err := a.cart.Clear(ctx); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Cart cleared.")
		return nil
	}

	fmt.Fprintf(a.stderr, "unknown cart command %q (show, add, set, remove, clear)\n", sub)
	return errUsage
}

func (a *app) printCart(snap cart.Snapshot, policy cart.DeliveryPolicy) {
	if len(snap) == 0 {
		fmt.Fprintln(a.stdout, "Your cart is empty.")
		return
	}

	for _, li := range snap {
		line := decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
		fmt.Fprintf(a.stdout, "%-12s %-28s %3d x %-10s %s\n",
			li.ID, li.Name, li.Quantity, utils.Rupees(decimal.NewFromFloat(li.Price)), utils.Rupees(line))
	}

	t := cart.ComputeTotals(snap, policy)
	fmt.Fprintf(a.stdout, "\n%d items\n", snap.Count())
	fmt.Fprintf(a.stdout, "Subtotal  %s\n", utils.Rupees(t.Subtotal))
	if t.Discount.IsPositive() {
		fmt.Fprintf(a.stdout, "You save  %s\n", utils.Rupees(t.Discount))
	}
	if t.DeliveryFee.IsZero() {
		fmt.Fprintln(a.stdout, "Delivery  FREE")
	} else {
		fmt.Fprintf(a.stdout, "Delivery  %s\n", utils.Rupees(t.DeliveryFee))
	}
	fmt.Fprintf(a.stdout, "Total     %s\n", utils.Rupees(t.Total))

	if more := cart.AmountToFreeDelivery(t, policy); more.IsPositive() {
		fmt.Fprintf(a.stdout, "Add %s more for free delivery.\n", utils.Rupees(more))
	}
}

func (a *app) cmdBrowse(ctx context.Context, args []string) error {
	fs := newFlags("browse", a.stderr)
	var q catalog.Query
	fs.StringVar(&q.CategoryID, "category", "", "category id")
	fs.StringVar(&q.Search, "search", "", "search text")
	tags := fs.String("tags", "", "comma separated tags; a product must carry all of them")
	sortKey := fs.String("sort", "", "popularity, price_asc, price_desc, discount_desc or rating_desc")
	fs.IntVar(&q.Page, "page", 1, "page number")
	fs.IntVar(&q.Limit, "limit", 0, "products per page")
	categories := fs.Bool("categories", false, "list categories instead of products")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *categories {
		cats, err := a.catalog.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range cats {
			fmt.Fprintf(a.stdout, "%-12s %s\n", c.ID, c.Name)
		}
		return nil
	}

	key, err := catalog.ParseSortKey(*sortKey)
	if err != nil {
		return err
	}
	q.Sort = key
	q.Tags = splitList(*tags)

	b := catalog.NewBrowser(a.catalog, a.cart)
	defer b.Close()

	if err := b.Load(ctx, q); err != nil {
		return err
	}

	v := b.View()
	switch v.State {
	case catalog.StateEmpty:
		fmt.Fprintln(a.stdout, "No products match.")
		return nil
	case catalog.StateFailed:
		return errors.New(v.Error)
	}

	for _, p := range v.Products {
		price := utils.Rupees(decimal.NewFromFloat(p.Price))
		if off := p.DiscountPercent(); off > 0 {
			price += fmt.Sprintf(" (%.0f%% off)", off)
		}
		stock := ""
		if !p.InStock {
			stock = "  out of stock"
		}
		fmt.Fprintf(a.stdout, "%-12s %-28s %-8s %s%s\n", p.ID, p.Name, p.Unit, price, stock)
	}
	fmt.Fprintf(a.stdout, "\n%d of %d products\n", len(v.Products), v.Total)
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := newFlags("checkout", a.stderr)
	var f checkout.Form
	fs.StringVar(&f.Address, "address", "", "delivery address; defaults to your default saved address")
	addressID := fs.String("address-id", "", "use a saved address")
	fs.StringVar(&f.PaymentMethod, "pay", "", strings.Join(methodNames(), ", "))
	fs.StringVar(&f.CustomerName, "name", "", "name, required for cash on delivery")
	fs.StringVar(&f.ContactNumber, "phone", "", "contact number, required for cash on delivery")
	fs.StringVar(&f.Speed, "speed", cart.StandardDelivery.Name, "standard or express")
	fs.StringVar(&f.Notes, "notes", "", "notes for the rider")
	if err := parse(fs, args); err != nil {
		return err
	}

	if f.Address == "" {
		f.Address = a.savedAddress(ctx, *addressID)
	}

	s := checkout.NewSession(a.cart, a.orders)
	defer s.Close()

	conf, err := s.Submit(ctx, f)
	if err != nil {
		if banner := s.View().Banner; banner != "" {
			return errors.New(banner)
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Order %s placed: %d items, %s\n", conf.OrderID, conf.Units, utils.Rupees(conf.Totals.Total))
	fmt.Fprintf(a.stdout, "Payment: %s\n", conf.PaymentMethod.Label())
	for i, step := range conf.Instructions {
		fmt.Fprintf(a.stdout, "  %d. %s\n", i+1, step)
	}
	if w := s.View().Warning; w != "" {
		fmt.Fprintln(a.stderr, w)
	}
	return nil
}

// savedAddress resolves id, or the default address when id is empty. Any
// failure leaves the address blank for the form to report.
func (a *app) savedAddress(ctx context.Context, id string) string {
	if id != "" {
		if ad, err := a.addresses.Get(ctx, id); err == nil {
			return ad.OneLine()
		}
		return ""
	}
	if ad, err := a.addresses.Default(ctx); err == nil {
		return ad.OneLine()
	}
	return ""
}

func (a *app) cmdOrders(ctx context.Context, args []string) error {
	fs := newFlags("orders", a.stderr)
	page := fs.Int("page", 1, "page number")
	cancel := fs.String("cancel", "", "cancel the order with this id")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *cancel != "" {
		o, err := a.orders.Cancel(ctx, *cancel)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Order %s is now %s.\n", o.ID, o.Status)
		return nil
	}

	list, err := a.orders.ListMine(ctx, order.ListQuery{Page: *page})
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(a.stdout, "No orders yet.")
		return nil
	}
	for _, o := range list.Items {
		fmt.Fprintf(a.stdout, "%-14s %-10s %-12s %s\n",
			o.ID, o.CreatedAt.Format("02 Jan 2006"), o.Status, utils.Rupees(decimal.NewFromFloat(o.Total)))
	}
	return nil
}

func methodNames() []string {
	methods := payment.Methods()
	names := make([]string, len(methods))
	for i, m := range methods {
		names[i] = string(m)
	}
	return names
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
