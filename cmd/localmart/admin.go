package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localmart/internal/admin"
	"localmart/internal/auth"
	"localmart/internal/order"
	"localmart/internal/utils"

	"github.com/shopspring/decimal"
)

var errAdminOnly = errors.New("admin access required")

func (a *app) requireAdmin(ctx context.Context) error {
	u, err := a.auth.Current(ctx)
	if errors.Is(err, auth.ErrNotSignedIn) {
		return errors.New("sign in as an administrator first")
	}
	if err != nil {
		return err
	}
	if !u.IsAdmin() {
		return errAdminOnly
	}
	return nil
}

func (a *app) cmdAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		args = []string{"stats"}
	}
	sub, rest := args[0], args[1:]

	handlers := map[string]command{
		"stats":    a.adminStats,
		"orders":   a.adminOrders,
		"users":    a.adminUsers,
		"messages": a.adminMessages,
	}
	h, ok := handlers[sub]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown admin command %q (stats, orders, users, messages)\n", sub)
		return errUsage
	}

	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	return h(ctx, rest)
}

func (a *app) adminStats(ctx context.Context, _ []string) error {
	d := admin.NewDashboard(a.adminRepo)
	defer d.Close()

	st, err := d.Load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Orders          %d (%d pending)\n", st.Orders, st.PendingOrders)
	fmt.Fprintf(a.stdout, "Revenue         %s\n", d.Revenue())
	fmt.Fprintf(a.stdout, "Users           %d\n", st.Users)
	fmt.Fprintf(a.stdout, "Bookings        %d\n", st.Bookings)
	fmt.Fprintf(a.stdout, "Unread messages %d\n", st.UnreadMessages)
	return nil
}

type pager interface {
	Search(ctx context.Context, term string) error
	GoTo(ctx context.Context, page int) error
}

// openPage lands v on page with search applied.
func openPage(ctx context.Context, v pager, search string, page int) error {
	if search != "" {
		if err := v.Search(ctx, search); err != nil {
			return err
		}
		if page <= 1 {
			return nil
		}
	}
	return v.GoTo(ctx, page)
}

// pair splits "id=value".
func pair(s string) (string, string, bool) {
	id, val, ok := strings.Cut(s, "=")
	if !ok || id == "" || val == "" {
		return "", "", false
	}
	return id, val, true
}

func (a *app) adminOrders(ctx context.Context, args []string) error {
	fs := newFlags("admin orders", a.stderr)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search text")
	status := fs.String("status", "", "only orders in this status")
	setStatus := fs.String("set-status", "", "change an order's status, as id=status")
	del := fs.String("delete", "", "delete the order with this id")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}

	v := admin.NewOrdersView(a.orderRepo, a.confirmer(*yes))
	defer v.Close()

	switch {
	case *setStatus != "":
		id, st, ok := pair(*setStatus)
		if !ok {
			fmt.Fprintln(a.stderr, "-set-status wants id=status")
			return errUsage
		}
		if err := v.SetStatus(ctx, id, order.Status(st)); err != nil {
			return notConfirmed(a, err)
		}
		fmt.Fprintf(a.stdout, "Order %s is now %s.\n", id, st)
		return nil

	case *del != "":
		if err := v.Delete(ctx, *del); err != nil {
			return notConfirmed(a, err)
		}
		fmt.Fprintf(a.stdout, "Order %s deleted.\n", *del)
		return nil
	}

	if *status != "" {
		if err := v.FilterStatus(ctx, order.Status(*status)); err != nil {
			return err
		}
	}
	if err := openPage(ctx, v, *search, *page); err != nil {
		return err
	}

	p := v.View()
	for _, o := range p.Items {
		fmt.Fprintf(a.stdout, "%-14s %-20s %-12s %s\n",
			o.ID, o.CustomerName, o.Status, utils.Rupees(decimal.NewFromFloat(o.Total)))
	}
	fmt.Fprintf(a.stdout, "page %d, %d orders\n", p.Number, p.Total)
	return nil
}

func (a *app) adminUsers(ctx context.Context, args []string) error {
	fs := newFlags("admin users", a.stderr)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search by name or email")
	setRole := fs.String("set-role", "", "change a user's role, as id=user or id=admin")
	del := fs.String("delete", "", "delete the user with this id")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}

	v := admin.NewUsersView(a.userRepo, a.confirmer(*yes))
	defer v.Close()

	// Delete prompts with the user's name, so the row has to be on screen.
	if err := openPage(ctx, v, *search, *page); err != nil {
		return err
	}

	switch {
	case *setRole != "":
		id, role, ok := pair(*setRole)
		if !ok {
			fmt.Fprintln(a.stderr, "-set-role wants id=role")
			return errUsage
		}
		if err := v.SetRole(ctx, id, auth.Role(role)); err != nil {
			return notConfirmed(a, err)
		}
		fmt.Fprintf(a.stdout, "User %s is now %s.\n", id, role)
		return nil

	case *del != "":
		if err := v.Delete(ctx, *del); err != nil {
			return notConfirmed(a, err)
		}
		fmt.Fprintf(a.stdout, "User %s deleted.\n", *del)
		return nil
	}

	p := v.View()
	for _, u := range p.Items {
		fmt.Fprintf(a.stdout, "%-14s %-20s %-28s %s\n", u.ID, u.Name, u.Email, u.Role)
	}
	fmt.Fprintf(a.stdout, "page %d, %d users\n", p.Number, p.Total)
	return nil
}

func (a *app) adminMessages(ctx context.Context, args []string) error {
	fs := newFlags("admin messages", a.stderr)
	page := fs.Int("page", 1, "page number")
	search := fs.String("search", "", "search text")
	read := fs.String("read", "", "mark the message with this id as read")
	del := fs.String("delete", "", "delete the message with this id")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := parse(fs, args); err != nil {
		return err
	}

	v := admin.NewMessagesView(a.adminRepo, a.confirmer(*yes))
	defer v.Close()

	switch {
	case *read != "":
		if err := v.MarkRead(ctx, *read); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, "Marked as read.")
		return nil

	case *del != "":
		if err := v.Delete(ctx, *del); err != nil {
			return notConfirmed(a, err)
		}
		fmt.Fprintln(a.stdout, "Message deleted.")
		return nil
	}

	if err := openPage(ctx, v, *search, *page); err != nil {
		return err
	}

	p := v.View()
	for _, m := range p.Items {
		mark := "*"
		if m.Read {
			mark = " "
		}
		fmt.Fprintf(a.stdout, "%s %-14s %-20s %s\n", mark, m.ID, m.Email, m.Subject)
	}
	fmt.Fprintf(a.stdout, "page %d, %d messages\n", p.Number, p.Total)
	return nil
}

// notConfirmed turns a declined prompt into a quiet no-op.
func notConfirmed(a *app, err error) error {
	if errors.Is(err, admin.ErrNotConfirmed) {
		fmt.Fprintln(a.stdout, "Nothing changed.")
		return nil
	}
	return err
}
