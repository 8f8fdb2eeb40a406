package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"localmart/internal/address"
	"localmart/internal/booking"
	"localmart/internal/geo"
)

type bookingFlags struct {
	service   string
	date      string
	slot      string
	name      string
	email     string
	phone     string
	address   string
	street    string
	landmark  string
	area      string
	pincode   string
	notes     string
	addressID string
	locate    string
	yes       bool
	slots     bool
}

func (a *app) cmdBook(ctx context.Context, args []string) error {
	fs := newFlags("book", a.stderr)
	var bf bookingFlags
	fs.StringVar(&bf.service, "service", "", "service type: "+serviceNames())
	fs.StringVar(&bf.date, "date", "", "visit date, YYYY-MM-DD")
	fs.StringVar(&bf.slot, "slot", "", "time slot, HH:MM")
	fs.StringVar(&bf.name, "name", "", "contact name; defaults to your account")
	fs.StringVar(&bf.email, "email", "", "contact email; defaults to your account")
	fs.StringVar(&bf.phone, "phone", "", "contact phone; defaults to your account")
	fs.StringVar(&bf.address, "address", "", "full address")
	fs.StringVar(&bf.street, "street", "", "street")
	fs.StringVar(&bf.landmark, "landmark", "", "landmark")
	fs.StringVar(&bf.area, "area", "", "area")
	fs.StringVar(&bf.pincode, "pincode", "", "6-digit pincode")
	fs.StringVar(&bf.notes, "notes", "", "anything the technician should know")
	fs.StringVar(&bf.addressID, "address-id", "", "use a saved address")
	fs.StringVar(&bf.locate, "locate", "", "search the map and pin the first match")
	fs.BoolVar(&bf.yes, "yes", false, "book again without asking when a similar booking exists")
	fs.BoolVar(&bf.slots, "slots", false, "list the bookable time slots and exit")
	if err := parse(fs, args); err != nil {
		return err
	}

	if bf.slots {
		for _, s := range booking.TimeSlots() {
			fmt.Fprintf(a.stdout, "%s  %s\n", s, booking.SlotLabel(s))
		}
		return nil
	}

	flow := booking.NewFlow(a.booking, booking.WithUserSource(a.auth))
	if err := flow.Start(ctx); err != nil {
		return err
	}

	var saved *booking.Location
	if bf.addressID != "" {
		ad, err := a.addresses.Get(ctx, bf.addressID)
		if err != nil {
			return err
		}
		loc := address.ToBookingLocation(ad)
		saved = &loc
	}

	if err := flow.Edit(func(r *booking.Request) { bf.apply(r, saved) }); err != nil {
		return err
	}

	if bf.locate != "" {
		if err := a.locate(ctx, flow, bf.locate); err != nil {
			return err
		}
	}

	b, err := flow.Submit(ctx)
	if err != nil && flow.View().State == booking.StateDuplicateConflict {
		if !a.confirmer(bf.yes).Confirm(ctx, flow.View().Conflict) {
			_ = flow.CancelDuplicate()
			fmt.Fprintln(a.stdout, "Booking not sent.")
			return nil
		}
		b, err = flow.ConfirmDuplicate(ctx)
	}
	if err != nil {
		if banner := flow.View().Banner; banner != "" {
			return errors.New(banner)
		}
		return err
	}

	fmt.Fprintf(a.stdout, "Booked %s on %s at %s.\n", b.ServiceType.Label(), b.Date, booking.SlotLabel(b.TimeSlot))
	fmt.Fprintf(a.stdout, "Tracking id: %s\n", b.Tracking())
	return nil
}

// apply copies the given flags over the pre-filled draft. A saved address
// fills the location first; explicit location flags still win.
func (bf bookingFlags) apply(r *booking.Request, saved *booking.Location) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}

	set(&r.Name, bf.name)
	set(&r.Email, bf.email)
	set(&r.Phone, bf.phone)
	r.ServiceType = booking.ServiceType(bf.service)
	r.Date = bf.date
	r.TimeSlot = bf.slot
	r.Notes = bf.notes

	if saved != nil {
		r.Location = *saved
	}
	set(&r.Location.Address, bf.address)
	set(&r.Location.Street, bf.street)
	set(&r.Location.Landmark, bf.landmark)
	set(&r.Location.Area, bf.area)
	set(&r.Location.Pincode, bf.pincode)
}

// locate pins query on the map and hands the result to the booking form.
func (a *app) locate(ctx context.Context, flow *booking.Flow, query string) error {
	maps, err := geo.NewFromConfig(a.cfg)
	if err != nil {
		return err
	}

	picker := geo.NewPicker(maps, flow.SetLocation)
	defer picker.Close()

	if err := picker.Start(ctx); err != nil {
		if msg := picker.View().Message; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	if err := picker.Search(ctx, query); err != nil {
		if msg := picker.View().Message; msg != "" {
			return errors.New(msg)
		}
		return err
	}
	if err := picker.Confirm(); err != nil {
		return err
	}

	fmt.Fprintf(a.stdout, "Pinned %s\n", picker.View().Place)
	return nil
}

func (a *app) cmdBookings(ctx context.Context, args []string) error {
	fs := newFlags("bookings", a.stderr)
	page := fs.Int("page", 1, "page number")
	cancel := fs.String("cancel", "", "cancel the booking with this id")
	if err := parse(fs, args); err != nil {
		return err
	}

	if *cancel != "" {
		b, err := a.bookings.Cancel(ctx, *cancel)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Booking %s is now %s.\n", b.Tracking(), b.Status)
		return nil
	}

	list, err := a.bookings.ListMine(ctx, booking.ListQuery{Page: *page})
	if err != nil {
		return err
	}
	if len(list.Items) == 0 {
		fmt.Fprintln(a.stdout, "No bookings yet.")
		return nil
	}
	for _, b := range list.Items {
		fmt.Fprintf(a.stdout, "%-14s %-18s %s %-9s %s\n",
			b.Tracking(), b.ServiceType.Label(), b.Date, booking.SlotLabel(b.TimeSlot), b.Status)
	}
	return nil
}

func serviceNames() string {
	types := booking.ServiceTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
