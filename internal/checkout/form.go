package checkout

import (
	"strings"

	"localmart/internal/cart"
	"localmart/internal/payment"
	"localmart/internal/validators"
)

// Form is what the shopper fills in on the checkout page.
type Form struct {
	Address       string
	PaymentMethod string
	CustomerName  string
	ContactNumber string
	Speed         string
	Notes         string
}

// Validate checks every field and returns validators.FieldErrors, or nil.
// Name and contact number are only required for cash on delivery.
func (f Form) Validate() error {
	errs := validators.FieldErrors{}

	if !validators.Required(f.Address) {
		errs.Add("address", "delivery address is required")
	}

	method, err := payment.ParseMethod(f.PaymentMethod)
	if err != nil {
		errs.Add("paymentMethod", "choose a payment method")
	}

	if err == nil && method.RequiresContact() {
		if !validators.Required(f.CustomerName) {
			errs.Add("customerName", "name is required for cash on delivery")
		}
		if !validators.Required(f.ContactNumber) {
			errs.Add("contactNumber", "contact number is required for cash on delivery")
		}
	}

	switch f.Speed {
	case "", cart.StandardDelivery.Name, cart.ExpressDelivery.Name:
	default:
		errs.Add("speed", "choose standard or express delivery")
	}

	return errs.Err()
}

func (f Form) normalized() Form {
	f.Address = strings.TrimSpace(f.Address)
	f.CustomerName = strings.TrimSpace(f.CustomerName)
	f.ContactNumber = strings.TrimSpace(f.ContactNumber)
	f.Notes = strings.TrimSpace(f.Notes)
	if f.Speed == "" {
		f.Speed = cart.StandardDelivery.Name
	}
	if m, err := payment.ParseMethod(f.PaymentMethod); err == nil {
		f.PaymentMethod = string(m)
	}
	return f
}
