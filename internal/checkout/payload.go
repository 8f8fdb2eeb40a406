package checkout

import (
	"localmart/internal/cart"
	"localmart/internal/order"
	"localmart/internal/payment"
)

// BuildPayload copies the cart lines into an order request and prices it
// with the delivery speed chosen on the form.
func BuildPayload(f Form, snap cart.Snapshot) (order.PlaceRequest, cart.Totals) {
	f = f.normalized()
	totals := cart.ComputeTotals(snap, cart.PolicyFor(f.Speed))

	items := make([]order.Item, 0, len(snap))
	for _, li := range snap {
		items = append(items, order.Item{
			ProductID: li.ID,
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
		})
	}

	req := order.PlaceRequest{
		Address:       f.Address,
		PaymentMethod: f.PaymentMethod,
		Delivery:      f.Speed,
		Notes:         f.Notes,
		Items:         items,
		Subtotal:      totals.Subtotal.InexactFloat64(),
		Discount:      totals.Discount.InexactFloat64(),
		DeliveryFee:   totals.DeliveryFee.InexactFloat64(),
		Total:         totals.Total.InexactFloat64(),
	}
	if payment.Method(f.PaymentMethod).RequiresContact() {
		req.CustomerName = f.CustomerName
		req.ContactNumber = f.ContactNumber
	}
	return req, totals
}
