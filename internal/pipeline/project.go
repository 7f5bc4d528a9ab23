package pipeline

import (
	"strings"

	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// projectOrder maps a platform order into its protocol shape, deriving the
// order and fulfillment states from the platform status.
func (r *Runner) projectOrder(o *platform.Order) protocol.Order {
	items := make([]protocol.QuotedItem, 0, len(o.LineItems))
	for _, li := range o.LineItems {
		items = append(items, protocol.QuotedItem{
			ID:            catalogItemID(li.ProductID),
			FulfillmentID: "F1",
			Quantity:      protocol.Quantity{Count: li.Quantity},
			Price:         &protocol.Price{Currency: currencyINR, Value: li.Total},
		})
	}

	out := protocol.Order{
		ID:           order.ProtocolID(o.ID),
		State:        order.MapState(o.Status),
		Provider:     &protocol.Provider{ID: r.identity.BppID},
		Items:        items,
		Billing:      billingFromPlatform(o.Billing),
		Fulfillments: []protocol.Fulfillment{r.fulfillmentFor(o)},
		Quote:        quoteFromTotals(o),
		Payment:      paymentFor(o),
		CreatedAt:    o.DateCreated,
		UpdatedAt:    o.DateModified,
	}

	if reason := o.Meta(order.MetaCancelReason); reason != "" {
		out.CancellationReasonID = reason
		out.Cancellation = &protocol.Cancellation{
			Reason: &protocol.CancellationReason{ID: reason, Description: o.Meta(order.MetaCancelDetail)},
		}
	}
	return out
}

// quoteFromTotals reconstructs the quote from the platform's own totals
// rather than repricing the cart.
func quoteFromTotals(o *platform.Order) *protocol.Quote {
	breakup := make([]protocol.BreakupItem, 0, len(o.LineItems)+2)
	for _, li := range o.LineItems {
		breakup = append(breakup, protocol.BreakupItem{
			ItemID:    catalogItemID(li.ProductID),
			ItemQty:   &protocol.Quantity{Count: li.Quantity},
			Title:     li.Name,
			TitleType: "item",
			Price:     protocol.Price{Currency: currencyINR, Value: li.Total},
		})
	}
	if o.TotalTax != "" {
		breakup = append(breakup, protocol.BreakupItem{
			Title:     "Tax",
			TitleType: "tax",
			Price:     protocol.Price{Currency: currencyINR, Value: o.TotalTax},
		})
	}
	if o.ShippingTotal != "" {
		breakup = append(breakup, protocol.BreakupItem{
			Title:     "Delivery charges",
			TitleType: "delivery",
			Price:     protocol.Price{Currency: currencyINR, Value: o.ShippingTotal},
		})
	}
	return &protocol.Quote{
		Price:   protocol.Price{Currency: currencyINR, Value: o.Total},
		Breakup: breakup,
	}
}

func (r *Runner) fulfillmentFor(o *platform.Order) protocol.Fulfillment {
	f := protocol.Fulfillment{
		ID:       "F1",
		Type:     "Delivery",
		Tracking: true,
		State: &protocol.FulfillmentState{
			Descriptor: protocol.Descriptor{Code: order.MapFulfillmentState(o.Status)},
		},
		Start: r.storeStop(),
	}
	if o.Shipping.Address1 != "" || o.Shipping.City != "" {
		f.End = &protocol.FulfillmentStop{
			Location: &protocol.Location{Address: addressFromPlatform(o.Shipping)},
			Contact:  &protocol.Contact{Phone: o.Billing.Phone, Email: o.Billing.Email},
		}
	}
	return f
}

// storeStop is the pickup leg, projected from the configured store profile.
func (r *Runner) storeStop() *protocol.FulfillmentStop {
	return &protocol.FulfillmentStop{
		Location: &protocol.Location{
			GPS:        r.store.GPS,
			Descriptor: &protocol.Descriptor{Name: r.store.Name},
			Address: &protocol.Address{
				Locality: r.store.Locality,
				City:     r.store.City,
				State:    r.store.State,
				AreaCode: r.store.AreaCode,
			},
		},
		Contact: &protocol.Contact{Phone: r.store.Phone, Email: r.store.Email},
	}
}

func paymentFor(o *platform.Order) *protocol.Payment {
	status := "NOT-PAID"
	if o.DatePaid != "" {
		status = "PAID"
	}
	return &protocol.Payment{
		Type:        "ON-ORDER",
		Status:      status,
		CollectedBy: "BPP",
		Params: &protocol.PaymentParams{
			Currency:      currencyINR,
			Amount:        o.Total,
			TransactionID: o.TransactionID,
		},
	}
}

func billingFromPlatform(a platform.Address) *protocol.Billing {
	return &protocol.Billing{
		Name:    strings.TrimSpace(a.FirstName + " " + a.LastName),
		Address: *addressFromPlatform(a),
		Email:   a.Email,
		Phone:   a.Phone,
	}
}

func addressFromPlatform(a platform.Address) *protocol.Address {
	return &protocol.Address{
		Name:     strings.TrimSpace(a.FirstName + " " + a.LastName),
		Building: a.Address1,
		Street:   a.Address2,
		City:     a.City,
		State:    a.State,
		Country:  a.Country,
		AreaCode: a.Postcode,
	}
}

// platformAddress maps a protocol billing block onto the platform address
// shape, splitting the display name into first and last parts.
func platformAddress(name string, addr protocol.Address, email, phone string) platform.Address {
	first, last := splitName(name)
	return platform.Address{
		FirstName: first,
		LastName:  last,
		Address1:  strings.TrimSpace(addr.Building),
		Address2:  strings.TrimSpace(addr.Street + " " + addr.Locality),
		City:      addr.City,
		State:     addr.State,
		Postcode:  addr.AreaCode,
		Country:   addr.Country,
		Email:     email,
		Phone:     phone,
	}
}

func splitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
