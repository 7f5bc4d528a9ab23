package pipeline

import (
	"strconv"

	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
)

const currencyINR = "INR"

// pricedItem is one picked item after resolution against the catalog.
type pricedItem struct {
	ItemID    string
	Name      string
	Quantity  int
	UnitPrice float64
	Weight    float64
	Special   bool
	Available bool
}

// buildQuote prices the picked items: item subtotal, GST, a delivery charge
// derived from the drop location and total weight, and a packing charge.
// Unavailable items appear in the breakup with a zero price so the
// counterparty can see what was dropped.
func buildQuote(items []pricedItem, delivery order.DeliveryInput) protocol.Quote {
	var subtotal float64
	var totalUnits int
	var totalWeight float64
	special := false

	breakup := make([]protocol.BreakupItem, 0, len(items)+3)
	for _, it := range items {
		line := 0.0
		if it.Available {
			line = it.UnitPrice * float64(it.Quantity)
			subtotal += line
			totalUnits += it.Quantity
			totalWeight += it.Weight * float64(it.Quantity)
			special = special || it.Special
		}
		qty := it.Quantity
		breakup = append(breakup, protocol.BreakupItem{
			ItemID:    it.ItemID,
			ItemQty:   &protocol.Quantity{Count: qty},
			Title:     it.Name,
			TitleType: "item",
			Price:     protocol.Price{Currency: currencyINR, Value: order.FormatAmount(line)},
		})
	}

	tax := subtotal * order.TaxRate
	delivery.TotalWeight = totalWeight
	deliveryCharge := order.DeliveryCharge(delivery)
	packingCharge := order.PackingCharge(totalUnits, special)

	breakup = append(breakup,
		protocol.BreakupItem{
			Title:     "Tax",
			TitleType: "tax",
			Price:     protocol.Price{Currency: currencyINR, Value: order.FormatAmount(tax)},
		},
		protocol.BreakupItem{
			Title:     "Delivery charges",
			TitleType: "delivery",
			Price:     protocol.Price{Currency: currencyINR, Value: order.FormatAmount(deliveryCharge)},
		},
		protocol.BreakupItem{
			Title:     "Packing charges",
			TitleType: "packing",
			Price:     protocol.Price{Currency: currencyINR, Value: order.FormatAmount(packingCharge)},
		},
	)

	total := subtotal + tax + deliveryCharge + packingCharge
	return protocol.Quote{
		Price:   protocol.Price{Currency: currencyINR, Value: order.FormatAmount(total)},
		Breakup: breakup,
		TTL:     "P1D",
	}
}

// parsePrice reads a platform money string; malformed values price as zero.
func parsePrice(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// deliveryInputFrom extracts the drop location from a fulfillment block.
func deliveryInputFrom(f *protocol.Fulfillment) order.DeliveryInput {
	var in order.DeliveryInput
	if f == nil || f.End == nil || f.End.Location == nil {
		return in
	}
	in.GPS = f.End.Location.GPS
	if f.End.Location.Address != nil {
		in.AreaCode = f.End.Location.Address.AreaCode
	}
	return in
}
