package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/sync/errgroup"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// selectConcurrency caps parallel product lookups per select request.
const selectConcurrency = 4

// Select checks availability for every picked item in parallel and quotes
// the cart. Items that cannot be resolved or are out of stock come back
// marked unavailable rather than failing the whole selection.
func (r *Runner) Select(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.SelectMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed select order", codeCannotProcess, true, err)
		}
		if len(msg.Order.Items) == 0 {
			return nil, domainErrors.NewValidationError("no items selected", codeItemUnavailable, true, domainErrors.ErrItemUnavailable)
		}

		resolved := make([]pricedItem, len(msg.Order.Items))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(selectConcurrency)
		for i, it := range msg.Order.Items {
			i, it := i, it
			g.Go(func() error {
				p, err := r.resolveProduct(gctx, it.ID)
				if err != nil {
					if platform.IsNotFound(err) {
						resolved[i] = pricedItem{ItemID: it.ID, Name: it.ID, Quantity: it.Quantity.Count}
						return nil
					}
					return err
				}
				resolved[i] = pricedItemFrom(it.ID, it.Quantity.Count, p)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		serviceable := r.serviceable(msg.Order.Fulfillment)
		items := make([]protocol.SelectableItem, len(resolved))
		for i, it := range resolved {
			items[i] = protocol.SelectableItem{
				ID:            it.ItemID,
				Quantity:      protocol.Quantity{Count: it.Quantity},
				FulfillmentID: "F1",
				Available:     it.Available,
				Serviceable:   serviceable,
			}
		}

		quote := buildQuote(resolved, deliveryInputFrom(msg.Order.Fulfillment))
		return protocol.OnSelectMessage{Order: protocol.OnSelectOrder{
			Provider:    &protocol.Provider{ID: r.identity.BppID},
			Items:       items,
			Quote:       quote,
			Fulfillment: msg.Order.Fulfillment,
		}}, nil
	})
}

// serviceable reports whether the drop location is inside the store's
// delivery area. Without a configured store city or a stated drop city,
// everything is serviceable.
func (r *Runner) serviceable(f *protocol.Fulfillment) bool {
	if r.store.City == "" || f == nil || f.End == nil || f.End.Location == nil || f.End.Location.Address == nil {
		return true
	}
	city := f.End.Location.Address.City
	if city == "" {
		return true
	}
	return strings.EqualFold(city, r.store.City)
}
