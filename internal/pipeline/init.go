package pipeline

import (
	"context"
	"encoding/json"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// Init creates the draft platform order for the transaction. The create is
// idempotent on the transaction id: a redelivered init finds the order
// stamped with the same tag and answers from it instead of creating a
// duplicate.
func (r *Runner) Init(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.InitMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed init order", codeCannotProcess, true, err)
		}
		if len(msg.Order.Items) == 0 {
			return nil, domainErrors.NewValidationError("no items to initialize", codeItemUnavailable, true, domainErrors.ErrItemUnavailable)
		}

		existing, err := r.findByTransaction(ctx, env.Context.TransactionID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			log := r.actionLogger(env)
			log.Info().Int64("order_id", existing.ID).Msg("init replay, reusing existing order")
			return protocol.OrderMessage{Order: r.projectOrder(existing)}, nil
		}

		resolved := make([]pricedItem, 0, len(msg.Order.Items))
		lineItems := make([]platform.LineItem, 0, len(msg.Order.Items))
		for _, it := range msg.Order.Items {
			p, err := r.ensureProduct(ctx, it.ID)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, pricedItemFrom(it.ID, it.Quantity.Count, p))
			qty := it.Quantity.Count
			if qty <= 0 {
				qty = 1
			}
			lineItems = append(lineItems, platform.LineItem{ProductID: p.ID, Quantity: qty})
		}

		billing := msg.Order.Billing
		shipping := r.shippingAddress(msg.Order)

		input := &platform.OrderInput{
			Status:             "pending",
			PaymentMethod:      "ondc",
			PaymentMethodTitle: "ONDC Network",
			Billing:            platformAddress(billing.Name, billing.Address, billing.Email, billing.Phone),
			Shipping:           shipping,
			LineItems:          lineItems,
			MetaData: []platform.Meta{
				{Key: order.MetaTransactionID, Value: env.Context.TransactionID},
				{Key: order.MetaMessageID, Value: env.Context.MessageID},
				{Key: order.MetaOrderSource, Value: order.SourceONDC},
			},
		}

		created, err := call(ctx, r, "create_order", func(ctx context.Context) (*platform.Order, error) {
			return r.platform.CreateOrder(ctx, input)
		})
		if err != nil {
			return nil, err
		}

		projected := r.projectOrder(created)
		projected.Quote = quoteRef(buildQuote(resolved, deliveryInputFrom(msg.Order.Fulfillment)))
		if msg.Order.Fulfillment != nil {
			projected.Fulfillments[0].End = msg.Order.Fulfillment.End
		}
		return protocol.OrderMessage{Order: projected}, nil
	})
}

// findByTransaction looks for an order already stamped with the transaction
// id. No match is not an error.
func (r *Runner) findByTransaction(ctx context.Context, txnID string) (*platform.Order, error) {
	orders, err := call(ctx, r, "find_orders", func(ctx context.Context) ([]platform.Order, error) {
		return r.platform.FindOrdersByMeta(ctx, order.MetaTransactionID, txnID)
	})
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return &orders[0], nil
}

// ensureProduct resolves the item's platform product, creating a placeholder
// product under the prefixed SKU when the item is unknown to the catalog.
func (r *Runner) ensureProduct(ctx context.Context, itemID string) (*platform.Product, error) {
	p, err := r.resolveProduct(ctx, itemID)
	if err == nil {
		return p, nil
	}
	if !platform.IsNotFound(err) {
		return nil, err
	}

	input := &platform.ProductInput{
		Name:   "ONDC item " + itemID,
		Type:   "simple",
		SKU:    order.ProductSKU(itemID),
		Status: "publish",
		MetaData: []platform.Meta{
			{Key: order.MetaProductID, Value: itemID},
		},
	}
	return call(ctx, r, "create_product", func(ctx context.Context) (*platform.Product, error) {
		return r.platform.CreateProduct(ctx, input)
	})
}

func (r *Runner) shippingAddress(o protocol.InitOrder) platform.Address {
	if o.Fulfillment != nil && o.Fulfillment.End != nil && o.Fulfillment.End.Location != nil && o.Fulfillment.End.Location.Address != nil {
		addr := *o.Fulfillment.End.Location.Address
		phone, email := "", ""
		if o.Fulfillment.End.Contact != nil {
			phone = o.Fulfillment.End.Contact.Phone
			email = o.Fulfillment.End.Contact.Email
		}
		name := addr.Name
		if name == "" {
			name = o.Billing.Name
		}
		return platformAddress(name, addr, email, phone)
	}
	return platformAddress(o.Billing.Name, o.Billing.Address, o.Billing.Email, o.Billing.Phone)
}

func quoteRef(q protocol.Quote) *protocol.Quote {
	return &q
}
