package pipeline

import (
	"context"
	"encoding/json"
	"time"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// Update applies billing and delivery changes to an open order. Orders in a
// terminal state reject the update as final.
func (r *Runner) Update(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.UpdateMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed update request", codeCannotProcess, true, err)
		}

		protocolID := msg.OrderID
		if protocolID == "" {
			protocolID = msg.Order.ID
		}
		if protocolID == "" {
			return nil, domainErrors.NewValidationError("update names no order", codeOrderNotFound, true, domainErrors.ErrOrderNotFound)
		}

		current, err := r.lookupOrder(ctx, protocolID)
		if err != nil {
			return nil, err
		}
		if order.IsTerminalStatus(current.Status) {
			return nil, domainErrors.NewValidationError(
				"order can no longer be updated", codeAlreadyCancelled, true, domainErrors.ErrOrderTerminal)
		}

		patch := updatePatch(msg.Order)
		updated, err := call(ctx, r, "update_order", func(ctx context.Context) (*platform.Order, error) {
			return r.platform.UpdateOrder(ctx, current.ID, patch)
		})
		if err != nil {
			return nil, err
		}
		return protocol.OrderMessage{Order: r.projectOrder(updated)}, nil
	})
}

func updatePatch(o protocol.UpdateOrder) *platform.OrderPatch {
	patch := &platform.OrderPatch{
		MetaData: []platform.Meta{
			{Key: order.MetaUpdatedAt, Value: time.Now().UTC().Format(time.RFC3339)},
		},
	}
	if o.Billing != nil {
		addr := platformAddress(o.Billing.Name, o.Billing.Address, o.Billing.Email, o.Billing.Phone)
		patch.Billing = &addr
	}
	for _, f := range o.Fulfillments {
		if f.End == nil || f.End.Location == nil || f.End.Location.Address == nil {
			continue
		}
		phone, email := "", ""
		if f.End.Contact != nil {
			phone = f.End.Contact.Phone
			email = f.End.Contact.Email
		}
		addr := platformAddress(f.End.Location.Address.Name, *f.End.Location.Address, email, phone)
		patch.Shipping = &addr
		break
	}
	if o.Cancellation != nil && o.Cancellation.Reason != nil {
		patch.MetaData = append(patch.MetaData,
			platform.Meta{Key: order.MetaCancelReason, Value: o.Cancellation.Reason.ID},
			platform.Meta{Key: order.MetaCancelDetail, Value: o.Cancellation.Reason.Description},
		)
	}
	return patch
}
