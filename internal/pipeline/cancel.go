package pipeline

import (
	"context"
	"encoding/json"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// Buyer-side cancellation reason codes accepted on inbound cancel requests.
// The compensation reason is internal and never accepted from the wire.
var permittedCancelReasons = map[string]struct{}{
	"001": {}, "002": {}, "003": {}, "004": {}, "005": {},
	"006": {}, "007": {}, "008": {}, "009": {}, "010": {},
	"011": {}, "012": {}, "013": {},
}

// Cancel cancels an order or a single fulfillment. A descriptor with a
// short_desc scopes the cancellation to that fulfillment and leaves the
// order state untouched; without one the whole order is cancelled.
func (r *Runner) Cancel(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.CancelMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed cancel request", codeCannotProcess, true, err)
		}
		if _, ok := permittedCancelReasons[msg.CancellationReasonID]; !ok {
			return nil, domainErrors.NewValidationError(
				"cancellation reason not permitted", codeInvalidReason, true, domainErrors.ErrInvalidCancellationReason)
		}

		current, err := r.lookupOrder(ctx, msg.OrderID)
		if err != nil {
			return nil, err
		}
		if order.MapState(current.Status) == order.StateCancelled {
			return nil, domainErrors.NewValidationError(
				"order is already cancelled", codeAlreadyCancelled, true, domainErrors.ErrOrderAlreadyCancelled)
		}

		fulfillmentID := ""
		if msg.Descriptor != nil {
			fulfillmentID = msg.Descriptor.ShortDesc
		}

		cancelled, err := r.applyCancel(ctx, env, current.ID, msg, fulfillmentID)
		if err != nil {
			return nil, err
		}

		projected := r.projectOrder(cancelled)
		projected.CancellationReasonID = msg.CancellationReasonID
		projected.Cancellation = &protocol.Cancellation{
			CancelledBy: env.Context.BapID,
			Reason:      &protocol.CancellationReason{ID: msg.CancellationReasonID, Description: cancelDetail(msg)},
		}
		if fulfillmentID != "" {
			for i := range projected.Fulfillments {
				if projected.Fulfillments[i].ID == fulfillmentID {
					projected.Fulfillments[i].State = &protocol.FulfillmentState{
						Descriptor: protocol.Descriptor{Code: order.FulfillmentCancelled},
					}
				}
			}
		}
		return protocol.OrderMessage{Order: projected}, nil
	})
}

// applyCancel writes the cancellation to the platform. If the requested
// patch cannot be applied after retries, a bare status cancel is attempted
// before giving up: leaving the order live after the buyer asked to cancel
// is the worst outcome.
func (r *Runner) applyCancel(ctx context.Context, env protocol.Envelope, orderID int64, msg protocol.CancelMessage, fulfillmentID string) (*platform.Order, error) {
	patch := &platform.OrderPatch{
		MetaData: []platform.Meta{
			{Key: order.MetaCancelReason, Value: msg.CancellationReasonID},
			{Key: order.MetaCancelDetail, Value: cancelDetail(msg)},
		},
	}
	if fulfillmentID != "" {
		patch.MetaData = append(patch.MetaData, platform.Meta{Key: order.MetaFulfillmentID, Value: fulfillmentID})
	} else {
		patch.Status = "cancelled"
	}

	cancelled, err := call(ctx, r, "cancel_order", func(ctx context.Context) (*platform.Order, error) {
		return r.platform.UpdateOrder(ctx, orderID, patch)
	})
	if err == nil {
		return cancelled, nil
	}
	if platform.IsNotFound(err) {
		return nil, domainErrors.NewValidationError("order not found", codeOrderNotFound, true, err)
	}

	log := r.actionLogger(env)
	log.Warn().Err(err).Int64("order_id", orderID).Msg("cancel patch failed, falling back to bare status cancel")

	fallback := &platform.OrderPatch{Status: "cancelled"}
	cancelled, fbErr := callOnce(ctx, r, "cancel_order", func(ctx context.Context) (*platform.Order, error) {
		return r.platform.UpdateOrder(ctx, orderID, fallback)
	})
	if fbErr != nil {
		compErr := domainErrors.NewCompensationError("fallback_cancel", fbErr)
		log.Error().Err(compErr).Int64("order_id", orderID).Msg("fallback cancellation failed, order left live")
		if r.metrics != nil {
			r.metrics.Compensations.WithLabelValues(env.Context.Action, "failure").Inc()
		}
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.Compensations.WithLabelValues(env.Context.Action, "success").Inc()
	}
	return cancelled, nil
}

func cancelDetail(msg protocol.CancelMessage) string {
	if msg.Descriptor == nil {
		return ""
	}
	if msg.Descriptor.LongDesc != "" {
		return msg.Descriptor.LongDesc
	}
	return msg.Descriptor.Name
}
