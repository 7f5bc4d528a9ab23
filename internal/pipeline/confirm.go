package pipeline

import (
	"context"
	"encoding/json"
	"time"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/pkg/saga"
)

// CompensationReasonID is stamped on orders cancelled because the on_confirm
// callback could not be delivered. The buyer never learned the order was
// accepted, so acceptance is rolled back.
const CompensationReasonID = "998"

// Confirm accepts the draft order and reports acceptance to the buyer. The
// accept and the callback run as a saga: if the callback cannot be
// delivered after all retries, the acceptance is compensated by cancelling
// the order with the compensation reason.
func (r *Runner) Confirm(ctx context.Context, env protocol.Envelope) string {
	action := env.Context.Action
	start := time.Now()
	log := r.actionLogger(env)

	var msg protocol.ConfirmMessage
	if err := json.Unmarshal(env.Message, &msg); err != nil {
		return r.fail(ctx, env, log, start, domainErrors.NewValidationError("malformed confirm order", codeCannotProcess, true, err))
	}

	target, err := r.confirmTarget(ctx, env.Context.TransactionID, msg.Order.ID)
	if err != nil {
		return r.fail(ctx, env, log, start, err)
	}
	if order.MapState(target.Status) == order.StateCancelled {
		return r.fail(ctx, env, log, start, domainErrors.NewValidationError(
			"order is already cancelled", codeAlreadyCancelled, true, domainErrors.ErrOrderAlreadyCancelled))
	}

	// Replayed confirm: the order was already accepted, answer from it.
	if target.Meta(order.MetaConfirmed) == "yes" {
		log.Info().Int64("order_id", target.ID).Msg("confirm replay, order already accepted")
		payload := protocol.CallbackPayload{
			Context: env.Context.Callback(r.identity.BppID, r.identity.BppURI),
			Message: protocol.OrderMessage{Order: r.projectOrder(target)},
		}
		res := r.dispatcher.Deliver(ctx, env.Context.BapURI, action, payload)
		outcome := OutcomeDelivered
		if !res.Success {
			outcome = OutcomeAbandoned
		}
		r.finish(action, outcome, start)
		return outcome
	}

	var accepted *platform.Order
	flow := saga.New("confirm-order").
		AddStep(saga.Step{
			Name: "accept",
			Run: func(ctx context.Context) error {
				patch := &platform.OrderPatch{
					Status: "processing",
					MetaData: []platform.Meta{
						{Key: order.MetaConfirmed, Value: "yes"},
						{Key: order.MetaState, Value: order.StateAccepted},
					},
				}
				var err error
				accepted, err = call(ctx, r, "update_order", func(ctx context.Context) (*platform.Order, error) {
					return r.platform.UpdateOrder(ctx, target.ID, patch)
				})
				return err
			},
			Compensate: func(ctx context.Context) error {
				return r.compensateConfirm(ctx, target.ID)
			},
		}).
		AddStep(saga.Step{
			Name: "deliver",
			Run: func(ctx context.Context) error {
				payload := protocol.CallbackPayload{
					Context: env.Context.Callback(r.identity.BppID, r.identity.BppURI),
					Message: protocol.OrderMessage{Order: r.projectOrder(accepted)},
				}
				res := r.dispatcher.Deliver(ctx, env.Context.BapURI, action, payload)
				if !res.Success {
					return domainErrors.ErrCallbackFailed
				}
				return nil
			},
		})

	result, err := flow.Execute(ctx)
	if err == nil {
		r.finish(action, OutcomeDelivered, start)
		return OutcomeDelivered
	}

	// Accept itself failed: nothing was committed, report the failure.
	if result.FailedStep == 0 {
		return r.fail(ctx, env, log, start, err)
	}

	// Callback undeliverable: acceptance was rolled back via cancellation.
	compResult := "success"
	if result.CompensationErr != nil {
		compResult = "failure"
		compErr := domainErrors.NewCompensationError("cancel_order", result.CompensationErr)
		log.Error().Err(compErr).Int64("order_id", target.ID).Msg("confirm compensation failed, order left accepted")
	} else {
		log.Warn().Int64("order_id", target.ID).Str("reason", CompensationReasonID).Msg("confirm compensated, order cancelled")
	}
	if r.metrics != nil {
		r.metrics.Compensations.WithLabelValues(action, compResult).Inc()
	}
	r.finish(action, OutcomeCompensated, start)
	return OutcomeCompensated
}

// confirmTarget resolves the order being confirmed. A missing or unknown
// protocol order id falls back to the transaction id tag stamped at init.
func (r *Runner) confirmTarget(ctx context.Context, txnID, protocolID string) (*platform.Order, error) {
	if protocolID != "" {
		id, err := order.ParseProtocolID(protocolID)
		if err == nil {
			o, err := call(ctx, r, "get_order", func(ctx context.Context) (*platform.Order, error) {
				return r.platform.GetOrder(ctx, id)
			})
			if err == nil {
				return o, nil
			}
			if !platform.IsNotFound(err) {
				return nil, err
			}
		}
	}

	o, err := r.findByTransaction(ctx, txnID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domainErrors.NewValidationError(
			"no order found for transaction", codeOrderNotFound, true, domainErrors.ErrOrderNotFound)
	}
	return o, nil
}

func (r *Runner) compensateConfirm(ctx context.Context, orderID int64) error {
	patch := &platform.OrderPatch{
		Status: "cancelled",
		MetaData: []platform.Meta{
			{Key: order.MetaCancelReason, Value: CompensationReasonID},
			{Key: order.MetaCancelDetail, Value: "acceptance could not be communicated to the buyer"},
		},
	}
	_, err := callOnce(ctx, r, "cancel_order", func(ctx context.Context) (*platform.Order, error) {
		return r.platform.UpdateOrder(ctx, orderID, patch)
	})
	return err
}
