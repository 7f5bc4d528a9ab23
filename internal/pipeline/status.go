package pipeline

import (
	"context"
	"encoding/json"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/platform"
)

// Status projects the platform order into the protocol shape, including the
// quote as the platform priced it and any recorded cancellation.
func (r *Runner) Status(ctx context.Context, env protocol.Envelope) string {
	return r.run(ctx, env, func(ctx context.Context) (any, error) {
		var msg protocol.StatusMessage
		if err := json.Unmarshal(env.Message, &msg); err != nil {
			return nil, domainErrors.NewValidationError("malformed status request", codeCannotProcess, true, err)
		}

		o, err := r.lookupOrder(ctx, msg.OrderID)
		if err != nil {
			return nil, err
		}
		return protocol.OrderMessage{Order: r.projectOrder(o)}, nil
	})
}

// lookupOrder fetches the platform order behind a protocol order id.
// Unparseable and unknown ids are final failures.
func (r *Runner) lookupOrder(ctx context.Context, protocolID string) (*platform.Order, error) {
	id, err := order.ParseProtocolID(protocolID)
	if err != nil {
		return nil, domainErrors.NewValidationError("invalid order id", codeOrderNotFound, true, err)
	}
	o, err := call(ctx, r, "get_order", func(ctx context.Context) (*platform.Order, error) {
		return r.platform.GetOrder(ctx, id)
	})
	if err != nil {
		if platform.IsNotFound(err) {
			return nil, domainErrors.NewValidationError("order not found", codeOrderNotFound, true, err)
		}
		return nil, err
	}
	return o, nil
}
