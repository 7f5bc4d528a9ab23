package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
)

func TestUpdate_PatchesBillingAndDelivery(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetOrderFunc: func(ctx context.Context, id int64) (*platform.Order, error) {
			o := pendingOrder(id)
			o.Status = "processing"
			return o, nil
		},
		UpdateOrderFunc: func(ctx context.Context, id int64, patch *platform.OrderPatch) (*platform.Order, error) {
			o := pendingOrder(id)
			o.Status = "processing"
			if patch.Billing != nil {
				o.Billing = *patch.Billing
			}
			if patch.Shipping != nil {
				o.Shipping = *patch.Shipping
			}
			return o, nil
		},
	}
	runner, sink := newHarness(t, stub)

	msg := map[string]any{
		"order_id": "O15",
		"order": map[string]any{
			"billing": map[string]any{
				"name":  "Ravi Kumar",
				"phone": "+919900112233",
				"address": map[string]any{
					"building":  "14",
					"city":      "Bengaluru",
					"area_code": "560095",
				},
			},
			"fulfillments": []map[string]any{{
				"end": map[string]any{
					"location": map[string]any{
						"address": map[string]any{"name": "Ravi Kumar", "city": "Bengaluru", "area_code": "560095"},
					},
					"contact": map[string]any{"phone": "+919900112233"},
				},
			}},
		},
	}
	outcome := runner.Update(context.Background(), envelopeFor(t, "update", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	require.Len(t, stub.UpdateOrderCalls, 1)
	patch := stub.UpdateOrderCalls[0].Patch
	require.NotNil(t, patch.Billing)
	assert.Equal(t, "Ravi", patch.Billing.FirstName)
	assert.Equal(t, "Kumar", patch.Billing.LastName)
	assert.Equal(t, "560095", patch.Billing.Postcode)
	require.NotNil(t, patch.Shipping)
	assert.Equal(t, "560095", patch.Shipping.Postcode)
	assert.Empty(t, patch.Status, "update never changes the order status")

	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/on_update", received[0].Path)
}

func TestUpdate_TerminalOrderIsFinal(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetOrderFunc: func(ctx context.Context, id int64) (*platform.Order, error) {
			o := pendingOrder(id)
			o.Status = "completed"
			return o, nil
		},
	}
	runner, sink := newHarness(t, stub)

	msg := map[string]any{"order_id": "O15", "order": map[string]any{}}
	outcome := runner.Update(context.Background(), envelopeFor(t, "update", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	assert.Empty(t, stub.UpdateOrderCalls)
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
}

func TestUpdate_MissingOrderIDIsFinal(t *testing.T) {
	runner, sink := newHarness(t, &testutil.PlatformStub{})

	outcome := runner.Update(context.Background(), envelopeFor(t, "update", sink.URL(), "std:080", map[string]any{"order": map[string]any{}}))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "30004", received[0].Error.Code)
}
