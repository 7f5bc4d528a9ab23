package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
)

func TestStatus_ProjectsProcessingOrder(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetOrderFunc: func(ctx context.Context, id int64) (*platform.Order, error) {
			o := pendingOrder(id)
			o.Status = "processing"
			o.TotalTax = "36.00"
			o.ShippingTotal = "30.00"
			o.DatePaid = "2026-08-30T10:00:00"
			return o, nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Status(context.Background(), envelopeFor(t, "status", sink.URL(), "std:080", map[string]any{"order_id": "O15"}))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/on_status", received[0].Path)

	got := decodeOrder(t, received[0])
	assert.Equal(t, "O15", got.ID)
	assert.Equal(t, order.StateAccepted, got.State)
	require.Len(t, got.Fulfillments, 1)
	require.NotNil(t, got.Fulfillments[0].State)
	assert.Equal(t, order.FulfillmentPacked, got.Fulfillments[0].State.Descriptor.Code)
	require.NotNil(t, got.Quote)
	assert.Equal(t, "281.00", got.Quote.Price.Value)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "PAID", got.Payment.Status)
}

func TestStatus_ReportsRecordedCancellation(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetOrderFunc: func(ctx context.Context, id int64) (*platform.Order, error) {
			o := pendingOrder(id)
			o.Status = "cancelled"
			o.MetaData = []platform.Meta{
				{Key: order.MetaCancelReason, Value: "004"},
				{Key: order.MetaCancelDetail, Value: "ordered by mistake"},
			}
			return o, nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Status(context.Background(), envelopeFor(t, "status", sink.URL(), "std:080", map[string]any{"order_id": "O15"}))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	got := decodeOrder(t, sink.Received()[0])
	assert.Equal(t, order.StateCancelled, got.State)
	assert.Equal(t, "004", got.CancellationReasonID)
	require.NotNil(t, got.Cancellation)
	require.NotNil(t, got.Cancellation.Reason)
	assert.Equal(t, "ordered by mistake", got.Cancellation.Reason.Description)
}

func TestStatus_UnknownOrderIsFinal(t *testing.T) {
	runner, sink := newHarness(t, &testutil.PlatformStub{})

	outcome := runner.Status(context.Background(), envelopeFor(t, "status", sink.URL(), "std:080", map[string]any{"order_id": "O404"}))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "30004", received[0].Error.Code)
}

func TestStatus_MalformedOrderIDIsFinal(t *testing.T) {
	stub := &testutil.PlatformStub{}
	runner, sink := newHarness(t, stub)

	outcome := runner.Status(context.Background(), envelopeFor(t, "status", sink.URL(), "std:080", map[string]any{"order_id": "not-an-id"}))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	assert.Empty(t, stub.GetOrderCalls, "an unparseable id never reaches the platform")
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "30004", received[0].Error.Code)
}
