package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
)

func initMessage() map[string]any {
	return map[string]any{"order": map[string]any{
		"items": []map[string]any{{"id": "I12", "quantity": map[string]any{"count": 2}}},
		"billing": map[string]any{
			"name":  "Asha Rao",
			"phone": "+919812345678",
			"email": "asha@example.com",
			"address": map[string]any{
				"building":  "221B",
				"street":    "Baker Street",
				"city":      "Bengaluru",
				"state":     "Karnataka",
				"area_code": "560038",
			},
		},
		"fulfillment": map[string]any{
			"end": map[string]any{
				"location": map[string]any{
					"gps":     "1.0,10.0",
					"address": map[string]any{"city": "Bengaluru", "area_code": "560038"},
				},
				"contact": map[string]any{"phone": "+919812345678"},
			},
		},
	}}
}

func TestInit_CreatesDraftOrderStampedWithTransaction(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			return groceryProduct(id, "100.00"), nil
		},
		CreateOrderFunc: func(ctx context.Context, in *platform.OrderInput) (*platform.Order, error) {
			o := pendingOrder(42)
			o.MetaData = in.MetaData
			return o, nil
		},
	}
	runner, sink := newHarness(t, stub)

	env := envelopeFor(t, "init", sink.URL(), "std:080", initMessage())
	outcome := runner.Init(context.Background(), env)

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	require.Len(t, stub.CreateOrderCalls, 1)
	in := stub.CreateOrderCalls[0]
	assert.Equal(t, "pending", in.Status)
	require.Len(t, in.LineItems, 1)
	assert.Equal(t, int64(12), in.LineItems[0].ProductID)
	assert.Equal(t, 2, in.LineItems[0].Quantity)

	tagged := false
	for _, m := range in.MetaData {
		if m.Key == order.MetaTransactionID && m.Value == env.Context.TransactionID {
			tagged = true
		}
	}
	assert.True(t, tagged, "created order must carry the transaction id tag")

	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/on_init", received[0].Path)
	got := decodeOrder(t, received[0])
	assert.Equal(t, "O42", got.ID)
	assert.Equal(t, order.StateCreated, got.State)
	require.NotNil(t, got.Quote)
	assert.Equal(t, "281.00", got.Quote.Price.Value)
	require.NotNil(t, got.Payment)
	assert.Equal(t, "NOT-PAID", got.Payment.Status)
}

func TestInit_ReplayReusesExistingOrder(t *testing.T) {
	stub := &testutil.PlatformStub{
		FindOrdersByMetaFunc: func(ctx context.Context, key, value string) ([]platform.Order, error) {
			return []platform.Order{*pendingOrder(42)}, nil
		},
	}
	runner, sink := newHarness(t, stub)

	env := envelopeFor(t, "init", sink.URL(), "std:080", initMessage())
	outcome := runner.Init(context.Background(), env)

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	assert.Empty(t, stub.CreateOrderCalls, "replayed init must not create a second order")
	require.Len(t, stub.MetaLookups, 1)
	assert.Equal(t, order.MetaTransactionID, stub.MetaLookups[0].Key)
	assert.Equal(t, env.Context.TransactionID, stub.MetaLookups[0].Value)

	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "O42", decodeOrder(t, received[0]).ID)
}

func TestInit_UnknownItemCreatesPlaceholderProduct(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			return nil, domainErrors.ErrProductNotFound
		},
		CreateProductFunc: func(ctx context.Context, in *platform.ProductInput) (*platform.Product, error) {
			return &platform.Product{ID: 77, Name: in.Name, SKU: in.SKU}, nil
		},
		CreateOrderFunc: func(ctx context.Context, in *platform.OrderInput) (*platform.Order, error) {
			return pendingOrder(43), nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Init(context.Background(), envelopeFor(t, "init", sink.URL(), "std:080", initMessage()))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	require.Len(t, stub.CreatedProducts, 1)
	assert.Equal(t, "ONDC-I12", stub.CreatedProducts[0].SKU)
	require.Len(t, stub.CreateOrderCalls, 1)
	assert.Equal(t, int64(77), stub.CreateOrderCalls[0].LineItems[0].ProductID)
	require.Len(t, sink.Received(), 1)
}

func TestInit_CreateFailureReportsError(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			return groceryProduct(id, "100.00"), nil
		},
		CreateOrderFunc: func(ctx context.Context, in *platform.OrderInput) (*platform.Order, error) {
			return nil, &platform.StatusError{StatusCode: 500, Body: "boom"}
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Init(context.Background(), envelopeFor(t, "init", sink.URL(), "std:080", initMessage()))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	assert.Len(t, stub.CreateOrderCalls, 2, "a 500 from the platform is retried before giving up")
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "50001", received[0].Error.Code)
}
