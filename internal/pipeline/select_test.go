package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
)

func selectMessage(items ...map[string]any) map[string]any {
	return map[string]any{"order": map[string]any{
		"items": items,
		"fulfillment": map[string]any{
			"end": map[string]any{
				"location": map[string]any{"gps": "1.0,10.0"},
			},
		},
	}}
}

func TestSelect_QuotesCartWithUnavailableItem(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			if id == 12 {
				return groceryProduct(12, "100.00"), nil
			}
			return nil, domainErrors.ErrProductNotFound
		},
	}
	runner, sink := newHarness(t, stub)

	msg := selectMessage(
		map[string]any{"id": "I12", "quantity": map[string]any{"count": 2}},
		map[string]any{"id": "I99", "quantity": map[string]any{"count": 1}},
	)
	outcome := runner.Select(context.Background(), envelopeFor(t, "select", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/on_select", received[0].Path)

	var out struct {
		Order struct {
			Items []struct {
				ID        string `json:"id"`
				Available bool   `json:"available"`
			} `json:"items"`
			Quote struct {
				Price struct {
					Value string `json:"value"`
				} `json:"price"`
				Breakup []struct {
					Title     string `json:"title"`
					TitleType string `json:"@ondc/org/title_type"`
					Price     struct {
						Value string `json:"value"`
					} `json:"price"`
				} `json:"breakup"`
			} `json:"quote"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(received[0].Message, &out))

	require.Len(t, out.Order.Items, 2)
	assert.True(t, out.Order.Items[0].Available)
	assert.False(t, out.Order.Items[1].Available, "unresolvable item must be marked unavailable, not fail the quote")

	// 200 items + 36 tax + 30 delivery (2km, under the free radius) + 15 packing.
	assert.Equal(t, "281.00", out.Order.Quote.Price.Value)

	byType := map[string]string{}
	for _, b := range out.Order.Quote.Breakup {
		byType[b.TitleType] = b.Price.Value
	}
	assert.Equal(t, "36.00", byType["tax"])
	assert.Equal(t, "30.00", byType["delivery"])
	assert.Equal(t, "15.00", byType["packing"])
}

func TestSelect_NoLocationUsesFlatDeliveryCharge(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			return groceryProduct(id, "50.00"), nil
		},
	}
	runner, sink := newHarness(t, stub)

	msg := map[string]any{"order": map[string]any{
		"items": []map[string]any{{"id": "I12", "quantity": map[string]any{"count": 1}}},
	}}
	outcome := runner.Select(context.Background(), envelopeFor(t, "select", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)

	order := struct {
		Order struct {
			Quote struct {
				Price struct {
					Value string `json:"value"`
				} `json:"price"`
			} `json:"quote"`
		} `json:"order"`
	}{}
	require.NoError(t, json.Unmarshal(received[0].Message, &order))
	// 50 + 9 tax + 40 flat delivery + 10 packing.
	assert.Equal(t, "109.00", order.Order.Quote.Price.Value)
}

func TestSelect_EmptyCartIsFinalFailure(t *testing.T) {
	runner, sink := newHarness(t, &testutil.PlatformStub{})

	msg := map[string]any{"order": map[string]any{"items": []map[string]any{}}}
	outcome := runner.Select(context.Background(), envelopeFor(t, "select", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "40002", received[0].Error.Code)
}

func TestSelect_PlatformOutageFailsPipeline(t *testing.T) {
	stub := &testutil.PlatformStub{
		GetProductFunc: func(ctx context.Context, id int64) (*platform.Product, error) {
			return nil, &platform.StatusError{StatusCode: 503, Body: "maintenance"}
		},
	}
	runner, sink := newHarness(t, stub)

	msg := selectMessage(map[string]any{"id": "I12", "quantity": map[string]any{"count": 1}})
	outcome := runner.Select(context.Background(), envelopeFor(t, "select", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeFailed, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	require.NotNil(t, received[0].Error)
	assert.Equal(t, "50001", received[0].Error.Code)
}
