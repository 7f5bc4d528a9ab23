package pipeline_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
)

func searchMessage() map[string]any {
	return map[string]any{"intent": map[string]any{}}
}

func TestSearch_HomeCityListsCatalog(t *testing.T) {
	stub := &testutil.PlatformStub{
		ListProductsFunc: func(ctx context.Context, f platform.ProductFilter) ([]platform.Product, error) {
			assert.Equal(t, "publish", f.Status)
			assert.Equal(t, "instock", f.StockStatus)
			return []platform.Product{*groceryProduct(12, "100.00"), *groceryProduct(13, "55.00")}, nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Search(context.Background(), envelopeFor(t, "search", sink.URL(), "std:080", searchMessage()))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	assert.Equal(t, "/on_search", received[0].Path)
	assert.Equal(t, "on_search", received[0].Context.Action)

	var msg struct {
		Catalog struct {
			Providers []struct {
				Items []struct {
					ID string `json:"id"`
				} `json:"items"`
			} `json:"bpp/providers"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(received[0].Message, &msg))
	require.Len(t, msg.Catalog.Providers, 1)
	assert.Len(t, msg.Catalog.Providers[0].Items, 2)
	assert.Equal(t, "I12", msg.Catalog.Providers[0].Items[0].ID)
}

func TestSearch_UnknownCityFallsBackToFullCatalog(t *testing.T) {
	stub := &testutil.PlatformStub{
		ListProductsFunc: func(ctx context.Context, f platform.ProductFilter) ([]platform.Product, error) {
			return []platform.Product{*groceryProduct(12, "100.00")}, nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Search(context.Background(), envelopeFor(t, "search", sink.URL(), "std:999", searchMessage()))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	require.Len(t, stub.ListProductsCalls, 1, "unrecognized city must see the unfiltered catalog")
}

func TestSearch_ForeignCityGetsEmptyProvider(t *testing.T) {
	stub := &testutil.PlatformStub{}
	runner, sink := newHarness(t, stub)

	outcome := runner.Search(context.Background(), envelopeFor(t, "search", sink.URL(), "std:022", searchMessage()))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	assert.Empty(t, stub.ListProductsCalls, "a city outside the delivery area must not hit the platform")

	received := sink.Received()
	require.Len(t, received, 1)
	var msg struct {
		Catalog struct {
			Providers []struct {
				Items []json.RawMessage `json:"items"`
			} `json:"bpp/providers"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(received[0].Message, &msg))
	require.Len(t, msg.Catalog.Providers, 1)
	assert.Empty(t, msg.Catalog.Providers[0].Items)
}

func TestSearch_CityTaggedProductsAreFiltered(t *testing.T) {
	elsewhere := *groceryProduct(14, "80.00")
	elsewhere.MetaData = []platform.Meta{{Key: "ondc_service_city", Value: "Mumbai"}}
	local := *groceryProduct(15, "60.00")
	local.Attributes = []platform.Attribute{{Name: "City", Options: []string{"Bengaluru"}}}
	stub := &testutil.PlatformStub{
		ListProductsFunc: func(ctx context.Context, f platform.ProductFilter) ([]platform.Product, error) {
			return []platform.Product{*groceryProduct(12, "100.00"), elsewhere, local}, nil
		},
	}
	runner, sink := newHarness(t, stub)

	outcome := runner.Search(context.Background(), envelopeFor(t, "search", sink.URL(), "std:080", searchMessage()))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	var out struct {
		Catalog struct {
			Providers []struct {
				Items []struct {
					ID string `json:"id"`
				} `json:"items"`
			} `json:"bpp/providers"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(received[0].Message, &out))
	require.Len(t, out.Catalog.Providers[0].Items, 2)
	assert.Equal(t, "I12", out.Catalog.Providers[0].Items[0].ID)
	assert.Equal(t, "I15", out.Catalog.Providers[0].Items[1].ID)
}

func TestSearch_IntentNameFilter(t *testing.T) {
	milk := platform.Product{ID: 20, Name: "Full Cream Milk 500ml", Price: "30.00", StockStatus: "instock"}
	stub := &testutil.PlatformStub{
		ListProductsFunc: func(ctx context.Context, f platform.ProductFilter) ([]platform.Product, error) {
			return []platform.Product{*groceryProduct(12, "100.00"), milk}, nil
		},
	}
	runner, sink := newHarness(t, stub)

	msg := map[string]any{"intent": map[string]any{"item": map[string]any{"descriptor": map[string]any{"name": "milk"}}}}
	outcome := runner.Search(context.Background(), envelopeFor(t, "search", sink.URL(), "std:080", msg))

	assert.Equal(t, pipeline.OutcomeDelivered, outcome)
	received := sink.Received()
	require.Len(t, received, 1)
	var out struct {
		Catalog struct {
			Providers []struct {
				Items []struct {
					ID string `json:"id"`
				} `json:"items"`
			} `json:"bpp/providers"`
		} `json:"catalog"`
	}
	require.NoError(t, json.Unmarshal(received[0].Message, &out))
	require.Len(t, out.Catalog.Providers[0].Items, 1)
	assert.Equal(t, "I20", out.Catalog.Providers[0].Items[0].ID)
}
