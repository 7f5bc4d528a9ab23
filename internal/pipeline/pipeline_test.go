package pipeline_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/commercebridge/ondc-adapter/internal/callback"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/config"
	"github.com/commercebridge/ondc-adapter/internal/pipeline"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/internal/testutil"
	"github.com/commercebridge/ondc-adapter/pkg/retry"
)

func newHarness(t *testing.T, stub *testutil.PlatformStub) (*pipeline.Runner, *testutil.CallbackSink) {
	t.Helper()
	sink := testutil.NewCallbackSink()
	t.Cleanup(sink.Close)

	policy := retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2.0}
	dispatcher := callback.NewDispatcher(policy, time.Second, zerolog.Nop(), nil)

	runner := pipeline.NewRunner(pipeline.Deps{
		Platform:   stub,
		Dispatcher: dispatcher,
		Identity: config.ONDCConfig{
			BppID:  "bridge.example.com",
			BppURI: "https://bridge.example.com",
		},
		Store: config.StoreConfig{
			Name:     "Corner Grocery",
			GPS:      "12.97,77.59",
			Locality: "Indiranagar",
			City:     "Bengaluru",
			State:    "Karnataka",
			AreaCode: "560038",
			Phone:    "+918012345678",
			Email:    "store@example.com",
		},
		Retry:  retry.Config{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 5 * time.Millisecond, Multiplier: 2.0},
		Logger: zerolog.Nop(),
	})
	return runner, sink
}

func envelopeFor(t *testing.T, action, bapURI, city string, message any) protocol.Envelope {
	t.Helper()
	raw, err := json.Marshal(message)
	require.NoError(t, err)
	return protocol.Envelope{
		Context: protocol.Context{
			Domain:        "ONDC:RET10",
			Country:       "IND",
			City:          city,
			Action:        action,
			CoreVersion:   "1.2.0",
			BapID:         "buyer.example.com",
			BapURI:        bapURI,
			TransactionID: "txn-" + action,
			MessageID:     uuid.NewString(),
			Timestamp:     time.Now().UTC(),
		},
		Message: raw,
	}
}

func decodeOrder(t *testing.T, cb testutil.ReceivedCallback) protocol.Order {
	t.Helper()
	var msg protocol.OrderMessage
	require.NoError(t, json.Unmarshal(cb.Message, &msg))
	return msg.Order
}

func groceryProduct(id int64, price string) *platform.Product {
	return &platform.Product{
		ID:           id,
		Name:         "Basmati Rice 1kg",
		SKU:          "RICE-1KG",
		Status:       "publish",
		Price:        price,
		RegularPrice: price,
		StockStatus:  "instock",
	}
}

func pendingOrder(id int64) *platform.Order {
	return &platform.Order{
		ID:       id,
		Status:   "pending",
		Currency: "INR",
		Total:    "281.00",
		LineItems: []platform.LineItem{
			{ID: 1, ProductID: 12, Name: "Basmati Rice 1kg", Quantity: 2, Total: "200.00"},
		},
		Billing: platform.Address{
			FirstName: "Asha",
			LastName:  "Rao",
			City:      "Bengaluru",
			Postcode:  "560038",
			Phone:     "+919812345678",
			Email:     "asha@example.com",
		},
	}
}
