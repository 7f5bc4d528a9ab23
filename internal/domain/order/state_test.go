package order_test

import (
	"testing"

	"github.com/commercebridge/ondc-adapter/internal/domain/order"
	"github.com/stretchr/testify/assert"
)

func TestMapState(t *testing.T) {
	cases := map[string]string{
		"pending":    "Created",
		"processing": "Accepted",
		"on-hold":    "In-progress",
		"completed":  "Completed",
		"cancelled":  "Cancelled",
		"refunded":   "Cancelled",
		"failed":     "Cancelled",
		"trash":      "Cancelled",
		"wc-custom":  "Created",
		"":           "Created",
	}
	for status, want := range cases {
		assert.Equal(t, want, order.MapState(status), "status %q", status)
	}
}

func TestMapFulfillmentState(t *testing.T) {
	cases := map[string]string{
		"pending":    "Pending",
		"processing": "Packed",
		"on-hold":    "Pending",
		"completed":  "Order-delivered",
		"cancelled":  "Cancelled",
		"unknown":    "Pending",
	}
	for status, want := range cases {
		assert.Equal(t, want, order.MapFulfillmentState(status), "status %q", status)
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, order.IsTerminalStatus("cancelled"))
	assert.True(t, order.IsTerminalStatus("completed"))
	assert.False(t, order.IsTerminalStatus("processing"))
	assert.False(t, order.IsTerminalStatus("pending"))
}

func TestParseProtocolID(t *testing.T) {
	id, err := order.ParseProtocolID("O15")
	assert.NoError(t, err)
	assert.Equal(t, int64(15), id)

	id, err = order.ParseProtocolID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = order.ParseProtocolID("not-an-id")
	assert.Error(t, err)
}

func TestProtocolID_RoundTrip(t *testing.T) {
	id, err := order.ParseProtocolID(order.ProtocolID(15))
	assert.NoError(t, err)
	assert.Equal(t, int64(15), id)
}

func TestMapCityCode(t *testing.T) {
	assert.Equal(t, "Bengaluru", order.MapCityCode("std:080"))
	assert.Equal(t, "Bengaluru", order.MapCityCode("std080"))
	assert.Equal(t, "Mumbai", order.MapCityCode("std:022"))
	assert.Equal(t, order.DefaultCity, order.MapCityCode("std:999"))
	assert.Equal(t, order.DefaultCity, order.MapCityCode(""))
}

func TestDeliveryCharge(t *testing.T) {
	// No location information: flat default.
	assert.Equal(t, 40.0, order.DeliveryCharge(order.DeliveryInput{}))

	// Close drop: base charge only.
	got := order.DeliveryCharge(order.DeliveryInput{GPS: "1.0,10.0"})
	assert.Equal(t, 30.0, got)

	// Heavy parcel adds the surcharge.
	heavy := order.DeliveryCharge(order.DeliveryInput{GPS: "1.0,10.0", TotalWeight: 6})
	assert.Equal(t, got+20.0, heavy)

	// Pincode heuristic keeps the charge positive.
	assert.Greater(t, order.DeliveryCharge(order.DeliveryInput{AreaCode: "560076"}), 0.0)
}

func TestPackingCharge(t *testing.T) {
	assert.Equal(t, 10.0, order.PackingCharge(1, false))
	assert.Equal(t, 20.0, order.PackingCharge(3, false))
	assert.Equal(t, 25.0, order.PackingCharge(1, true))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "40.00", order.FormatAmount(40))
	assert.Equal(t, "12.35", order.FormatAmount(12.345))
}
