package order

// Protocol order states.
const (
	StateCreated    = "Created"
	StateAccepted   = "Accepted"
	StateInProgress = "In-progress"
	StateCompleted  = "Completed"
	StateCancelled  = "Cancelled"
)

// Protocol fulfillment states.
const (
	FulfillmentPending   = "Pending"
	FulfillmentPacked    = "Packed"
	FulfillmentDelivered = "Order-delivered"
	FulfillmentCancelled = "Cancelled"
)

var orderStates = map[string]string{
	"pending":    StateCreated,
	"processing": StateAccepted,
	"on-hold":    StateInProgress,
	"completed":  StateCompleted,
	"cancelled":  StateCancelled,
	"refunded":   StateCancelled,
	"failed":     StateCancelled,
	"trash":      StateCancelled,
}

var fulfillmentStates = map[string]string{
	"pending":    FulfillmentPending,
	"processing": FulfillmentPacked,
	"on-hold":    FulfillmentPending,
	"completed":  FulfillmentDelivered,
	"cancelled":  FulfillmentCancelled,
	"refunded":   FulfillmentCancelled,
	"failed":     FulfillmentCancelled,
	"trash":      FulfillmentCancelled,
}

// MapState converts a platform order status to the protocol order state.
// Unrecognized statuses fall back to Created.
func MapState(platformStatus string) string {
	if s, ok := orderStates[platformStatus]; ok {
		return s
	}
	return StateCreated
}

// MapFulfillmentState converts a platform order status to the protocol
// fulfillment state. Unrecognized statuses fall back to Pending.
func MapFulfillmentState(platformStatus string) string {
	if s, ok := fulfillmentStates[platformStatus]; ok {
		return s
	}
	return FulfillmentPending
}

// IsTerminalStatus reports whether the platform status admits no further
// transitions.
func IsTerminalStatus(platformStatus string) bool {
	switch platformStatus {
	case "cancelled", "refunded", "failed", "trash", "completed":
		return true
	}
	return false
}
