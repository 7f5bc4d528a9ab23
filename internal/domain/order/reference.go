package order

import (
	"fmt"
	"strconv"
	"strings"
)

// Meta keys stamped on platform orders. The transaction id tag is the
// correlation key the protocol relies on for idempotent lookup.
const (
	MetaTransactionID  = "ondc_transaction_id"
	MetaMessageID      = "ondc_message_id"
	MetaOrderSource    = "order_source"
	MetaConfirmed      = "ondc_confirmed"
	MetaState          = "ondc_state"
	MetaCancelReason   = "ondc_cancellation_reason"
	MetaCancelDetail   = "ondc_cancellation_description"
	MetaFulfillmentID  = "ondc_cancelled_fulfillment"
	MetaUpdatedAt      = "ondc_updated_at"
	SourceONDC         = "ONDC"
	ProductSKUPrefix   = "ONDC-"
	MetaProductID      = "ondc_product_id"
	MetaSpecialPacking = "ondc_special_packaging"
	MetaServiceCity    = "ondc_service_city"
)

// Reference maps between a protocol-visible order id and the platform's
// numeric order id. Protocol ids may carry an "O" prefix.
type Reference struct {
	ProtocolID string
	PlatformID int64
}

// ParseProtocolID resolves a protocol order id to the platform order id,
// trimming the optional "O" prefix.
func ParseProtocolID(protocolID string) (int64, error) {
	trimmed := strings.TrimPrefix(protocolID, "O")
	id, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid order id %q: %w", protocolID, err)
	}
	return id, nil
}

// ProtocolID renders a platform order id in the protocol form.
func ProtocolID(platformID int64) string {
	return fmt.Sprintf("O%d", platformID)
}

// ProductSKU returns the platform SKU used for protocol catalog items.
func ProductSKU(itemID string) string {
	return ProductSKUPrefix + itemID
}

// ItemProductID strips a leading alphabetic prefix (e.g. "I12" -> "12") so
// protocol item ids can address platform products directly.
func ItemProductID(itemID string) string {
	return strings.TrimLeft(itemID, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
}
