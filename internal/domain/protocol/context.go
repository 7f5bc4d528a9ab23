package protocol

import "time"

// Context is the immutable per-request identity carried on every message.
// TransactionID correlates the whole asynchronous flow; MessageID
// distinguishes retried deliveries of the same transaction.
type Context struct {
	Domain        string    `json:"domain" validate:"required"`
	Country       string    `json:"country"`
	City          string    `json:"city"`
	Action        string    `json:"action" validate:"required"`
	CoreVersion   string    `json:"core_version"`
	BapID         string    `json:"bap_id" validate:"required"`
	BapURI        string    `json:"bap_uri" validate:"required,url"`
	BppID         string    `json:"bpp_id"`
	BppURI        string    `json:"bpp_uri"`
	TransactionID string    `json:"transaction_id" validate:"required"`
	MessageID     string    `json:"message_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp"`
}

// Callback returns the context for the outbound on_X message: same
// transaction and message ids, action rewritten to the on_ form, our own
// identity filled in and the timestamp refreshed.
func (c Context) Callback(bppID, bppURI string) Context {
	out := c
	out.Action = "on_" + c.Action
	out.BppID = bppID
	out.BppURI = bppURI
	out.Timestamp = time.Now().UTC()
	return out
}
