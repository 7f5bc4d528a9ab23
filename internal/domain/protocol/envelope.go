package protocol

import "encoding/json"

// Envelope is the wire shape of every inbound transaction request. Message is
// left raw here; each action decodes its own payload after the envelope has
// passed structural validation at the gateway.
type Envelope struct {
	Context Context         `json:"context" validate:"required"`
	Message json.RawMessage `json:"message" validate:"required"`
}

// Ack statuses.
const (
	StatusACK  = "ACK"
	StatusNACK = "NACK"
)

type Ack struct {
	Status string `json:"status"`
}

type AckMessage struct {
	Ack Ack `json:"ack"`
}

// Error is the protocol error body attached to a NACK.
type Error struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AckResponse is the synchronous response to an inbound request.
type AckResponse struct {
	Message AckMessage `json:"message"`
	Error   *Error     `json:"error,omitempty"`
}

func NewAck() AckResponse {
	return AckResponse{Message: AckMessage{Ack: Ack{Status: StatusACK}}}
}

func NewNack(errType, code, message string) AckResponse {
	return AckResponse{
		Message: AckMessage{Ack: Ack{Status: StatusNACK}},
		Error:   &Error{Type: errType, Code: code, Message: message},
	}
}

// CallbackPayload is the body POSTed to the BAP's on_X endpoint. Error is
// set instead of Message when the asynchronous phase failed.
type CallbackPayload struct {
	Context Context `json:"context"`
	Message any     `json:"message,omitempty"`
	Error   *Error  `json:"error,omitempty"`
}
