package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
)

var validate = validator.New()

// maxBodyBytes caps inbound request bodies. Catalog-sized payloads flow the
// other way; inbound actions are small.
const maxBodyBytes = 1 << 20

// NACK error taxonomy for synchronous rejections.
const (
	nackTypeSchema  = "JSON-SCHEMA-ERROR"
	nackTypeContext = "CONTEXT-ERROR"
	nackTypeCore    = "CORE-ERROR"
	nackCodeSchema  = "40000"
	nackCodeContext = "30016"
	nackCodeCore    = "50001"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeAck(w http.ResponseWriter) {
	writeJSON(w, http.StatusAccepted, protocol.NewAck())
}

func writeNack(w http.ResponseWriter, status int, errType, code, message string) {
	writeJSON(w, status, protocol.NewNack(errType, code, message))
}

// decodeEnvelope reads and structurally validates an inbound transaction
// request. Failures are StructuralErrors: the caller NACKs synchronously
// and no pipeline runs.
func decodeEnvelope(r *http.Request) (protocol.Envelope, error) {
	var env protocol.Envelope

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return env, domainErrors.NewStructuralError("body", "unreadable request body")
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return env, domainErrors.NewStructuralError("body", "invalid JSON: "+err.Error())
	}
	if len(env.Message) == 0 || string(env.Message) == "null" {
		return env, domainErrors.NewStructuralError("message", domainErrors.ErrMissingMessage.Error())
	}
	if err := validate.Struct(env.Context); err != nil {
		if ve, ok := err.(validator.ValidationErrors); ok && len(ve) > 0 {
			return env, domainErrors.NewStructuralError("context."+ve[0].Field(), ve[0].Tag()+" validation failed")
		}
		return env, domainErrors.NewStructuralError("context", err.Error())
	}
	return env, nil
}
