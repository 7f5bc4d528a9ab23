package controller

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/callback"
	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/config"
)

// WebhookController accepts deferred on_init payloads from the commerce
// platform's own webhook machinery and relays them to the buyer app through
// the dispatcher. Unlike the transaction gateway the delivery happens on
// the request path: the caller wants to know whether the relay worked.
type WebhookController struct {
	dispatcher *callback.Dispatcher
	identity   config.ONDCConfig
	logger     zerolog.Logger
}

func NewWebhookController(dispatcher *callback.Dispatcher, identity config.ONDCConfig, logger zerolog.Logger) *WebhookController {
	return &WebhookController{
		dispatcher: dispatcher,
		identity:   identity,
		logger:     logger.With().Str("component", "webhook").Logger(),
	}
}

type webhookPayload struct {
	Context protocol.Context `json:"context"`
	Message json.RawMessage  `json:"message"`
}

func (c *WebhookController) OnInit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeNack(w, http.StatusBadRequest, nackTypeSchema, nackCodeSchema, "unreadable request body")
		return
	}
	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		writeNack(w, http.StatusBadRequest, nackTypeSchema, nackCodeSchema, "invalid JSON: "+err.Error())
		return
	}
	if payload.Context.BapURI == "" || payload.Context.TransactionID == "" {
		writeNack(w, http.StatusBadRequest, nackTypeContext, nackCodeContext, domainErrors.ErrMissingContext.Error())
		return
	}
	if len(payload.Message) == 0 {
		writeNack(w, http.StatusBadRequest, nackTypeSchema, nackCodeSchema, domainErrors.ErrMissingMessage.Error())
		return
	}

	mctx := payload.Context
	if mctx.MessageID == "" {
		mctx.MessageID = uuid.NewString()
	}
	if mctx.Action == "" || mctx.Action == "on_init" {
		mctx.Action = "init"
	}
	out := protocol.CallbackPayload{
		Context: mctx.Callback(c.identity.BppID, c.identity.BppURI),
		Message: payload.Message,
	}

	res := c.dispatcher.Deliver(r.Context(), mctx.BapURI, mctx.Action, out)
	if !res.Success {
		c.logger.Error().Err(res.LastError).
			Str("txn_id", mctx.TransactionID).
			Int("attempts", res.Attempts).
			Msg("webhook relay failed")
		writeNack(w, http.StatusBadGateway, nackTypeCore, nackCodeCore, "callback delivery failed")
		return
	}

	c.logger.Info().Str("txn_id", mctx.TransactionID).Msg("webhook relayed")
	writeJSON(w, http.StatusOK, protocol.NewAck())
}
