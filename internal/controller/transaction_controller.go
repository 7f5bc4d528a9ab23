package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/observability"
)

// pipelineTimeout bounds one asynchronous pipeline from ACK to terminal
// state, including all platform retries and callback attempts.
const pipelineTimeout = 5 * time.Minute

// ActionRunner executes the asynchronous phase of one transaction action
// and returns its terminal state.
type ActionRunner interface {
	Search(ctx context.Context, env protocol.Envelope) string
	Select(ctx context.Context, env protocol.Envelope) string
	Init(ctx context.Context, env protocol.Envelope) string
	Confirm(ctx context.Context, env protocol.Envelope) string
	Status(ctx context.Context, env protocol.Envelope) string
	Update(ctx context.Context, env protocol.Envelope) string
	Cancel(ctx context.Context, env protocol.Envelope) string
}

// TransactionController is the inbound gateway: it validates the envelope,
// answers ACK or NACK synchronously, and schedules the pipeline. The ACK is
// written before the pipeline is scheduled; no platform call happens on the
// request path.
type TransactionController struct {
	runner   ActionRunner
	logger   zerolog.Logger
	metrics  *observability.Metrics
	schedule func(fn func())
}

func NewTransactionController(runner ActionRunner, logger zerolog.Logger, metrics *observability.Metrics) *TransactionController {
	return &TransactionController{
		runner:   runner,
		logger:   logger.With().Str("component", "gateway").Logger(),
		metrics:  metrics,
		schedule: func(fn func()) { go fn() },
	}
}

func (c *TransactionController) Search(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "search", c.runner.Search)
}

func (c *TransactionController) Select(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "select", c.runner.Select)
}

func (c *TransactionController) Init(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "init", c.runner.Init)
}

func (c *TransactionController) Confirm(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "confirm", c.runner.Confirm)
}

func (c *TransactionController) Status(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "status", c.runner.Status)
}

func (c *TransactionController) Update(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "update", c.runner.Update)
}

func (c *TransactionController) Cancel(w http.ResponseWriter, r *http.Request) {
	c.handle(w, r, "cancel", c.runner.Cancel)
}

func (c *TransactionController) handle(w http.ResponseWriter, r *http.Request, action string, run func(context.Context, protocol.Envelope) string) {
	env, err := decodeEnvelope(r)
	if err != nil {
		c.nack(w, action, err.Error())
		return
	}
	if env.Context.Action != action {
		c.nackContext(w, action, "context.action does not match endpoint")
		return
	}

	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(action, protocol.StatusACK).Inc()
	}
	c.logger.Info().
		Str("action", action).
		Str("txn_id", env.Context.TransactionID).
		Str("message_id", env.Context.MessageID).
		Str("bap_id", env.Context.BapID).
		Msg("request acknowledged")
	writeAck(w)

	// The request context dies with the response; the pipeline gets its own.
	c.schedule(func() {
		ctx, cancel := context.WithTimeout(context.Background(), pipelineTimeout)
		defer cancel()
		run(ctx, env)
	})
}

func (c *TransactionController) nack(w http.ResponseWriter, action, message string) {
	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(action, protocol.StatusNACK).Inc()
	}
	c.logger.Warn().Str("action", action).Str("reason", message).Msg("request rejected")
	writeNack(w, http.StatusBadRequest, nackTypeSchema, nackCodeSchema, message)
}

func (c *TransactionController) nackContext(w http.ResponseWriter, action, message string) {
	if c.metrics != nil {
		c.metrics.RequestsTotal.WithLabelValues(action, protocol.StatusNACK).Inc()
	}
	c.logger.Warn().Str("action", action).Str("reason", message).Msg("request rejected")
	writeNack(w, http.StatusBadRequest, nackTypeContext, nackCodeContext, message)
}
