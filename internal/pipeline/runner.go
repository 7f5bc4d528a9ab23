package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/callback"
	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/config"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/observability"
	"github.com/commercebridge/ondc-adapter/internal/platform"
	"github.com/commercebridge/ondc-adapter/pkg/retry"
)

// Pipeline terminal states, recorded per action.
const (
	OutcomeDelivered   = "delivered"
	OutcomeFailed      = "failed"
	OutcomeAbandoned   = "abandoned"
	OutcomeCompensated = "compensated_cancel"
)

// Protocol error bodies attached to failed callbacks.
const (
	errTypeDomain = "DOMAIN-ERROR"
	errTypeCore   = "CORE-ERROR"

	codeOrderNotFound    = "30004"
	codeItemUnavailable  = "40002"
	codeAlreadyCancelled = "22505"
	codeInvalidReason    = "22502"
	codeCannotProcess    = "50001"
)

// Deps is everything a pipeline needs beyond the inbound envelope.
type Deps struct {
	Platform   platform.Client
	Dispatcher *callback.Dispatcher
	Identity   config.ONDCConfig
	Store      config.StoreConfig
	Retry      retry.Config
	Logger     zerolog.Logger
	Metrics    *observability.Metrics
}

// Runner executes the asynchronous phase of every action: decode the
// message, run domain preconditions, call the platform under retry, then
// deliver the on_X callback. The synchronous ACK has already been sent by
// the time a Runner method is entered.
type Runner struct {
	platform   platform.Client
	dispatcher *callback.Dispatcher
	identity   config.ONDCConfig
	store      config.StoreConfig
	retry      retry.Config
	logger     zerolog.Logger
	metrics    *observability.Metrics
}

func NewRunner(d Deps) *Runner {
	return &Runner{
		platform:   d.Platform,
		dispatcher: d.Dispatcher,
		identity:   d.Identity,
		store:      d.Store,
		retry:      d.Retry,
		logger:     d.Logger.With().Str("component", "pipeline").Logger(),
		metrics:    d.Metrics,
	}
}

// run drives a build-then-deliver pipeline and returns the terminal state.
// build returns the on_X message body; any error it returns is classified
// and reported to the counterparty as an error callback.
func (r *Runner) run(ctx context.Context, env protocol.Envelope, build func(context.Context) (any, error)) string {
	action := env.Context.Action
	start := time.Now()
	log := r.actionLogger(env)

	msg, err := build(ctx)
	if err != nil {
		return r.fail(ctx, env, log, start, err)
	}

	payload := protocol.CallbackPayload{
		Context: env.Context.Callback(r.identity.BppID, r.identity.BppURI),
		Message: msg,
	}
	res := r.dispatcher.Deliver(ctx, env.Context.BapURI, action, payload)

	outcome := OutcomeDelivered
	if !res.Success {
		outcome = OutcomeAbandoned
		log.Error().Err(res.LastError).Int("attempts", res.Attempts).Msg("pipeline abandoned, callback undeliverable")
	}
	r.finish(action, outcome, start)
	return outcome
}

// fail reports a failed pipeline to the counterparty and records metrics.
func (r *Runner) fail(ctx context.Context, env protocol.Envelope, log zerolog.Logger, start time.Time, err error) string {
	action := env.Context.Action
	final := domainErrors.IsFinal(err)

	if r.metrics != nil {
		finalLabel := "false"
		if final {
			finalLabel = "true"
		}
		r.metrics.ValidationFailures.WithLabelValues(action, finalLabel).Inc()
	}
	log.Error().Err(err).Bool("final", final).Msg("pipeline failed")

	payload := protocol.CallbackPayload{
		Context: env.Context.Callback(r.identity.BppID, r.identity.BppURI),
		Error:   classifyError(err),
	}
	r.dispatcher.Deliver(ctx, env.Context.BapURI, action, payload)

	r.finish(action, OutcomeFailed, start)
	return OutcomeFailed
}

func (r *Runner) finish(action, outcome string, start time.Time) {
	if r.metrics == nil {
		return
	}
	r.metrics.PipelineOutcomes.WithLabelValues(action, outcome).Inc()
	r.metrics.PipelineDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
}

func (r *Runner) actionLogger(env protocol.Envelope) zerolog.Logger {
	return r.logger.With().
		Str("action", env.Context.Action).
		Str("txn_id", env.Context.TransactionID).
		Str("message_id", env.Context.MessageID).
		Logger()
}

// classifyError converts a pipeline failure into the protocol error body.
func classifyError(err error) *protocol.Error {
	var ve *domainErrors.ValidationError
	if errors.As(err, &ve) {
		return &protocol.Error{Type: errTypeDomain, Code: ve.Code, Message: ve.Reason}
	}
	return &protocol.Error{Type: errTypeCore, Code: codeCannotProcess, Message: "request could not be processed"}
}

// call wraps a platform operation in the retry executor using the platform
// transience predicate. op labels the metrics.
func call[T any](ctx context.Context, r *Runner, op string, fn func(context.Context) (T, error)) (T, error) {
	policy := r.retry
	policy.RetryIf = platform.IsRetryable
	policy.OnRetry = func(n uint, err error) {
		if r.metrics != nil {
			r.metrics.PlatformRetries.WithLabelValues(op).Inc()
		}
		r.logger.Warn().Err(err).Str("operation", op).Uint("attempt", n+1).Msg("platform call retried")
	}

	start := time.Now()
	out, err := retry.DoWithResult(ctx, policy, func() (T, error) {
		return fn(ctx)
	})
	if r.metrics != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		r.metrics.PlatformCalls.WithLabelValues(op, result).Inc()
		r.metrics.PlatformDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	return out, err
}

// callOnce runs a platform operation exactly once. Compensation and fallback
// paths use it; their failures are logged, never retried.
func callOnce[T any](ctx context.Context, r *Runner, op string, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()
	out, err := fn(ctx)
	if r.metrics != nil {
		result := "success"
		if err != nil {
			result = "failure"
		}
		r.metrics.PlatformCalls.WithLabelValues(op, result).Inc()
		r.metrics.PlatformDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
	return out, err
}
