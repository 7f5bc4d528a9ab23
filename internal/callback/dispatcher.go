package callback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/commercebridge/ondc-adapter/internal/domain/protocol"
	"github.com/commercebridge/ondc-adapter/internal/infrastructure/observability"
	"github.com/commercebridge/ondc-adapter/pkg/retry"
)

// Result reports how a delivery ended. The dispatcher never returns an
// error: the calling pipeline owns compensation policy.
type Result struct {
	Success   bool
	Attempts  int
	LastError error
}

// Dispatcher posts on_X payloads to the counterparty's callback endpoint.
// Each attempt is time-bounded; any non-success transport outcome is retried
// under the configured policy.
type Dispatcher struct {
	client         *http.Client
	policy         retry.Config
	attemptTimeout time.Duration
	logger         zerolog.Logger
	metrics        *observability.Metrics
}

func NewDispatcher(policy retry.Config, attemptTimeout time.Duration, logger zerolog.Logger, metrics *observability.Metrics) *Dispatcher {
	if attemptTimeout <= 0 {
		attemptTimeout = 10 * time.Second
	}
	return &Dispatcher{
		client:         &http.Client{Timeout: attemptTimeout},
		policy:         policy,
		attemptTimeout: attemptTimeout,
		logger:         logger.With().Str("component", "callback").Logger(),
		metrics:        metrics,
	}
}

// Deliver posts payload to {counterpartyURI}/on_{action}. The payload's
// context must already carry the on_ form of the action.
func (d *Dispatcher) Deliver(ctx context.Context, counterpartyURI, action string, payload protocol.CallbackPayload) Result {
	target := strings.TrimSuffix(counterpartyURI, "/") + "/on_" + action
	txnID := payload.Context.TransactionID

	body, err := json.Marshal(payload)
	if err != nil {
		d.logger.Error().Err(err).Str("txn_id", txnID).Str("action", action).Msg("callback payload not serializable")
		return Result{Success: false, Attempts: 0, LastError: err}
	}

	attempts := 0
	policy := d.policy
	policy.RetryIf = nil // every transport failure is retryable for callbacks
	policy.OnRetry = func(n uint, err error) {
		d.logger.Warn().Err(err).
			Str("txn_id", txnID).
			Str("action", action).
			Uint("attempt", n+1).
			Msg("callback delivery attempt failed")
	}

	err = retry.Do(ctx, policy, func() error {
		attempts++
		if d.metrics != nil {
			d.metrics.CallbackAttempts.WithLabelValues(action).Inc()
		}
		return d.post(ctx, target, body)
	})

	if err != nil {
		d.logger.Error().Err(err).
			Str("txn_id", txnID).
			Str("action", action).
			Int("attempts", attempts).
			Str("target", target).
			Msg("callback delivery failed after retries")
		if d.metrics != nil {
			d.metrics.CallbackDeliveries.WithLabelValues(action, "failure").Inc()
		}
		return Result{Success: false, Attempts: attempts, LastError: err}
	}

	d.logger.Info().
		Str("txn_id", txnID).
		Str("action", action).
		Int("attempts", attempts).
		Msg("callback delivered")
	if d.metrics != nil {
		d.metrics.CallbackDeliveries.WithLabelValues(action, "success").Inc()
	}
	return Result{Success: true, Attempts: attempts}
}

func (d *Dispatcher) post(ctx context.Context, target string, body []byte) error {
	attemptCtx, cancel := context.WithTimeout(ctx, d.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("callback endpoint returned %d", resp.StatusCode)
	}
	return nil
}
