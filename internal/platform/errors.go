package platform

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sony/gobreaker/v2"

	domainErrors "github.com/commercebridge/ondc-adapter/internal/domain/errors"
)

// StatusError is a non-2xx platform response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("platform returned %d: %s", e.StatusCode, e.Body)
}

// IsRetryable classifies a platform call failure. Network failures, timeouts
// and 5xx-class responses are transient; 4xx-class responses are domain
// rejections and retrying them is pointless. A tripped circuit breaker
// counts as transient: the upstream may recover within the retry budget.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, domainErrors.ErrOrderNotFound) || errors.Is(err, domainErrors.ErrProductNotFound) {
		return false
	}
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, domainErrors.ErrPlatformTimeout) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode >= http.StatusInternalServerError ||
			statusErr.StatusCode == http.StatusTooManyRequests
	}
	// Unclassified errors are treated as transient so the retry budget, not
	// a misjudged classification, decides the outcome.
	return true
}

// IsNotFound reports whether err represents a missing platform record.
func IsNotFound(err error) bool {
	if errors.Is(err, domainErrors.ErrOrderNotFound) || errors.Is(err, domainErrors.ErrProductNotFound) {
		return true
	}
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}
