package job

import (
	"context"
	"errors"
	"fmt"

	"github.com/joblens/joblens/internal/domain"
)

// Provider represents the remote job-listing data source.
type Provider interface {
	// e.g. "remotive"
	Name() string

	// Fetch returns normalized jobs plus the provider's reported total for
	// one best-effort attempt. Failures come back as *ProviderError.
	Fetch(ctx context.Context, req domain.SearchRequest) ([]domain.Job, int, error)
}

// FailureClass tags how a provider attempt failed. Every class triggers
// fallback to the local catalog; they differ only in how they are logged.
type FailureClass int

const (
	// FailureUnavailable covers timeouts, connection failures and 5xx:
	// expected, handled silently.
	FailureUnavailable FailureClass = iota

	// FailureRejected covers 4xx responses: bad credentials or query,
	// an operator-visible configuration defect.
	FailureRejected

	// FailureMalformed covers 2xx responses with unparseable bodies:
	// an operator-visible contract defect.
	FailureMalformed
)

func (c FailureClass) String() string {
	switch c {
	case FailureUnavailable:
		return "unavailable"
	case FailureRejected:
		return "rejected"
	case FailureMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// ProviderError is a classified provider failure.
type ProviderError struct {
	Class    FailureClass
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s %s: %v", e.Provider, e.Class, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrNotFound reports a Get for an ID absent from the selected source.
var ErrNotFound = errors.New("job: not found")
