package chain

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/oGsLP/lyrics-download-and-translate/logcolors"
)

// Provider is a unit that attempts one task for a query and either produces
// a payload or fails with a classified error (*chain.Error). Errors that are
// not classified, and panics, are treated as KindUnknown failures.
type Provider[Q, R any] interface {
	// Name returns the provider's identifier (e.g. "genius", "baidu")
	Name() string

	// Attempt performs one fetch or translate against the provider.
	// The retry budget for transient failures is owned by the HTTP layer,
	// not by the provider.
	Attempt(ctx context.Context, query Q) (R, error)
}

// Attempt records the outcome of one provider invocation within a chain run.
// Records are totally ordered by provider priority and never mutated.
type Attempt struct {
	Provider string
	OK       bool
	Kind     FailureKind
	Err      error
	Duration time.Duration
}

// Result is the outcome of a chain run: the first successful payload plus
// every attempt made on the way there.
type Result[R any] struct {
	Payload  R
	Provider string
	Attempts []Attempt
}

// Run invokes providers strictly in the given order, stopping at the first
// success. Providers after the first success are never invoked. When every
// provider fails, the returned error is an *ExhaustedError carrying all
// attempt records.
func Run[Q, R any](ctx context.Context, query Q, providers []Provider[Q, R]) (*Result[R], error) {
	attempts := make([]Attempt, 0, len(providers))

	for _, p := range providers {
		log.Infof("%s Trying %s...", logcolors.LogChain, p.Name())

		start := time.Now()
		payload, err := invoke(ctx, p, query)
		elapsed := time.Since(start)

		if err == nil {
			attempts = append(attempts, Attempt{
				Provider: p.Name(),
				OK:       true,
				Duration: elapsed,
			})
			log.Infof("%s %s succeeded in %v", logcolors.LogSuccess, p.Name(), elapsed.Round(time.Millisecond))
			return &Result[R]{
				Payload:  payload,
				Provider: p.Name(),
				Attempts: attempts,
			}, nil
		}

		kind := KindOf(err)
		attempts = append(attempts, Attempt{
			Provider: p.Name(),
			Kind:     kind,
			Err:      err,
			Duration: elapsed,
		})
		log.Infof("%s %s failed (%s): %v", logcolors.LogFailure, p.Name(), kind, err)
	}

	return nil, &ExhaustedError{Attempts: attempts}
}

// invoke shields the chain from uncaught faults: a panicking provider is
// reported as a KindUnknown failure instead of crashing the run.
func invoke[Q, R any](ctx context.Context, p Provider[Q, R], query Q) (payload R, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewError(p.Name(), KindUnknown, "provider panicked", fmt.Errorf("%v", r))
		}
	}()
	return p.Attempt(ctx, query)
}
