// Package sheet retrieves the coaching sheet as a models.Table.
//
// A Source performs I/O on every Fetch. Nothing is memoized unless the
// caller wraps it with NewCached. Failures are never retried here; they
// surface as *FetchError so handlers can answer with a structured error.
package sheet

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/twindash/internal/domain/models"
)

// ErrSourceUnavailable matches every error returned by a Source's Fetch.
var ErrSourceUnavailable = errors.New("sheet source unavailable")

// Source returns the current contents of one worksheet range.
type Source interface {
	Fetch(ctx context.Context) (models.Table, error)
	// Describe names the source for logs and the health endpoint.
	Describe() string
}

// FetchError records which source and step failed.
type FetchError struct {
	Source string
	Op     string // "credentials", "connect", "read"
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Source, e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Is reports ErrSourceUnavailable so callers need not know the concrete type.
func (e *FetchError) Is(target error) bool { return target == ErrSourceUnavailable }
