package provider

import (
	"context"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

// Provider fetches the most actively traded stocks from an upstream source.
type Provider interface {
	// MostActive performs one request and returns the decoded records in
	// upstream order. Returned records have an empty Id; callers assign their own.
	// Failures are *errors.Error with ErrCodeTransportFailed or ErrCodeParseFailed,
	// or *errors.HTTPStatusError.
	MostActive(ctx context.Context) ([]types.Stock, error)
}
