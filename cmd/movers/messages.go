package main

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

// StocksMsg carries a newly published batch.
type StocksMsg struct {
	Stocks []types.Stock
}

// LastErrorMsg carries a newly published error state.
type LastErrorMsg struct {
	Err optional.Option[string]
}

// LoadingMsg carries a newly published loading flag.
type LoadingMsg struct {
	Loading bool
}

// RefreshDoneMsg signals that a user triggered refresh has returned.
type RefreshDoneMsg struct{}
