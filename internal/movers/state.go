package movers

import (
	"github.com/moznion/go-optional"

	"github.com/rxtech-lab/argo-movers/internal/store"
	"github.com/rxtech-lab/argo-movers/internal/types"
)

// State is the published application state. One instance is created by the
// composition root and shared by the service (writer) and views (readers).
type State struct {
	// Stocks is the latest successfully fetched batch, replaced as a whole.
	Stocks *store.Value[[]types.Stock]
	// LastError holds the latest failure message; None after a success.
	LastError *store.Value[optional.Option[string]]
	// IsLoading is true while a fetch is in flight.
	IsLoading *store.Value[bool]
}

// NewState returns the startup state: no stocks, no error, loading.
func NewState() *State {
	return &State{
		Stocks:    store.New([]types.Stock{}),
		LastError: store.New(optional.None[string]()),
		IsLoading: store.New(true),
	}
}

// Snapshot is a point-in-time copy of State.
type Snapshot struct {
	Stocks    []types.Stock `json:"stocks"`
	LastError *string       `json:"lastError"`
	IsLoading bool          `json:"isLoading"`
}

// Snapshot reads the three values. They are read one after another, so a
// concurrent refresh may be observed halfway.
func (s *State) Snapshot() Snapshot {
	snap := Snapshot{
		Stocks:    s.Stocks.Get(),
		LastError: nil,
		IsLoading: s.IsLoading.Get(),
	}

	if msg, err := s.LastError.Get().Take(); err == nil {
		snap.LastError = &msg
	}

	return snap
}
