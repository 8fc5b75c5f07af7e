package movers

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rxtech-lab/argo-movers/internal/logger"
	"github.com/rxtech-lab/argo-movers/internal/types"
	"github.com/rxtech-lab/argo-movers/pkg/errors"
	"github.com/rxtech-lab/argo-movers/pkg/marketdata/provider"
)

const refreshKey = "most-active"

// IDGenerator returns a new unique record id.
type IDGenerator func() string

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator replaces the default random UUID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// Service fetches the most active stocks and publishes the outcome into State.
type Service struct {
	state    *State
	provider provider.Provider
	logger   *logger.Logger
	newID    IDGenerator

	group singleflight.Group

	startOnce sync.Once
	started   chan struct{}
}

// NewService creates a Service writing into state.
func NewService(state *State, prov provider.Provider, log *logger.Logger, opts ...Option) (*Service, error) {
	if state == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "state is required")
	}

	if prov == nil {
		return nil, errors.New(errors.ErrCodeMissingParameter, "provider is required")
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	s := &Service{
		state:     state,
		provider:  prov,
		logger:    log,
		newID:     uuid.NewString,
		group:     singleflight.Group{},
		startOnce: sync.Once{},
		started:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// State returns the state the service publishes into.
func (s *Service) State() *State {
	return s.state
}

// Start runs the initial refresh in the background and returns a channel
// that is closed once it has finished. Only the first call starts a refresh;
// later calls return the same channel.
func (s *Service) Start(ctx context.Context) <-chan struct{} {
	s.startOnce.Do(func() {
		go func() {
			defer close(s.started)
			s.Refresh(ctx)
		}()
	})

	return s.started
}

// Refresh performs one fetch cycle and publishes its outcome. It never
// fails; failures are published to State.LastError. Calls that overlap an
// in-flight cycle join it instead of starting another one, and return when
// it completes.
func (s *Service) Refresh(ctx context.Context) {
	//nolint:errcheck // refresh reports through State only
	s.group.Do(refreshKey, func() (any, error) {
		s.refresh(ctx)
		return nil, nil
	})
}

func (s *Service) refresh(ctx context.Context) {
	s.state.IsLoading.Set(true)
	defer s.state.IsLoading.Set(false)

	fetched, err := s.provider.MostActive(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch most active stocks",
			zap.Error(err),
			zap.Int("code", int(errors.GetCode(err))),
		)
		s.state.LastError.Set(optional.Some(errors.Message(err)))

		return
	}

	stocks := make([]types.Stock, len(fetched))
	for i, stock := range fetched {
		stocks[i] = stock.WithId(s.newID())
	}

	s.state.Stocks.Set(stocks)
	s.state.LastError.Set(optional.None[string]())

	s.logger.Debug("Published most active stocks", zap.Int("count", len(stocks)))
}
