// Package mockserver provides a mock Financial Modeling Prep server for testing.
// It serves the most-actives endpoint with a configurable payload, failure
// and latency.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/rxtech-lab/argo-movers/internal/types"
)

// ActivesPath is the path of the most-actives endpoint.
const ActivesPath = "/api/v3/stock_market/actives/"

// InvalidAPIKeyMessage mirrors the upstream text for a rejected key.
const InvalidAPIKeyMessage = "Invalid API KEY. Please retry or visit our documentation to create one FREE https://site.financialmodelingprep.com/developer/docs"

// quote is the wire format of one record. Upstream ids are numeric and
// must be ignored by clients.
type quote struct {
	Id                int     `json:"id"`
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Change            float64 `json:"change"`
	Price             float64 `json:"price"`
	ChangesPercentage float64 `json:"changesPercentage"`
}

// Failure describes a canned error response.
type Failure struct {
	// StatusCode is the HTTP status to answer with.
	StatusCode int
	// Body is written verbatim. Empty means no body.
	Body string
}

// ServerConfig holds configuration for the mock server.
type ServerConfig struct {
	// APIKey, when set, is required in the apikey query parameter.
	APIKey string
	// Stocks is the payload served on success.
	Stocks []types.Stock
	// Delay is applied before every response.
	Delay time.Duration
}

// MockFMPServer provides a mock most-actives endpoint.
type MockFMPServer struct {
	mu sync.RWMutex

	httpServer *http.Server
	listener   net.Listener
	router     *mux.Router

	apiKey  string
	stocks  []types.Stock
	failure *Failure
	delay   time.Duration
	hits    int
	keys    []string
}

// NewMockFMPServer creates a new mock server. Call Start to listen, or use
// Handler with httptest.
func NewMockFMPServer(config ServerConfig) *MockFMPServer {
	server := &MockFMPServer{
		mu:         sync.RWMutex{},
		httpServer: nil,
		listener:   nil,
		router:     mux.NewRouter(),
		apiKey:     config.APIKey,
		stocks:     config.Stocks,
		failure:    nil,
		delay:      config.Delay,
		hits:       0,
		keys:       nil,
	}

	server.router.HandleFunc(ActivesPath, server.handleActives).Methods(http.MethodGet)
	server.router.HandleFunc("/api/v3/stock_market/actives", server.handleActives).Methods(http.MethodGet)

	return server
}

// Handler returns the router serving the mock endpoints.
func (s *MockFMPServer) Handler() http.Handler {
	return s.router
}

// Start starts the mock server on the given address. Use ":0" for a random port.
func (s *MockFMPServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop stops the mock server.
func (s *MockFMPServer) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Address returns the address the server is listening on.
func (s *MockFMPServer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *MockFMPServer) BaseURL() string {
	return "http://" + s.Address()
}

// ActivesURL returns the full most-actives endpoint URL.
func (s *MockFMPServer) ActivesURL() string {
	return s.BaseURL() + ActivesPath
}

// SetStocks replaces the success payload.
func (s *MockFMPServer) SetStocks(stocks []types.Stock) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stocks = stocks
}

// SetFailure makes every following request fail with statusCode and body.
func (s *MockFMPServer) SetFailure(statusCode int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = &Failure{StatusCode: statusCode, Body: body}
}

// ClearFailure restores successful responses.
func (s *MockFMPServer) ClearFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failure = nil
}

// SetDelay sets the latency applied before every response.
func (s *MockFMPServer) SetDelay(delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delay = delay
}

// Hits returns the number of requests served.
func (s *MockFMPServer) Hits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits
}

// ReceivedKeys returns the apikey values seen, in request order.
func (s *MockFMPServer) ReceivedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s *MockFMPServer) handleActives(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("apikey")

	s.mu.Lock()
	s.hits++
	s.keys = append(s.keys, key)
	delay := s.delay
	failure := s.failure
	stocks := s.stocks
	expectedKey := s.apiKey
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-r.Context().Done():
			return
		}
	}

	if failure != nil {
		if failure.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(failure.StatusCode)
		_, _ = w.Write([]byte(failure.Body))
		return
	}

	if expectedKey != "" && key != expectedKey {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"Error Message": InvalidAPIKeyMessage})
		return
	}

	quotes := make([]quote, 0, len(stocks))
	for i, stock := range stocks {
		quotes = append(quotes, quote{
			Id:                i + 1,
			Symbol:            stock.Symbol,
			Name:              stock.Name,
			Change:            stock.Change.InexactFloat64(),
			Price:             stock.Price.InexactFloat64(),
			ChangesPercentage: stock.ChangesPercentage.InexactFloat64(),
		})
	}

	writeJSON(w, http.StatusOK, quotes)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
