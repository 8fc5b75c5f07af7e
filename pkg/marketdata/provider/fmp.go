package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/argo-movers/internal/types"
	"github.com/rxtech-lab/argo-movers/pkg/errors"
)

const (
	// DefaultFMPEndpoint lists the most active stocks on Financial Modeling Prep.
	DefaultFMPEndpoint = "https://financialmodelingprep.com/api/v3/stock_market/actives/"

	apiKeyParam = "apikey"
	// errorMessageKey is the field FMP uses for human readable failures.
	errorMessageKey = "Error Message"
)

// fmpQuote is the upstream record. Any id the upstream sends is ignored.
type fmpQuote struct {
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	Change            decimal.Decimal `json:"change"`
	Price             decimal.Decimal `json:"price"`
	ChangesPercentage decimal.Decimal `json:"changesPercentage"`
}

// FMPClient queries the Financial Modeling Prep most-actives endpoint.
type FMPClient struct {
	client   *resty.Client
	endpoint string
	apiKey   string
}

// NewFMPClient creates a client for endpoint authenticated by apiKey.
// A zero timeout leaves requests without a deadline.
func NewFMPClient(endpoint string, apiKey string, timeout time.Duration) (*FMPClient, error) {
	return NewFMPClientWithHTTPClient(endpoint, apiKey, &http.Client{Timeout: timeout})
}

// NewFMPClientWithHTTPClient is like NewFMPClient but sends requests through httpClient.
func NewFMPClientWithHTTPClient(endpoint string, apiKey string, httpClient *http.Client) (*FMPClient, error) {
	if endpoint == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "endpoint is required")
	}

	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid endpoint %q", endpoint)
	}

	if apiKey == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "apiKey is required")
	}

	return &FMPClient{
		client:   resty.NewWithClient(httpClient),
		endpoint: endpoint,
		apiKey:   apiKey,
	}, nil
}

// Endpoint returns the base URL requests are sent to.
func (c *FMPClient) Endpoint() string {
	return c.endpoint
}

// MostActive issues GET {endpoint}?apikey={key} and decodes the returned list.
func (c *FMPClient) MostActive(ctx context.Context) ([]types.Stock, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam(apiKeyParam, c.apiKey).
		Get(c.endpoint)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTransportFailed, "failed to reach market data endpoint", stripURL(err))
	}

	if !resp.IsSuccess() {
		return nil, errors.NewHTTPStatusError(resp.StatusCode(), upstreamMessage(resp.Body()))
	}

	var quotes []fmpQuote
	if err := json.Unmarshal(resp.Body(), &quotes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParseFailed, "failed to decode most active stocks", err)
	}

	stocks := make([]types.Stock, 0, len(quotes))
	for _, q := range quotes {
		stocks = append(stocks, types.Stock{
			Id:                "",
			Symbol:            q.Symbol,
			Name:              q.Name,
			Change:            q.Change,
			Price:             q.Price,
			ChangesPercentage: q.ChangesPercentage,
		})
	}

	return stocks, nil
}

// upstreamMessage extracts the "Error Message" field from an error body.
// It returns "" when the body is not a JSON object or the field is missing,
// empty or not a string.
func upstreamMessage(body []byte) string {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	msg, _ := payload[errorMessageKey].(string)

	return msg
}

// stripURL drops the request URL from transport errors; it carries the API key.
func stripURL(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}

	return err
}
