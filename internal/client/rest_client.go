package client

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/journal"
	"trading-journal-go/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxRetries = 3

// RestClientInterface defines the interface for the journal REST API client.
type RestClientInterface interface {
	Health(ctx context.Context) error
	GetStats(ctx context.Context, startDate, endDate string) (*journal.Stats, error)
	ListTrades(ctx context.Context, q TradeQuery) ([]models.Trade, error)
	RecentTrades(ctx context.Context, limit int) ([]models.Trade, error)
	ListMethods(ctx context.Context) ([]models.Method, error)
}

// RestClient is a client for the journal REST API.
// It implements the RestClientInterface.
type RestClient struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter
	backoff time.Duration // first retry delay, doubled per attempt
}

// ensure RestClient implements the interface
var _ RestClientInterface = (*RestClient)(nil)

// TradeQuery holds the optional trade list filters. Dates are YYYY-MM-DD or RFC3339.
type TradeQuery struct {
	Symbol    string
	MethodID  string
	Result    string
	StartDate string
	EndDate   string
}

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

type envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message"`
}

// NewRestClient creates a new journal API client.
func NewRestClient(cfg config.Client, logger *zap.Logger) *RestClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	// rate.Limit is requests per second.
	limiter := rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst)

	return &RestClient{
		client:  client,
		logger:  logger,
		limiter: limiter,
		backoff: time.Second,
	}
}

// Health checks that the API and its database are reachable.
func (c *RestClient) Health(ctx context.Context) error {
	var out envelope[map[string]string]
	if _, err := c.doRequest(ctx, http.MethodGet, "/health", c.client.R().SetResult(&out)); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

// GetStats fetches the stats snapshot for an optional date range.
func (c *RestClient) GetStats(ctx context.Context, startDate, endDate string) (*journal.Stats, error) {
	var out envelope[journal.Stats]
	req := c.client.R().SetResult(&out)
	setQuery(req, "startDate", startDate)
	setQuery(req, "endDate", endDate)

	if _, err := c.doRequest(ctx, http.MethodGet, "/stats", req); err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return &out.Data, nil
}

// ListTrades fetches trades matching q, newest first.
func (c *RestClient) ListTrades(ctx context.Context, q TradeQuery) ([]models.Trade, error) {
	var out envelope[[]models.Trade]
	req := c.client.R().SetResult(&out)
	setQuery(req, "symbol", q.Symbol)
	setQuery(req, "methodId", q.MethodID)
	setQuery(req, "result", q.Result)
	setQuery(req, "startDate", q.StartDate)
	setQuery(req, "endDate", q.EndDate)

	if _, err := c.doRequest(ctx, http.MethodGet, "/trades/list", req); err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return out.Data, nil
}

// RecentTrades fetches the newest trades; limit <= 0 uses the server default.
func (c *RestClient) RecentTrades(ctx context.Context, limit int) ([]models.Trade, error) {
	var out envelope[[]models.Trade]
	req := c.client.R().SetResult(&out)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}

	if _, err := c.doRequest(ctx, http.MethodGet, "/stats/recent", req); err != nil {
		return nil, fmt.Errorf("failed to get recent trades: %w", err)
	}
	return out.Data, nil
}

// ListMethods fetches every trading method.
func (c *RestClient) ListMethods(ctx context.Context) ([]models.Method, error) {
	var out envelope[[]models.Method]
	if _, err := c.doRequest(ctx, http.MethodGet, "/methods/list", c.client.R().SetResult(&out)); err != nil {
		return nil, fmt.Errorf("failed to list methods: %w", err)
	}
	return out.Data, nil
}

func setQuery(req *resty.Request, key, value string) {
	if value != "" {
		req.SetQueryParam(key, value)
	}
}

// doRequest handles the actual request execution with rate limiting and retry logic.
func (c *RestClient) doRequest(ctx context.Context, method, url string, req *resty.Request) (*resty.Response, error) {
	var resp *resty.Response
	var err error

	var apiErr envelope[any]
	req.SetContext(ctx).SetError(&apiErr)

	for i := 0; i < maxRetries; i++ {
		// Wait for the rate limiter
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter wait failed: %w", err)
		}

		apiErr = envelope[any]{}
		c.logger.Debug("Executing request", zap.String("method", method), zap.String("url", c.client.BaseURL+url))
		resp, err = req.Execute(method, url)

		if err == nil && !resp.IsError() {
			return resp, nil
		}

		// Analyze error and decide whether to retry
		shouldRetry := false
		var retryAfter time.Duration

		if err == nil {
			statusCode := resp.StatusCode()
			if statusCode == http.StatusTooManyRequests {
				shouldRetry = true
				if seconds, convErr := strconv.Atoi(resp.Header().Get("Retry-After")); convErr == nil {
					retryAfter = time.Duration(seconds) * time.Second
				}
			} else if statusCode >= http.StatusInternalServerError {
				shouldRetry = true
			}
			err = &APIError{StatusCode: statusCode, Message: messageOf(resp, &apiErr)}
		} else if ctx.Err() != nil {
			return nil, ctx.Err()
		} else { // Network or other client-side errors
			shouldRetry = true
		}

		if !shouldRetry {
			return nil, err
		}

		if retryAfter == 0 {
			// Exponential backoff: 1x, 2x, 4x
			retryAfter = time.Duration(math.Pow(2, float64(i))) * c.backoff
		}

		c.logger.Warn("Request failed, retrying...",
			zap.Int("attempt", i+1),
			zap.Duration("retry_after", retryAfter),
			zap.Error(err),
		)

		select {
		case <-time.After(retryAfter):
			continue
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries, err)
}

func messageOf(resp *resty.Response, apiErr *envelope[any]) string {
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if body := resp.String(); body != "" {
		return body
	}
	return resp.Status()
}
