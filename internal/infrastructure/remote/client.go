package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sharebite/backend/internal/domain"
	"golang.org/x/time/rate"
)

// ErrReadOnly is returned when saving to a remote model server
var ErrReadOnly = errors.New("remote model server is read-only")

const maxAttempts = 3

// Client talks to an external model server that hosts the four predictors
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	debug       bool
	logger      *slog.Logger
}

// NewClient creates a new model server client limited to ratePerSecond requests
func NewClient(baseURL string, ratePerSecond float64, timeout time.Duration) *Client {
	if ratePerSecond <= 0 {
		ratePerSecond = 20
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(ratePerSecond), int(ratePerSecond)+1),
		backoff:     exponentialBackoff,
		logger:      slog.Default().With("component", "model-server"),
	}
}

// SetDebug toggles request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns 500ms, 1s, 2s, ... for attempts 1, 2, 3, ...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Load confirms the named model is hosted and returns a predictor backed by it
func (c *Client) Load(ctx context.Context, name string) (domain.Predictor, error) {
	if _, err := c.do(ctx, http.MethodGet, c.modelURL(name), nil); err != nil {
		return nil, fmt.Errorf("check model %s: %w", name, err)
	}
	return &Predictor{client: c, name: name}, nil
}

func (c *Client) modelURL(name string) string {
	return fmt.Sprintf("%s/v1/models/%s", c.baseURL, url.PathEscape(name))
}

// LoadMetadata fetches the schema metadata of the hosted models
func (c *Client) LoadMetadata(ctx context.Context) (*domain.ModelMetadata, error) {
	body, err := c.do(ctx, http.MethodGet, c.baseURL+"/v1/metadata", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	var meta domain.ModelMetadata
	if err := json.Unmarshal(body, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	return &meta, nil
}

// Save is not supported by the remote model server
func (c *Client) Save(ctx context.Context, name string, p domain.Predictor) error {
	return ErrReadOnly
}

// SaveMetadata is not supported by the remote model server
func (c *Client) SaveMetadata(ctx context.Context, meta *domain.ModelMetadata) error {
	return ErrReadOnly
}

type predictRequest struct {
	Features map[string]float64 `json:"features"`
}

type predictResponse struct {
	Estimate    *float64 `json:"estimate"`
	Probability *float64 `json:"probability,omitempty"`
}

func (c *Client) predict(ctx context.Context, name string, features domain.FeatureVector) (*predictResponse, error) {
	payload, err := json.Marshal(predictRequest{Features: features.Map()})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, c.modelURL(name)+"/predict", payload)
	if err != nil {
		return nil, err
	}

	var resp predictResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

// do executes a request with rate limiting, retrying transport errors, 429 and 5xx
func (c *Client) do(ctx context.Context, method, reqURL string, payload []byte) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff(attempt - 1)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("User-Agent", "Sharebite/1.0")
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.debugf("request error", "attempt", attempt, "url", reqURL, "error", err)
			lastErr = fmt.Errorf("%w: %v", domain.ErrPredictorFailure, err)
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			c.debugf("read error", "attempt", attempt, "url", reqURL, "error", err)
			lastErr = fmt.Errorf("%w: read response: %v", domain.ErrPredictorFailure, err)
			continue
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			c.debugf("request ok", "attempt", attempt, "url", reqURL)
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, reqURL)
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			c.debugf("retryable status", "attempt", attempt, "status", resp.StatusCode, "body", string(body))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrPredictorFailure, resp.StatusCode)
		default:
			return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrPredictorFailure, resp.StatusCode, string(body))
		}
	}

	c.logger.Warn("all retries failed", "url", reqURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) debugf(msg string, args ...any) {
	if c.debug {
		c.logger.Debug(msg, args...)
	}
}

// Predictor is a domain.Classifier served by the remote model server
type Predictor struct {
	client *Client
	name   string
}

// Predict returns the remote model's estimate
func (p *Predictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	resp, err := p.client.predict(ctx, p.name, features)
	if err != nil {
		return 0, err
	}
	if resp.Estimate == nil {
		return 0, fmt.Errorf("%w: %s returned no estimate", domain.ErrPredictorFailure, p.name)
	}
	return *resp.Estimate, nil
}

// PredictProbability returns the remote model's positive-class probability
func (p *Predictor) PredictProbability(ctx context.Context, features domain.FeatureVector) (float64, error) {
	resp, err := p.client.predict(ctx, p.name, features)
	if err != nil {
		return 0, err
	}
	if resp.Probability == nil {
		return 0, fmt.Errorf("%w: %s", domain.ErrNotClassifier, p.name)
	}
	return *resp.Probability, nil
}
