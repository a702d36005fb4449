package formrelay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/buildco/catalog/internal/domain"
)

const (
	// DefaultBaseURL is the hosted form relay used by the contact page
	DefaultBaseURL = "https://formsubmit.co"

	maxAttempts = 3
)

// Config holds form relay client configuration
type Config struct {
	BaseURL        string
	Recipient      string // mailbox the relay forwards to
	Subject        string
	NextURL        string // where the relay redirects the visitor
	RequestsPerMin int
	Logger         *zap.Logger
}

// Client forwards contact form submissions to the hosted form relay
type Client struct {
	httpClient  *http.Client
	baseURL     string
	recipient   string
	subject     string
	nextURL     string
	rateLimiter *rate.Limiter
	backoff     func(attempt int) time.Duration
	logger      *zap.Logger
}

// NewClient creates a new form relay client
func NewClient(config Config) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	perMin := config.RequestsPerMin
	if perMin <= 0 {
		perMin = 30
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			// The relay answers with a redirect to NextURL; the visitor follows
			// it, not us.
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		baseURL:     baseURL,
		recipient:   config.Recipient,
		subject:     config.Subject,
		nextURL:     config.NextURL,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(perMin)/60.0), 5),
		backoff:     exponentialBackoff,
		logger:      logger,
	}
}

// exponentialBackoff returns 500ms, 1s, 2s... for attempts 1, 2, 3...
func exponentialBackoff(attempt int) time.Duration {
	return time.Duration(500*(1<<(attempt-1))) * time.Millisecond
}

// Configured reports whether a recipient is set
func (c *Client) Configured() bool {
	return c.recipient != ""
}

// Submit posts the message to the relay, retrying transient failures
func (c *Client) Submit(ctx context.Context, msg *domain.ContactMessage) error {
	if !c.Configured() {
		return domain.ErrRelayNotConfigured
	}
	if msg == nil {
		return domain.ErrInvalidRequest
	}

	endpoint := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(c.recipient))
	form := c.buildForm(msg)

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		status, err := c.post(ctx, endpoint, form)
		if err != nil {
			c.logger.Warn("Contact relay request error", zap.Int("attempt", attempt), zap.Error(err))
			lastErr = err
		} else {
			switch {
			case status < 400:
				c.logger.Info("Contact message relayed", zap.Int("status", status))
				return nil
			case status == http.StatusTooManyRequests:
				return domain.ErrRateLimited
			case status < 500:
				return fmt.Errorf("%w: status %d", domain.ErrRelayFailure, status)
			}
			c.logger.Warn("Contact relay server error", zap.Int("attempt", attempt), zap.Int("status", status))
			lastErr = fmt.Errorf("%w: status %d", domain.ErrRelayFailure, status)
		}

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	c.logger.Error("All contact relay retries failed", zap.Error(lastErr))
	return lastErr
}

func (c *Client) buildForm(msg *domain.ContactMessage) url.Values {
	form := url.Values{}
	form.Set("name", strings.TrimSpace(msg.Name))
	form.Set("phone", strings.TrimSpace(msg.Phone))
	form.Set("service", strings.TrimSpace(msg.Service))
	form.Set("message", strings.TrimSpace(msg.Message))
	form.Set("_captcha", "false")
	if c.subject != "" {
		form.Set("_subject", c.subject)
	}
	if c.nextURL != "" {
		form.Set("_next", c.nextURL)
	}
	return form
}

func (c *Client) post(ctx context.Context, endpoint string, form url.Values) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "CatalogSite/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRelayFailure, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}
