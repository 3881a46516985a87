package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-discovery/internal/models"
	srvErrors "github.com/kubev2v/migration-discovery/pkg/errors"
)

const (
	tokenHeader     = "X-Agent-Token"
	catalogsPath    = "/api/v1/catalogs"
	maxErrorBody    = 1 << 10
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
)

// Client publishes finished catalogs to an assessment service.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	attempts   uint64
	logger     *zap.SugaredLogger
}

func NewClient(baseURL string, token string) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid publisher url %q", baseURL)
	}

	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: defaultTimeout},
		attempts:   defaultAttempts,
		logger:     zap.S().Named("publisher"),
	}, nil
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

func (c *Client) WithAttempts(attempts uint64) *Client {
	c.attempts = max(attempts, 1)
	return c
}

// Publish sends the catalog document
// PUT /api/v1/catalogs/{id}
//
// 4xx responses fail at once with a PublishError. Transport errors and 5xx
// responses are retried with an exponential backoff.
func (c *Client) Publish(ctx context.Context, catalog *models.Catalog) error {
	body, err := json.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog: %w", err)
	}

	endpoint := c.baseURL + catalogsPath + "/" + url.PathEscape(catalog.ID)

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.attempts-1), ctx)

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		err := c.put(ctx, endpoint, body)
		if err == nil {
			return nil
		}
		if srvErrors.IsPublishError(err) {
			return backoff.Permanent(err)
		}
		c.logger.Debugw("publish attempt failed", "catalog", catalog.ID, "attempt", attempt, "error", err)
		return err
	}, b)
	if err != nil {
		return err
	}

	c.logger.Infow("catalog published", "catalog", catalog.ID, "url", endpoint, "resources", catalog.ResourceCount())
	return nil
}

func (c *Client) put(ctx context.Context, endpoint string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Add(tokenHeader, c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return srvErrors.NewPublishError(resp.StatusCode, strings.TrimSpace(string(msg)))
	default:
		return fmt.Errorf("failed to publish catalog: %s", resp.Status)
	}
}
