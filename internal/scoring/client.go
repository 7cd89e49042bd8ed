package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/heartbeam/matchsim/internal/logger"
)

const (
	contentType = "application/json"

	defaultMaxLogLength = 200
)

// submitRequest is the wire shape the scoring backend expects.
type submitRequest struct {
	UserPartnerProfile string `json:"user_partner_profile"`
}

// Client submits profile descriptions to an external HTTP scoring endpoint.
// The endpoint is injected configuration; there are no retries and no
// internal timeout beyond the one carried by HTTPClient.
type Client struct {
	endpoint   string
	logger     *zap.Logger
	maxLogLen  int
	HTTPClient *http.Client
}

// NewClient creates a Client for the given endpoint. A zero timeout leaves
// the request without a deadline; cancellation is then up to the caller's
// context.
func NewClient(endpoint string, timeout time.Duration, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		endpoint:  endpoint,
		logger:    log,
		maxLogLen: defaultMaxLogLength,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit sends the description to the scoring endpoint and decodes the reply.
// A description below the minimum length fails validation before any network
// traffic. The single POST is never retried.
func (c *Client) Submit(ctx context.Context, description string) (*ScoreResult, error) {
	if err := ValidateDescription(description); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(submitRequest{UserPartnerProfile: description})
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: msgTransport, Err: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: msgTransport, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", contentType)

	c.logger.Debug("submitting profile description",
		zap.String("url", c.endpoint),
		zap.Int("description_length", len(description)),
		zap.String("description_preview", logger.TruncateForLog(description, c.maxLogLen)),
	)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: msgTransport, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Message: msgTransport, Err: fmt.Errorf("read response body: %w", err)}
	}
	body := string(data)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("scoring backend returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body_preview", logger.TruncateForLog(body, c.maxLogLen)),
		)
		return nil, &Error{
			Kind:    KindHTTP,
			Message: ExtractErrorMessage(body),
			Err:     fmt.Errorf("bad status: %s", resp.Status),
		}
	}

	c.logger.Debug("scoring backend response",
		zap.Int("status", resp.StatusCode),
		zap.String("body_preview", logger.TruncateForLog(body, c.maxLogLen)),
	)

	result, err := Decode(body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("received compatibility score", zap.Float64("score", result.Score))

	return result, nil
}
