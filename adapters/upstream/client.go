// Package upstream implements the domain ports against the remote RedOficios
// REST backend. Field names on the wire are the backend's Spanish ones; the
// translation to domain types happens here and nowhere else.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/config"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"go.uber.org/zap"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logger.Logger
}

func NewClient(cfg config.Config, log logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Upstream.Timeout,
		},
		logger: log,
	}
}

// errorBody covers both message shapes the backend uses.
type errorBody struct {
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternal("failed to encode request body", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.NewInternal("failed to build upstream request", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("upstream request failed",
			zap.String("method", req.Method), zap.String("path", req.URL.Path), zap.Error(err))
		return apperror.NewUpstream("", err)
	}
	defer res.Body.Close()

	c.logger.Debug("upstream request",
		zap.String("method", req.Method), zap.String("path", req.URL.Path),
		zap.Int("status", res.StatusCode), zap.Duration("took", time.Since(start)))

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return apperror.NewUpstream("", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		msg := eb.Message
		if msg == "" {
			msg = eb.Msg
		}
		return c.statusError(res.StatusCode, msg)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperror.NewUpstream("The RedOficios service returned an unexpected response", err)
		}
	}
	return nil
}

func (c *Client) statusError(status int, message string) error {
	switch status {
	case http.StatusNotFound:
		if message == "" {
			message = "resource"
		}
		return apperror.NewNotFound(message, "upstream")
	case http.StatusUnauthorized, http.StatusForbidden:
		return apperror.NewUnauthorized(message, nil)
	case http.StatusConflict:
		return apperror.NewConflict("upstream record", message)
	default:
		if message == "" {
			message = fmt.Sprintf("The RedOficios service answered with status %d", status)
		}
		return apperror.NewUpstream(message, nil)
	}
}

// assetURL turns a backend-relative stored path (which may use backslashes)
// into an absolute URL, matching what the web client rendered.
func (c *Client) assetURL(stored string) string {
	if stored == "" {
		return ""
	}
	if strings.HasPrefix(stored, "http://") || strings.HasPrefix(stored, "https://") {
		return stored
	}
	normalized := strings.ReplaceAll(stored, `\`, "/")
	return c.baseURL + "/" + strings.TrimLeft(normalized, "/")
}
