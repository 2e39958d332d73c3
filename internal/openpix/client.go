package openpix

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"arenapix-be/internal/logger"

	"go.uber.org/zap"
)

const defaultTimeout = 15 * time.Second

// Client is a thin wrapper around the OpenPix REST API. Every operation is a
// single request/response exchange; there is no retry or backoff policy.
type Client struct {
	baseURL    string
	appID      string
	httpClient *http.Client
}

func NewClient(baseURL, appID string) *Client {
	if appID == "" {
		logger.L().Warn("OpenPix app ID is empty")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

// do sends a request and returns the raw response body. Non-2xx responses
// become an *APIError carrying status and body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload any) ([]byte, error) {
	log := logger.L().With(
		zap.String("method", method),
		zap.String("path", path),
	)

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			log.Error("Failed to marshal request body", zap.Error(err))
			return nil, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.Header.Set("Authorization", c.appID)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("OpenPix request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Error("OpenPix returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return bodyBytes, newAPIError(resp.StatusCode, bodyBytes)
	}

	return bodyBytes, nil
}
