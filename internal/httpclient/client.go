package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/apiprobe/apiprobe/internal/config"
	"github.com/apiprobe/apiprobe/internal/models"
)

// UserAgent identifies apiprobe requests in target access logs
const UserAgent = "apiprobe/1.0"

// Client issues test requests and normalizes every result into an Outcome.
// Transport failures are carried inside the Outcome and never escape as
// Go errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	logger     *log.Logger
}

// New creates a client bound to the configured base URL, timeout and
// default headers
func New(cfg *config.Config, logger *log.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout()},
		baseURL:    cfg.BaseURL,
		headers:    cfg.DefaultHeaders,
		logger:     logger,
	}
}

// Send executes the definition's request and returns the normalized
// outcome. Elapsed covers the round trip up to response headers.
func (c *Client) Send(ctx context.Context, def models.TestDefinition) models.Outcome {
	req, err := c.buildRequest(ctx, def)
	if err != nil {
		c.logger.Printf("client.send: cannot build request for %q: %v", def.Name, err)
		return models.Outcome{Err: err.Error()}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Printf("client.send: %s %s failed: %v", req.Method, req.URL, err)
		return models.Outcome{Elapsed: elapsed, Err: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("client.send: %s %s body read failed: %v", req.Method, req.URL, err)
		return models.Outcome{Elapsed: elapsed, Err: err.Error()}
	}

	return models.Outcome{
		StatusCode: resp.StatusCode,
		Elapsed:    elapsed,
		Body:       body,
	}
}

// buildRequest assembles the HTTP request for a definition
func (c *Client) buildRequest(ctx context.Context, def models.TestDefinition) (*http.Request, error) {
	var body io.Reader
	if def.Body != nil {
		payload, err := json.Marshal(def.Body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(def.Method), c.buildURL(def.Path), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	if def.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range def.Headers {
		req.Header.Set(k, v)
	}

	return req, nil
}

// buildURL joins the base URL and a definition path, normalizing the slash
// seam. Absolute http(s) URLs pass through untouched so a definition can
// target a host outside the configured base.
func (c *Client) buildURL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimRight(c.baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}
