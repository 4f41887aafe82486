package summarizer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"resume-insight/config"
	"resume-insight/logger"
)

type summarizeRequest struct {
	Text string `json:"text"`
}

type summarizeResponse struct {
	Summary string `json:"summary"`
	Result  string `json:"result"`
}

// Client calls the remote summarization endpoint. It is fail-soft: every
// failure is logged and reported as "no summary".
type Client struct {
	apiKey string
	url    string
	http   *http.Client
	log    *logger.Logger
}

func NewClient(cfg config.Summarizer, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		url:    strings.TrimSpace(cfg.URL),
		http:   &http.Client{Timeout: cfg.Timeout()},
		log:    log.With("component", "summarizer"),
	}
}

// Enabled reports whether both the API key and the endpoint are configured.
func (c *Client) Enabled() bool {
	return c.apiKey != "" && c.url != ""
}

// Summarize returns the remote summary of text, or ok=false when the client
// is disabled or the call fails in any way.
func (c *Client) Summarize(ctx context.Context, text string) (summary string, ok bool) {
	if !c.Enabled() {
		return "", false
	}

	defer func() {
		if r := recover(); r != nil {
			c.log.Error("summarizer panic", "panic", r)
			summary, ok = "", false
		}
	}()

	out, err := c.call(ctx, text)
	if err != nil {
		c.log.Warn("summarizer request failed, using fallback", "url", c.url, "error", err)
		return "", false
	}

	if s := strings.TrimSpace(out.Summary); s != "" {
		return s, true
	}
	if s := strings.TrimSpace(out.Result); s != "" {
		return s, true
	}
	c.log.Warn("summarizer response has no summary, using fallback", "url", c.url)
	return "", false
}

func (c *Client) call(ctx context.Context, text string) (*summarizeResponse, error) {
	body, err := json.Marshal(summarizeRequest{Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("summarizer returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out summarizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode summarizer response: %w", err)
	}
	return &out, nil
}
