// Package gemini is a minimal client for the generative-language
// generateContent REST endpoint. One prompt in, first candidate's text out;
// no conversation history, no streaming.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/eshop-relay/internal/domain"
)

const (
	requestTimeout = 30 * time.Second
	maxRetries     = 2
)

// Client calls the generateContent endpoint of a single model.
type Client struct {
	httpClient *http.Client
	baseURL    string
	model      string
	apiKey     string
}

func NewClient(baseURL, model, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    baseURL,
		model:      model,
		apiKey:     apiKey,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// GenerateContent posts prompt and returns the first candidate's text.
// Transport errors and 5xx responses are retried with exponential backoff
// (bounded); 4xx responses and candidate-less bodies are not.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(c.apiKey))

	var reply string
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("generation request: %v: %w", err, domain.ErrUnavailable)
		}
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read generation response: %v: %w", err, domain.ErrUnavailable)
		}
		if resp.StatusCode >= 500 {
			return fmt.Errorf("generation endpoint returned %d: %w", resp.StatusCode, domain.ErrUnavailable)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("generation endpoint returned %d: %w", resp.StatusCode, domain.ErrUnavailable))
		}

		var out generateResponse
		if err := json.Unmarshal(raw, &out); err != nil {
			return backoff.Permanent(fmt.Errorf("decode generation response: %w", err))
		}
		if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
			// Not retried: a candidate-less 200 will not heal on its own.
			return backoff.Permanent(fmt.Errorf("generation response: %w", domain.ErrNoCandidates))
		}
		reply = out.Candidates[0].Content.Parts[0].Text
		return nil
	}

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(op, b); err != nil {
		return "", err
	}
	return reply, nil
}
