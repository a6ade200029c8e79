package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const (
	defaultBaseURL   = "https://api-inference.huggingface.co"
	defaultRouterURL = "https://router.huggingface.co"
)

// Client calls Hugging Face hosted inference endpoints. A nil *Client is
// treated as "not configured" by callers.
type Client struct {
	token     string
	baseURL   string
	routerURL string
	http      *http.Client
}

// NewClient creates an inference client. Returns nil when no token is
// available so that callers can skip straight to fallback behavior.
func NewClient(token string) *Client {
	if token == "" {
		return nil
	}
	return &Client{
		token:     token,
		baseURL:   defaultBaseURL,
		routerURL: defaultRouterURL,
		http:      &http.Client{Timeout: 90 * time.Second},
	}
}

// NewClientWithURLs is like NewClient with overridable endpoints (tests)
func NewClientWithURLs(token, baseURL, routerURL string) *Client {
	c := NewClient(token)
	if c == nil {
		return nil
	}
	if baseURL != "" {
		c.baseURL = baseURL
	}
	if routerURL != "" {
		c.routerURL = routerURL
	}
	return c
}

// Classification is one canonical label/score pair, ordered by the
// provider in descending score.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// TextGenerationParams mirror the hosted text generation API parameters
type TextGenerationParams struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

func (c *Client) modelURL(provider, model string) string {
	if provider == "" {
		return fmt.Sprintf("%s/models/%s", c.baseURL, model)
	}
	return fmt.Sprintf("%s/%s/models/%s", c.routerURL, provider, model)
}

// AutomaticSpeechRecognition sends raw audio bytes to a speech model,
// optionally routed through a named provider, and returns the transcript.
// Exactly one call is made; retries and provider fallback belong to the
// caller.
func (c *Client) AutomaticSpeechRecognition(ctx context.Context, audio []byte, model, provider string) (string, error) {
	body, err := c.post(ctx, c.modelURL(provider, model), "application/octet-stream", audio)
	if err != nil {
		return "", &ProviderError{Provider: provider, Model: model, Err: err}
	}

	text, ok := extractTranscription(body)
	if !ok {
		log.Printf("[Inference] Unrecognized ASR response shape from %s: %s", provider, preview(body))
		return "", &ProviderError{Provider: provider, Model: model, Err: fmt.Errorf("unrecognized response shape")}
	}
	return text, nil
}

// TextGeneration runs a text generation model and returns the generated text
func (c *Client) TextGeneration(ctx context.Context, prompt, model string, params TextGenerationParams) (string, error) {
	reqBody, err := json.Marshal(map[string]interface{}{
		"inputs":     prompt,
		"parameters": params,
	})
	if err != nil {
		return "", &ProviderError{Model: model, Err: fmt.Errorf("failed to marshal request: %w", err)}
	}

	body, err := c.post(ctx, c.modelURL("", model), "application/json", reqBody)
	if err != nil {
		return "", &ProviderError{Model: model, Err: err}
	}

	var results []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		log.Printf("[Inference] Failed to parse text generation response: %s", preview(body))
		return "", &ProviderError{Model: model, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(results) == 0 {
		return "", &ProviderError{Model: model, Err: fmt.Errorf("empty generation result")}
	}
	return results[0].GeneratedText, nil
}

// ImageClassification classifies an image and returns the ranked labels
// in the order the provider produced them.
func (c *Client) ImageClassification(ctx context.Context, image []byte, model string) ([]Classification, error) {
	body, err := c.post(ctx, c.modelURL("", model), "application/octet-stream", image)
	if err != nil {
		return nil, &ProviderError{Model: model, Err: err}
	}

	var results []Classification
	if err := json.Unmarshal(body, &results); err != nil {
		log.Printf("[Inference] Failed to parse classification response: %s", preview(body))
		return nil, &ProviderError{Model: model, Err: fmt.Errorf("failed to parse response: %w", err)}
	}
	if len(results) == 0 {
		return nil, &ProviderError{Model: model, Err: fmt.Errorf("empty classification result")}
	}
	return results, nil
}

func (c *Client) post(ctx context.Context, url, contentType string, payload []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("[Inference] API error: Status %d, Body: %s", resp.StatusCode, preview(body))
		return nil, fmt.Errorf("API returned status %d: %s", resp.StatusCode, preview(body))
	}
	return body, nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
