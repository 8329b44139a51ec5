package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// ErrNotConfigured reports a missing or placeholder API key. It is detected
// before any network I/O and must not be treated as a transport failure.
var ErrNotConfigured = errors.New("gemini: api key not configured")

// TransportError wraps any network-level failure of a generateContent call.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "gemini: transport failure: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// GenerationParams is the per-intent tuning sent with every request.
type GenerationParams struct {
	Temperature     float64
	MaxOutputTokens int
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type safetySetting struct {
	Category  string `json:"category"`
	Threshold string `json:"threshold"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
	SafetySettings   []safetySetting  `json:"safetySettings"`
}

// Safety thresholds are fixed; they are not user-configurable.
var safetySettings = []safetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}

// Client issues generateContent calls against the Gemini REST API.
// It holds no per-request state; one Client is shared across workers.
type Client struct {
	baseURL string
	model   string
	key     string
	http    *http.Client
}

func NewClient(baseURL, model, key string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   model,
		key:     key,
		http:    &http.Client{},
	}
}

// Invoke performs exactly one synchronous generateContent call and returns
// the raw response body. No retries. Non-2xx responses with a readable body
// are returned as-is; the interpreter handles upstream error payloads.
func (c *Client) Invoke(ctx context.Context, prompt string, params GenerationParams) ([]byte, error) {
	key := strings.TrimSpace(c.key)
	if key == "" || strings.Contains(key, "${") {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     params.Temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: params.MaxOutputTokens,
		},
		SafetySettings: safetySettings,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.baseURL, c.model, url.QueryEscape(key))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	return raw, nil
}
