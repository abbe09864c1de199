package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// GenerateParams are the sampling parameters forwarded to the inference API.
type GenerateParams struct {
	MaxNewTokens int     `json:"max_new_tokens"`
	Temperature  float64 `json:"temperature"`
	TopP         float64 `json:"top_p"`
	DoSample     bool    `json:"do_sample"`
}

// Client provides access to the text-generation model.
type Client interface {
	// Generate sends the prompt and returns the raw generated text.
	Generate(ctx context.Context, prompt string, params GenerateParams) (string, error)
}

// hfClient implements Client against the Hugging Face Inference API.
type hfClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client for the configured inference endpoint.
func NewClient(cfg Config) Client {
	return &hfClient{
		cfg:  cfg,
		http: &http.Client{},
	}
}

// hfRequest is the JSON body for POST {endpoint}.
type hfRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters GenerateParams `json:"parameters"`
}

// hfGeneration is one element of the array the inference API returns.
type hfGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func (c *hfClient) Generate(ctx context.Context, prompt string, params GenerateParams) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	data, err := json.Marshal(hfRequest{Inputs: prompt, Parameters: params})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, string(body))
	}

	var generations []hfGeneration
	if err := json.Unmarshal(body, &generations); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if len(generations) == 0 {
		return "", nil
	}

	return generations[0].GeneratedText, nil
}
