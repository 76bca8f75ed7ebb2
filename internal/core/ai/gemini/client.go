package gemini

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ryan-miles/meals.stellation.one/internal/infrastructure/config"
	"github.com/ryan-miles/meals.stellation.one/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const baseURL = "https://generativelanguage.googleapis.com/v1beta"

// Client talks to the hosted Gemini generation API. The underlying HTTP
// client is built once on first use and reused for the process lifetime;
// credentials do not rotate mid-process, so there is no invalidation.
type Client struct {
	config *config.GeminiConfig
	client *resty.Client
}

// NewClient creates a client. The API key is checked on first use, not
// here, so read-only deployments can construct the wiring without one.
func NewClient(cfg *config.GeminiConfig) *Client {
	return &Client{config: cfg}
}

// ensureInitialized builds the HTTP client once. Fails with a configuration
// error when no API key is set.
func (c *Client) ensureInitialized() error {
	if c.client != nil {
		return nil
	}
	if c.config.APIKey == "" {
		return common.NewConfigurationError("GEMINI_API_KEY is not set")
	}
	c.client = resty.New().
		SetBaseURL(baseURL).
		SetTimeout(c.config.Timeout).
		SetQueryParam("key", c.config.APIKey)
	return nil
}

// GenerateContent sends the prompt to the model and returns the raw
// response text. No retries: a failed call surfaces immediately.
func (c *Client) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if err := c.ensureInitialized(); err != nil {
		return "", err
	}

	req := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]string{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"maxOutputTokens": c.config.MaxTokens,
		},
	}

	common.LogInfo("sending request to generation API",
		zap.String("model", c.config.Model),
		zap.Int("prompt_length", len(prompt)),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		Post(fmt.Sprintf("/models/%s:generateContent", c.config.Model))

	if err != nil {
		return "", fmt.Errorf("failed to send request to generation API: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("generation API returned error: %s", resp.String())
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}

	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse generation API response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no candidates in generation API response")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty content in generation API response")
	}

	common.LogInfo("received response from generation API",
		zap.String("model", c.config.Model),
		zap.Int("content_length", len(text)),
	)

	return text, nil
}
