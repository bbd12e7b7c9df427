package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "https://openrouter.ai/api/v1"
	completionsPath = "/chat/completions"

	// maxTimeout caps a single attempt; slow models are abandoned and the
	// cascade moves on.
	maxTimeout = 30 * time.Second

	// minContentChars is the shortest trimmed completion accepted as a
	// real rewrite.
	minContentChars = 10

	maxDetailBytes = 2048
)

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	// RequestsPerSecond throttles outbound calls. Zero means unthrottled.
	RequestsPerSecond float64
}

// Client speaks the OpenAI-style chat-completions protocol. Each Complete
// call is exactly one HTTP attempt; fallback across models lives in Cascade.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	limiter    *rate.Limiter
}

type chatRequest struct {
	Model            string        `json:"model"`
	Messages         []chatMessage `json:"messages"`
	Temperature      float64       `json:"temperature"`
	MaxTokens        int           `json:"max_tokens"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	Stream           bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Completion is a successful gateway result.
type Completion struct {
	Text    string
	Model   string
	Elapsed time.Duration
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigError{Reason: "API key is required"}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	endpoint := baseURL
	if !strings.HasSuffix(endpoint, completionsPath) {
		endpoint += completionsPath
	}

	timeout := cfg.Timeout
	if timeout <= 0 || timeout > maxTimeout {
		timeout = maxTimeout
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &Client{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
	}, nil
}

// Complete performs a single chat-completions call for one candidate.
func (c *Client) Complete(ctx context.Context, cand Candidate, prompt string) (*Completion, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	payload := chatRequest{
		Model: cand.Model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		Temperature:      cand.Params.Temperature,
		MaxTokens:        cand.Params.MaxTokens,
		TopP:             cand.Params.TopP,
		FrequencyPenalty: cand.Params.FrequencyPenalty,
		PresencePenalty:  cand.Params.PresencePenalty,
		Stream:           false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &GatewayError{
			Kind:   FailureHTTP,
			Model:  cand.Model,
			Detail: "request failed",
			Cause:  err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &GatewayError{
			Kind:   FailureHTTP,
			Model:  cand.Model,
			Status: resp.StatusCode,
			Detail: "failed to read response body",
			Cause:  err,
		}
	}
	elapsed := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &GatewayError{
			Kind:   FailureHTTP,
			Model:  cand.Model,
			Status: resp.StatusCode,
			Detail: truncateDetail(string(respBody)),
		}
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &GatewayError{
			Kind:   FailureMalformed,
			Model:  cand.Model,
			Detail: "response body is not valid JSON",
			Cause:  err,
		}
	}

	if parsed.Error != nil {
		return nil, &GatewayError{
			Kind:   FailureMalformed,
			Model:  cand.Model,
			Detail: parsed.Error.Message,
		}
	}

	if len(parsed.Choices) == 0 {
		return nil, &GatewayError{
			Kind:   FailureMalformed,
			Model:  cand.Model,
			Detail: "response has no choices",
		}
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if len(content) < minContentChars {
		return nil, &GatewayError{
			Kind:   FailureEmpty,
			Model:  cand.Model,
			Detail: fmt.Sprintf("content is %d chars after trimming", len(content)),
		}
	}

	return &Completion{
		Text:    content,
		Model:   cand.Model,
		Elapsed: elapsed,
	}, nil
}

func truncateDetail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxDetailBytes {
		return s[:maxDetailBytes]
	}
	return s
}
