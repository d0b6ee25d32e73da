// Package llm is a small chat-completions client. It speaks the OpenAI wire
// shape and works against OpenAI or OpenRouter depending on which key/base
// pair is configured.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Client issues one-shot plain-text completions.
type Client struct {
	HTTP *http.Client
}

func New() *Client {
	return &Client{HTTP: &http.Client{Timeout: 45 * time.Second}}
}

// Complete sends a single user prompt to the configured chat/completions
// endpoint and returns the model's text.
func (c *Client) Complete(ctx context.Context, model, system, user string) (string, error) {
	apiKey := strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	usingOpenRouter := false
	if apiKey == "" {
		apiKey = strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY"))
		if apiKey != "" {
			usingOpenRouter = true
		}
	}
	if apiKey == "" {
		return "", errors.New("API key missing: set OPENAI_API_KEY or OPENROUTER_API_KEY")
	}
	if model == "" {
		return "", errors.New("model missing")
	}
	if strings.Contains(strings.ToLower(model), "openrouter/") {
		usingOpenRouter = true
	}

	base := strings.TrimSpace(os.Getenv("OPENAI_API_BASE"))
	if base == "" {
		base = strings.TrimSpace(os.Getenv("OPENAI_BASE_URL"))
	}
	if base == "" {
		base = strings.TrimSpace(os.Getenv("OPENROUTER_API_BASE"))
	}
	if base == "" {
		if usingOpenRouter {
			base = "https://openrouter.ai/api/v1"
		} else {
			base = "https://api.openai.com/v1"
		}
	}
	base = strings.TrimRight(base, "/")
	if strings.Contains(base, "openrouter.ai") {
		if v := strings.TrimSpace(os.Getenv("OPENROUTER_API_KEY")); v != "" {
			apiKey = v
		}
	}

	payload := map[string]any{
		"model": model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_TEMPERATURE")); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			payload["temperature"] = f
		}
	}
	if v := strings.TrimSpace(os.Getenv("OPENAI_MAX_OUTPUT_TOKENS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			payload["max_tokens"] = n
		}
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, base+"/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+apiKey)
	if v := strings.TrimSpace(os.Getenv("OPENROUTER_SITE_URL")); v != "" {
		req.Header.Set("HTTP-Referer", v)
	}
	if v := strings.TrimSpace(os.Getenv("OPENROUTER_TITLE")); v != "" {
		req.Header.Set("X-Title", v)
	}

	httpc := c.HTTP
	if httpc == nil {
		httpc = &http.Client{Timeout: 45 * time.Second}
	}
	resp, err := httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var buf bytes.Buffer
	_, _ = buf.ReadFrom(resp.Body)
	body := buf.Bytes()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("chat http %d: %s", resp.StatusCode, truncate(string(body), 800))
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &cc); err != nil {
		return "", err
	}
	if len(cc.Choices) == 0 {
		return "", errors.New("no choices returned")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
