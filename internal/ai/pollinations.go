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

	"protocol-zero/pkg/retrylimit"
)

// PollinationsProvider talks to the keyless text.pollinations.ai endpoint.
// The endpoint is flaky under load, so calls go through an adaptive limiter
// with a couple of retries.
type PollinationsProvider struct {
	client  *http.Client
	limiter *retrylimit.AdaptiveLimiter
}

func NewPollinationsProvider() *PollinationsProvider {
	return &PollinationsProvider{
		client:  &http.Client{Timeout: 25 * time.Second},
		limiter: retrylimit.NewAdaptiveLimiter(2, 1, 5, 1, 0.5),
	}
}

func (p *PollinationsProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	var reply string
	err := retrylimit.WithRetryMax(ctx, func() error {
		var ferr error
		reply, ferr = p.generateOnce(ctx, messages)
		return ferr
	}, p.limiter, 3)
	return reply, err
}

func (p *PollinationsProvider) generateOnce(ctx context.Context, messages []Message) (string, error) {
	payload := map[string]any{
		"model":       "openai",
		"messages":    messages,
		"temperature": 1,
		"private":     true,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://text.pollinations.ai/openai", bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("pollinations http %d: %s", resp.StatusCode, truncate(body))
	}
	if strings.Contains(resp.Header.Get("Content-Type"), "text/html") {
		return "", fmt.Errorf("pollinations returned html")
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("pollinations empty choices")
	}

	reply := cleanReply(parsed.Choices[0].Message.Content)
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("pollinations returned garbage")
	}
	return reply, nil
}
