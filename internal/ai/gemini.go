package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	if model == "" {
		model = defaultGeminiModel
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, messages []Message) (string, error) {
	var system, prompt []string
	for _, m := range messages {
		if m.Role == "system" {
			system = append(system, m.Content)
			continue
		}
		prompt = append(prompt, m.Content)
	}

	config := &genai.GenerateContentConfig{}
	if len(system) > 0 {
		config.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n"), genai.RoleUser)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model,
		genai.Text(strings.Join(prompt, "\n")), config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	reply := cleanReply(result.Text())
	if isGarbageResponse(reply) {
		return "", fmt.Errorf("gemini returned garbage")
	}
	return reply, nil
}
