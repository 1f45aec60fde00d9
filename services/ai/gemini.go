package ai

import (
	"context"
	"fmt"
	"strings"

	"matero/config"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiChatClient is an alternative ChatClient backed by the Gemini API.
// It answers whole replies; streaming degrades to a single chunk.
type GeminiChatClient struct {
	model *genai.GenerativeModel
}

func NewGeminiChatClient() (*GeminiChatClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(config.AppConfig.GeminiModel)
	return &GeminiChatClient{model: model}, nil
}

// Send flattens the message list into one prompt and extracts any embedded
// action from the reply text.
func (g *GeminiChatClient) Send(ctx context.Context, messages []Message) (*ChatResult, error) {
	var prompt strings.Builder
	for _, m := range messages {
		prompt.WriteString(m.Role)
		prompt.WriteString(": ")
		prompt.WriteString(m.Content)
		prompt.WriteString("\n")
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt.String()))
	if err != nil {
		return nil, fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	display, action := ExtractAction(sb.String())
	return &ChatResult{Reply: display, Action: action}, nil
}

// SendStream emits the whole reply as one chunk.
func (g *GeminiChatClient) SendStream(ctx context.Context, messages []Message, onChunk func(string)) (*ChatResult, error) {
	result, err := g.Send(ctx, messages)
	if err != nil {
		return nil, err
	}
	if onChunk != nil && result.Reply != "" {
		onChunk(result.Reply)
	}
	return result, nil
}
