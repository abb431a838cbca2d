// File: skybook/services/assistant/generator.go
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"skybook/models"
)

// TextGenerator phrases a deterministic reply into natural language. It is
// presentation only: any failure falls back to the deterministic text and is
// never propagated as a turn failure.
type TextGenerator interface {
	Complete(ctx context.Context, messages []models.Message, contextHint string) (string, error)
}

type GeminiGenerator struct {
	model *genai.GenerativeModel
}

func NewGeminiGenerator(ctx context.Context, apiKey string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	model := client.GenerativeModel("models/gemini-1.5-pro")
	return &GeminiGenerator{model: model}, nil
}

func (g *GeminiGenerator) Complete(ctx context.Context, messages []models.Message, contextHint string) (string, error) {
	var sb strings.Builder
	for _, msg := range messages {
		fmt.Fprintf(&sb, "%s: %s\n", msg.Role, msg.Content)
	}
	if contextHint != "" {
		sb.WriteString("\nCurrent booking context: " + contextHint + "\n")
	}
	sb.WriteString("\nReply with the assistant's next message only.")

	resp, err := g.model.GenerateContent(ctx, genai.Text(sb.String()))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}

	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			out.WriteString(string(textPart))
		}
	}
	text := strings.TrimSpace(out.String())
	if text == "" {
		return "", errors.New("gemini returned empty text")
	}
	return text, nil
}
