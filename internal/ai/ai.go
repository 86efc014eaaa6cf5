package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/01moynul/flower-pricing-golang/internal/pricing"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DefaultModel is used when GEMINI_MODEL is not set.
const DefaultModel = "gemini-1.5-flash"

// ErrAssistantDisabled is returned when no Gemini API key was configured.
var ErrAssistantDisabled = errors.New("price sheet assistant is not configured")

// AIService answers questions about the current price sheet with Gemini.
type AIService struct {
	Client    *genai.Client
	ModelName string
}

// NewAIService initializes the Gemini client.
func NewAIService(ctx context.Context, apiKey, modelName string) (*AIService, error) {
	if apiKey == "" {
		return nil, ErrAssistantDisabled
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{Client: client, ModelName: modelName}, nil
}

// Close releases the Gemini client.
func (s *AIService) Close() error {
	return s.Client.Close()
}

// Ask answers one question about the price sheet. It returns the answer and
// the total tokens the request used.
func (s *AIService) Ask(ctx context.Context, question string, sheet pricing.PriceSheet) (string, int, error) {
	// 1. --- Configure the model ---
	model := s.Client.GenerativeModel(s.ModelName)

	sheetJSON, err := json.Marshal(sheet)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode price sheet: %w", err)
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(BuildInstruction(sheetJSON))},
	}

	// 2. --- Ask ---
	res, err := model.GenerateContent(ctx, genai.Text(question))
	if err != nil {
		return "", 0, fmt.Errorf("error sending message: %w", err)
	}

	// 3. --- Read the answer and count tokens ---
	totalTokens := 0
	if res.UsageMetadata != nil {
		totalTokens = int(res.UsageMetadata.TotalTokenCount)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "No response.", totalTokens, nil
	}

	var answer strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			answer.WriteString(string(text))
		}
	}
	if answer.Len() == 0 {
		return "No response.", totalTokens, nil
	}
	return answer.String(), totalTokens, nil
}

// BuildInstruction is the system prompt: the assistant's rules plus the price sheet itself.
func BuildInstruction(sheetJSON []byte) string {
	return fmt.Sprintf(`
		You are the flower pricing assistant for a wholesale florist.
		You answer questions about the current retail price sheet only.
		All amounts are US dollars. "stemCost" already includes supplier charges
		allocated to that line; "appliedMarkup" is a percentage.
		Rules: do not invent flowers or prices. Be concise.
		Price sheet (JSON): %s
	`, sheetJSON)
}
