package vision

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vaesta/outfit-advisor/internal/domain/outfit"
	"github.com/vaesta/outfit-advisor/internal/domain/wardrobe"
	"github.com/vaesta/outfit-advisor/internal/infra/llm/chatgpt"
)

const extractionPrompt = `Analyze the garment in this photo and answer with a single JSON object:
{
  "category": one of "outerwear", "top", "bottom", "dress", "shoes", "accessory",
  "color": dominant color as a short lowercase phrase (e.g. "navy", "dark red"),
  "pattern": one of "solid", "patterned", "busy",
  "warmth": integer 1-5 (1 = summer-weight, 5 = heavy winter),
  "impermeability": integer 1-3 (1 = absorbs water, 3 = waterproof),
  "layering": integer 1-5 (1 = always outermost, 5 = base layer),
  "description": one sentence describing the garment
}
Answer with the JSON object only, no markdown.`

// ChatGPTVision extracts garment attributes from photos through a
// vision-capable chat model.
type ChatGPTVision struct {
	client *chatgpt.Client
	model  string
	logger *slog.Logger
}

// NewChatGPTVision constructs the vision adapter.
func NewChatGPTVision(client *chatgpt.Client, model string, logger *slog.Logger) *ChatGPTVision {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatGPTVision{
		client: client,
		model:  strings.TrimSpace(model),
		logger: logger.With("component", "vision.chatgpt"),
	}
}

// ExtractAttributes sends the image to the model and parses the structured reply.
func (v *ChatGPTVision) ExtractAttributes(ctx context.Context, imageData []byte, mimeType string) (wardrobe.Attributes, error) {
	if v.client == nil {
		return wardrobe.Attributes{}, errors.New("vision model not configured")
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(imageData))
	resp, err := v.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: v.model,
		Messages: []chatgpt.Message{
			chatgpt.VisionMessage("user", extractionPrompt, dataURL),
		},
	})
	if err != nil {
		return wardrobe.Attributes{}, fmt.Errorf("vision completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return wardrobe.Attributes{}, errors.New("vision completion returned no choices")
	}
	attrs, err := parseAttributes(resp.Choices[0].Message.Content)
	if err != nil {
		v.logger.Warn("unparseable vision reply", "error", err)
		return wardrobe.Attributes{}, err
	}
	return attrs, nil
}

func parseAttributes(raw string) (wardrobe.Attributes, error) {
	sanitized := strings.TrimSpace(raw)
	sanitized = strings.TrimPrefix(sanitized, "```json")
	sanitized = strings.TrimSuffix(sanitized, "```")
	sanitized = strings.Trim(sanitized, "`")
	sanitized = strings.TrimSpace(strings.TrimPrefix(sanitized, "json"))

	var wire struct {
		Category       string `json:"category"`
		Color          string `json:"color"`
		Pattern        string `json:"pattern"`
		Warmth         int    `json:"warmth"`
		Impermeability int    `json:"impermeability"`
		Layering       int    `json:"layering"`
		Description    string `json:"description"`
	}
	if err := json.Unmarshal([]byte(sanitized), &wire); err != nil {
		return wardrobe.Attributes{}, fmt.Errorf("decode vision reply: %w", err)
	}

	return wardrobe.Attributes{
		Category:       outfit.Category(strings.ToLower(strings.TrimSpace(wire.Category))),
		Color:          strings.ToLower(strings.TrimSpace(wire.Color)),
		Pattern:        outfit.Pattern(strings.ToLower(strings.TrimSpace(wire.Pattern))),
		Warmth:         wire.Warmth,
		Impermeability: wire.Impermeability,
		Layering:       wire.Layering,
		Description:    strings.TrimSpace(wire.Description),
	}, nil
}

var _ wardrobe.VisionClient = (*ChatGPTVision)(nil)
