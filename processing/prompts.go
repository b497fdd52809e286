package processing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ImagePromptResponse is the structured output for a single segment's
// enriched illustration prompt.
type ImagePromptResponse struct {
	Prompt string `json:"prompt" jsonschema_description:"A detailed text-to-image prompt illustrating the sentence, with consistent storyboard styling."`
}

// GenerateSchema generates a JSON schema for structured outputs
func GenerateSchema[T any]() interface{} {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)
	return schema
}

// imagePromptSchema is the cached schema
var imagePromptSchema = GenerateSchema[ImagePromptResponse]()

// PromptEnricher optionally rewrites each segment's sentence into a richer
// illustration prompt before image generation. It is best-effort: any
// failure falls back to the raw sentence and never fails the run.
type PromptEnricher struct {
	client  openai.Client
	enabled bool
}

// NewPromptEnricher returns a disabled enricher when apiKey is empty or
// enabled is false; Enrich then just echoes the sentence.
func NewPromptEnricher(apiKey string, enabled bool) *PromptEnricher {
	e := &PromptEnricher{enabled: enabled && apiKey != ""}
	if e.enabled {
		e.client = openai.NewClient(option.WithAPIKey(apiKey))
	}
	return e
}

// Enrich returns the illustration prompt to use for one segment sentence.
func (e *PromptEnricher) Enrich(ctx context.Context, sentence string) string {
	if !e.enabled {
		return sentence
	}

	prompt := fmt.Sprintf(`You are illustrating one frame of a storyboard.
The sentence being narrated is: "%s".

Write a single, detailed text-to-image prompt that illustrates this sentence.
The prompt should:
- Describe one concrete scene, not a sequence
- Keep a consistent storyboard illustration style across frames
- Avoid text, captions, or lettering in the image`, sentence)

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        "image_prompt",
		Description: openai.String("An illustration prompt for one storyboard frame"),
		Schema:      imagePromptSchema,
		Strict:      openai.Bool(true),
	}

	chatCompletion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModelGPT4oMini,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	})
	if err != nil {
		log.Printf("Prompt enrichment failed, using raw sentence: %v", err)
		return sentence
	}
	if len(chatCompletion.Choices) == 0 {
		return sentence
	}

	var resp ImagePromptResponse
	raw := chatCompletion.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		log.Printf("Failed to parse enrichment response, using raw sentence: %v", err)
		return sentence
	}

	enriched := strings.TrimSpace(resp.Prompt)
	if enriched == "" {
		return sentence
	}
	return enriched
}
