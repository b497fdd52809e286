package generation

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIImageClient generates storyboard illustrations with the OpenAI
// images API.
type OpenAIImageClient struct {
	client openai.Client
}

// NewOpenAIImageClient builds a client for the given API key.
func NewOpenAIImageClient(apiKey string) *OpenAIImageClient {
	return &OpenAIImageClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *OpenAIImageClient) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	resp, err := c.client.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt:         prompt,
		Model:          openai.ImageModelDallE3,
		Size:           openai.ImageGenerateParamsSize1024x1024,
		ResponseFormat: openai.ImageGenerateParamsResponseFormatB64JSON,
		N:              openai.Int(1),
	})
	if err != nil {
		return nil, wrapErr(ErrImageFailed, err)
	}
	if len(resp.Data) == 0 {
		return nil, wrapErr(ErrImageFailed, fmt.Errorf("empty image response"))
	}

	raw, err := base64.StdEncoding.DecodeString(resp.Data[0].B64JSON)
	if err != nil {
		return nil, wrapErr(ErrImageFailed, fmt.Errorf("decoding image payload: %v", err))
	}

	log.Printf("Generated image for prompt %q (%d bytes)", truncate(prompt, 60), len(raw))

	return &ImageResult{
		Bytes:     raw,
		SourceURI: "openai://images/dall-e-3",
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
