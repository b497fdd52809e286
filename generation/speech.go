package generation

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// The speech endpoint streams raw PCM at a fixed rate when asked for the
// pcm response format: mono, 16-bit, little-endian.
const speechSampleRate = 24000

// OpenAISpeechClient synthesizes the voice-over with the OpenAI speech API.
type OpenAISpeechClient struct {
	client openai.Client
}

// NewOpenAISpeechClient builds a client for the given API key.
func NewOpenAISpeechClient(apiKey string) *OpenAISpeechClient {
	return &OpenAISpeechClient{
		client: openai.NewClient(option.WithAPIKey(apiKey)),
	}
}

func (c *OpenAISpeechClient) Synthesize(ctx context.Context, text, voice string) (*SpeechResult, error) {
	if !ValidVoice(voice) {
		return nil, wrapErr(ErrSpeechFailed, fmt.Errorf("unknown voice %q", voice))
	}

	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatPCM,
	})
	if err != nil {
		return nil, wrapErr(ErrSpeechFailed, err)
	}
	defer resp.Body.Close()

	pcm, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErr(ErrSpeechFailed, fmt.Errorf("reading speech stream: %v", err))
	}
	if len(pcm) == 0 {
		return nil, wrapErr(ErrSpeechFailed, fmt.Errorf("empty speech response"))
	}

	log.Printf("Synthesized %d PCM bytes with voice %q", len(pcm), voice)

	return &SpeechResult{
		PCM:        pcm,
		SampleRate: speechSampleRate,
	}, nil
}
