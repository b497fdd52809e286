// Package generation holds the clients for the external generative
// services: illustration images, speech synthesis, and background music.
// Every service failure is converted to a typed error at this boundary;
// callers never see raw transport faults.
package generation

import (
	"context"
	"errors"
	"fmt"
)

// Service failure kinds. The binder drops a segment on ErrImageFailed and
// aborts the whole run on ErrSpeechFailed.
var (
	ErrImageFailed  = errors.New("image generation failed")
	ErrSpeechFailed = errors.New("speech synthesis failed")
	ErrMusicFailed  = errors.New("music generation failed")
)

// ImageResult is a successfully generated illustration.
type ImageResult struct {
	Bytes     []byte
	SourceURI string
}

// SpeechResult is raw synthesizer output: mono 16-bit PCM samples and the
// rate they were produced at. Callers wrap it in a container before use.
type SpeechResult struct {
	PCM        []byte
	SampleRate int
}

// MusicResult references a generated background track.
type MusicResult struct {
	SourceURI string
}

// ImageClient generates one illustration per prompt.
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}

// SpeechClient synthesizes the full script in one of the preset voices.
type SpeechClient interface {
	Synthesize(ctx context.Context, text, voice string) (*SpeechResult, error)
}

// MusicClient produces a background track for the run.
type MusicClient interface {
	GenerateMusic(ctx context.Context, mood string) (*MusicResult, error)
}

// Voices are the eight selectable narrator presets.
var Voices = []string{
	"alloy", "ash", "coral", "echo", "fable", "onyx", "nova", "shimmer",
}

// ValidVoice reports whether name is one of the presets.
func ValidVoice(name string) bool {
	for _, v := range Voices {
		if v == name {
			return true
		}
	}
	return false
}

// DefaultVoice is used when a request does not pick one.
const DefaultVoice = "alloy"

func wrapErr(kind error, err error) error {
	return fmt.Errorf("%w: %v", kind, err)
}
