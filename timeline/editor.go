// Package timeline is the manual editing overlay on a bound run: retime
// one clip or swap its artwork after generation. Every mutation is scoped
// to a single visual asset; later assets' start times never re-flow.
package timeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

var (
	// ErrInvalidDuration rejects a non-positive duration edit; the prior
	// value is kept.
	ErrInvalidDuration = errors.New("duration must be positive")
	// ErrAssetNotFound means the clip id is not in the current timeline.
	ErrAssetNotFound = errors.New("asset not found")
)

// Editor mutates one run's timeline in place.
type Editor struct {
	timeline *models.TimelineState
	images   generation.ImageClient

	selected string
}

// NewEditor wraps a bound timeline. The image client serves clip swaps.
func NewEditor(timeline *models.TimelineState, images generation.ImageClient) *Editor {
	return &Editor{timeline: timeline, images: images}
}

// SelectAsset marks a clip as the edit target.
func (e *Editor) SelectAsset(id string) error {
	if e.timeline.VisualByID(id) == nil {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}
	e.selected = id
	return nil
}

// Deselect clears the edit target.
func (e *Editor) Deselect() {
	e.selected = ""
}

// Selected returns the current edit target id, or empty.
func (e *Editor) Selected() string {
	return e.selected
}

// SetDuration overrides one clip's duration. The clip's own window and
// its caption window change; subsequent clips keep their start times, so
// an extended clip can overlap its neighbor. That is the documented edit
// semantics, not something to re-flow away.
func (e *Editor) SetDuration(id string, seconds float64) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidDuration, seconds)
	}
	asset := e.timeline.VisualByID(id)
	if asset == nil {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	asset.Duration = seconds
	for i := range e.timeline.Subtitles {
		cue := &e.timeline.Subtitles[i]
		if cue.StartTime == asset.StartTime {
			cue.EndTime = asset.StartTime + seconds
			break
		}
	}
	return nil
}

// SwapVisual re-requests a clip's artwork with its original prompt and
// replaces only the image and source reference. Id and timing survive.
func (e *Editor) SwapVisual(ctx context.Context, id string) error {
	asset := e.timeline.VisualByID(id)
	if asset == nil {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, id)
	}

	res, err := e.images.GenerateImage(ctx, asset.Prompt)
	if err != nil {
		return err
	}

	asset.Image = res.Bytes
	asset.SourceURI = res.SourceURI
	return nil
}
