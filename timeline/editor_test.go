package timeline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

type stubImageClient struct {
	result *generation.ImageResult
	err    error
	calls  []string
}

func (s *stubImageClient) GenerateImage(ctx context.Context, prompt string) (*generation.ImageResult, error) {
	s.calls = append(s.calls, prompt)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func editorFixture(images generation.ImageClient) (*Editor, *models.TimelineState) {
	t := &models.TimelineState{
		Visuals: []*models.VisualAsset{
			{ID: "v1", SegmentIndex: 0, Prompt: "First scene.", SourceURI: "fake://a", Image: []byte("a"), StartTime: 0, Duration: 5},
			{ID: "v2", SegmentIndex: 1, Prompt: "Second scene.", SourceURI: "fake://b", Image: []byte("b"), StartTime: 5, Duration: 5},
			{ID: "v3", SegmentIndex: 2, Prompt: "Third scene.", SourceURI: "fake://c", Image: []byte("c"), StartTime: 10, Duration: 5},
		},
		Subtitles: []models.SubtitleCue{
			{Text: "First scene.", StartTime: 0, EndTime: 5},
			{Text: "Second scene.", StartTime: 5, EndTime: 10},
			{Text: "Third scene.", StartTime: 10, EndTime: 15},
		},
	}
	return NewEditor(t, images), t
}

func TestSetDuration(t *testing.T) {
	e, timeline := editorFixture(&stubImageClient{})

	require.NoError(t, e.SetDuration("v2", 8))
	assert.Equal(t, 8.0, timeline.Visuals[1].Duration)

	// The caption window follows the edited clip.
	assert.Equal(t, 13.0, timeline.Subtitles[1].EndTime)
}

func TestSetDurationDoesNotReflowLaterClips(t *testing.T) {
	e, timeline := editorFixture(&stubImageClient{})

	require.NoError(t, e.SetDuration("v1", 9))

	// Only the edited clip's window changes; the rest keep their start
	// times even though the timeline now overlaps.
	assert.Equal(t, 5.0, timeline.Visuals[1].StartTime)
	assert.Equal(t, 10.0, timeline.Visuals[2].StartTime)
	assert.Equal(t, 5.0, timeline.Subtitles[1].StartTime)
}

func TestSetDurationRejectsNonPositive(t *testing.T) {
	e, timeline := editorFixture(&stubImageClient{})

	for _, bad := range []float64{0, -1, -0.001} {
		err := e.SetDuration("v1", bad)
		assert.ErrorIs(t, err, ErrInvalidDuration, "seconds=%v", bad)
		assert.Equal(t, 5.0, timeline.Visuals[0].Duration, "prior duration must survive a rejected edit")
	}
}

func TestSetDurationUnknownClip(t *testing.T) {
	e, _ := editorFixture(&stubImageClient{})
	assert.ErrorIs(t, e.SetDuration("nope", 3), ErrAssetNotFound)
}

func TestSwapVisualReplacesOnlyArtwork(t *testing.T) {
	images := &stubImageClient{result: &generation.ImageResult{
		Bytes:     []byte("fresh"),
		SourceURI: "fake://fresh",
	}}
	e, timeline := editorFixture(images)

	require.NoError(t, e.SwapVisual(context.Background(), "v2"))

	v := timeline.Visuals[1]
	assert.Equal(t, "v2", v.ID)
	assert.Equal(t, 5.0, v.StartTime)
	assert.Equal(t, 5.0, v.Duration)
	assert.Equal(t, []byte("fresh"), v.Image)
	assert.Equal(t, "fake://fresh", v.SourceURI)

	// The re-request uses the original segment prompt.
	require.Len(t, images.calls, 1)
	assert.Equal(t, "Second scene.", images.calls[0])
}

func TestSwapVisualFailureKeepsOldArtwork(t *testing.T) {
	images := &stubImageClient{err: fmt.Errorf("%w: synthetic", generation.ErrImageFailed)}
	e, timeline := editorFixture(images)

	err := e.SwapVisual(context.Background(), "v1")
	assert.Error(t, err)
	assert.Equal(t, []byte("a"), timeline.Visuals[0].Image)
	assert.Equal(t, "fake://a", timeline.Visuals[0].SourceURI)
}

func TestSelectDeselect(t *testing.T) {
	e, _ := editorFixture(&stubImageClient{})

	require.NoError(t, e.SelectAsset("v3"))
	assert.Equal(t, "v3", e.Selected())

	e.Deselect()
	assert.Equal(t, "", e.Selected())

	assert.ErrorIs(t, e.SelectAsset("missing"), ErrAssetNotFound)
}

func TestEditsToDifferentClipsAreIndependent(t *testing.T) {
	e, timeline := editorFixture(&stubImageClient{})

	require.NoError(t, e.SetDuration("v1", 2))
	require.NoError(t, e.SetDuration("v3", 7))

	assert.Equal(t, 2.0, timeline.Visuals[0].Duration)
	assert.Equal(t, 5.0, timeline.Visuals[1].Duration)
	assert.Equal(t, 7.0, timeline.Visuals[2].Duration)
}
