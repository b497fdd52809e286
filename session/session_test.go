package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

type nopImageClient struct{}

func (nopImageClient) GenerateImage(ctx context.Context, prompt string) (*generation.ImageResult, error) {
	return &generation.ImageResult{Bytes: []byte("img")}, nil
}

func boundTimeline(id string) *models.TimelineState {
	return &models.TimelineState{
		Audio: &models.AudioTrack{WAV: []byte("wav"), SampleRate: 24000},
		Visuals: []*models.VisualAsset{
			{ID: id, StartTime: 0, Duration: 5, Image: []byte("img")},
		},
		Subtitles: []models.SubtitleCue{{Text: "Hi.", StartTime: 0, EndTime: 5}},
	}
}

func TestBeginRunIncrementsEpochAndCancelsPrior(t *testing.T) {
	s := newSession()

	_, ctx1, epoch1 := s.BeginRun("One.", "alloy")
	_, _, epoch2 := s.BeginRun("Two.", "alloy")

	assert.Greater(t, epoch2, epoch1)
	select {
	case <-ctx1.Done():
	default:
		t.Fatal("previous run context must be cancelled by a new run")
	}
}

func TestStaleCommitIsDiscarded(t *testing.T) {
	s := newSession()

	_, _, stale := s.BeginRun("Old.", "alloy")
	s.BeginRun("New.", "alloy")

	// The abandoned run finishes late; its timeline must not land.
	s.CommitTimeline(stale, boundTimeline("old"), nopImageClient{})
	ready, _ := s.WithTimeline(func(*models.TimelineState) error { return nil })
	assert.False(t, ready)

	st, ok := s.Status()
	require.True(t, ok)
	assert.Equal(t, models.StatusGenerating, st.Status)
	assert.Equal(t, "New.", s.active.Script)
}

func TestStaleFailureIsDiscarded(t *testing.T) {
	s := newSession()

	_, _, stale := s.BeginRun("Old.", "alloy")
	_, _, current := s.BeginRun("New.", "alloy")

	s.FailRun(stale, errors.New("late failure"))
	st, _ := s.Status()
	assert.Equal(t, models.StatusGenerating, st.Status)

	s.CommitTimeline(current, boundTimeline("new"), nopImageClient{})
	st, _ = s.Status()
	assert.Equal(t, models.StatusReady, st.Status)
}

func TestFailedRunKeepsPriorReadyTimeline(t *testing.T) {
	s := newSession()

	_, _, first := s.BeginRun("Good.", "alloy")
	s.CommitTimeline(first, boundTimeline("good"), nopImageClient{})

	_, _, second := s.BeginRun("Bad.", "alloy")
	s.FailRun(second, errors.New("speech service down"))

	st, _ := s.Status()
	assert.Equal(t, models.StatusFailed, st.Status)
	assert.Equal(t, models.Progress{}, st.Progress, "progress resets on failure")

	// The last successful storyboard stays usable.
	var visualID string
	ready, err := s.WithTimeline(func(t *models.TimelineState) error {
		visualID = t.Visuals[0].ID
		return nil
	})
	require.NoError(t, err)
	require.True(t, ready)
	assert.Equal(t, "good", visualID)
}

func TestTickRequiresReadyRun(t *testing.T) {
	s := newSession()

	_, ok := s.Tick(1.0)
	assert.False(t, ok)

	_, _, epoch := s.BeginRun("Hi.", "alloy")
	s.CommitTimeline(epoch, boundTimeline("v"), nopImageClient{})

	frame, ok := s.Tick(1.0)
	require.True(t, ok)
	assert.Equal(t, "Hi.", frame.Subtitle)
}

func TestNewRunResetsCueState(t *testing.T) {
	s := newSession()

	_, _, first := s.BeginRun("Hi.", "alloy")
	tl := boundTimeline("v")
	tl.Cues = []*models.SoundCue{{ID: "music", TriggerTime: 0}}
	s.CommitTimeline(first, tl, nopImageClient{})

	frame, _ := s.Tick(0.5)
	require.Len(t, frame.CuesToFire, 1)
	frame, _ = s.Tick(1.0)
	assert.Empty(t, frame.CuesToFire)

	// A fresh run gets fresh cues.
	_, _, second := s.BeginRun("Hi again.", "alloy")
	tl2 := boundTimeline("v2")
	tl2.Cues = []*models.SoundCue{{ID: "music", TriggerTime: 0}}
	s.CommitTimeline(second, tl2, nopImageClient{})

	frame, _ = s.Tick(0.5)
	assert.Len(t, frame.CuesToFire, 1)
}

func TestStatusIsSafeDuringProgressUpdates(t *testing.T) {
	s := newSession()
	_, _, epoch := s.BeginRun("A. B. C.", "alloy")

	// The worker hammers progress while a reader polls status, the way
	// the status handler does during a run. Snapshots must never expose
	// a torn or out-of-range count. Run under -race to catch regressions
	// to shared-pointer reads.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i <= 500; i++ {
			s.UpdateProgress(epoch, i, 500, 0)
		}
	}()

	for polling := true; polling; {
		select {
		case <-done:
			polling = false
		default:
			st, ok := s.Status()
			require.True(t, ok)
			assert.LessOrEqual(t, st.Progress.ImagesDone, 500)
		}
	}

	st, _ := s.Status()
	assert.Equal(t, 500, st.Progress.ImagesDone)
	assert.Equal(t, 500, st.Progress.ImagesTotal)
}

func TestManagerGetOrCreate(t *testing.T) {
	m := NewManager()

	s1 := m.GetOrCreate("")
	require.NotNil(t, s1)
	assert.Equal(t, 1, m.Len())

	s2 := m.GetOrCreate(s1.ID)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, m.Len())

	// Unknown ids get a fresh session rather than an error.
	s3 := m.GetOrCreate("unknown-id")
	assert.NotSame(t, s1, s3)
	assert.Equal(t, 2, m.Len())
}

func TestManagerEvictIdle(t *testing.T) {
	m := NewManager()

	stale := m.GetOrCreate("")
	stale.mu.Lock()
	stale.lastSeen = time.Now().Add(-3 * time.Hour)
	stale.mu.Unlock()

	fresh := m.GetOrCreate("")
	require.Equal(t, 2, m.Len())

	evicted := m.EvictIdle(2 * time.Hour)
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 1, m.Len())
	assert.Nil(t, m.Get(stale.ID))
	assert.NotNil(t, m.Get(fresh.ID))
}
