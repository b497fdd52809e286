// Package session holds the per-browser-session storyboard state. Nothing
// here is persisted: a session lives in memory for the life of the tab
// plus an idle grace period.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/generation"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/playback"
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/timeline"
)

// Session is one user's storyboard workspace. All state transitions are
// serialized by the mutex, mirroring the single-threaded event loop of
// the browser UI: a tick always runs to completion before the next.
type Session struct {
	ID string

	mu       sync.Mutex
	epoch    int64
	cancel   context.CancelFunc
	active   *models.Run // the run currently generating or last attempted
	ready    *models.Run // the last successfully bound run
	editor   *timeline.Editor
	synchro  *playback.Synchronizer
	lastSeen time.Time
}

func newSession() *Session {
	return &Session{
		ID:       uuid.New().String(),
		lastSeen: time.Now(),
	}
}

// Touch refreshes the idle-eviction clock.
func (s *Session) Touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// BeginRun starts a new generation epoch. Any in-flight run is cancelled
// and its late completions will be discarded; the last ready run stays
// available until this one succeeds.
func (s *Session) BeginRun(script, voice string) (*models.Run, context.Context, int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	s.epoch++

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.active = &models.Run{
		ID:     uuid.New().String(),
		Epoch:  s.epoch,
		Script: script,
		Voice:  voice,
		Status: models.StatusGenerating,
	}
	return s.active, ctx, s.epoch
}

// SetSegments records the planned segments for the active run.
func (s *Session) SetSegments(epoch int64, segments []models.Segment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.active.Segments = segments
	s.active.Progress.ImagesTotal = len(segments)
}

// UpdateProgress records image fan-out progress for the status endpoint.
func (s *Session) UpdateProgress(epoch int64, done, total, failed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.active.Progress = models.Progress{
		ImagesDone:     done,
		ImagesTotal:    total,
		FailedSegments: failed,
	}
}

// CommitTimeline installs a bound timeline for the given epoch. Stale
// completions from an abandoned run are dropped here.
func (s *Session) CommitTimeline(epoch int64, t *models.TimelineState, images generation.ImageClient) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		log.Printf("Session %s: dropping stale timeline from epoch %d (current %d)", s.ID, epoch, s.epoch)
		return
	}

	s.active.Timeline = t
	s.active.Status = models.StatusReady
	s.ready = s.active
	s.editor = timeline.NewEditor(t, images)
	s.synchro = playback.New(t)
}

// FailRun marks the active run failed and resets its progress. The last
// ready run, if any, is left untouched.
func (s *Session) FailRun(epoch int64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		log.Printf("Session %s: ignoring failure from stale epoch %d: %v", s.ID, epoch, err)
		return
	}
	log.Printf("Session %s: run failed: %v", s.ID, err)
	s.active.Status = models.StatusFailed
	s.active.Progress = models.Progress{}
}

// RunStatus is a point-in-time copy of the active run's reportable state.
// Handlers get copies, never the live run pointer: the worker keeps
// writing to the run under the session lock while they respond.
type RunStatus struct {
	RunID    string
	Status   string
	Progress models.Progress
}

// Status returns a copy of the active run's state; false before the
// first generation.
func (s *Session) Status() (RunStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return RunStatus{}, false
	}
	return RunStatus{
		RunID:    s.active.ID,
		Status:   s.active.Status,
		Progress: s.active.Progress,
	}, true
}

// WithTimeline runs fn against the last ready timeline under the session
// lock, so a concurrent edit cannot tear the read. Returns false when no
// run is ready.
func (s *Session) WithTimeline(fn func(*models.TimelineState) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready == nil || s.ready.Timeline == nil {
		return false, nil
	}
	return true, fn(s.ready.Timeline)
}

// VisualImage returns a clip's image bytes, read under the session lock
// so a concurrent swap cannot tear the read.
func (s *Session) VisualImage(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready == nil || s.ready.Timeline == nil {
		return nil, false
	}
	v := s.ready.Timeline.VisualByID(id)
	if v == nil {
		return nil, false
	}
	return v.Image, true
}

// Tick resolves the playback frame at position and fires due sound cues.
// Returns false when no run is ready.
func (s *Session) Tick(position float64) (playback.Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.synchro == nil {
		return playback.Frame{}, false
	}
	return s.synchro.Tick(position), true
}

// Edit runs fn against the current editor under the session lock. Returns
// false when no run is ready to edit.
func (s *Session) Edit(fn func(*timeline.Editor) error) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return false, nil
	}
	return true, fn(s.editor)
}

// Stop cancels any in-flight run.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
