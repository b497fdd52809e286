// Package playback resolves what the storyboard shows at a given point in
// the voice-over. It is the only consumer of the playback clock: the same
// position always yields the same frame, except for sound cues, whose
// fired flags advance exactly once.
package playback

import (
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

// Frame is everything active at one playback position.
type Frame struct {
	// Visual is nil when no asset covers the position; the caller renders
	// a blank fill, never stale content.
	Visual *models.VisualAsset `json:"visual"`
	// Subtitle is empty when no caption window covers the position.
	Subtitle string `json:"subtitle"`
	// CuesToFire are the cues whose trigger time has been reached and
	// which have not fired yet. Fire commits them.
	CuesToFire []*models.SoundCue `json:"cues_to_fire"`
}

// Synchronizer drives the three presentation channels off one clock.
type Synchronizer struct {
	timeline *models.TimelineState
}

// New wraps a bound timeline. The timeline's cue flags are the only state
// the synchronizer mutates.
func New(timeline *models.TimelineState) *Synchronizer {
	return &Synchronizer{timeline: timeline}
}

// Resolve computes the frame for a playback position without touching any
// state. Windows are half-open: at an exact boundary the earlier asset is
// already inactive and the next one is active. If overlapping windows ever
// match (possible after a manual edit), the first in list order wins.
func (s *Synchronizer) Resolve(position float64) Frame {
	var frame Frame

	for _, cue := range s.timeline.Subtitles {
		if cue.Active(position) {
			frame.Subtitle = cue.Text
			break
		}
	}

	for _, v := range s.timeline.Visuals {
		if position >= v.StartTime && position < v.EndTime() {
			frame.Visual = v
			break
		}
	}

	for _, cue := range s.timeline.Cues {
		if position >= cue.TriggerTime && !cue.Fired {
			frame.CuesToFire = append(frame.CuesToFire, cue)
		}
	}

	return frame
}

// Fire marks the given cues fired. A fired cue never triggers again within
// the run, including after seeking backward past its trigger time.
func (s *Synchronizer) Fire(cues []*models.SoundCue) {
	for _, cue := range cues {
		cue.Fired = true
	}
}

// Tick is Resolve plus Fire: one playback-position update.
func (s *Synchronizer) Tick(position float64) Frame {
	frame := s.Resolve(position)
	s.Fire(frame.CuesToFire)
	return frame
}
