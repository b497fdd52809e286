package models

// SubtitleCue shows its text over the half-open window [StartTime, EndTime).
type SubtitleCue struct {
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// Active reports whether the cue covers the given playback position.
func (c SubtitleCue) Active(position float64) bool {
	return position >= c.StartTime && position < c.EndTime
}

// SoundCue is a one-shot audio trigger. Fired flips false→true exactly once
// per run; only starting a new run resets it.
type SoundCue struct {
	ID          string  `json:"id"`
	SourceURI   string  `json:"source_uri"`
	TriggerTime float64 `json:"trigger_time"`
	Fired       bool    `json:"fired"`
}
