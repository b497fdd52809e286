package models

// Run status values, in pipeline order.
const (
	StatusIdle       = "idle"
	StatusGenerating = "generating"
	StatusReady      = "ready"
	StatusFailed     = "failed"
)

// Run is one complete generation cycle for a session. Starting a new run
// discards the previous one entirely, including its sound cue state.
type Run struct {
	ID       string   `json:"id"`
	Epoch    int64    `json:"epoch"`
	Script   string   `json:"script"`
	Voice    string   `json:"voice"`
	Status   string   `json:"status"`
	Progress Progress `json:"progress"`

	Segments []Segment      `json:"segments"`
	Timeline *TimelineState `json:"timeline,omitempty"`
}

// Progress tracks image fan-out completion for the status endpoint.
type Progress struct {
	ImagesDone     int `json:"images_done"`
	ImagesTotal    int `json:"images_total"`
	FailedSegments int `json:"failed_segments"`
}
