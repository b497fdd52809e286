package models

// DefaultSegmentDuration is the fixed length assigned to every planned
// segment, in seconds. Durations are a layout policy, not derived from
// speech timing.
const DefaultSegmentDuration = 5.0

type Segment struct {
	Index     int     `json:"index"`
	Text      string  `json:"text"`
	StartTime float64 `json:"start_time"`
	Duration  float64 `json:"duration"`
}

// EndTime is the exclusive end of the segment's window.
func (s Segment) EndTime() float64 {
	return s.StartTime + s.Duration
}
