package models

// VisualAsset is one generated illustration bound to a segment's time
// window. Image bytes are owned by the binder; playback and export only
// read them.
type VisualAsset struct {
	ID           string  `json:"id"`
	SegmentIndex int     `json:"segment_index"`
	Prompt       string  `json:"prompt"`
	SourceURI    string  `json:"source_uri"`
	Image        []byte  `json:"-"`
	StartTime    float64 `json:"start_time"`
	Duration     float64 `json:"duration"`
}

// EndTime is the exclusive end of the asset's window.
func (a VisualAsset) EndTime() float64 {
	return a.StartTime + a.Duration
}

// AudioTrack is the single voice-over for a run, already wrapped in a WAV
// container. Shared by reference, never mutated after creation.
type AudioTrack struct {
	URI        string  `json:"uri"`
	SampleRate int     `json:"sample_rate"`
	Duration   float64 `json:"duration"`
	WAV        []byte  `json:"-"`
}
