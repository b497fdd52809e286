package models

// TimelineState is the bound output of a generation run: what the UI
// renders and what the export step consumes. Visuals are kept sorted by
// StartTime (segment order).
type TimelineState struct {
	Visuals   []*VisualAsset `json:"visuals"`
	Audio     *AudioTrack    `json:"audio"`
	Subtitles []SubtitleCue  `json:"subtitles"`
	Cues      []*SoundCue    `json:"cues"`
}

// VisualByID returns the visual asset with the given id, or nil.
func (t *TimelineState) VisualByID(id string) *VisualAsset {
	for _, v := range t.Visuals {
		if v.ID == id {
			return v
		}
	}
	return nil
}
