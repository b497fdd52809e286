package processing

import (
	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

// DeriveSubtitles builds one caption per segment after binding. The window
// follows the bound visual's duration; segments whose visual was dropped
// fall back to the planned fixed duration, so the caption track stays
// complete even when the visual track has gaps.
func DeriveSubtitles(segments []models.Segment, visuals []*models.VisualAsset) []models.SubtitleCue {
	byIndex := make(map[int]*models.VisualAsset, len(visuals))
	for _, v := range visuals {
		byIndex[v.SegmentIndex] = v
	}

	cues := make([]models.SubtitleCue, 0, len(segments))
	for _, seg := range segments {
		duration := models.DefaultSegmentDuration
		if v, ok := byIndex[seg.Index]; ok {
			duration = v.Duration
		}
		cues = append(cues, models.SubtitleCue{
			Text:      seg.Text,
			StartTime: seg.StartTime,
			EndTime:   seg.StartTime + duration,
		})
	}
	return cues
}
