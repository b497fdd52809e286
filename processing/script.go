package processing

import (
	"errors"
	"strings"
	"unicode"

	"github.com/xenomorphfiles/Jan-s-AI-Video-Studio/models"
)

// ErrEmptyScript means the script produced no usable segments; a run
// cannot start without at least one.
var ErrEmptyScript = errors.New("script contains no sentences")

// SplitScript slices a script into sentences. A sentence ends at `.`, `!`
// or `?` followed by whitespace or end of input; the punctuation stays with
// the sentence. Whitespace-only fragments are discarded. A trailing
// fragment without terminal punctuation still counts as a sentence.
func SplitScript(script string) []string {
	var sentences []string
	var b strings.Builder

	runes := []rune(script)
	for i, r := range runes {
		b.WriteRune(r)
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		atEnd := i == len(runes)-1
		if atEnd || unicode.IsSpace(runes[i+1]) {
			if s := strings.TrimSpace(b.String()); hasContent(s) {
				sentences = append(sentences, s)
			}
			b.Reset()
		}
	}
	if s := strings.TrimSpace(b.String()); hasContent(s) {
		sentences = append(sentences, s)
	}

	return sentences
}

// hasContent reports whether a fragment carries at least one letter or
// digit. Stray punctuation is not a sentence.
func hasContent(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// PlanSegments lays the script's sentences out on the timeline: fixed
// duration each, start times accumulating from zero, original order kept.
func PlanSegments(script string) ([]models.Segment, error) {
	sentences := SplitScript(script)
	if len(sentences) == 0 {
		return nil, ErrEmptyScript
	}

	segments := make([]models.Segment, 0, len(sentences))
	start := 0.0
	for i, text := range sentences {
		segments = append(segments, models.Segment{
			Index:     i,
			Text:      text,
			StartTime: start,
			Duration:  models.DefaultSegmentDuration,
		})
		start += models.DefaultSegmentDuration
	}

	return segments, nil
}
