package processing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitScript(t *testing.T) {
	t.Run("sentence terminals", func(t *testing.T) {
		got := SplitScript("Hello world. This is great! Really?")
		assert.Equal(t, []string{"Hello world.", "This is great!", "Really?"}, got)
	})

	t.Run("trailing fragment without punctuation", func(t *testing.T) {
		got := SplitScript("First one. and then some more")
		assert.Equal(t, []string{"First one.", "and then some more"}, got)
	})

	t.Run("abbreviation-style dot mid-word is not a boundary", func(t *testing.T) {
		got := SplitScript("Version 2.5 shipped today.")
		assert.Equal(t, []string{"Version 2.5 shipped today."}, got)
	})

	t.Run("whitespace only", func(t *testing.T) {
		assert.Empty(t, SplitScript("   \n\t "))
		assert.Empty(t, SplitScript(""))
	})

	t.Run("stray punctuation", func(t *testing.T) {
		assert.Empty(t, SplitScript(". . !"))
		assert.Empty(t, SplitScript("?! ... ???"))
	})

	t.Run("stray punctuation between sentences", func(t *testing.T) {
		got := SplitScript("Hi there. !!! Bye now.")
		assert.Equal(t, []string{"Hi there.", "Bye now."}, got)
	})
}

func TestPlanSegments(t *testing.T) {
	segments, err := PlanSegments("Hello world. This is great! Really?")
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "Hello world.", segments[0].Text)
	assert.Equal(t, 0.0, segments[0].StartTime)
	assert.Equal(t, 5.0, segments[0].Duration)

	assert.Equal(t, "This is great!", segments[1].Text)
	assert.Equal(t, 5.0, segments[1].StartTime)

	assert.Equal(t, "Really?", segments[2].Text)
	assert.Equal(t, 10.0, segments[2].StartTime)
}

func TestPlanSegmentsContiguous(t *testing.T) {
	segments, err := PlanSegments("A. B. C. D. E. F. G.")
	require.NoError(t, err)

	assert.Equal(t, 0.0, segments[0].StartTime)
	for i := 0; i < len(segments)-1; i++ {
		assert.Equal(t, segments[i].EndTime(), segments[i+1].StartTime,
			"segment %d must end where segment %d starts", i, i+1)
	}
	for i, seg := range segments {
		assert.Equal(t, i, seg.Index)
	}
}

func TestPlanSegmentsEmptyScript(t *testing.T) {
	_, err := PlanSegments("")
	assert.ErrorIs(t, err, ErrEmptyScript)

	_, err = PlanSegments("   ")
	assert.ErrorIs(t, err, ErrEmptyScript)
}
