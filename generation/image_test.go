package generation

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly ten", truncate("exactly ten", 11))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	s := strings.Repeat("é", 40)
	out := truncate(s, 10)
	assert.Equal(t, strings.Repeat("é", 10)+"...", out)
	assert.True(t, utf8.ValidString(out))
}
