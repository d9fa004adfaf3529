package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "부산", TruncateString("부산", 5))
	assert.Equal(t, "해운대...", TruncateString("해운대해수욕장", 3))
}

func TestNormalizeKey(t *testing.T) {
	assert.Equal(t, NormalizeKey("해운대 해수욕장"), NormalizeKey("해운대해수욕장"))
	assert.Equal(t, "undoctower", NormalizeKey(" UN-Doc. Tower "))
	assert.Empty(t, NormalizeKey("   "))
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"mbti", "추천"}, "추천"))
	assert.False(t, Contains(nil, "mbti"))
}

func TestFormatKST(t *testing.T) {
	utc := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	assert.Equal(t, "2024-05-02 00:30", FormatKST(utc, "2006-01-02 15:04"))
	_, offset := NowKST().Zone()
	assert.Equal(t, 9*60*60, offset)
}
