package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Tech", "tech"},
		{"Daily Life", "daily-life"},
		{"  Spaced  Out  ", "spaced-out"},
		{"Already-hyphen-ated", "already-hyphen-ated"},
		{"under_score", "under_score"},
		{"Mixed CASE 123", "mixed-case-123"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, Slugify(tt.title, 100), "title=%q", tt.title)
	}
}

func TestSlugifyTruncates(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := Slugify(long, 100)
	assert.Len(t, got, 100)

	// Truncation never leaves a trailing hyphen.
	boundary := strings.Repeat("a", 99) + " b"
	assert.Equal(t, strings.Repeat("a", 99), Slugify(boundary, 100))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("sekret1")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("sekret1", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
