package session

import (
	"testing"
	"time"

	"github.com/go-playground/assert/v2"

	"newstracker/internal/domain/model"
)

func TestSessionCodecPreservesState(t *testing.T) {
	updated := time.Date(2025, time.July, 30, 12, 0, 0, 0, time.UTC)
	s := model.NewSession("s1", updated)
	s.Visit("https://example.com/a")
	s.SetCarousel("MH370", model.Carousel{Index: 2, Count: 5})
	s.ToggleTracked("Russia earthquake")
	s.AutoPlay = true
	s.Settings.Theme = model.ThemeDark
	s.SearchResults = []string{"https://example.com/volcano"}

	data, err := encodeSession(s)
	assert.Equal(t, nil, err)

	decoded, err := decodeSession(data)
	assert.Equal(t, nil, err)
	assert.Equal(t, "s1", decoded.ID)
	assert.Equal(t, true, decoded.Visited.Has("https://example.com/a"))
	assert.Equal(t, 2, decoded.Carousel["MH370"])
	assert.Equal(t, true, decoded.Tracked["Russia earthquake"])
	assert.Equal(t, true, decoded.AutoPlay)
	assert.Equal(t, model.ThemeDark, decoded.Settings.Theme)
	assert.Equal(t, s.Settings.Sources, decoded.Settings.Sources)
	assert.Equal(t, []string{"https://example.com/volcano"}, decoded.SearchResults)
	assert.Equal(t, true, updated.Equal(decoded.UpdatedAt))
}

func TestDecodeSessionRejectsGarbage(t *testing.T) {
	_, err := decodeSession([]byte("{not json"))

	assert.NotEqual(t, nil, err)
}
