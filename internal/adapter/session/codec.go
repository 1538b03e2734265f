package session

import (
	"encoding/json"
	"fmt"
	"time"

	"newstracker/internal/domain/model"
)

type sessionRecord struct {
	ID        string         `json:"id"`
	Visited   []string       `json:"visited"`
	Carousel  map[string]int `json:"carousel"`
	AutoPlay  bool           `json:"autoPlay"`
	Settings  settingsRecord `json:"settings"`
	Tracked   []string       `json:"tracked"`
	Searched  []string       `json:"searched,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

type settingsRecord struct {
	Sources   []string `json:"sources"`
	Verticals []string `json:"verticals"`
	Theme     string   `json:"theme"`
}

func encodeSession(s *model.Session) ([]byte, error) {
	record := sessionRecord{
		ID:       s.ID,
		Visited:  s.Visited.URLs(),
		Carousel: make(map[string]int, len(s.Carousel)),
		AutoPlay: s.AutoPlay,
		Settings: settingsRecord{
			Sources:   s.Settings.Sources,
			Verticals: s.Settings.Verticals,
			Theme:     string(s.Settings.Theme),
		},
		Tracked:   make([]string, 0, len(s.Tracked)),
		Searched:  s.SearchResults,
		UpdatedAt: s.UpdatedAt,
	}
	for topic, index := range s.Carousel {
		record.Carousel[string(topic)] = index
	}
	for topic, tracked := range s.Tracked {
		if tracked {
			record.Tracked = append(record.Tracked, string(topic))
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}
	return data, nil
}

func decodeSession(data []byte) (*model.Session, error) {
	var record sessionRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}

	s := model.NewSession(record.ID, record.UpdatedAt)
	for _, url := range record.Visited {
		s.Visited.Add(url)
	}
	for topic, index := range record.Carousel {
		s.Carousel[model.Topic(topic)] = index
	}
	for _, topic := range record.Tracked {
		s.Tracked[model.Topic(topic)] = true
	}
	s.AutoPlay = record.AutoPlay
	s.SearchResults = record.Searched
	if record.Settings.Theme != "" {
		s.Settings = model.Settings{
			Sources:   record.Settings.Sources,
			Verticals: record.Settings.Verticals,
			Theme:     model.Theme(record.Settings.Theme),
		}
	}
	return s, nil
}
