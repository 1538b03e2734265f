package model

import (
	"fmt"
	"slices"
)

// Theme is the colour scheme picked on the settings page.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// NewsSources lists the outlets offered on the settings page.
var NewsSources = []string{
	"BBC News",
	"CNN",
	"Reuters",
	"Associated Press",
	"The New York Times",
	"The Washington Post",
	"USA Today",
	"NPR",
}

// NewsVerticals lists the sections offered on the settings page.
var NewsVerticals = []string{
	"Weather",
	"Sports",
	"Crime",
	"Politics",
	"Money",
	"Technology",
	"Entertainment",
	"Health",
}

// Settings are the reader preferences. They live in the session only.
type Settings struct {
	Sources   []string
	Verticals []string
	Theme     Theme
}

// DefaultSettings returns the preferences of a new session.
func DefaultSettings() Settings {
	return Settings{
		Sources:   []string{"BBC News", "CNN", "Reuters"},
		Verticals: []string{"Weather", "Sports", "Politics", "Money"},
		Theme:     ThemeLight,
	}
}

// Validate checks every value against the catalogues.
func (s Settings) Validate() error {
	if s.Theme != ThemeLight && s.Theme != ThemeDark {
		return fmt.Errorf("%w: theme %q", ErrInvalidSettings, s.Theme)
	}
	for _, source := range s.Sources {
		if !slices.Contains(NewsSources, source) {
			return fmt.Errorf("%w: source %q", ErrInvalidSettings, source)
		}
	}
	for _, vertical := range s.Verticals {
		if !slices.Contains(NewsVerticals, vertical) {
			return fmt.Errorf("%w: vertical %q", ErrInvalidSettings, vertical)
		}
	}
	return nil
}

// HasSource reports whether the source is selected.
func (s Settings) HasSource(source string) bool {
	return slices.Contains(s.Sources, source)
}

// HasVertical reports whether the vertical is enabled.
func (s Settings) HasVertical(vertical string) bool {
	return slices.Contains(s.Verticals, vertical)
}

// Normalize removes duplicates and orders values as in the catalogues.
func (s Settings) Normalize() Settings {
	return Settings{
		Sources:   inCatalogueOrder(NewsSources, s.Sources),
		Verticals: inCatalogueOrder(NewsVerticals, s.Verticals),
		Theme:     s.Theme,
	}
}

func inCatalogueOrder(catalogue, picked []string) []string {
	ordered := make([]string, 0, len(picked))
	for _, item := range catalogue {
		if slices.Contains(picked, item) {
			ordered = append(ordered, item)
		}
	}
	return ordered
}
