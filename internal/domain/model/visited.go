package model

import "sort"

// VisitedSet holds the URLs of articles the reader opened.
type VisitedSet map[string]struct{}

// Add marks a URL as visited. It returns true when the URL was not yet present.
func (v VisitedSet) Add(url string) bool {
	if _, exists := v[url]; exists {
		return false
	}
	v[url] = struct{}{}
	return true
}

// Has reports whether the URL was visited.
func (v VisitedSet) Has(url string) bool {
	_, ok := v[url]
	return ok
}

// URLs returns the visited URLs in lexical order.
func (v VisitedSet) URLs() []string {
	urls := make([]string, 0, len(v))
	for url := range v {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
