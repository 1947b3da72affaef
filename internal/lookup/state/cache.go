package state

import (
	"slices"
	"strings"
)

const (
	DefaultMaxRecentSearches = 5
	DefaultMaxSavedReports   = 10
)

// Report is a full lookup result that can be kept in a ReportStore. Key is
// the normalized registration number the report was fetched for.
type Report interface {
	Key() string
}

// SearchCache is a bounded, de-duplicated list of recently searched
// identifiers, most recent first. Values are immutable: every operation
// returns a new cache and never writes to a backing array it shares.
type SearchCache struct {
	items []string
	max   int
}

func NewSearchCache(max int) SearchCache {
	if max <= 0 {
		max = DefaultMaxRecentSearches
	}
	return SearchCache{max: max}
}

// NormalizeSearch trims and upper-cases a search identifier.
func NormalizeSearch(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Add moves id to the front, dropping any earlier occurrence and the oldest
// entries beyond the cap. Identifiers that normalize to "" are ignored.
func (c SearchCache) Add(id string) SearchCache {
	id = NormalizeSearch(id)
	if id == "" {
		return c
	}
	next := make([]string, 0, min(len(c.items)+1, c.limit()))
	next = append(next, id)
	for _, existing := range c.items {
		if len(next) == c.limit() {
			break
		}
		if existing != id {
			next = append(next, existing)
		}
	}
	return SearchCache{items: next, max: c.max}
}

// Remove drops id (compared after normalization).
func (c SearchCache) Remove(id string) SearchCache {
	id = NormalizeSearch(id)
	next := make([]string, 0, len(c.items))
	for _, existing := range c.items {
		if existing != id {
			next = append(next, existing)
		}
	}
	return SearchCache{items: next, max: c.max}
}

func (c SearchCache) Clear() SearchCache {
	return SearchCache{max: c.max}
}

// Items returns a copy of the cached identifiers, most recent first.
func (c SearchCache) Items() []string {
	if len(c.items) == 0 {
		return []string{}
	}
	return slices.Clone(c.items)
}

func (c SearchCache) Len() int { return len(c.items) }

func (c SearchCache) Max() int { return c.limit() }

func (c SearchCache) limit() int {
	if c.max <= 0 {
		return DefaultMaxRecentSearches
	}
	return c.max
}

// ReportStore is a bounded list of saved reports with at most one entry per
// key. Like SearchCache it is an immutable value.
type ReportStore[R Report] struct {
	items []R
	max   int
}

func NewReportStore[R Report](max int) ReportStore[R] {
	if max <= 0 {
		max = DefaultMaxSavedReports
	}
	return ReportStore[R]{max: max}
}

// Save replaces the report with the same key in place, keeping its position.
// A new key is prepended and the oldest report beyond the cap is evicted.
func (s ReportStore[R]) Save(report R) ReportStore[R] {
	key := report.Key()
	if i := s.index(key); i >= 0 {
		next := slices.Clone(s.items)
		next[i] = report
		return ReportStore[R]{items: next, max: s.max}
	}
	next := make([]R, 0, min(len(s.items)+1, s.limit()))
	next = append(next, report)
	for _, existing := range s.items {
		if len(next) == s.limit() {
			break
		}
		next = append(next, existing)
	}
	return ReportStore[R]{items: next, max: s.max}
}

func (s ReportStore[R]) Remove(key string) ReportStore[R] {
	next := make([]R, 0, len(s.items))
	for _, existing := range s.items {
		if existing.Key() != key {
			next = append(next, existing)
		}
	}
	return ReportStore[R]{items: next, max: s.max}
}

func (s ReportStore[R]) Clear() ReportStore[R] {
	return ReportStore[R]{max: s.max}
}

// Get returns the report saved under key.
func (s ReportStore[R]) Get(key string) (R, bool) {
	if i := s.index(key); i >= 0 {
		return s.items[i], true
	}
	var zero R
	return zero, false
}

// Items returns a copy of the saved reports, most recently added first.
func (s ReportStore[R]) Items() []R {
	if len(s.items) == 0 {
		return []R{}
	}
	return slices.Clone(s.items)
}

func (s ReportStore[R]) Len() int { return len(s.items) }

func (s ReportStore[R]) Max() int { return s.limit() }

func (s ReportStore[R]) index(key string) int {
	return slices.IndexFunc(s.items, func(r R) bool { return r.Key() == key })
}

func (s ReportStore[R]) limit() int {
	if s.max <= 0 {
		return DefaultMaxSavedReports
	}
	return s.max
}
