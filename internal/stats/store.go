// Package stats maintains bounded in-memory usage analytics for placeholder
// image requests: recent request paths, sizes and texts, plus frequency
// rankings of requested sizes and HTTP referrers. All state is volatile and
// lives for the duration of the process or until an explicit reset.
package stats

import (
	"fmt"
	"sync"
)

// Default bounds for the aggregation collections.
const (
	DefaultRecentCapacity = 10
	DefaultTopCount       = 10
)

// Size is a requested width/height pair.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Key returns the frequency-table key for the size, e.g. "100x200".
func (s Size) Key() string {
	return fmt.Sprintf("%dx%d", s.W, s.H)
}

// SizeCount is a ranked size record.
type SizeCount struct {
	W int `json:"w"`
	H int `json:"h"`
	N int `json:"n"`
}

// ReferrerCount is a ranked referrer record. Ref holds the raw header value.
type ReferrerCount struct {
	Ref string `json:"ref"`
	N   int    `json:"n"`
}

// Snapshot is a point-in-time copy of everything the store tracks.
type Snapshot struct {
	RecentPaths  []string        `json:"recent_paths"`
	RecentSizes  []Size          `json:"recent_sizes"`
	RecentTexts  []string        `json:"recent_texts"`
	TopSizes     []SizeCount     `json:"top_sizes"`
	TopReferrers []ReferrerCount `json:"top_referrers"`
}

// Store owns the five aggregation collections. Each mutating method performs one
// read-modify-write under a single mutex, so stage updates stay atomic
// relative to concurrent requests. Reads return copies; no internal state
// escapes.
type Store struct {
	mu sync.Mutex

	recentCapacity int

	recentPaths  *RecentList[string]
	recentSizes  *RecentList[Size]
	recentTexts  *RecentList[string]
	topSizes     *FrequencyTable[Size]
	topReferrers *FrequencyTable[string]
}

// NewStore creates a store whose recent lists hold at most recentCapacity
// entries (DefaultRecentCapacity when zero or negative).
func NewStore(recentCapacity int) *Store {
	if recentCapacity <= 0 {
		recentCapacity = DefaultRecentCapacity
	}
	s := &Store{recentCapacity: recentCapacity}
	s.install()
	return s
}

// install replaces all collections with empty initial values. Callers must
// hold mu or have exclusive access during construction.
func (s *Store) install() {
	s.recentPaths = NewRecentList(s.recentCapacity, func(p string) string { return p })
	s.recentSizes = NewRecentList(s.recentCapacity, Size.Key)
	s.recentTexts = NewRecentList(s.recentCapacity, func(t string) string { return t })
	s.topSizes = NewFrequencyTable[Size]()
	s.topReferrers = NewFrequencyTable[string]()
}

// PushPath records a canonical request URL in the recent-paths list.
func (s *Store) PushPath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentPaths.Push(path)
}

// PushSize records a size in the recent-sizes list. Uniqueness is by (w,h)
// only; square and text variants of the same size collapse to one entry.
func (s *Store) PushSize(size Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentSizes.Push(size)
}

// PushText records a custom text in the recent-texts list. Empty texts are
// ignored.
func (s *Store) PushText(text string) {
	if text == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recentTexts.Push(text)
}

// CountSize increments the frequency counter for the size.
func (s *Store) CountSize(size Size) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topSizes.Increment(size.Key(), func() Size { return size })
}

// CountReferrer increments the frequency counter for the raw referrer value.
func (s *Store) CountReferrer(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topReferrers.Increment(ref, func() string { return ref })
}

// RecentPaths returns the recent canonical URLs, most recent first.
func (s *Store) RecentPaths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentPaths.Items()
}

// RecentSizes returns the recent sizes, most recent first.
func (s *Store) RecentSizes() []Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentSizes.Items()
}

// RecentTexts returns the recent custom texts, most recent first.
func (s *Store) RecentTexts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentTexts.Items()
}

// TopSizes returns the n most-requested sizes by descending count.
func (s *Store) TopSizes(n int) []SizeCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranked := s.topSizes.TopN(n)
	out := make([]SizeCount, len(ranked))
	for i, rec := range ranked {
		out[i] = SizeCount{W: rec.Value.W, H: rec.Value.H, N: rec.N}
	}
	return out
}

// TopReferrers returns the n most-frequent referrers by descending count.
func (s *Store) TopReferrers(n int) []ReferrerCount {
	s.mu.Lock()
	defer s.mu.Unlock()
	ranked := s.topReferrers.TopN(n)
	out := make([]ReferrerCount, len(ranked))
	for i, rec := range ranked {
		out[i] = ReferrerCount{Ref: rec.Value, N: rec.N}
	}
	return out
}

// Snapshot returns a copy of all five collections, using DefaultTopCount for
// the ranked tables.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{
		RecentPaths:  s.RecentPaths(),
		RecentSizes:  s.RecentSizes(),
		RecentTexts:  s.RecentTexts(),
		TopSizes:     s.TopSizes(DefaultTopCount),
		TopReferrers: s.TopReferrers(DefaultTopCount),
	}
}

// Reset atomically replaces all collections with empty initial values.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.install()
}
