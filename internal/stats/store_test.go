package stats

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecentSizesMostRecentFirst(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	s.PushSize(Size{W: 100, H: 200})
	s.PushSize(Size{W: 300, H: 400})

	assert.Equal(t, []Size{{W: 300, H: 400}, {W: 100, H: 200}}, s.RecentSizes())
}

func TestStore_PushTextIgnoresEmpty(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	s.PushText("")
	s.PushText("hello")
	s.PushText("")

	assert.Equal(t, []string{"hello"}, s.RecentTexts())
}

func TestStore_TopSizesRanking(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	for range 5 {
		s.CountSize(Size{W: 100, H: 200})
	}
	s.CountSize(Size{W: 50, H: 50})

	top := s.TopSizes(10)
	require.Len(t, top, 2)
	assert.Equal(t, SizeCount{W: 100, H: 200, N: 5}, top[0])
	assert.Equal(t, SizeCount{W: 50, H: 50, N: 1}, top[1])
}

func TestStore_TopReferrersRanking(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	s.CountReferrer("https://a.example/")
	s.CountReferrer("https://b.example/")
	s.CountReferrer("https://b.example/")

	top := s.TopReferrers(10)
	require.Len(t, top, 2)
	assert.Equal(t, ReferrerCount{Ref: "https://b.example/", N: 2}, top[0])
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	s.PushPath("/img/1/1")
	s.PushSize(Size{W: 1, H: 1})
	s.PushText("t")
	s.CountSize(Size{W: 1, H: 1})
	s.CountReferrer("https://a.example/")

	s.Reset()

	assert.Empty(t, s.RecentPaths())
	assert.Empty(t, s.RecentSizes())
	assert.Empty(t, s.RecentTexts())
	assert.Empty(t, s.TopSizes(10))
	assert.Empty(t, s.TopReferrers(10))
}

func TestStore_SnapshotCopies(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)
	s.PushPath("/img/2/2")
	s.CountSize(Size{W: 2, H: 2})

	snap := s.Snapshot()
	assert.Equal(t, []string{"/img/2/2"}, snap.RecentPaths)
	assert.Equal(t, []SizeCount{{W: 2, H: 2, N: 1}}, snap.TopSizes)

	// Mutating the snapshot must not leak back into the store.
	snap.RecentPaths[0] = "mutated"
	assert.Equal(t, []string{"/img/2/2"}, s.RecentPaths())
}

func TestStore_ConcurrentMutation(t *testing.T) {
	s := NewStore(DefaultRecentCapacity)

	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				size := Size{W: g + 1, H: i%10 + 1}
				s.PushPath(fmt.Sprintf("/img/%d/%d", size.W, size.H))
				s.PushSize(size)
				s.CountSize(size)
				s.CountReferrer("https://example.com/")
			}
		}()
	}
	wg.Wait()

	assert.Len(t, s.RecentSizes(), DefaultRecentCapacity)
	assert.Equal(t, 800, s.TopReferrers(1)[0].N)
}
