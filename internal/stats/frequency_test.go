package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrequencyTable_Increment(t *testing.T) {
	ft := NewFrequencyTable[string]()
	for range 5 {
		ft.Increment("https://example.com", func() string { return "https://example.com" })
	}
	ft.Increment("https://other.example", func() string { return "https://other.example" })

	top := ft.TopN(10)
	assert.Len(t, top, 2)
	assert.Equal(t, "https://example.com", top[0].Value)
	assert.Equal(t, 5, top[0].N)
	assert.Equal(t, 1, top[1].N)
}

func TestFrequencyTable_FactoryRunsOncePerKey(t *testing.T) {
	ft := NewFrequencyTable[int]()
	calls := 0
	for range 3 {
		ft.Increment("k", func() int {
			calls++
			return 42
		})
	}

	assert.Equal(t, 1, calls)
	top := ft.TopN(1)
	assert.Equal(t, 42, top[0].Value)
	assert.Equal(t, 3, top[0].N)
}

func TestFrequencyTable_TopN(t *testing.T) {
	ft := NewFrequencyTable[Size]()
	// Key i is incremented i times, so higher i ranks higher.
	for i := 1; i <= 15; i++ {
		size := Size{W: i, H: i}
		for range i {
			ft.Increment(size.Key(), func() Size { return size })
		}
	}

	top := ft.TopN(10)
	assert.Len(t, top, 10)
	for i, rec := range top {
		assert.Equal(t, 15-i, rec.N, "rank %d", i)
	}
	assert.Equal(t, 15, ft.Len())
}

func TestFrequencyTable_TopNDoesNotMutate(t *testing.T) {
	ft := NewFrequencyTable[string]()
	ft.Increment("a", func() string { return "a" })

	top := ft.TopN(10)
	top[0].N = 99

	assert.Equal(t, 1, ft.TopN(10)[0].N)
}

func TestFrequencyTable_TopNLargerThanTable(t *testing.T) {
	ft := NewFrequencyTable[string]()
	for i := range 3 {
		k := fmt.Sprintf("ref-%d", i)
		ft.Increment(k, func() string { return k })
	}

	assert.Len(t, ft.TopN(10), 3)
	assert.Empty(t, NewFrequencyTable[string]().TopN(10))
}
