package stats

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStringList(capacity int) *RecentList[string] {
	return NewRecentList(capacity, func(s string) string { return s })
}

func TestRecentList_PushFront(t *testing.T) {
	l := newStringList(10)
	l.Push("a")
	l.Push("b")
	l.Push("c")

	assert.Equal(t, []string{"c", "b", "a"}, l.Items())
}

func TestRecentList_Deduplicates(t *testing.T) {
	tests := []struct {
		name   string
		pushes []string
		want   []string
	}{
		{
			name:   "repeated item moves to front",
			pushes: []string{"a", "b", "a"},
			want:   []string{"a", "b"},
		},
		{
			name:   "same item repeatedly yields one entry",
			pushes: []string{"x", "x", "x", "x", "x"},
			want:   []string{"x"},
		},
		{
			name:   "duplicate in the middle is removed",
			pushes: []string{"a", "b", "c", "b"},
			want:   []string{"b", "c", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newStringList(10)
			for _, p := range tt.pushes {
				l.Push(p)
			}
			assert.Equal(t, tt.want, l.Items())
		})
	}
}

func TestRecentList_Bounded(t *testing.T) {
	l := newStringList(10)
	for i := 1; i <= 15; i++ {
		l.Push(fmt.Sprintf("item-%d", i))
	}

	items := l.Items()
	assert.Len(t, items, 10)
	// The ten most recent survive, newest first.
	assert.Equal(t, "item-15", items[0])
	assert.Equal(t, "item-6", items[9])
}

func TestRecentList_StructuralEquality(t *testing.T) {
	l := NewRecentList(10, Size.Key)
	l.Push(Size{W: 100, H: 200})
	l.Push(Size{W: 100, H: 200})
	l.Push(Size{W: 200, H: 100})

	assert.Equal(t, []Size{{W: 200, H: 100}, {W: 100, H: 200}}, l.Items())
}

func TestRecentList_ItemsIsACopy(t *testing.T) {
	l := newStringList(10)
	l.Push("a")

	items := l.Items()
	items[0] = "mutated"

	assert.Equal(t, []string{"a"}, l.Items())
}

func TestRecentList_EmptyItemsNotNil(t *testing.T) {
	l := newStringList(10)
	assert.NotNil(t, l.Items())
	assert.Empty(t, l.Items())
	assert.Equal(t, 0, l.Len())
}
