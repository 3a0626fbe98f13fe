package orderbook

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRBTree_UpsertReturnsSameLevelForSamePrice(t *testing.T) {
	tr := NewRBTree()
	a := tr.Upsert(100)
	b := tr.Upsert(100)
	assert.Same(t, a, b)
	assert.Equal(t, 1, tr.Size())
}

func TestRBTree_FindMissingReturnsNil(t *testing.T) {
	tr := NewRBTree()
	assert.Nil(t, tr.Find(100))
}

func TestRBTree_MinMax(t *testing.T) {
	tr := NewRBTree()
	tr.Upsert(50)
	tr.Upsert(10)
	tr.Upsert(90)
	tr.Upsert(30)

	require.NotNil(t, tr.Min())
	require.NotNil(t, tr.Max())
	assert.Equal(t, Price(10), tr.Min().Price)
	assert.Equal(t, Price(90), tr.Max().Price)
}

func TestRBTree_EmptyMinMax(t *testing.T) {
	tr := NewRBTree()
	assert.Nil(t, tr.Min())
	assert.Nil(t, tr.Max())
}

func TestRBTree_DeleteMissingReturnsFalse(t *testing.T) {
	tr := NewRBTree()
	tr.Upsert(1)
	assert.False(t, tr.Delete(2))
	assert.Equal(t, 1, tr.Size())
}

func TestRBTree_DeleteShrinksSizeAndRemovesLevel(t *testing.T) {
	tr := NewRBTree()
	tr.Upsert(1)
	tr.Upsert(2)

	assert.True(t, tr.Delete(1))
	assert.Equal(t, 1, tr.Size())
	assert.Nil(t, tr.Find(1))
	assert.NotNil(t, tr.Find(2))
}

func TestRBTree_ForEachAscendingIsSorted(t *testing.T) {
	tr := NewRBTree()
	prices := []Price{50, 10, 90, 30, 70, 20, 5, 99}
	for _, p := range prices {
		tr.Upsert(p)
	}

	var got []Price
	tr.ForEachAscending(func(l *Level) bool {
		got = append(got, l.Price)
		return true
	})

	want := append([]Price{}, prices...)
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })
	assert.Equal(t, want, got)
}

func TestRBTree_ForEachDescendingIsSorted(t *testing.T) {
	tr := NewRBTree()
	prices := []Price{50, 10, 90, 30, 70, 20, 5, 99}
	for _, p := range prices {
		tr.Upsert(p)
	}

	var got []Price
	tr.ForEachDescending(func(l *Level) bool {
		got = append(got, l.Price)
		return true
	})

	want := append([]Price{}, prices...)
	sort.Slice(want, func(i, j int) bool { return want[i] > want[j] })
	assert.Equal(t, want, got)
}

func TestRBTree_ForEachAscendingStopsEarly(t *testing.T) {
	tr := NewRBTree()
	for _, p := range []Price{1, 2, 3, 4, 5} {
		tr.Upsert(p)
	}

	var visited int
	tr.ForEachAscending(func(l *Level) bool {
		visited++
		return visited < 2
	})
	assert.Equal(t, 2, visited)
}

// TestRBTree_RandomizedInsertDeleteMaintainsOrder hammers the tree with a
// randomized sequence of upserts and deletes and checks that ascending
// iteration always yields a sorted view of whatever prices are
// currently indexed, which can only hold if every rotation and fixup
// left the tree's binary-search-tree property intact.
func TestRBTree_RandomizedInsertDeleteMaintainsOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := NewRBTree()
	live := make(map[Price]bool)

	for i := 0; i < 5000; i++ {
		p := Price(rng.Intn(500))
		if rng.Intn(2) == 0 {
			tr.Upsert(p)
			live[p] = true
		} else {
			tr.Delete(p)
			delete(live, p)
		}
	}

	var got []Price
	tr.ForEachAscending(func(l *Level) bool {
		got = append(got, l.Price)
		return true
	})

	var want []Price
	for p := range live {
		want = append(want, p)
	}
	sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

	assert.Equal(t, want, got)
	assert.Equal(t, len(want), tr.Size())
}
