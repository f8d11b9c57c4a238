package blocking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Partition(t *testing.T) {
	values := []string{"ab", "abc", "c", "ĉ", "xyz", "bcd", "!!"}
	idx := Build(values, 2)

	assert.Equal(t, 2, idx.NGramSize())
	assert.Equal(t, len(values), idx.Len())

	seen := make(map[int]int)
	for _, b := range idx.Blocks() {
		for _, m := range b.Members {
			seen[m]++
		}
	}
	require.Len(t, seen, len(values))
	for pos, n := range seen {
		assert.Equal(t, 1, n, "position %d in %d blocks", pos, n)
	}

	var got [][]int
	for _, b := range idx.Blocks() {
		got = append(got, b.Members)
	}
	// ab-abc share "ab", abc-bcd share "bc"; c and ĉ both normalize to "c".
	assert.Equal(t, [][]int{{0, 1, 5}, {2, 3}, {4}, {6}}, got)
	assert.Equal(t, 3, idx.Largest())
}

func TestCandidates(t *testing.T) {
	idx := Build([]string{"ab", "abc", "bcd", "xyz"}, 2)

	assert.Equal(t, []int{1}, idx.Candidates(0))
	assert.Equal(t, []int{2}, idx.Candidates(1))
	assert.Empty(t, idx.Candidates(2))
	assert.Empty(t, idx.Candidates(3))

	// ab and bcd share a block through abc but no gram.
	assert.Equal(t, 2, idx.Pairs(idx.Blocks()[0]))
}

func TestBuild_DisjointValues(t *testing.T) {
	idx := Build([]string{"foo", "bar"}, 2)
	assert.Len(t, idx.Blocks(), 2)
}

func TestBuild_DefaultSize(t *testing.T) {
	idx := Build([]string{"abc"}, 0)
	assert.Equal(t, 2, idx.NGramSize())
	assert.Equal(t, 2, idx.Grams())
}

func TestBuild_Empty(t *testing.T) {
	idx := Build(nil, 2)
	assert.Empty(t, idx.Blocks())
	assert.Equal(t, 0, idx.Largest())
}
