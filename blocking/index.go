package blocking

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/keycluster/internal/unionfind"
	"github.com/hupe1980/keycluster/keyer"
)

// Block is a set of value positions that may be compared with each other.
type Block struct {
	// Members holds positions into the indexed values, ascending.
	Members []int
}

// Len returns the number of values in the block.
func (b Block) Len() int { return len(b.Members) }

// Index is an n-gram inverted index over a fixed list of values.
// It is immutable after Build and safe for concurrent reads.
type Index struct {
	ngramSize int
	size      int
	// grams[i] holds the gram ids of value i.
	grams [][]uint32
	// postings[g] holds the positions of values containing gram g.
	postings []*roaring.Bitmap
	blocks   []Block
}

// Build indexes values by their n-grams of size n. n < 1 selects
// keyer.DefaultNGramSize.
func Build(values []string, n int) *Index {
	if n < 1 {
		n = keyer.DefaultNGramSize
	}

	idx := &Index{
		ngramSize: n,
		size:      len(values),
		grams:     make([][]uint32, len(values)),
	}

	ids := make(map[string]uint32)
	for i, v := range values {
		for _, g := range keyer.NGrams(v, n) {
			id, ok := ids[g]
			if !ok {
				id = uint32(len(idx.postings))
				ids[g] = id
				idx.postings = append(idx.postings, roaring.New())
			}
			idx.postings[id].Add(uint32(i))
			idx.grams[i] = append(idx.grams[i], id)
		}
	}

	uf := unionfind.New(len(values))
	for _, p := range idx.postings {
		it := p.Iterator()
		if !it.HasNext() {
			continue
		}
		first := int(it.Next())
		for it.HasNext() {
			uf.Union(first, int(it.Next()))
		}
	}

	for _, members := range uf.Components() {
		idx.blocks = append(idx.blocks, Block{Members: members})
	}

	return idx
}

// NGramSize returns the gram size the index was built with.
func (idx *Index) NGramSize() int { return idx.ngramSize }

// Len returns the number of indexed values.
func (idx *Index) Len() int { return idx.size }

// Grams returns the number of distinct grams.
func (idx *Index) Grams() int { return len(idx.postings) }

// Blocks returns the partition of value positions, ordered by each block's
// smallest member.
func (idx *Index) Blocks() []Block { return idx.blocks }

// Largest returns the size of the biggest block.
func (idx *Index) Largest() int {
	largest := 0
	for _, b := range idx.blocks {
		largest = max(largest, b.Len())
	}
	return largest
}

// Candidates returns, ascending, the positions j > i of values sharing at
// least one gram with value i.
func (idx *Index) Candidates(i int) []int {
	ids := idx.grams[i]
	if len(ids) == 0 {
		return nil
	}

	bms := make([]*roaring.Bitmap, len(ids))
	for k, id := range ids {
		bms[k] = idx.postings[id]
	}
	union := roaring.FastOr(bms...)
	union.RemoveRange(0, uint64(i)+1)

	out := make([]int, 0, union.GetCardinality())
	it := union.Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}
	return out
}

// Pairs returns the number of candidate pairs inside a block.
func (idx *Index) Pairs(b Block) int {
	total := 0
	for _, i := range b.Members {
		total += len(idx.Candidates(i))
	}
	return total
}
