// Package blocking partitions values into blocks so that pairwise distance
// computations stay within groups of plausibly similar values.
//
// Every value is reduced to its set of character n-grams (see keyer.NGrams).
// An inverted index maps each gram to a roaring bitmap of the values holding
// it. Two values land in the same block when a chain of shared grams links
// them, so blocks partition the input exactly: every value belongs to exactly
// one block.
//
// Within a block, only pairs that share at least one gram are candidates
// for comparison (Candidates). Values whose gram sets are disjoint are never
// compared. This trades recall for speed: true near-duplicates that share no
// n-gram after normalization are missed.
package blocking
