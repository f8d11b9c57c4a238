package model

import (
	"cmp"
	"encoding/json"
	"slices"
)

// RawValue is an original cell string together with how many rows produced it.
type RawValue struct {
	// Value is the exact string as found in the source column.
	Value string
	// Count is the number of rows holding Value.
	Count int
	// Rows references the contributing rows. The clustering core never
	// interprets them; they are passed through to the result entries.
	Rows []int
}

// Aggregate merges raw values sharing the exact same string, keeping the
// order in which strings are first seen. Empty strings are dropped and
// non-positive counts are treated as a single occurrence.
func Aggregate(values []RawValue) []RawValue {
	out := make([]RawValue, 0, len(values))
	pos := make(map[string]int, len(values))

	for _, v := range values {
		if v.Value == "" {
			continue
		}
		count := v.Count
		if count < 1 {
			count = 1
		}
		if i, ok := pos[v.Value]; ok {
			out[i].Count += count
			out[i].Rows = append(out[i].Rows, v.Rows...)
			continue
		}
		pos[v.Value] = len(out)
		out = append(out, RawValue{
			Value: v.Value,
			Count: count,
			Rows:  slices.Clone(v.Rows),
		})
	}

	return out
}

// Entry is one member of a cluster.
type Entry struct {
	Value string `json:"v" yaml:"v"`
	Count int    `json:"c" yaml:"c"`
	Rows  []int  `json:"-" yaml:"-"`
}

// Cluster is a group of at least two distinct values considered variants of
// the same entity.
type Cluster struct {
	Entries []Entry
	// Count is the summed occurrence count of all entries.
	Count int
}

// NewCluster builds a cluster from its members. Entries are ordered by
// descending count, ties broken by ascending value.
func NewCluster(members []RawValue) Cluster {
	c := Cluster{Entries: make([]Entry, 0, len(members))}
	for _, m := range members {
		c.Entries = append(c.Entries, Entry{Value: m.Value, Count: m.Count, Rows: m.Rows})
		c.Count += m.Count
	}

	slices.SortFunc(c.Entries, func(a, b Entry) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Value, b.Value)
	})

	return c
}

// Len returns the number of distinct values in the cluster.
func (c Cluster) Len() int { return len(c.Entries) }

// Values returns the member strings in entry order.
func (c Cluster) Values() []string {
	out := make([]string, len(c.Entries))
	for i, e := range c.Entries {
		out[i] = e.Value
	}
	return out
}

// smallest returns the lexically smallest member string.
func (c Cluster) smallest() string {
	if len(c.Entries) == 0 {
		return ""
	}
	m := c.Entries[0].Value
	for _, e := range c.Entries[1:] {
		if e.Value < m {
			m = e.Value
		}
	}
	return m
}

// MarshalJSON encodes the cluster as its bare entry array.
func (c Cluster) MarshalJSON() ([]byte, error) {
	if c.Entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(c.Entries)
}

// MarshalYAML encodes the cluster as its bare entry list.
func (c Cluster) MarshalYAML() (any, error) {
	if c.Entries == nil {
		return []Entry{}, nil
	}
	return c.Entries, nil
}

// UnmarshalJSON decodes a bare entry array and recomputes the total count.
func (c *Cluster) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	c.Entries = entries
	c.Count = 0
	for _, e := range entries {
		c.Count += e.Count
	}
	return nil
}

// Result is the ordered output of one clustering run. An empty Result means
// nothing was found to review; it is not an error.
type Result []Cluster

// Sort orders clusters by descending total count, ties broken by the
// ascending smallest member string.
func (r Result) Sort() {
	slices.SortStableFunc(r, func(a, b Cluster) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.smallest(), b.smallest())
	})
}

// Len returns the number of clusters.
func (r Result) Len() int { return len(r) }

// MarshalJSON encodes the result, writing an empty array rather than null.
func (r Result) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Cluster(r))
}

// MarshalYAML encodes the result, writing an empty list rather than null.
func (r Result) MarshalYAML() (any, error) {
	if r == nil {
		return []Cluster{}, nil
	}
	return []Cluster(r), nil
}
