package knn

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/keycluster/blocking"
	"github.com/hupe1980/keycluster/distance"
	"github.com/hupe1980/keycluster/model"
	"github.com/hupe1980/keycluster/resource"
)

func raw(vals ...string) []model.RawValue {
	out := make([]model.RawValue, len(vals))
	for i, v := range vals {
		out[i] = model.RawValue{Value: v, Count: 1}
	}
	return out
}

func values(res model.Result) [][]string {
	var out [][]string
	for _, c := range res {
		out = append(out, c.Values())
	}
	return out
}

func TestCluster_PPM(t *testing.T) {
	tests := []struct {
		name   string
		values []model.RawValue
		radius float64
		want   [][]string
	}{
		{
			name:   "prefix variants",
			values: raw("ab", "abc", "c", "ĉ"),
			radius: 1,
			want:   [][]string{{"ab", "abc"}},
		},
		{
			name:   "unrelated",
			values: raw("foo", "bar"),
			radius: 1,
			want:   nil,
		},
		{
			name:   "short diacritic letters",
			values: raw("ä", "ö", "ü", "ß"),
			radius: 1,
			want:   nil,
		},
		{
			name:   "large radius merges numbered values",
			values: raw("value1", "value2", "value3", "value4"),
			radius: 10,
			want:   [][]string{{"value1", "value2", "value3", "value4"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(distance.PPM, tt.radius)
			require.NoError(t, err)

			res, err := c.Cluster(context.Background(), tt.values, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(res))
		})
	}
}

func TestCluster_Chaining(t *testing.T) {
	c, err := New(distance.Levenshtein, 1)
	require.NoError(t, err)

	res, err := c.Cluster(context.Background(), raw("aaaa", "aaab", "aabb", "abbb", "bbbb"), nil)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, 5, res[0].Len())
}

func TestCluster_ZeroRadius(t *testing.T) {
	c, err := New(distance.Levenshtein, 0)
	require.NoError(t, err)

	res, err := c.Cluster(context.Background(), raw("kitten", "sitten", "sitting"), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}

func TestCluster_RadiusMonotonicity(t *testing.T) {
	vals := raw("kitten", "sitten", "sittin", "sitting", "mitten", "smitten", "bitten", "written")

	var prev model.Result
	for _, r := range []float64{0, 1, 2, 3} {
		c, err := New(distance.Levenshtein, r)
		require.NoError(t, err)
		res, err := c.Cluster(context.Background(), vals, nil)
		require.NoError(t, err)

		// Every cluster at a smaller radius is contained in one at this radius.
		for _, small := range prev {
			found := false
			for _, big := range res {
				if isSubset(small.Values(), big.Values()) {
					found = true
					break
				}
			}
			assert.True(t, found, "radius %v lost cluster %v", r, small.Values())
		}
		prev = res
	}
}

func isSubset(a, b []string) bool {
	set := make(map[string]struct{}, len(b))
	for _, s := range b {
		set[s] = struct{}{}
	}
	for _, s := range a {
		if _, ok := set[s]; !ok {
			return false
		}
	}
	return true
}

func TestCluster_ParallelDeterminism(t *testing.T) {
	var vals []model.RawValue
	for i := 0; i < 300; i++ {
		vals = append(vals, model.RawValue{Value: fmt.Sprintf("item-%03d", i), Count: i%7 + 1})
	}

	serial, err := New(distance.Levenshtein, 1, WithWorkers(1), WithChunkRows(1000))
	require.NoError(t, err)
	parallel, err := New(distance.Levenshtein, 1, WithWorkers(8), WithChunkRows(3))
	require.NoError(t, err)

	a, err := serial.Cluster(context.Background(), vals, nil)
	require.NoError(t, err)
	b, err := parallel.Cluster(context.Background(), vals, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)

	seen := make(map[string]bool)
	for _, c := range a {
		assert.GreaterOrEqual(t, c.Len(), 2)
		for _, v := range c.Values() {
			assert.False(t, seen[v], "value %q in two clusters", v)
			seen[v] = true
		}
	}
}

func TestCluster_Budget(t *testing.T) {
	budget := resource.NewController(resource.Config{MaxComparisons: 2}).NewBudget()

	c, err := New(distance.Levenshtein, 1, WithBudget(budget), WithWorkers(1))
	require.NoError(t, err)

	_, err = c.Cluster(context.Background(), raw("aaaa", "aaab", "aabb", "abbb", "bbbb"), nil)
	assert.ErrorIs(t, err, resource.ErrBudgetExceeded)
}

func TestCluster_BudgetCountsComparisons(t *testing.T) {
	budget := resource.NewController(resource.Config{}).NewBudget()

	c, err := New(distance.Levenshtein, 1, WithBudget(budget))
	require.NoError(t, err)

	// Only ab/abc share a gram.
	_, err = c.Cluster(context.Background(), raw("ab", "abc", "xyz"), nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), budget.Used())
}

func TestCluster_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c, err := New(distance.PPM, 1)
	require.NoError(t, err)

	_, err = c.Cluster(ctx, raw("ab", "abc"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCluster_IndexMismatch(t *testing.T) {
	c, err := New(distance.PPM, 1)
	require.NoError(t, err)

	idx := blocking.Build([]string{"ab"}, 2)
	_, err = c.Cluster(context.Background(), raw("ab", "abc"), idx)
	assert.Error(t, err)
}

func TestCluster_RepeatedValues(t *testing.T) {
	c, err := New(distance.PPM, 1)
	require.NoError(t, err)

	tests := []struct {
		name   string
		values []model.RawValue
		want   [][]string
	}{
		{"repeat alone", raw("value", "value", "other"), nil},
		{"repeat with neighbour", raw("ab", "ab", "abc"), [][]string{{"ab", "abc"}}},
		{"empty strings dropped", raw("", "", "ab"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := c.Cluster(context.Background(), tt.values, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, values(res))
		})
	}
}

func TestCluster_RepeatedValuesRebuildIndex(t *testing.T) {
	c, err := New(distance.PPM, 1)
	require.NoError(t, err)

	vals := raw("ab", "abc", "ab")
	idx := blocking.Build([]string{"ab", "abc", "ab"}, 2)

	res, err := c.Cluster(context.Background(), vals, idx)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []string{"ab", "abc"}, res[0].Values())
	assert.Equal(t, 2, res[0].Entries[0].Count)
}

func TestNew_InvalidRadius(t *testing.T) {
	for _, r := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err := New(distance.PPM, r)
		assert.ErrorIs(t, err, ErrInvalidRadius)
	}
}
