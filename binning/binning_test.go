package binning

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/keycluster/keyer"
	"github.com/hupe1980/keycluster/model"
)

func raw(pairs ...any) []model.RawValue {
	var out []model.RawValue
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, model.RawValue{Value: pairs[i].(string), Count: pairs[i+1].(int)})
	}
	return out
}

func fingerprint(t *testing.T) keyer.Func {
	t.Helper()
	fn, err := keyer.Bind(keyer.Fingerprint{})
	require.NoError(t, err)
	return fn
}

func TestCluster(t *testing.T) {
	tests := []struct {
		name   string
		values []model.RawValue
		want   [][]string
	}{
		{
			name:   "case and punctuation",
			values: raw("New York", 3, "new york", 2, "NEW YORK.", 1, "Boston", 4),
			want:   [][]string{{"New York", "new york", "NEW YORK."}},
		},
		{
			name:   "word order",
			values: raw("Doe, John", 1, "John Doe", 1),
			want:   [][]string{{"Doe, John", "John Doe"}},
		},
		{
			name:   "no duplicates",
			values: raw("foo", 1, "bar", 1),
			want:   nil,
		},
		{
			name:   "empty keys never cluster",
			values: raw("...", 1, "!!!", 1, "  ", 1),
			want:   nil,
		},
		{
			name:   "single value",
			values: raw("alone", 5),
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New(fingerprint(t)).Cluster(context.Background(), tt.values)
			require.NoError(t, err)

			var got [][]string
			for _, c := range res {
				got = append(got, c.Values())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCluster_RepeatedValues(t *testing.T) {
	t.Run("one string repeated", func(t *testing.T) {
		values := make([]model.RawValue, 1000)
		for i := range values {
			values[i] = model.RawValue{Value: "value", Count: 1}
		}

		res, err := New(fingerprint(t)).Cluster(context.Background(), values)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("repeats are merged", func(t *testing.T) {
		values := []model.RawValue{
			{Value: "Foo", Count: 1, Rows: []int{0}},
			{Value: "Foo", Count: 1, Rows: []int{2}},
			{Value: "foo", Count: 1, Rows: []int{1}},
		}

		res, err := New(fingerprint(t)).Cluster(context.Background(), values)
		require.NoError(t, err)
		require.Len(t, res, 1)
		assert.Equal(t, []string{"Foo", "foo"}, res[0].Values())
		assert.Equal(t, 2, res[0].Entries[0].Count)
		assert.Equal(t, []int{0, 2}, res[0].Entries[0].Rows)
	})
}

func TestCluster_Ordering(t *testing.T) {
	values := raw("b", 1, "B", 1, "a", 1, "A.", 1, "c", 5, "C", 1)

	res, err := New(fingerprint(t)).Cluster(context.Background(), values)
	require.NoError(t, err)
	require.Len(t, res, 3)

	assert.Equal(t, []string{"c", "C"}, res[0].Values())
	assert.Equal(t, 6, res[0].Count)
	// Equal counts fall back to the smallest member.
	assert.Equal(t, []string{"A.", "a"}, res[1].Values())
	assert.Equal(t, []string{"B", "b"}, res[2].Values())
}

func TestCluster_NGramFingerprint(t *testing.T) {
	fn, err := keyer.Bind(keyer.NGramFingerprint{}, 1)
	require.NoError(t, err)

	res, err := New(fn).Cluster(context.Background(), raw("abc", 1, "cba", 1, "bca", 1, "xyz", 1))
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, []string{"abc", "bca", "cba"}, res[0].Values())
}

func TestCluster_ParallelDeterminism(t *testing.T) {
	var values []model.RawValue
	for i := 0; i < 5000; i++ {
		v := fmt.Sprintf("value %d", i%500)
		if i >= 500 {
			v = fmt.Sprintf("%s %s", strings.ToUpper(v), strings.Repeat(".", i/500))
		}
		values = append(values, model.RawValue{Value: v, Count: 1})
	}
	values = model.Aggregate(values)

	serial, err := New(fingerprint(t), WithWorkers(1)).Cluster(context.Background(), values)
	require.NoError(t, err)
	parallel, err := New(fingerprint(t), WithWorkers(8)).Cluster(context.Background(), values)
	require.NoError(t, err)

	assert.Len(t, serial, 500)
	assert.Equal(t, serial, parallel)
}

func TestCluster_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(fingerprint(t)).Cluster(ctx, raw("a", 1, "A", 1))
	assert.ErrorIs(t, err, context.Canceled)
}
