package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContract(t *testing.T) {
	pairs := [][2]string{
		{"ab", "abc"},
		{"New York", "new york"},
		{"foo", "bar"},
		{"", "x"},
		{"ä", "ö"},
		{"ab\xff", "ab\xfe\xfd"},
		{"hello world", "hello wrld"},
	}

	for _, m := range Metrics() {
		t.Run(m.String(), func(t *testing.T) {
			fn, err := Provider(m)
			require.NoError(t, err)

			for _, p := range pairs {
				a, b := p[0], p[1]
				assert.Equal(t, 0.0, fn(a, a), "d(%q,%q)", a, a)
				assert.Equal(t, fn(a, b), fn(b, a), "symmetry %q/%q", a, b)
				assert.GreaterOrEqual(t, fn(a, b), 0.0, "non-negative %q/%q", a, b)
			}
		})
	}
}

func TestPPM(t *testing.T) {
	// These bounds are what the radius-1 scenarios of the knn clusterer
	// rely on.
	assert.Less(t, PPM("ab", "abc"), 1.0)
	assert.Less(t, PPM("value1", "value2"), 1.0)
	assert.Greater(t, PPM("foo", "bar"), 1.0)
	assert.Greater(t, PPM("c", "ĉ"), 1.0)

	assert.Less(t, PPM("hello world", "hello wrld"), PPM("london", "paris"))
}

func TestPPM_Scale(t *testing.T) {
	pairs := [][2]string{
		{"Michael Jordan", "Michael Jackson"},
		{"Acme Corporation", "Acme Insurance Group"},
		{"c", "ĉ"},
		{"foo", "bar"},
	}
	for _, p := range pairs {
		d := PPM(p[0], p[1])
		assert.GreaterOrEqual(t, d, 0.0, "%q/%q", p[0], p[1])
		assert.Less(t, d, 1.2, "%q/%q", p[0], p[1])
	}

	assert.Less(t, PPM("Michael Jordan", "Michael Jackson"), 0.5)
}

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b     string
		expected float64
	}{
		{"kitten", "sitting", 3},
		{"", "abc", 3},
		{"same", "same", 0},
		{"héllo", "hello", 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Levenshtein(tt.a, tt.b), "%q/%q", tt.a, tt.b)
	}
}

func TestNCD_ZeroSize(t *testing.T) {
	fn := NCD(CompressorFunc(func([]byte) float64 { return 0 }))
	assert.Equal(t, 0.0, fn("a", "b"))
}

func TestParseMetric(t *testing.T) {
	m, err := ParseMetric("PPM")
	require.NoError(t, err)
	assert.Equal(t, MetricPPM, m)

	m, err = ParseMetric(" Levenshtein ")
	require.NoError(t, err)
	assert.Equal(t, MetricLevenshtein, m)

	_, err = ParseMetric("jaro")
	assert.ErrorIs(t, err, ErrUnknownDistance)

	_, err = Provider(Metric(999))
	assert.ErrorIs(t, err, ErrUnknownDistance)
	assert.Equal(t, "Unknown(999)", Metric(999).String())
}
