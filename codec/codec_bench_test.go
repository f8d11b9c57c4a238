package codec

import (
	"fmt"
	"testing"

	"github.com/hupe1980/keycluster/model"
)

func benchResult() model.Result {
	var res model.Result
	for i := 0; i < 100; i++ {
		res = append(res, model.NewCluster([]model.RawValue{
			{Value: fmt.Sprintf("New York %d", i), Count: 10},
			{Value: fmt.Sprintf("new york %d", i), Count: 3},
			{Value: fmt.Sprintf("NEW YORK. %d", i), Count: 1},
		}))
	}
	return res
}

func benchmarkCodecMarshal(b *testing.B, c Codec, v any) {
	b.Helper()
	b.ReportAllocs()

	warm, err := c.Marshal(v)
	if err != nil {
		b.Fatal(err)
	}
	b.SetBytes(int64(len(warm)))

	var sink []byte
	b.ResetTimer()
	for b.Loop() {
		out, err := c.Marshal(v)
		if err != nil {
			b.Fatal(err)
		}
		sink = out
	}
	_ = sink
}

func BenchmarkCodec_Marshal_Result(b *testing.B) {
	res := benchResult()

	b.Run("stdlib", func(b *testing.B) { benchmarkCodecMarshal(b, JSON{}, res) })
	b.Run("go-json", func(b *testing.B) { benchmarkCodecMarshal(b, GoJSON{}, res) })
	b.Run("yaml", func(b *testing.B) { benchmarkCodecMarshal(b, YAML{}, res) })
}
