package codec

import gojson "github.com/goccy/go-json"

// GoJSON is the default codec for clustering configs and results. It is
// backed by github.com/goccy/go-json and produces the same bytes as JSON,
// including the {"v","c"} entry records written by model.Cluster.
type GoJSON struct{}

// Marshal encodes v. Cluster results go through their MarshalJSON methods.
func (GoJSON) Marshal(v any) ([]byte, error) { return gojson.Marshal(v) }

// Unmarshal decodes a config or result document into v. Numbers in untyped
// params decode as float64, as with encoding/json.
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

// Name returns "go-json".
func (GoJSON) Name() string { return "go-json" }
