package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// indent keeps documents diffable; both codecs emit identical bytes.
const indent = "  "

// JSON uses encoding/json.
type JSON struct{}

func (JSON) Marshal(v any) ([]byte, error)      { return json.MarshalIndent(v, "", indent) }
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (JSON) Name() string                       { return "json" }

// GoJSON uses github.com/goccy/go-json, a faster drop-in for encoding/json.
type GoJSON struct{}

func (GoJSON) Marshal(v any) ([]byte, error)      { return gojson.MarshalIndent(v, "", indent) }
func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }
func (GoJSON) Name() string                       { return "go-json" }
