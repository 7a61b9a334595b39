// Package codec selects the encoding used for persisted hashkit documents
// such as manifests.
//
// Every encoded document records the codec name, so changing Default never
// breaks decoding of files written earlier.
package codec

import (
	"fmt"
	"slices"
)

// Codec converts documents to and from bytes. Implementations are stateless
// and safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default encodes newly written documents.
var Default Codec = GoJSON{}

var registry = map[string]Codec{
	JSON{}.Name():   JSON{},
	GoJSON{}.Name(): GoJSON{},
}

// ByName looks up a built-in codec by the name it records in documents.
func ByName(name string) (Codec, bool) {
	c, ok := registry[name]
	return c, ok
}

// Names lists the built-in codecs in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MustMarshal encodes v with c, or Default when c is nil, and panics on error.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("codec: %s: %v", c.Name(), err))
	}
	return b
}
