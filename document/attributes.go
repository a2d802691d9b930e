package document

import (
	"bytes"
	"encoding/json"
	"iter"

	"github.com/hazyhaar/scrape/document/internal/tree"
)

// Attributes is an ordered snapshot of an element's attributes. Names are
// unique. The zero value is empty.
type Attributes struct {
	keys   []string
	values map[string]string
}

func newAttributes(attrs []tree.Attr) Attributes {
	a := Attributes{
		keys:   make([]string, 0, len(attrs)),
		values: make(map[string]string, len(attrs)),
	}
	for _, at := range attrs {
		a.keys = append(a.keys, at.Key)
		a.values[at.Key] = at.Val
	}
	return a
}

// Len returns the number of attributes.
func (a Attributes) Len() int { return len(a.keys) }

// Get returns the value for name.
func (a Attributes) Get(name string) (string, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Has reports whether name is present.
func (a Attributes) Has(name string) bool {
	_, ok := a.values[name]
	return ok
}

// Keys returns the attribute names in source order.
func (a Attributes) Keys() []string {
	return append([]string(nil), a.keys...)
}

// All yields name/value pairs in source order.
func (a Attributes) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for _, k := range a.keys {
			if !yield(k, a.values[k]) {
				return
			}
		}
	}
}

// MarshalJSON encodes the attributes as a JSON object, keeping source order.
func (a Attributes) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range a.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(a.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
