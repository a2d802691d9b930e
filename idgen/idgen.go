// Package idgen generates the opaque identifiers handed across the bridge
// boundary for documents and element handles.
//
// The strategy is a startup-time decision: bridge.Config selects it.
package idgen

import (
	"crypto/rand"
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique string identifiers.
type Generator func() string

// NanoID returns a Generator that produces base-36 IDs of the given length.
// Shorter than UUIDv7; use where ids are typed by hand or logged often.
func NanoID(length int) Generator {
	const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	return func() string {
		buf := make([]byte, length)
		if _, err := rand.Read(buf); err != nil {
			panic("idgen: crypto/rand failed: " + err.Error())
		}
		for i := range buf {
			buf[i] = alphabet[int(buf[i])%len(alphabet)]
		}
		return string(buf)
	}
}

// UUIDv7 returns a Generator that produces RFC 9562 UUID v7 strings.
func UUIDv7() Generator {
	return func() string {
		return uuid.Must(uuid.NewV7()).String()
	}
}

// Prefixed wraps a Generator and prepends a fixed prefix to every ID
// ("doc_", "el_").
func Prefixed(prefix string, gen Generator) Generator {
	return func() string {
		return prefix + gen()
	}
}

// Default is UUIDv7: time-sortable and globally unique.
var Default Generator = UUIDv7()

// ByName returns the generator for a configured strategy name.
func ByName(name string) (Generator, error) {
	switch name {
	case "", "uuidv7":
		return UUIDv7(), nil
	case "nanoid":
		return NanoID(16), nil
	default:
		return nil, fmt.Errorf("idgen: unknown strategy %q", name)
	}
}
