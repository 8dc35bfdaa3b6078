// Package confloader provides configuration loading mechanism.
package confloader

import (
	"errors"

	"github.com/knadh/koanf/maps"
)

// ErrNoByteForm is returned when ReadBytes is called on the overlay provider.
var ErrNoByteForm = errors.New("confloader: overlay provider has no byte form, use Read() instead")

// overlay is a koanf provider that feeds configuration from an in-memory
// map. Keys may be flat and dot-delimited ("workload.workers"); Read
// expands them into the nested shape koanf expects, so values loaded this
// way unmarshal into sectioned structs the same as file values.
type overlay struct {
	values map[string]any
	delim  string
}

// ReadBytes is unsupported; overlay data has no serialized form.
func (o overlay) ReadBytes() ([]byte, error) {
	return nil, ErrNoByteForm
}

// Read returns the configuration map with flat keys expanded.
func (o overlay) Read() (map[string]any, error) {
	return maps.Unflatten(o.values, o.delim), nil
}
