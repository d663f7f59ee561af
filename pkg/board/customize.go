package board

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Customizer rewrites a rendered option document before emission. The
// returned slice replaces the document; returning an error aborts the
// update.
type Customizer func(option []byte) ([]byte, error)

// Set returns a customizer that sets a value at a gjson-style path, for
// example Set("series.0.smooth", true).
func Set(path string, value any) Customizer {
	return func(option []byte) ([]byte, error) {
		return sjson.SetBytes(option, path, value)
	}
}

// SetRaw returns a customizer that splices a raw JSON fragment at a path.
func SetRaw(path, raw string) Customizer {
	return func(option []byte) ([]byte, error) {
		return sjson.SetRawBytes(option, path, []byte(raw))
	}
}

// Delete returns a customizer that removes the value at a path.
func Delete(path string) Customizer {
	return func(option []byte) ([]byte, error) {
		return sjson.DeleteBytes(option, path)
	}
}

// Get reads a value out of an option document by path. It is a thin wrapper
// for callers inspecting emitted documents.
func Get(option []byte, path string) gjson.Result {
	return gjson.GetBytes(option, path)
}

// Pretty re-indents an option document for human consumption.
func Pretty(option []byte) []byte {
	return pretty.Pretty(option)
}
