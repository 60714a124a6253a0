package utils

import (
	"encoding/json"
	"io"
)

// MarshalToPrint writes input as indented JSON to w.
func MarshalToPrint[T any](w io.Writer, input T) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(input)
}
