package utils

import (
	"io"

	"github.com/goccy/go-json"
)

// WriteIndentedJSON writes the indented JSON encoding of v followed by a newline. HTML characters are not
// escaped, type signatures such as map<int> are kept readable.
func WriteIndentedJSON(w io.Writer, v any, indent string) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", indent)
	return encoder.Encode(v)
}
