package report

import (
	"encoding/json"
	"io"
)

// WriteJSON serializes a Document to w with indentation — the §6 JSON
// finding document, the core's actual product.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
