// Package export writes catalogs as JSON documents and XLSX workbooks.
package export

import (
	"encoding/json"
	"io"

	"github.com/kubev2v/migration-discovery/internal/models"
)

// WriteJSON writes the catalog document, indented, followed by a newline.
func WriteJSON(w io.Writer, c *models.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
