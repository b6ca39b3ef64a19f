// Package reader extracts plain text from uploaded files so it can be
// chunked and embedded.
package reader

import (
	"path/filepath"
	"strings"

	"github.com/aqua777/ragspace/errs"
)

// Reader extracts the full plain text of a file.
type Reader interface {
	ExtractText(path string) (string, error)
}

// ForFile picks a Reader by file extension.
func ForFile(path string) (Reader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return NewPDFReader(), nil
	case ".txt", ".md":
		return NewTextReader(), nil
	default:
		return nil, errs.Input("unsupported file type: %s", filepath.Ext(path))
	}
}
