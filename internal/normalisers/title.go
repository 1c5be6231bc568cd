package normalisers

import (
	"path/filepath"
	"strings"
)

// TitleFromFileName derives a human-readable title from a file name.
func TitleFromFileName(name string) string {
	filename := filepath.Base(name)
	if ext := filepath.Ext(filename); ext != "" {
		filename = strings.TrimSuffix(filename, ext)
	}
	filename = strings.ReplaceAll(filename, "_", " ")
	filename = strings.ReplaceAll(filename, "-", " ")
	return strings.TrimSpace(filename)
}
