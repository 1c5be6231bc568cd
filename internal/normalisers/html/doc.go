// Package html provides a Normaliser implementation for HTML fact patterns.
// It extracts readable text content from HTML, stripping tags, scripts
// and styles, and decoding entities.
package html
