// Package eml provides a Normaliser for client intake emails saved as .eml.
package eml

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driven"
	"github.com/custodia-labs/citewise/internal/normalisers"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser extracts the headers and text body of an email.
type Normaliser struct{}

// New creates a new email normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"message/rfc822"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50
}

// Normalise turns an email into a fact document. The sender, recipient
// and date head the content since they often matter to the facts.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawFile) (*domain.FactDocument, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	msg, err := mail.ReadMessage(bytes.NewReader(raw.Content))
	if err != nil {
		return nil, fmt.Errorf("parse email %s: %w", raw.Name, domain.ErrInvalidInput)
	}

	subject := decodeHeader(msg.Header.Get("Subject"))
	body, err := readBody(msg.Header.Get("Content-Type"), msg.Body)
	if err != nil {
		return nil, fmt.Errorf("read email %s: %w", raw.Name, err)
	}

	var content strings.Builder
	for _, h := range []struct{ label, value string }{
		{"From", decodeHeader(msg.Header.Get("From"))},
		{"To", decodeHeader(msg.Header.Get("To"))},
		{"Date", msg.Header.Get("Date")},
		{"Subject", subject},
	} {
		if h.value != "" {
			fmt.Fprintf(&content, "%s: %s\n", h.label, h.value)
		}
	}
	content.WriteString("\n")
	content.WriteString(body)

	title := subject
	if title == "" {
		title = normalisers.TitleFromFileName(raw.Name)
	}

	return &domain.FactDocument{
		ID:       uuid.New().String(),
		Name:     raw.Name,
		MIMEType: raw.MIMEType,
		Title:    title,
		Content:  strings.TrimSpace(content.String()),
	}, nil
}

// decodeHeader decodes RFC 2047 words, keeping the raw value on failure.
func decodeHeader(header string) string {
	if header == "" {
		return ""
	}
	decoded, err := new(mime.WordDecoder).DecodeHeader(header)
	if err != nil {
		return header
	}
	return decoded
}

// readBody returns the text of a message part. Multipart bodies prefer
// text/plain parts over HTML ones.
func readBody(contentType string, r io.Reader) (string, error) {
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = "text/plain"
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		return readMultipart(r, params["boundary"]), nil
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	if mediaType == "text/html" {
		return stripTags(string(body)), nil
	}
	return string(body), nil
}

func readMultipart(r io.Reader, boundary string) string {
	if boundary == "" {
		return ""
	}

	var plain, html []string
	mr := multipart.NewReader(r, boundary)
	for {
		part, err := mr.NextPart()
		if err != nil {
			break
		}
		ct := part.Header.Get("Content-Type")
		mediaType, _, parseErr := mime.ParseMediaType(ct)
		if parseErr != nil {
			mediaType = "application/octet-stream"
		}

		switch {
		case mediaType == "text/plain":
			text, _ := readBody(ct, part)
			plain = append(plain, text)
		case mediaType == "text/html":
			text, _ := readBody(ct, part)
			html = append(html, text)
		case strings.HasPrefix(mediaType, "multipart/"):
			if nested, _ := readBody(ct, part); nested != "" {
				plain = append(plain, nested)
			}
		}
		part.Close()
	}

	if len(plain) > 0 {
		return strings.Join(plain, "\n")
	}
	return strings.Join(html, "\n")
}

var (
	tags       = regexp.MustCompile(`<[^>]*>`)
	blankLines = regexp.MustCompile(`\n\s*\n+`)
)

// stripTags drops markup from an HTML body and collapses blank lines.
func stripTags(s string) string {
	s = tags.ReplaceAllString(s, "")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	return strings.TrimSpace(blankLines.ReplaceAllString(strings.Join(lines, "\n"), "\n"))
}
