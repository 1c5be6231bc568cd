package domain

// RawFile is an uploaded file before text extraction.
type RawFile struct {
	// Path is where the file was read from.
	Path string

	// Name is the base file name shown to the user.
	Name string

	// MIMEType is derived from the file extension.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}

// FactDocument is an uploaded fact pattern with its extracted text.
type FactDocument struct {
	ID       string
	Name     string
	MIMEType string

	// Title comes from the document itself when it has one, otherwise
	// from the file name.
	Title string

	// Content is the extracted plain text.
	Content string
}
