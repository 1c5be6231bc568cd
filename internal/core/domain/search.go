package domain

// RawOpinion is one opinion attached to a backend match.
// DownloadURL is nil when the backend has no document for it.
type RawOpinion struct {
	ID          int64
	Snippet     string
	DownloadURL *string
	Type        string
}

// RawMatch is a single case as returned by the similarity backend,
// before any filtering.
type RawMatch struct {
	// CaseName is the display name of the case.
	CaseName string

	// AbsoluteURL is the path suffix of the case page on the case origin.
	AbsoluteURL string

	// Distance is the backend's raw vector distance. Lower is closer.
	Distance float64

	// Court, DateFiled and DocketID are display metadata only.
	Court     string
	DateFiled string
	DocketID  int64

	// Opinions are in backend order.
	Opinions []RawOpinion
}

// Opinion is a viewable opinion of a published result.
// DownloadURL is always non-empty.
type Opinion struct {
	Snippet     string
	DownloadURL string
}

// SearchResult is a published case. Every result has at least one opinion.
type SearchResult struct {
	// CaseName is the display name of the case.
	CaseName string

	// AbsoluteURL is the full case link (case origin + backend suffix).
	AbsoluteURL string

	// Similarity is the bounded score in [0, 100].
	Similarity float64

	// Court and DateFiled are carried through from the backend for display.
	Court     string
	DateFiled string

	// Opinions contains only opinions with a download URL, in backend order.
	Opinions []Opinion
}

// FirstOpinionURL returns the document URL shown when the result is opened.
func (r SearchResult) FirstOpinionURL() string {
	if len(r.Opinions) == 0 {
		return ""
	}
	return r.Opinions[0].DownloadURL
}
