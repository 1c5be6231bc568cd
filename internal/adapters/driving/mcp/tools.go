package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

// defaultCaseLimit caps find_cases output when no limit is given.
const defaultCaseLimit = 10

// FindCasesInput is the input schema for the find_cases tool.
type FindCasesInput struct {
	Facts string `json:"facts" jsonschema:"the client's fact pattern in plain language"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of cases to return (default 10)"`
}

// FindCasesOutput is the output schema for the find_cases tool.
type FindCasesOutput struct {
	Cases []CaseOutput `json:"cases"`
	Count int          `json:"count"`
}

// CaseOutput represents a single matching case.
type CaseOutput struct {
	CaseName   string          `json:"case_name"`
	URL        string          `json:"url"`
	Similarity float64         `json:"similarity"`
	Court      string          `json:"court,omitempty"`
	DateFiled  string          `json:"date_filed,omitempty"`
	Opinions   []OpinionOutput `json:"opinions"`
}

// OpinionOutput is one viewable opinion of a case.
type OpinionOutput struct {
	Snippet     string `json:"snippet,omitempty"`
	DownloadURL string `json:"download_url"`
}

// AddNoteInput is the input schema for the add_note tool.
type AddNoteInput struct {
	Content string `json:"content" jsonschema:"the note text"`
}

// AddNoteOutput is the output schema for the add_note tool.
type AddNoteOutput struct {
	ID        int64  `json:"id"`
	Timestamp string `json:"timestamp"`
}

// OpinionTitleInput is the input schema for the opinion_title tool.
type OpinionTitleInput struct {
	DownloadURL string `json:"download_url" jsonschema:"download URL of the opinion"`
	Query       string `json:"query" jsonschema:"the fact pattern the title should relate to"`
}

// OpinionTitleOutput is the output schema for the opinion_title tool.
type OpinionTitleOutput struct {
	Title string `json:"title"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_cases",
		Description: "Find court opinions relevant to a fact pattern, closest first",
	}, s.handleFindCases)

	if s.ports.Notes != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "add_note",
			Description: "Save a research note",
		}, s.handleAddNote)
	}

	if s.ports.Titles != nil && s.ports.Titles.Available() {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "opinion_title",
			Description: "Generate a short title for an opinion relevant to a query",
		}, s.handleOpinionTitle)
	}
}

// handleFindCases handles the find_cases tool invocation.
func (s *Server) handleFindCases(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindCasesInput,
) (*mcp.CallToolResult, FindCasesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultCaseLimit
	}

	results, err := s.ports.Search.Find(ctx, input.Facts, limit)
	if err != nil {
		return nil, FindCasesOutput{}, err
	}

	output := FindCasesOutput{
		Cases: make([]CaseOutput, len(results)),
		Count: len(results),
	}
	for i := range results {
		output.Cases[i] = toCaseOutput(&results[i])
	}

	return nil, output, nil
}

func toCaseOutput(r *domain.SearchResult) CaseOutput {
	ops := make([]OpinionOutput, len(r.Opinions))
	for i, o := range r.Opinions {
		ops[i] = OpinionOutput{Snippet: o.Snippet, DownloadURL: o.DownloadURL}
	}
	return CaseOutput{
		CaseName:   r.CaseName,
		URL:        r.AbsoluteURL,
		Similarity: r.Similarity,
		Court:      r.Court,
		DateFiled:  r.DateFiled,
		Opinions:   ops,
	}
}

// handleAddNote handles the add_note tool invocation.
func (s *Server) handleAddNote(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddNoteInput,
) (*mcp.CallToolResult, AddNoteOutput, error) {
	if s.ports.Notes == nil {
		return nil, AddNoteOutput{}, errors.New("notes are not available")
	}

	note, err := s.ports.Notes.Add(ctx, input.Content)
	if err != nil {
		return nil, AddNoteOutput{}, err
	}
	return nil, AddNoteOutput{ID: note.ID, Timestamp: note.Timestamp}, nil
}

// handleOpinionTitle handles the opinion_title tool invocation.
func (s *Server) handleOpinionTitle(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OpinionTitleInput,
) (*mcp.CallToolResult, OpinionTitleOutput, error) {
	if s.ports.Titles == nil {
		return nil, OpinionTitleOutput{}, domain.ErrLLMUnavailable
	}

	title, err := s.ports.Titles.Title(ctx, input.DownloadURL, input.Query)
	if err != nil {
		return nil, OpinionTitleOutput{}, err
	}
	return nil, OpinionTitleOutput{Title: title}, nil
}
