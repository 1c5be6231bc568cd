package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
	searchFile  string
)

var searchCmd = &cobra.Command{
	Use:   "search [facts...]",
	Short: "Find cases matching a fact pattern",
	Long: `Sends a fact pattern to the case backend and prints matching cases,
closest first, with their similarity and viewable opinions.

The facts may be given as arguments, read from a file with --file, or both.
Supported files: plain text, Markdown, HTML, Word (.docx) and email (.eml).`,
	Example: `  citewise search "tenant slipped on broken stairs the landlord knew about"
  citewise search --file intake.docx "focus on notice"`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of cases (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().StringVarP(&searchFile, "file", "f", "", "fact pattern file to attach")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if queryFlow == nil {
		return fmt.Errorf("search: %w", errServiceNotConfigured)
	}

	ctx := cmd.Context()
	input := strings.Join(args, " ")

	var file *domain.FactDocument
	if searchFile != "" {
		if factService == nil {
			return fmt.Errorf("facts: %w", errServiceNotConfigured)
		}
		doc, err := factService.Load(ctx, searchFile)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", searchFile, err)
		}
		file = doc
	}

	outcome, err := queryFlow.Submit(ctx, input, file)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	results := outcome.Results
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

// searchResultJSON is the --json record for one case.
type searchResultJSON struct {
	CaseName   string        `json:"case_name"`
	URL        string        `json:"url"`
	Similarity float64       `json:"similarity"`
	Court      string        `json:"court,omitempty"`
	DateFiled  string        `json:"date_filed,omitempty"`
	Opinions   []opinionJSON `json:"opinions"`
}

type opinionJSON struct {
	Snippet     string `json:"snippet"`
	DownloadURL string `json:"download_url"`
}

func toSearchJSON(results []domain.SearchResult) []searchResultJSON {
	out := make([]searchResultJSON, len(results))
	for i, r := range results {
		ops := make([]opinionJSON, len(r.Opinions))
		for j, o := range r.Opinions {
			ops[j] = opinionJSON{Snippet: o.Snippet, DownloadURL: o.DownloadURL}
		}
		out[i] = searchResultJSON{
			CaseName:   r.CaseName,
			URL:        r.AbsoluteURL,
			Similarity: r.Similarity,
			Court:      r.Court,
			DateFiled:  r.DateFiled,
			Opinions:   ops,
		}
	}
	return out
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(toSearchJSON(results), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No matching cases found.")
		return nil
	}

	cmd.Println("Cases:")
	cmd.Println()
	for i := range results {
		r := &results[i]
		cmd.Printf("  [%d] %s (%.1f%%)\n", i+1, r.CaseName, r.Similarity)
		if meta := caseMeta(r); meta != "" {
			cmd.Printf("      %s\n", meta)
		}
		cmd.Printf("      %s\n", r.AbsoluteURL)
		for _, op := range r.Opinions {
			cmd.Printf("      - %s\n", op.DownloadURL)
		}
		cmd.Println()
	}
	return nil
}

func caseMeta(r *domain.SearchResult) string {
	switch {
	case r.Court != "" && r.DateFiled != "":
		return r.Court + ", " + r.DateFiled
	case r.Court != "":
		return r.Court
	default:
		return r.DateFiled
	}
}
