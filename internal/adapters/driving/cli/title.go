package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/citewise/internal/core/domain"
)

var titleCmd = &cobra.Command{
	Use:   "title [download-url] [query...]",
	Short: "Generate a query-relevant title for an opinion",
	Long: `Asks the configured LLM for a short title describing how the opinion at
download-url relates to the query.

Requires an API key: set OPENAI_API_KEY or run 'citewise config set llm.api_key'.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runTitle,
}

func init() {
	rootCmd.AddCommand(titleCmd)
}

func runTitle(cmd *cobra.Command, args []string) error {
	if titleService == nil {
		return fmt.Errorf("titles: %w", errServiceNotConfigured)
	}

	title, err := titleService.Title(cmd.Context(), args[0], strings.Join(args[1:], " "))
	if errors.Is(err, domain.ErrLLMUnavailable) {
		return fmt.Errorf("%w: set OPENAI_API_KEY or run 'citewise config set llm.api_key'", err)
	}
	if err != nil {
		return fmt.Errorf("failed to generate title: %w", err)
	}

	cmd.Println(title)
	return nil
}
