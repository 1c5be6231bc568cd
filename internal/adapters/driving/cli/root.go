// Package cli provides the cobra command tree for citewise.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/citewise/internal/core/domain"
	"github.com/custodia-labs/citewise/internal/core/ports/driving"
	"github.com/custodia-labs/citewise/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// Options carries the root flags to the bootstrap function.
type Options struct {
	ConfigDir string
	Verbose   bool
}

// Bootstrap wires services for a command run. The returned cleanup runs
// once the command finishes and may be nil.
type Bootstrap func(ctx context.Context, opts Options) (cleanup func(), err error)

// LLMValidator checks LLM settings against the provider.
type LLMValidator interface {
	ValidateLLM(config *domain.LLMSettings) error
}

var (
	verbose   bool
	configDir string

	bootstrap Bootstrap
	cleanup   func()
)

// Services used by commands. Set by the bootstrap via the Set* functions.
var (
	queryFlow           driving.QueryFlow
	caseSearchService   driving.CaseSearchService
	noteService         driving.NoteService
	titleService        driving.OpinionTitleService
	factService         driving.FactService
	settingsService     driving.SettingsService
	resultActionService driving.ResultActionService
	llmValidator        LLMValidator
)

var errServiceNotConfigured = errors.New("service not configured")

var rootCmd = &cobra.Command{
	Use:   "citewise",
	Short: "Find case law that matches a client's facts",
	Long: `citewise finds court opinions relevant to a fact pattern.

Describe what happened, optionally attach a fact document, and citewise
returns matching cases ranked by similarity with links to each opinion.

Run 'citewise tui' for the interactive interface.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.citewise)")
}

// SetBootstrap registers the function that wires services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetVersion sets the version printed by 'citewise version'.
func SetVersion(v string) {
	version = v
}

// SetQueryFlow sets the conversational submit flow.
func SetQueryFlow(f driving.QueryFlow) {
	queryFlow = f
}

// SetCaseSearchService sets the stateless case search service.
func SetCaseSearchService(s driving.CaseSearchService) {
	caseSearchService = s
}

// SetNoteService sets the note service.
func SetNoteService(s driving.NoteService) {
	noteService = s
}

// SetTitleService sets the opinion title service.
func SetTitleService(s driving.OpinionTitleService) {
	titleService = s
}

// SetFactService sets the fact file service.
func SetFactService(s driving.FactService) {
	factService = s
}

// SetSettingsService sets the settings service.
func SetSettingsService(s driving.SettingsService) {
	settingsService = s
}

// SetResultActionService sets the result action service.
func SetResultActionService(s driving.ResultActionService) {
	resultActionService = s
}

// SetLLMValidator sets the validator used by 'config check'.
func SetLLMValidator(v LLMValidator) {
	llmValidator = v
}

// Execute runs the root command. SIGINT and SIGTERM cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer runCleanup()

	return rootCmd.ExecuteContext(ctx)
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if bootstrap == nil || cmd == versionCmd {
		return nil
	}

	logger.Section("Bootstrap")
	c, err := bootstrap(cmd.Context(), Options{ConfigDir: configDir, Verbose: verbose})
	if err != nil {
		return err
	}
	cleanup = c
	return nil
}

func runCleanup() {
	if cleanup != nil {
		cleanup()
		cleanup = nil
	}
}
