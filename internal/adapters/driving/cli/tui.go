package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/citewise/internal/adapters/driving/tui"
	"github.com/custodia-labs/citewise/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/citewise/internal/logger"
)

// TUIConfig holds configuration for the TUI command that the plain
// service setters do not cover.
type TUIConfig struct {
	// Watch blocks until ctx is done, calling onChange whenever the
	// config file is rewritten. Optional.
	Watch func(ctx context.Context, onChange func()) error

	// LogFile receives log output while the TUI owns the terminal.
	LogFile string
}

// tuiConfig holds the current TUI configuration.
var tuiConfig *TUIConfig

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for citewise.

Describe your client's facts in the chat, or attach a fact document, and
browse the matching cases with their opinions side by side.

Controls:
  enter    - Search / expand a case
  ctrl+o   - Attach a fact file
  ctrl+r   - Show the last results
  ctrl+n   - Notes
  o / y    - Open the opinion / copy the case link
  t        - Generate an opinion title
  esc      - Back / cancel a pending search
  ctrl+c   - Quit`,
	RunE: runTUI,
}

// SetTUIConfig sets the configuration for the TUI command.
func SetTUIConfig(config *TUIConfig) {
	tuiConfig = config
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if queryFlow == nil {
		return fmt.Errorf("query flow: %w", errServiceNotConfigured)
	}

	if tuiConfig != nil && tuiConfig.LogFile != "" {
		restore, err := logger.ToFile(tuiConfig.LogFile)
		if err != nil {
			return err
		}
		defer restore()
	}

	ports := &tui.Ports{
		Flow:     queryFlow,
		Facts:    factService,
		Actions:  resultActionService,
		Titles:   titleService,
		Notes:    noteService,
		Settings: settingsService,
	}

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := app.NewProgram()

	// The watcher is long-running; stop it with the program.
	if tuiConfig != nil && tuiConfig.Watch != nil {
		go func() {
			err := tuiConfig.Watch(ctx, func() {
				p.Send(messages.SettingsReloaded{})
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
