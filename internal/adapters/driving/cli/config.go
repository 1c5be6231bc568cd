package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and change settings",
	Long: `View and change citewise settings stored in ~/.citewise/config.toml.

Secrets (search.api_token, llm.api_key) may also come from the
CITEWISE_API_TOKEN and OPENAI_API_KEY environment variables or a .env file.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a setting",
	Long: `Set a single setting. For secret keys the value may be omitted and is
then read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List setting keys",
	RunE:  runConfigKeys,
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the LLM provider accepts the configured key",
	RunE:  runConfigCheck,
}

// secretInput is where secret values are read from. Tests replace it.
var secretInput io.Reader = os.Stdin

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configKeysCmd)
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errServiceNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Endpoint: %s\n", settings.Search.Endpoint)
	cmd.Printf("  Case origin: %s\n", settings.Search.CaseOrigin)
	cmd.Printf("  Timeout: %ds\n", settings.Search.TimeoutSeconds)
	cmd.Printf("  Requests per second: %g\n", settings.Search.RequestsPerSecond)
	cmd.Printf("  Max query length: %d\n", settings.Search.MaxQueryLength)
	cmd.Printf("  API token: %s\n", maskAPIKey(settings.Search.APIToken))
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Model: %s\n", settings.LLM.Model)
	cmd.Printf("  Base URL: %s\n", settings.LLM.BaseURL)
	cmd.Printf("  API key: %s\n", maskAPIKey(settings.LLM.APIKey))
	status := "configured"
	if !settings.LLM.IsConfigured() {
		status = "not configured (opinion titles disabled)"
	}
	cmd.Printf("  Status: %s\n", status)
	cmd.Println()

	cmd.Println("[Storage]")
	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = "(default)"
	}
	cmd.Printf("  Data dir: %s\n", dataDir)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errServiceNotConfigured)
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case settingsService.IsSecret(key):
		cmd.Printf("Enter value for %s: ", key)
		value = readSecret(secretInput)
		cmd.Println()
	default:
		return errors.New("a value is required for " + key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	shown := value
	if settingsService.IsSecret(key) {
		shown = maskAPIKey(value)
	}
	cmd.Printf("Set %s = %s\n", key, shown)
	return nil
}

func runConfigKeys(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errServiceNotConfigured)
	}
	for _, k := range settingsService.Keys() {
		cmd.Println(k)
	}
	return nil
}

func runConfigCheck(cmd *cobra.Command, _ []string) error {
	if settingsService == nil || llmValidator == nil {
		return fmt.Errorf("settings: %w", errServiceNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.LLM.IsConfigured() {
		cmd.Println("LLM not configured. Opinion titles are disabled.")
		return nil
	}
	if err := llmValidator.ValidateLLM(&settings.LLM); err != nil {
		return fmt.Errorf("LLM check failed: %w", err)
	}
	cmd.Printf("LLM %s is reachable.\n", settings.LLM.Model)
	return nil
}

// readSecret reads a line without echo when r is a terminal.
func readSecret(r io.Reader) string {
	if f, ok := r.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(password))
		}
	}
	input, _ := bufio.NewReader(r).ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
