// Command citewise finds case law matching a client's facts.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/citewise/internal/adapters/driven/ai"
	"github.com/custodia-labs/citewise/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/citewise/internal/adapters/driven/config/file"
	"github.com/custodia-labs/citewise/internal/adapters/driven/opinions"
	"github.com/custodia-labs/citewise/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/citewise/internal/adapters/driving/cli"
	"github.com/custodia-labs/citewise/internal/core/services"
	"github.com/custodia-labs/citewise/internal/logger"
	"github.com/custodia-labs/citewise/internal/normalisers"
	"github.com/custodia-labs/citewise/internal/normalisers/docx"
	"github.com/custodia-labs/citewise/internal/normalisers/eml"
	"github.com/custodia-labs/citewise/internal/normalisers/html"
	"github.com/custodia-labs/citewise/internal/normalisers/markdown"
	"github.com/custodia-labs/citewise/internal/normalisers/plaintext"
)

var version = "dev"

func main() {
	// A missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// bootstrap wires every service from the config directory.
func bootstrap(_ context.Context, opts cli.Options) (func(), error) {
	configDir := opts.ConfigDir
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".citewise")
	}

	configStore, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	client, err := opinions.NewClient(opinions.ConfigFromSettings(settings.Search))
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}

	dataDir := settings.Storage.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	logger.Debug("Using database %s", store.Path())

	registry := normalisers.NewRegistry()
	registry.Register(plaintext.New())
	registry.Register(markdown.New())
	registry.Register(html.New())
	registry.Register(docx.New())
	registry.Register(eml.New())

	// Titles are optional; a bad key only disables them.
	llm, err := ai.CreateLLMService(&settings.LLM)
	if err != nil {
		logger.Warn("Opinion titles disabled: %v", err)
		llm = nil
	}
	titleService := services.NewOpinionTitleService(llm)
	prompts, err := file.NewPromptStore(filepath.Join(configDir, "prompts"))
	if err != nil {
		logger.Warn("Using built-in prompts: %v", err)
	} else {
		titleService.SetPromptStore(prompts)
	}

	normalizer := services.NewNormalizer(settings.Search.CaseOrigin)
	flow := services.NewSubmissionFlow(
		client,
		normalizer,
		services.NewConversation(),
		services.NewSelectionController(),
		services.WithMaxQueryLength(settings.Search.MaxQueryLength),
	)

	cli.SetQueryFlow(flow)
	caseSearch := services.NewCaseSearchService(client, normalizer)
	caseSearch.SetMaxQueryLength(settings.Search.MaxQueryLength)
	cli.SetCaseSearchService(caseSearch)
	cli.SetNoteService(services.NewNoteService(store.NoteStore()))
	cli.SetTitleService(titleService)
	cli.SetFactService(services.NewFactService(registry))
	cli.SetSettingsService(settingsService)
	cli.SetResultActionService(services.NewResultActionService(clipboard.New()))
	cli.SetLLMValidator(ai.NewConfigValidator())
	cli.SetTUIConfig(&cli.TUIConfig{
		LogFile: filepath.Join(configDir, "citewise.log"),
		Watch: func(ctx context.Context, onChange func()) error {
			w, err := file.NewWatcher(configStore, func() {
				if prompts != nil {
					prompts.Reload()
				}
				onChange()
			})
			if err != nil {
				return err
			}
			return w.Run(ctx)
		},
	})

	return func() {
		if llm != nil {
			llm.Close()
		}
		if err := store.Close(); err != nil {
			logger.Warn("Closing store: %v", err)
		}
	}, nil
}
