// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem under ~/.citewise.
//
// Adapters:
//   - ConfigStore: TOML-based configuration storage
//   - PromptStore: user-editable LLM prompt templates
//   - Watcher: reloads the configuration file when it changes on disk
package file
