// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CaseMatchSource: The opinion similarity backend
//   - NoteStore: Persistence of the notes collection
//   - ConfigStore: Application configuration
//   - Normaliser / NormaliserRegistry: Text extraction for uploaded facts
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Opinion title generation. Without it, titles are disabled.
//   - Clipboard: Copying case links. Without it, copy reports an error.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or normaliser package
package driven
