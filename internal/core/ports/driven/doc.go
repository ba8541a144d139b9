// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - Tokenizer, TokenizerFactory: Word splitting with byte offsets
//   - TokenizerRegistry: Resolves tokenizers by name
//   - Normaliser: Extracts title and text from raw markup
//   - DocumentStore: Document persistence
//   - SearchEngine: Posting storage and term lookup
//   - ConfigStore: Application configuration
//   - Connector: Document source for full and incremental syncs
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, tokenizer or normaliser package
package driven
