package driven

// TokenizerRegistry resolves tokenizer implementations by name.
// It stands in for the host engine's tokenizer lookup.
type TokenizerRegistry interface {
	// Find returns the factory registered under name.
	// Returns domain.ErrLookupFailure if no tokenizer has that name.
	Find(name string) (TokenizerFactory, error)

	// Names returns all registered tokenizer names.
	Names() []string
}
