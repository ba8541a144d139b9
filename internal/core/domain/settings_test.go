package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	settings := DefaultAppSettings()

	assert.Equal(t, []string{"html", "unicode61"}, settings.Tokenizer)
	assert.Empty(t, settings.DataDir)
	assert.Equal(t, DefaultSearchLimit, settings.Search.Limit)
}

func TestDefaultAppSettings_Independent(t *testing.T) {
	a := DefaultAppSettings()
	a.Tokenizer[0] = "changed"

	assert.Equal(t, "html", DefaultAppSettings().Tokenizer[0])
}
