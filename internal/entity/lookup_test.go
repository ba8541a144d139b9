package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_SortedAndUnique(t *testing.T) {
	for i := 1; i < len(table); i++ {
		assert.Less(t, strings.Compare(table[i-1].name, table[i].name), 0,
			"%q must sort before %q", table[i-1].name, table[i].name)
	}
}

func TestTable_NamesFitLimit(t *testing.T) {
	longest := 0
	for _, e := range table {
		assert.NotEmpty(t, e.utf8, e.name)
		longest = max(longest, len(e.name))
	}
	assert.Equal(t, MaxNameLength(), longest)
}

func TestLookup_EveryEntry(t *testing.T) {
	for _, e := range table {
		got, ok := Lookup([]byte(e.name))
		if !assert.True(t, ok, e.name) {
			continue
		}
		assert.Equal(t, e.utf8, got)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		found bool
	}{
		{"amp", "&", true},
		{"AMP", "&", true},
		{"lt", "<", true},
		{"nbsp", "\u00a0", true},
		{"copy", "\u00a9", true},
		{"fjlig", "fj", true},
		{"Amp", "", false},
		{"am", "", false},
		{"ampx", "", false},
		{"", "", false},
		{strings.Repeat("a", 64), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Lookup([]byte(tt.name))
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
