package entity

import (
	"slices"
	"strings"
)

//go:generate go run gen/main.go -o table.go

// entry is one named character reference.
type entry struct {
	name string
	utf8 string
}

// Lookup returns the replacement text of the named character reference
// name, given without the leading '&' and trailing ';'.
// Names are case-sensitive and must match a table entry exactly.
func Lookup(name []byte) (string, bool) {
	if len(name) == 0 || len(name) > maxNameLength {
		return "", false
	}
	i, found := slices.BinarySearchFunc(table[:], name, func(e entry, target []byte) int {
		return strings.Compare(e.name, string(target))
	})
	if !found {
		return "", false
	}
	return table[i].utf8, true
}

// MaxNameLength returns the length of the longest supported entity name.
func MaxNameLength() int {
	return maxNameLength
}
