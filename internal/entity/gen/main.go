//go:build ignore

// Command gen regenerates table.go from the WHATWG named character
// reference list.
//
//	go run gen/main.go -o table.go
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
)

const entitiesURL = "https://html.spec.whatwg.org/entities.json"

type definition struct {
	Characters string `json:"characters"`
}

func main() {
	out := flag.String("o", "table.go", "output file")
	url := flag.String("url", entitiesURL, "entity list location")
	flag.Parse()

	resp, err := http.Get(*url)
	if err != nil {
		log.Fatalf("fetching %s: %v", *url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("fetching %s: %s", *url, resp.Status)
	}

	var raw map[string]definition
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		log.Fatalf("decoding entity list: %v", err)
	}

	// "&amp;" and "&amp" are listed separately with the same characters.
	entities := make(map[string]string, len(raw))
	longest := 0
	for name, def := range raw {
		name = strings.TrimSuffix(strings.TrimPrefix(name, "&"), ";")
		entities[name] = def.Characters
		longest = max(longest, len(name))
	}

	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	buf.WriteString("// Code generated by gen/main.go; DO NOT EDIT.\n\npackage entity\n\n")
	buf.WriteString("// maxNameLength is the length of the longest entity name, without the\n")
	buf.WriteString("// leading ampersand and trailing semicolon.\n")
	fmt.Fprintf(&buf, "const maxNameLength = %d\n\n", longest)
	buf.WriteString("// table maps entity names to their UTF-8 replacement text, sorted by name.\n")
	buf.WriteString("var table = [...]entry{\n")
	for _, name := range names {
		fmt.Fprintf(&buf, "\t{%q, \"%s\"},\n", name, escape(entities[name]))
	}
	buf.WriteString("}\n")

	if err := os.WriteFile(*out, buf.Bytes(), 0o644); err != nil {
		log.Fatalf("writing %s: %v", *out, err)
	}
}

func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 0x20 && r < 0x7f && r != '"' && r != '\\':
			b.WriteRune(r)
		case r < 0x80:
			fmt.Fprintf(&b, `\x%02x`, r)
		case r <= 0xffff:
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			fmt.Fprintf(&b, `\U%08x`, r)
		}
	}
	return b.String()
}
