// Package urllist reads newline-separated URL files for batch analysis.
package urllist

import (
	"crypto/sha256"
	"fmt"
	"os"
	"strings"
)

// List holds a loaded URL file with its entries and metadata.
type List struct {
	FilePath string
	Hash     string
	Entries  []Entry
}

// Entry is one URL and the 1-based line it came from.
type Entry struct {
	Line int
	URL  string
}

// Load reads a URL file and computes its SHA-256 hash.
func Load(path string) (*List, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("urllist.Load: %w", err)
	}
	h := sha256.Sum256(data)
	return &List{
		FilePath: path,
		Hash:     fmt.Sprintf("sha256:%x", h),
		Entries:  Parse(string(data)),
	}, nil
}

// Parse extracts URLs from text. Blank lines and lines starting with '#'
// are skipped; surrounding whitespace is trimmed.
func Parse(text string) []Entry {
	var entries []Entry
	for i, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		entries = append(entries, Entry{Line: i + 1, URL: trimmed})
	}
	return entries
}

// URLs returns the entries' URLs in file order.
func (l *List) URLs() []string {
	out := make([]string, 0, len(l.Entries))
	for _, e := range l.Entries {
		out = append(out, e.URL)
	}
	return out
}
