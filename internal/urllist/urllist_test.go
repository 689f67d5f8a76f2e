package urllist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	content := "# watchlist\nhttps://example.com\n\n  crypto-quick-profit.com  \n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if l.FilePath != path {
		t.Errorf("FilePath = %q, want %q", l.FilePath, path)
	}
	if !strings.HasPrefix(l.Hash, "sha256:") {
		t.Errorf("Hash should start with sha256:, got %q", l.Hash)
	}
	if len(l.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(l.Entries))
	}
	if l.Entries[0].Line != 2 || l.Entries[0].URL != "https://example.com" {
		t.Errorf("entry 0 = %+v", l.Entries[0])
	}
	if l.Entries[1].Line != 4 || l.Entries[1].URL != "crypto-quick-profit.com" {
		t.Errorf("entry 1 = %+v", l.Entries[1])
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("/nonexistent/urls.txt")
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadHashDeterministic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "urls.txt")
	if err := os.WriteFile(path, []byte("https://a.example\n"), 0644); err != nil {
		t.Fatal(err)
	}
	l1, _ := Load(path)
	l2, _ := Load(path)
	if l1.Hash != l2.Hash {
		t.Error("same content should produce same hash")
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"comments only", "# a\n  # b", 0},
		{"crlf", "https://a.example\r\nhttps://b.example\r\n", 2},
		{"mixed", "a.example\n\n# skip\nb.example", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := Parse(tt.content)
			if len(entries) != tt.want {
				t.Errorf("got %d entries, want %d", len(entries), tt.want)
			}
			for _, e := range entries {
				if strings.ContainsAny(e.URL, "\r\n ") {
					t.Errorf("entry not trimmed: %q", e.URL)
				}
			}
		})
	}
}

func TestURLs(t *testing.T) {
	l := &List{Entries: Parse("one.example\ntwo.example")}
	got := l.URLs()
	if len(got) != 2 || got[0] != "one.example" || got[1] != "two.example" {
		t.Errorf("URLs() = %v", got)
	}
}
