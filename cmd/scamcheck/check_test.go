package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/scamcheck/internal/risk"
)

// testFlags returns flags with no delay and a fixed seed, as if passed on the command line.
func testFlags(format string) *checkFlags {
	f := &checkFlags{}
	f.format = format
	f.seed = 42
	f.changed = map[string]bool{"format": true, "seed": true, "delay": true}
	return f
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitErr
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func runCheckT(t *testing.T, f *checkFlags, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := runCheck(context.Background(), &stdout, &stderr, args, f)
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// --- Pure function tests ---

func TestExitError(t *testing.T) {
	err := exitError(3, "bad %s", "input")
	if err.Error() != "bad input" {
		t.Errorf("Error() = %q", err.Error())
	}
	if exitCode(err) != 3 {
		t.Errorf("code = %d, want 3", exitCode(err))
	}
}

func TestResolveConfigFlagPrecedence(t *testing.T) {
	cfgPath := writeFile(t, "scamcheck.yaml", "format: md\nprofile: phishing\nhistory_size: 3\n")

	f := &sharedFlags{configPath: cfgPath, format: "json", historySize: 9}
	f.changed = map[string]bool{"format": true}
	cfg, err := f.resolveConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Format != "json" {
		t.Errorf("flag should override file: format = %q", cfg.Format)
	}
	if cfg.Profile != "phishing" {
		t.Errorf("file should override default: profile = %q", cfg.Profile)
	}
	if cfg.HistorySize != 3 {
		t.Errorf("unchanged flag must not override file: history_size = %d", cfg.HistorySize)
	}
}

func TestResolveConfigVerbose(t *testing.T) {
	f := &sharedFlags{verbose: true}
	cfg, err := f.resolveConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Log.Level)
	}
}

// --- Command tests ---

func TestRunCheckText(t *testing.T) {
	out, err := runCheckT(t, testFlags("text"), "crypto-quick-profit.com")
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	for _, want := range []string{
		"Domain:  crypto-quick-profit.com",
		"! Domain matches known scam database",
		"! Not using secure HTTPS connection",
		"Recommendations:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
}

func TestRunCheckJSON(t *testing.T) {
	out, err := runCheckT(t, testFlags("json"), "crypto-quick-profit.com")
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	var r risk.AnalysisResult
	if err := json.Unmarshal([]byte(out), &r); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if r.Domain != "crypto-quick-profit.com" {
		t.Errorf("domain = %q", r.Domain)
	}
	if r.RiskScore < 55 || !r.RiskLevel.AtLeast(risk.LevelMedium) {
		t.Errorf("score %d level %s, want >= 55 and >= MEDIUM", r.RiskScore, r.RiskLevel)
	}
	if r.ID == "" || r.Timestamp.IsZero() {
		t.Error("id and timestamp must be set")
	}
	for _, key := range []string{`"risk_score"`, `"risk_level"`, `"risk_factors"`, `"recommendations"`} {
		if !strings.Contains(out, key) {
			t.Errorf("JSON missing key %s", key)
		}
	}
}

func TestRunCheckMarkdown(t *testing.T) {
	out, err := runCheckT(t, testFlags("md"), "https://example.com")
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if !strings.Contains(out, "# Scam Risk Report") {
		t.Errorf("expected markdown report, got:\n%s", out)
	}
	if strings.Contains(out, risk.FactorInsecure) {
		t.Error("https URL must not be flagged insecure")
	}
}

func TestRunCheckSeedIsReproducible(t *testing.T) {
	out1, err := runCheckT(t, testFlags("json"), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	out2, err := runCheckT(t, testFlags("json"), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	var r1, r2 risk.AnalysisResult
	if err := json.Unmarshal([]byte(out1), &r1); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(out2), &r2); err != nil {
		t.Fatal(err)
	}
	if r1.RiskScore != r2.RiskScore || strings.Join(r1.RiskFactors, "|") != strings.Join(r2.RiskFactors, "|") {
		t.Errorf("same seed produced different results: %+v vs %+v", r1, r2)
	}
}

func TestRunCheckBatch(t *testing.T) {
	list := writeFile(t, "urls.txt", `# six scans
https://site1.example
https://site2.example
crypto-quick-profit.com
https://bit.ly/x
http://site5.example
https://site6.example
`)
	f := testFlags("json")
	f.file = list

	out, err := runCheckT(t, f)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	var b batchOutput
	if err := json.Unmarshal([]byte(out), &b); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(b.Results) != 6 {
		t.Fatalf("results = %d, want 6", len(b.Results))
	}
	if len(b.History) != 5 {
		t.Fatalf("history = %d, want 5", len(b.History))
	}
	for i := 0; i < 5; i++ {
		if b.History[i].ID != b.Results[5-i].ID {
			t.Errorf("history[%d] = %s, want result %d", i, b.History[i].URL, 5-i)
		}
	}
	for _, h := range b.History {
		if h.URL == "https://site1.example" {
			t.Error("oldest scan should be evicted from history")
		}
	}
	if !strings.HasPrefix(b.Hash, "sha256:") {
		t.Errorf("hash = %q", b.Hash)
	}
}

func TestRunCheckBatchText(t *testing.T) {
	list := writeFile(t, "urls.txt", "https://a.example\nhttps://b.example\n")
	f := testFlags("text")
	f.file = list

	out, err := runCheckT(t, f)
	if err != nil {
		t.Fatalf("runCheck: %v", err)
	}
	if strings.Count(out, "Domain:") != 2 {
		t.Errorf("expected two reports:\n%s", out)
	}
	if !strings.Contains(out, "Recent scans:") {
		t.Error("expected history table")
	}
}

func TestRunCheckOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	f := testFlags("md")
	f.out = path

	out, err := runCheckT(t, f, "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Error("stdout should be empty when --out is set")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "# Scam Risk Report") {
		t.Error("report file missing content")
	}
}

func TestRunCheckFailOn(t *testing.T) {
	f := testFlags("json")
	f.failOn = "medium"
	_, err := runCheckT(t, f, "crypto-quick-profit.com")
	if exitCode(err) != 2 {
		t.Errorf("exit code = %d, want 2 (err: %v)", exitCode(err), err)
	}

	f = testFlags("json")
	f.failOn = "LOW"
	_, err = runCheckT(t, f, "https://example.com")
	if exitCode(err) != 2 {
		t.Errorf("every result is at least LOW; exit code = %d, want 2", exitCode(err))
	}
}

func TestRunCheckInputErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.txt")
	empty := writeFile(t, "empty.txt", "# nothing\n\n")

	tests := []struct {
		name   string
		mutate func(f *checkFlags)
		args   []string
	}{
		{"no url", func(f *checkFlags) {}, nil},
		{"blank url", func(f *checkFlags) {}, []string{"   "}},
		{"url and file", func(f *checkFlags) { f.file = empty }, []string{"https://example.com"}},
		{"missing file", func(f *checkFlags) { f.file = missing }, nil},
		{"empty file", func(f *checkFlags) { f.file = empty }, nil},
		{"bad fail-on", func(f *checkFlags) { f.failOn = "severe" }, []string{"https://example.com"}},
		{"bad format", func(f *checkFlags) { f.format = "xml" }, []string{"https://example.com"}},
		{"bad profile", func(f *checkFlags) {
			f.profileName = "nope"
			f.changed["profile"] = true
		}, []string{"https://example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testFlags("text")
			tt.mutate(f)
			_, err := runCheckT(t, f, tt.args...)
			if exitCode(err) != 3 {
				t.Errorf("exit code = %d, want 3 (err: %v)", exitCode(err), err)
			}
		})
	}
}

func TestRunCheckCancelled(t *testing.T) {
	f := testFlags("text")
	f.delay = 0
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := runCheck(ctx, &stdout, &stderr, []string{"https://example.com"}, f)
	if exitCode(err) != 130 {
		t.Errorf("exit code = %d, want 130 (err: %v)", exitCode(err), err)
	}
}

func TestRunProfiles(t *testing.T) {
	var out bytes.Buffer
	if err := runProfiles(&out, nil); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "* crypto") || !strings.Contains(out.String(), "  phishing") {
		t.Errorf("unexpected listing:\n%s", out.String())
	}

	out.Reset()
	if err := runProfiles(&out, []string{"crypto"}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Profile: crypto") {
		t.Errorf("unexpected description:\n%s", out.String())
	}

	if err := runProfiles(&out, []string{"nope"}); exitCode(err) != 3 {
		t.Errorf("exit code = %d, want 3", exitCode(err))
	}
}
