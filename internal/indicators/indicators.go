// Package indicators loads the static lists the risk analyzer checks URLs against.
package indicators

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// DefaultName is the profile used when none is requested.
const DefaultName = "crypto"

// Profile is a named set of scam indicators, weights and recommendations.
type Profile struct {
	Name             string          `yaml:"name"`
	Version          int             `yaml:"version"`
	Description      string          `yaml:"description"`
	Weights          Weights         `yaml:"weights"`
	ScamDomains      []string        `yaml:"scam_domains"`
	RedirectPatterns []string        `yaml:"redirect_patterns"`
	Fillers          []Filler        `yaml:"fillers"`
	Recommendations  Recommendations `yaml:"recommendations"`
}

// Weights are the fixed contributions of the deterministic checks.
type Weights struct {
	KnownScam int `yaml:"known_scam"`
	Redirect  int `yaml:"redirect"`
	Insecure  int `yaml:"insecure"`
}

// Filler is a catalog entry the analyzer may sample at random.
type Filler struct {
	Label  string `yaml:"label"`
	Weight int    `yaml:"weight"`
}

// Recommendations holds one ordered list per risk tier.
type Recommendations struct {
	High   []string `yaml:"high"`
	Medium []string `yaml:"medium"`
	Low    []string `yaml:"low"`
}

// LoadBuiltin loads a built-in profile by name.
func LoadBuiltin(name string) (*Profile, error) {
	data, err := builtinFS.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("indicators.LoadBuiltin: unknown profile %q: %w", name, err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("indicators.LoadBuiltin: parse %q: %w", name, err)
	}
	return p, nil
}

// Load reads a profile from a YAML file on disk.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("indicators.Load: %w", err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("indicators.Load: parse %s: %w", path, err)
	}
	return p, nil
}

func parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Check reports the first structural problem with the profile, if any.
func (p *Profile) Check() error {
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Weights.KnownScam < 0 || p.Weights.Redirect < 0 || p.Weights.Insecure < 0 {
		return fmt.Errorf("weights must not be negative")
	}
	if len(p.Fillers) == 0 {
		return fmt.Errorf("at least one filler is required")
	}
	for i, f := range p.Fillers {
		if strings.TrimSpace(f.Label) == "" {
			return fmt.Errorf("fillers[%d]: label is required", i)
		}
		if f.Weight < 0 {
			return fmt.Errorf("fillers[%d]: weight must not be negative", i)
		}
	}
	if len(p.Recommendations.High) == 0 || len(p.Recommendations.Medium) == 0 || len(p.Recommendations.Low) == 0 {
		return fmt.Errorf("recommendations are required for every tier")
	}
	return nil
}

// List returns the names of all available built-in profiles.
func List() ([]string, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n := e.Name()
		if strings.HasSuffix(n, ".yaml") {
			names = append(names, strings.TrimSuffix(n, ".yaml"))
		}
	}
	return names, nil
}

// Describe renders the profile as readable text for the profiles command.
func Describe(p *Profile) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Profile: %s (v%d)\n", p.Name, p.Version)
	if p.Description != "" {
		fmt.Fprintf(&b, "%s\n", strings.TrimSpace(p.Description))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Known scam domains (+%d):\n", p.Weights.KnownScam)
	for _, d := range p.ScamDomains {
		fmt.Fprintf(&b, "  - %s\n", d)
	}
	fmt.Fprintf(&b, "Redirect patterns (+%d):\n", p.Weights.Redirect)
	for _, r := range p.RedirectPatterns {
		fmt.Fprintf(&b, "  - %s\n", r)
	}
	fmt.Fprintf(&b, "Missing HTTPS: +%d\n", p.Weights.Insecure)

	b.WriteString("Filler factors:\n")
	for _, f := range p.Fillers {
		fmt.Fprintf(&b, "  - %s (+%d)\n", f.Label, f.Weight)
	}

	return b.String()
}
