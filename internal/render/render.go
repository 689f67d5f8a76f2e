// Package render formats analysis results for the terminal and for Markdown.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/scamcheck/internal/redact"
	"github.com/dshills/scamcheck/internal/risk"
)

const gaugeWidth = 20

// Text renders a result as a plain-text block for a terminal.
func Text(r *risk.AnalysisResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "URL:     %s\n", redact.URL(r.URL))
	fmt.Fprintf(&b, "Domain:  %s\n", redact.URL(r.Domain))
	fmt.Fprintf(&b, "Score:   %s %d/100\n", Gauge(r.RiskScore), r.RiskScore)
	fmt.Fprintf(&b, "Level:   %s %s\n", r.RiskLevel, verdict(r.RiskLevel))
	fmt.Fprintf(&b, "Scanned: %s\n", r.Timestamp.UTC().Format(time.RFC3339))

	b.WriteString("\nRisk factors:\n")
	if len(r.RiskFactors) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, f := range r.RiskFactors {
		fmt.Fprintf(&b, "  ! %s\n", f)
	}

	b.WriteString("\nRecommendations:\n")
	for i, rec := range r.Recommendations {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, rec)
	}

	return b.String()
}

// Markdown renders a result as a Markdown report.
func Markdown(r *risk.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("# Scam Risk Report\n\n")
	fmt.Fprintf(&b, "**URL:** %s\n", redact.URL(r.URL))
	fmt.Fprintf(&b, "**Domain:** %s\n", redact.URL(r.Domain))
	fmt.Fprintf(&b, "**Score:** %d / 100\n", r.RiskScore)
	fmt.Fprintf(&b, "**Level:** %s (%s)\n", r.RiskLevel, verdict(r.RiskLevel))
	fmt.Fprintf(&b, "**Scanned:** %s\n\n", r.Timestamp.UTC().Format(time.RFC3339))

	b.WriteString("## Risk Factors\n\n")
	if len(r.RiskFactors) == 0 {
		b.WriteString("No risk factors found.\n\n")
	} else {
		for _, f := range r.RiskFactors {
			fmt.Fprintf(&b, "- %s\n", f)
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range r.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// History renders recent results as a table, newest first.
func History(entries []risk.AnalysisResult, markdown bool) string {
	var b strings.Builder

	if markdown {
		b.WriteString("## Recent Scans\n\n")
		if len(entries) == 0 {
			b.WriteString("No scans yet.\n")
			return b.String()
		}
		b.WriteString("| # | Domain | Score | Level | Scanned |\n")
		b.WriteString("|---|--------|-------|-------|---------|\n")
		for i, e := range entries {
			fmt.Fprintf(&b, "| %d | %s | %d | %s | %s |\n",
				i+1, redact.URL(e.Domain), e.RiskScore, e.RiskLevel, e.Timestamp.UTC().Format(time.RFC3339))
		}
		return b.String()
	}

	b.WriteString("Recent scans:\n")
	if len(entries) == 0 {
		b.WriteString("  (none)\n")
		return b.String()
	}
	for i, e := range entries {
		fmt.Fprintf(&b, "  %d. %-32s %3d  %-6s  %s\n",
			i+1, truncate(redact.URL(e.Domain), 32), e.RiskScore, e.RiskLevel, e.Timestamp.UTC().Format("15:04:05"))
	}
	return b.String()
}

// Gauge draws score as a fixed-width bar, e.g. [#######.............].
func Gauge(score int) string {
	score = risk.ClampScore(score)
	filled := score * gaugeWidth / risk.MaxScore
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", gaugeWidth-filled) + "]"
}

func verdict(l risk.Level) string {
	switch l {
	case risk.LevelHigh:
		return "likely scam"
	case risk.LevelMedium:
		return "suspicious"
	default:
		return "no strong signals"
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}
