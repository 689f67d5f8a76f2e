package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/scamcheck/internal/render"
	"github.com/dshills/scamcheck/internal/risk"
	"github.com/dshills/scamcheck/internal/schema"
	"github.com/dshills/scamcheck/internal/session"
	"github.com/dshills/scamcheck/internal/urllist"
	"github.com/spf13/cobra"
)

type checkFlags struct {
	sharedFlags
	file   string
	failOn string
}

// batchOutput is the JSON shape for check --file.
type batchOutput struct {
	Source  string                `json:"source"`
	Hash    string                `json:"hash"`
	Results []risk.AnalysisResult `json:"results"`
	History []risk.AnalysisResult `json:"history"`
}

func newCheckCmd() *cobra.Command {
	f := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check [url]",
		Short: "Analyze a URL and print its risk report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.markChanged(cmd)
			return runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), args, f)
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "Analyze every URL listed in this file")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit 2 if any result is at or above this level: low, medium or high")

	return cmd
}

func runCheck(ctx context.Context, stdout, stderr io.Writer, args []string, f *checkFlags) error {
	var threshold risk.Level
	if f.failOn != "" {
		lvl, ok := risk.ParseLevel(f.failOn)
		if !ok {
			return exitError(3, "unknown --fail-on level: %s", f.failOn)
		}
		threshold = lvl
	}

	// 1. Collect input
	var urls []string
	var list *urllist.List
	switch {
	case f.file != "" && len(args) > 0:
		return exitError(3, "pass either a URL or --file, not both")
	case f.file != "":
		l, err := urllist.Load(f.file)
		if err != nil {
			return exitError(3, "failed to load URL list: %v", err)
		}
		if len(l.Entries) == 0 {
			return exitError(3, "URL list %s is empty", f.file)
		}
		list = l
		urls = l.URLs()
	case len(args) == 1 && strings.TrimSpace(args[0]) != "":
		urls = []string{args[0]}
	default:
		return exitError(3, "no URL given")
	}

	// 2. Configure
	env, err := setup(&f.sharedFlags, stderr)
	if err != nil {
		return err
	}
	defer env.closeLog()

	// 3. Analyze sequentially through one controller
	var results []risk.AnalysisResult
	for _, u := range urls {
		r, err := env.ctrl.Analyze(ctx, u)
		if err != nil {
			if errors.Is(err, session.ErrEmptyInput) {
				continue
			}
			if errors.Is(err, context.Canceled) {
				return exitError(130, "interrupted")
			}
			return fmt.Errorf("analysis failed: %w", err)
		}
		// 4. Validate
		if errs := schema.Validate(&r); len(errs) > 0 {
			fmt.Fprintln(stderr, "Result validation errors:")
			for _, e := range errs {
				fmt.Fprintf(stderr, "  %s\n", e)
			}
			return exitError(5, "result for %s failed validation", r.Domain)
		}
		results = append(results, r)
	}

	state := env.ctrl.Snapshot()
	if errs := schema.ValidateHistory(state.History, env.cfg.HistorySize); len(errs) > 0 {
		return exitError(5, "history failed validation: %s", errs[0])
	}

	// 5. Output
	w, closeOut, err := openOutput(f.out, stdout)
	if err != nil {
		return err
	}
	if list == nil {
		err = writeResult(w, env.cfg.Format, &results[0])
	} else {
		err = writeBatch(w, env.cfg.Format, list, results, state.History)
	}
	if cerr := closeOut(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if f.out != "" {
		env.log.WithField("path", f.out).Debug("report written")
	}

	// 6. Exit code based on --fail-on
	if threshold != "" {
		for _, r := range results {
			if r.RiskLevel.AtLeast(threshold) {
				return exitError(2, "%s scored %s (%d), meets fail threshold %s", r.Domain, r.RiskLevel, r.RiskScore, threshold)
			}
		}
	}

	return nil
}

func writeResult(w io.Writer, format string, r *risk.AnalysisResult) error {
	switch format {
	case "json":
		return writeJSON(w, r)
	case "md":
		_, err := io.WriteString(w, render.Markdown(r))
		return err
	default:
		_, err := io.WriteString(w, render.Text(r))
		return err
	}
}

func writeBatch(w io.Writer, format string, l *urllist.List, results, hist []risk.AnalysisResult) error {
	if format == "json" {
		return writeJSON(w, batchOutput{
			Source:  l.FilePath,
			Hash:    l.Hash,
			Results: results,
			History: hist,
		})
	}
	for i := range results {
		if err := writeResult(w, format, &results[i]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, render.History(hist, format == "md"))
	return err
}
