package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dshills/scamcheck/internal/render"
	"github.com/dshills/scamcheck/internal/session"
	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	f := &sharedFlags{}

	cmd := &cobra.Command{
		Use:   "session",
		Short: "Interactively analyze URLs read from stdin, one per line",
		Long: `Reads URLs from stdin and prints a report plus the recent-scan history
after each one. Blank lines are ignored. Type :history to reprint the
history and :quit to exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.markChanged(cmd)
			return runSession(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), f)
		},
	}

	f.register(cmd)
	return cmd
}

func runSession(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, f *sharedFlags) error {
	env, err := setup(f, stderr)
	if err != nil {
		return err
	}
	defer env.closeLog()

	w, closeOut, err := openOutput(f.out, stdout)
	if err != nil {
		return err
	}
	defer closeOut()

	format := env.cfg.Format
	markdown := format == "md"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Read in the background so an interrupt is seen while waiting for input.
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	for {
		var line string
		select {
		case <-ctx.Done():
			env.log.Debug("session interrupted")
			return nil
		case l, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("failed to read input: %w", err)
					}
				default:
				}
				return nil
			}
			line = strings.TrimSpace(l)
		}

		if line == "" {
			continue
		}

		switch line {
		case ":quit", ":q":
			return nil
		case ":history":
			hist := env.ctrl.Snapshot().History
			if format == "json" {
				if err := writeJSONLine(w, hist); err != nil {
					return err
				}
				continue
			}
			fmt.Fprint(w, render.History(hist, markdown))
			continue
		}

		fmt.Fprintln(stderr, "Analyzing...")
		r, err := env.ctrl.Analyze(ctx, line)
		switch {
		case errors.Is(err, session.ErrEmptyInput):
			continue
		case errors.Is(err, context.Canceled):
			env.log.Debug("session interrupted during analysis")
			return nil
		case err != nil:
			return fmt.Errorf("analysis failed: %w", err)
		}

		if format == "json" {
			if err := writeJSONLine(w, r); err != nil {
				return err
			}
			continue
		}

		if err := writeResult(w, format, &r); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		fmt.Fprintln(w)
		fmt.Fprint(w, render.History(env.ctrl.Snapshot().History, markdown))
		fmt.Fprintln(w)
	}
}

// writeJSONLine writes v as a single line of JSON.
func writeJSONLine(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
