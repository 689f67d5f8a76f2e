package main

import (
	"fmt"
	"io"

	"github.com/dshills/scamcheck/internal/indicators"
	"github.com/spf13/cobra"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles [name]",
		Short: "List built-in indicator profiles, or describe one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(cmd.OutOrStdout(), args)
		},
	}
}

func runProfiles(stdout io.Writer, args []string) error {
	if len(args) == 1 {
		p, err := indicators.LoadBuiltin(args[0])
		if err != nil {
			return exitError(3, "failed to load profile: %v", err)
		}
		fmt.Fprint(stdout, indicators.Describe(p))
		return nil
	}

	names, err := indicators.List()
	if err != nil {
		return fmt.Errorf("failed to list profiles: %w", err)
	}
	for _, n := range names {
		marker := " "
		if n == indicators.DefaultName {
			marker = "*"
		}
		fmt.Fprintf(stdout, "%s %s\n", marker, n)
	}
	return nil
}
