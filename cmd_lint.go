package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recurrence/internal/config"
	"recurrence/internal/lint"
)

func newLintCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a recurrence spec for common RRULE mistakes",
		RunE:  runLint,
	}
	addSpecFlags(cmd)
	cmd.Flags().String("between-start", "", "Inclusive window start (use with --between-end); suppresses the unbounded-rule warning")
	cmd.Flags().String("between-end", "", "Inclusive window end (use with --between-start)")
	cmd.Flags().Int("limit", 0, "An explicit limit the caller intends to pass to expand; suppresses the unbounded-rule warning")
	return cmd
}

func runLint(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec, err := buildSpec(cmd, cfg)
	if err != nil {
		return err
	}

	betweenStart, _ := cmd.Flags().GetString("between-start")
	betweenEnd, _ := cmd.Flags().GetString("between-end")
	hasBetween := betweenStart != "" && betweenEnd != ""
	hasLimit := cmd.Flags().Changed("limit")

	findings := lint.Lint(spec, hasBetween, hasLimit)

	if resolveFormat(cmd, cfg) == "text" {
		fmt.Print(renderFindingsText(findings))
		if len(findings.Errors) == 0 {
			printOK("lint passed\n")
		}
	} else {
		out, err := renderJSON(findings)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}

	if len(findings.Errors) > 0 {
		return fmt.Errorf("lint found %d error(s)", len(findings.Errors))
	}
	return nil
}
