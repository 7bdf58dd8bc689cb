package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"recurrence/internal/config"
	"recurrence/internal/explain"
	"recurrence/internal/timeutil"
)

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Explain whether a candidate instant is included by a recurrence spec",
		RunE:  runExplain,
	}
	addSpecFlags(cmd)
	cmd.Flags().String("at", "", "Candidate instant to classify (required)")
	return cmd
}

func runExplain(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec, err := buildSpec(cmd, cfg)
	if err != nil {
		return err
	}

	at, _ := cmd.Flags().GetString("at")
	if at == "" {
		return fmt.Errorf("--at is required")
	}

	loc, err := timeutil.ResolveZone(spec.Tz)
	if err != nil {
		return err
	}
	instant, _, err := timeutil.ParseDateTime(at, loc)
	if err != nil {
		return err
	}

	result, err := explain.Explain(spec, instant)
	if err != nil {
		return err
	}

	if resolveFormat(cmd, cfg) == "text" {
		fmt.Print(renderExplainText(result))
		return nil
	}
	out, err := renderJSON(result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
