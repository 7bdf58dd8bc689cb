package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recurrence/internal/config"
	"recurrence/internal/expand"
	"recurrence/internal/model"
	"recurrence/internal/timeutil"
)

func newExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand a recurrence spec into concrete occurrences",
		RunE:  runExpand,
	}
	addSpecFlags(cmd)
	cmd.Flags().String("between-start", "", "Inclusive window start (use with --between-end)")
	cmd.Flags().String("between-end", "", "Inclusive window end (use with --between-start)")
	cmd.Flags().String("after", "", "Pivot instant; returns the next --count occurrences strictly after it")
	cmd.Flags().Int("count", 0, "Number of occurrences to return with --after")
	cmd.Flags().Bool("unbounded", false, "Expand from DTSTART onward, capped by --limit")
	cmd.Flags().Int("limit", 0, "Hard cap on occurrences returned (overrides config default_limit)")
	return cmd
}

func runExpand(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	spec, err := buildSpec(cmd, cfg)
	if err != nil {
		return err
	}

	loc, err := timeutil.ResolveZone(spec.Tz)
	if err != nil {
		return err
	}

	query, err := parseExpandQuery(cmd, loc)
	if err != nil {
		return err
	}

	explicitLimit := cmd.Flags().Changed("limit")
	if query.Kind == model.QueryUnbounded && !explicitLimit && expand.IsPotentiallyUnbounded(spec) {
		return model.ErrUnsafeUnboundedRule()
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}

	result, err := expand.Expand(spec, query, limit)
	if err != nil {
		return err
	}

	if resolveFormat(cmd, cfg) == "text" {
		fmt.Print(renderExpandText(result))
		return nil
	}
	out, err := renderJSON(result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}

func parseExpandQuery(cmd *cobra.Command, loc *time.Location) (model.ExpandQuery, error) {
	betweenStart, _ := cmd.Flags().GetString("between-start")
	betweenEnd, _ := cmd.Flags().GetString("between-end")
	after, _ := cmd.Flags().GetString("after")
	unbounded, _ := cmd.Flags().GetBool("unbounded")
	count, _ := cmd.Flags().GetInt("count")

	switch {
	case betweenStart != "" || betweenEnd != "":
		if betweenStart == "" || betweenEnd == "" {
			return model.ExpandQuery{}, model.ErrMissingField("between-start/between-end (both required)")
		}
		start, _, err := timeutil.ParseDateTime(betweenStart, loc)
		if err != nil {
			return model.ExpandQuery{}, err
		}
		end, _, err := timeutil.ParseDateTime(betweenEnd, loc)
		if err != nil {
			return model.ExpandQuery{}, err
		}
		return model.Between(start, end), nil

	case after != "":
		pivot, _, err := timeutil.ParseDateTime(after, loc)
		if err != nil {
			return model.ExpandQuery{}, err
		}
		return model.After(pivot, count), nil

	case unbounded:
		return model.Unbounded(), nil

	default:
		// No explicit query shape: expand from DTSTART onward, subject to
		// the unbounded-rule guardrail in runExpand.
		return model.Unbounded(), nil
	}
}
