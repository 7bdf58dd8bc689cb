package main

import (
	"os"

	"github.com/spf13/cobra"

	"recurrence/internal/config"
	"recurrence/internal/ics"
	"recurrence/internal/model"
	"recurrence/internal/timeutil"
)

// addSpecFlags registers the flags shared by expand/lint/explain for
// describing a recurrence spec directly on the command line.
func addSpecFlags(cmd *cobra.Command) {
	cmd.Flags().String("dtstart", "", "Anchor DTSTART (ISO date, ISO local datetime, or RFC3339)")
	cmd.Flags().String("tz", "", "IANA timezone (overrides config default)")
	cmd.Flags().StringArray("rrule", nil, "RRULE body, e.g. FREQ=WEEKLY;BYDAY=MO,WE,FR (repeatable)")
	cmd.Flags().StringArray("exrule", nil, "EXRULE body (repeatable)")
	cmd.Flags().StringArray("rdate", nil, "Explicit RDATE instant, same format as --dtstart (repeatable)")
	cmd.Flags().StringArray("exdate", nil, "Explicit EXDATE instant, same format as --dtstart (repeatable)")
	cmd.Flags().String("ics", "", "Path to an .ics file/VEVENT block to read the spec from, instead of the flags above")
}

// buildSpec constructs a *model.RecurrenceSpec either from --ics or from
// the discrete --dtstart/--rrule/... flags, whichever the caller supplied.
func buildSpec(cmd *cobra.Command, cfg *config.Config) (*model.RecurrenceSpec, error) {
	icsPath, _ := cmd.Flags().GetString("ics")
	if icsPath != "" {
		return buildSpecFromICS(icsPath, cfg.Timezone)
	}
	return buildSpecFromFlags(cmd, cfg)
}

func buildSpecFromICS(path, fallbackZone string) (*model.RecurrenceSpec, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, model.ErrInvalidIcs(err.Error())
	}
	lines := ics.Unfold(string(content))
	extracted, err := ics.ExtractVEvent(lines)
	if err != nil {
		return nil, err
	}
	return extracted.ToSpec(fallbackZone)
}

func buildSpecFromFlags(cmd *cobra.Command, cfg *config.Config) (*model.RecurrenceSpec, error) {
	dtstartRaw, _ := cmd.Flags().GetString("dtstart")
	if dtstartRaw == "" {
		return nil, model.ErrMissingField("dtstart")
	}

	tz, _ := cmd.Flags().GetString("tz")
	if tz == "" {
		tz = cfg.Timezone
	}
	loc, err := timeutil.ResolveZone(tz)
	if err != nil {
		return nil, err
	}

	dtstart, kind, err := timeutil.ParseDateTime(dtstartRaw, loc)
	if err != nil {
		return nil, err
	}

	spec := model.NewSpec(dtstart, kind, tz)

	rrules, _ := cmd.Flags().GetStringArray("rrule")
	for _, r := range rrules {
		spec.WithRRule(r)
	}
	exrules, _ := cmd.Flags().GetStringArray("exrule")
	for _, r := range exrules {
		spec.WithExRule(r)
	}

	rdates, _ := cmd.Flags().GetStringArray("rdate")
	for _, raw := range rdates {
		t, _, err := timeutil.ParseDateTime(raw, loc)
		if err != nil {
			return nil, err
		}
		spec.WithRDate(t)
	}
	exdates, _ := cmd.Flags().GetStringArray("exdate")
	for _, raw := range exdates {
		t, _, err := timeutil.ParseDateTime(raw, loc)
		if err != nil {
			return nil, err
		}
		spec.WithExDate(t)
	}

	return spec, nil
}

// resolveFormat picks the rendering format: --format flag, else config default.
func resolveFormat(cmd *cobra.Command, cfg *config.Config) string {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return f
	}
	return cfg.DefaultFormat
}
