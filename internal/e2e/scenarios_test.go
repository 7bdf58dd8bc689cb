// Package e2e exercises the six literal scenarios together, end to end
// across expand/lint/explain/ics, the way a single spec moves through
// the whole engine in practice.
package e2e

import (
	"errors"
	"testing"
	"time"

	"recurrence/internal/expand"
	"recurrence/internal/explain"
	"recurrence/internal/ics"
	"recurrence/internal/lint"
	"recurrence/internal/model"
	"recurrence/internal/timeutil"
)

func mustZone(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := timeutil.ResolveZone(name)
	if err != nil {
		t.Fatalf("ResolveZone(%q): %v", name, err)
	}
	return loc
}

// Scenario 1: weekly MO/WE, COUNT=4.
func TestScenario_WeeklyMoWeCount4(t *testing.T) {
	loc := mustZone(t, "Europe/Berlin")
	dtstart, _, err := timeutil.ParseDateTime("2026-03-02T10:00:00", loc)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	spec := model.NewSpec(dtstart, model.KindDateTime, "Europe/Berlin").
		WithRRule("FREQ=WEEKLY;BYDAY=MO,WE;COUNT=4")

	result, err := expand.Expand(spec, model.Unbounded(), 100)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}

	want := []string{
		"2026-03-02T10:00:00",
		"2026-03-04T10:00:00",
		"2026-03-09T10:00:00",
		"2026-03-11T10:00:00",
	}
	if len(result.Occurrences) != len(want) {
		t.Fatalf("expected %d occurrences, got %d", len(want), len(result.Occurrences))
	}
	for i, occ := range result.Occurrences {
		if occ.StartLocal != want[i] {
			t.Errorf("occurrence %d: got %s, want %s", i, occ.StartLocal, want[i])
		}
	}
}

// Scenario 2: EXDATE exclusion, then explain confirms why.
func TestScenario_ExdateExclusion(t *testing.T) {
	loc := mustZone(t, "Europe/Berlin")
	dtstart, _, err := timeutil.ParseDateTime("2026-03-01T10:00:00", loc)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	excluded, _, err := timeutil.ParseDateTime("2026-03-03T10:00:00", loc)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	spec := model.NewSpec(dtstart, model.KindDateTime, "Europe/Berlin").
		WithRRule("FREQ=DAILY;COUNT=5").
		WithExDate(excluded)

	result, err := expand.Expand(spec, model.Unbounded(), 100)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if result.Count != 4 {
		t.Fatalf("expected 4 occurrences, got %d", result.Count)
	}
	for _, occ := range result.Occurrences {
		if occ.StartLocal == "2026-03-03T10:00:00" {
			t.Error("the 3rd instant should have been excluded")
		}
	}

	explained, err := explain.Explain(spec, excluded)
	if err != nil {
		t.Fatalf("Explain: %v", err)
	}
	if explained.Included {
		t.Error("expected included=false")
	}
	if explained.ExcludedBy != "EXDATE" {
		t.Errorf("expected excluded_by=EXDATE, got %s", explained.ExcludedBy)
	}
}

// Scenario 3: UNTIL type mismatch produces exactly one E001, no warnings.
func TestScenario_UntilTypeMismatchLint(t *testing.T) {
	loc := mustZone(t, "UTC")
	dtstart, _, err := timeutil.ParseDateTime("2026-01-01T10:00:00", loc)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;UNTIL=20260110")

	findings := lint.Lint(spec, false, false)
	if len(findings.Errors) != 1 || findings.Errors[0].Code != "E001" {
		t.Fatalf("expected exactly one E001, got %+v", findings.Errors)
	}
	if len(findings.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", findings.Warnings)
	}
}

// Scenario 4: unbounded guardrail trips without an explicit limit, and
// is satisfied by supplying one.
func TestScenario_UnboundedGuardrail(t *testing.T) {
	dtstart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")

	if !expand.IsPotentiallyUnbounded(spec) {
		t.Fatal("expected spec without COUNT/UNTIL to be potentially unbounded")
	}

	result, err := expand.Expand(spec, model.Unbounded(), 5)
	if err != nil {
		t.Fatalf("Expand with explicit limit: %v", err)
	}
	if result.Count != 5 {
		t.Fatalf("expected 5 occurrences, got %d", result.Count)
	}
	for i, occ := range result.Occurrences {
		want := dtstart.AddDate(0, 0, i)
		if !occ.Instant().Equal(want) {
			t.Errorf("occurrence %d: got %v, want %v", i, occ.Instant(), want)
		}
	}
}

func TestScenario_UnboundedGuardrail_ErrorKind(t *testing.T) {
	var err error = model.ErrUnsafeUnboundedRule()
	var ee *model.EngineError
	if !errors.As(err, &ee) || ee.Kind != model.KindUnsafeUnboundedRule {
		t.Fatalf("expected KindUnsafeUnboundedRule, got %v", err)
	}
}

// Scenario 5: ICS multi-value RDATE produces two RRULE instants plus
// both RDATE instants, sorted by UTC.
func TestScenario_IcsMultiValueRdate(t *testing.T) {
	raw := "BEGIN:VEVENT\r\n" +
		"DTSTART;TZID=Europe/Berlin:20260301T100000\r\n" +
		"RRULE:FREQ=WEEKLY;COUNT=2\r\n" +
		"RDATE;TZID=Europe/Berlin:20260310T100000,20260311T100000\r\n" +
		"END:VEVENT"

	lines := ics.Unfold(raw)
	extracted, err := ics.ExtractVEvent(lines)
	if err != nil {
		t.Fatalf("ExtractVEvent: %v", err)
	}
	spec, err := extracted.ToSpec("UTC")
	if err != nil {
		t.Fatalf("ToSpec: %v", err)
	}
	if len(spec.Rdates) != 2 {
		t.Fatalf("expected 2 RDATEs, got %d", len(spec.Rdates))
	}

	result, err := expand.Expand(spec, model.Unbounded(), 100)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if result.Count != 4 {
		t.Fatalf("expected 4 occurrences (2 RRULE + 2 RDATE), got %d", result.Count)
	}
	for i := 1; i < len(result.Occurrences); i++ {
		if result.Occurrences[i-1].StartUTC > result.Occurrences[i].StartUTC {
			t.Errorf("occurrences not sorted by start_utc at index %d", i)
		}
	}

	sources := map[model.Source]int{}
	for _, occ := range result.Occurrences {
		sources[occ.Source]++
	}
	if sources[model.SourceRRule] != 2 || sources[model.SourceRDate] != 2 {
		t.Errorf("expected 2 RRULE + 2 RDATE occurrences, got %+v", sources)
	}
}

// Scenario 6: BYSETPOS without an anchor field produces W003.
func TestScenario_BysetposAnchorlessWarning(t *testing.T) {
	dtstart := time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=MONTHLY;BYSETPOS=-1;COUNT=3")

	findings := lint.Lint(spec, false, false)
	found := false
	for _, w := range findings.Warnings {
		if w.Code == "W003" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected W003 warning, got %+v", findings.Warnings)
	}
}
