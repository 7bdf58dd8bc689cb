package lint

import (
	"testing"
	"time"

	"recurrence/internal/model"
)

func TestLint_E001_UntilKindMismatch(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDate, "UTC").WithRRule("FREQ=DAILY;UNTIL=20241231T090000Z")

	findings := Lint(spec, false, false)
	if len(findings.Errors) != 1 || findings.Errors[0].Code != "E001" {
		t.Fatalf("expected one E001 finding, got %+v", findings.Errors)
	}
}

func TestLint_W001_UntilNotUTC(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;UNTIL=20241231T090000")

	findings := Lint(spec, false, false)
	found := false
	for _, w := range findings.Warnings {
		if w.Code == "W001" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected W001 warning, got %+v", findings.Warnings)
	}
}

func TestLint_W002_Unbounded(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")

	findings := Lint(spec, false, false)
	found := false
	for _, w := range findings.Warnings {
		if w.Code == "W002" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected W002 warning, got %+v", findings.Warnings)
	}
}

func TestLint_NoW002WhenCallerSuppliedBetween(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")

	findings := Lint(spec, true, false)
	for _, w := range findings.Warnings {
		if w.Code == "W002" {
			t.Error("did not expect W002 when the caller supplied a window")
		}
	}
}

func TestLint_NoW002WhenCallerSuppliedLimit(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")

	findings := Lint(spec, false, true)
	for _, w := range findings.Warnings {
		if w.Code == "W002" {
			t.Error("did not expect W002 when the caller supplied an explicit limit")
		}
	}
}

func TestLint_NoW002WhenBounded(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=5")

	findings := Lint(spec, false, false)
	for _, w := range findings.Warnings {
		if w.Code == "W002" {
			t.Error("did not expect W002 for a rule with COUNT")
		}
	}
}

func TestLint_W003_BysetposWithoutAnchor(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=MONTHLY;BYSETPOS=-1;COUNT=5")

	findings := Lint(spec, false, false)
	found := false
	for _, w := range findings.Warnings {
		if w.Code == "W003" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected W003 warning, got %+v", findings.Warnings)
	}
}

func TestLint_NoW003WithAnchor(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=MONTHLY;BYDAY=MO,TU,WE,TH,FR;BYSETPOS=-1;COUNT=5")

	findings := Lint(spec, false, false)
	for _, w := range findings.Warnings {
		if w.Code == "W003" {
			t.Error("did not expect W003 when an anchor BYxxx field is present")
		}
	}
}

func TestLint_CleanRuleHasNoFindings(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=5")

	findings := Lint(spec, false, false)
	if len(findings.Errors) != 0 || len(findings.Warnings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestLint_ExruleAlsoChecked(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDate, "UTC").
		WithRRule("FREQ=DAILY;COUNT=10").
		WithExRule("FREQ=WEEKLY;UNTIL=20241231T090000Z")

	findings := Lint(spec, false, false)
	if len(findings.Errors) != 1 || findings.Errors[0].Code != "E001" {
		t.Fatalf("expected E001 against the EXRULE, got %+v", findings.Errors)
	}
}
