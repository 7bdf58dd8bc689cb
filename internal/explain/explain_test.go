package explain

import (
	"testing"
	"time"

	"recurrence/internal/model"
)

func TestExplain_IncludedByRRule(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=5")

	result, err := Explain(spec, dtstart.AddDate(0, 0, 2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Included {
		t.Fatal("expected instant to be included")
	}
	if result.GeneratedBy != model.SourceRRule {
		t.Errorf("expected SourceRRule, got %v", result.GeneratedBy)
	}
	if result.GeneratedRuleIndex == nil || *result.GeneratedRuleIndex != 0 {
		t.Errorf("expected rule_index 0, got %v", result.GeneratedRuleIndex)
	}
}

func TestExplain_IncludedByRDate(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	extra := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=2").
		WithRDate(extra)

	result, err := Explain(spec, extra)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Included || result.GeneratedBy != model.SourceRDate {
		t.Errorf("expected RDATE inclusion, got %+v", result)
	}
}

func TestExplain_ExcludedByExDate(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	excluded := dtstart.AddDate(0, 0, 1)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=5").
		WithExDate(excluded)

	result, err := Explain(spec, excluded)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Included {
		t.Fatal("expected instant to be excluded")
	}
	if result.ExcludedBy != "EXDATE" {
		t.Errorf("expected ExcludedBy=EXDATE, got %s", result.ExcludedBy)
	}
}

func TestExplain_ExcludedByExRule(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // Monday
	saturday := dtstart.AddDate(0, 0, 5)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=14").
		WithExRule("FREQ=WEEKLY;BYDAY=SA,SU;COUNT=4")

	result, err := Explain(spec, saturday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Included {
		t.Fatal("expected Saturday instant to be excluded by EXRULE")
	}
	if result.ExcludedBy != "EXRULE" {
		t.Errorf("expected ExcludedBy=EXRULE, got %s", result.ExcludedBy)
	}
}

func TestExplain_NotProduced(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=2")

	result, err := Explain(spec, dtstart.AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Included {
		t.Fatal("expected instant far outside COUNT=2 to be excluded")
	}
	if result.ExcludedBy != "" {
		t.Errorf("expected no ExcludedBy reason for a plain non-match, got %s", result.ExcludedBy)
	}
}

func TestExplain_ExDateTakesPrecedenceOverRRule(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	target := dtstart.AddDate(0, 0, 1)
	spec := model.NewSpec(dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=5").
		WithExDate(target)

	result, err := Explain(spec, target)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Included {
		t.Fatal("EXDATE should win over an RRULE match at the same instant")
	}
}
