package expand

import (
	"errors"
	"testing"
	"time"

	"recurrence/internal/model"
)

func mustSpec(t *testing.T, dtstart time.Time, kind model.DTStartKind, tz string) *model.RecurrenceSpec {
	t.Helper()
	return model.NewSpec(dtstart, kind, tz)
}

func TestExpand_Between(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=10")

	result, err := Expand(spec, model.Between(dtstart, dtstart.AddDate(0, 0, 4)), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 5 {
		t.Errorf("expected 5 occurrences, got %d", result.Count)
	}
	for i, occ := range result.Occurrences {
		if occ.Source != model.SourceRRule || occ.RuleIndex != 0 {
			t.Errorf("occurrence %d: expected SourceRRule/0, got %v/%d", i, occ.Source, occ.RuleIndex)
		}
	}
}

func TestExpand_Between_LimitExceeded(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=1000")

	_, err := Expand(spec, model.Between(dtstart, dtstart.AddDate(1, 0, 0)), 5)
	if err == nil {
		t.Fatal("expected LimitExceeded error")
	}
	var ee *model.EngineError
	if !errors.As(err, &ee) || ee.Kind != model.KindLimitExceeded {
		t.Errorf("expected KindLimitExceeded, got %v", err)
	}
}

func TestExpand_After(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=10")

	result, err := Expand(spec, model.After(dtstart, 3), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("expected 3 occurrences, got %d", result.Count)
	}
	if result.Occurrences[0].Instant().Equal(dtstart) {
		t.Error("After should be strictly after the pivot, dtstart itself must be excluded")
	}
	want := dtstart.AddDate(0, 0, 1)
	if !result.Occurrences[0].Instant().Equal(want) {
		t.Errorf("expected first occurrence %v, got %v", want, result.Occurrences[0].Instant())
	}
}

func TestExpand_After_CountExceedsHardLimit(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=1000")

	_, err := Expand(spec, model.After(dtstart, 50), 10)
	if err == nil {
		t.Fatal("expected LimitExceeded error")
	}
	var ee *model.EngineError
	if !errors.As(err, &ee) || ee.Kind != model.KindLimitExceeded {
		t.Errorf("expected KindLimitExceeded (count exceeding hardLimit is a limit violation, not an invalid count), got %v", err)
	}
}

func TestExpand_Unbounded_CappedByHardLimit(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")

	result, err := Expand(spec, model.Unbounded(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 3 {
		t.Errorf("expected hard limit to cap at 3, got %d", result.Count)
	}
}

func TestExpand_RDate_Attribution(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	extra := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=2").
		WithRDate(extra)

	result, err := Expand(spec, model.Between(dtstart, extra), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 3 {
		t.Fatalf("expected 3 occurrences, got %d", result.Count)
	}
	last := result.Occurrences[result.Count-1]
	if last.Source != model.SourceRDate {
		t.Errorf("expected last occurrence to be attributed to the RDATE, got %v", last.Source)
	}
}

func TestExpand_ExDate_Excludes(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	excluded := dtstart.AddDate(0, 0, 1)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=3").
		WithExDate(excluded)

	result, err := Expand(spec, model.Between(dtstart, dtstart.AddDate(0, 0, 2)), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, occ := range result.Occurrences {
		if occ.Instant().Equal(excluded) {
			t.Error("excluded date should not appear in results")
		}
	}
	if result.Count != 2 {
		t.Errorf("expected 2 occurrences after exclusion, got %d", result.Count)
	}
}

func TestExpand_ExRule_Excludes(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC) // a Monday
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=14").
		WithExRule("FREQ=WEEKLY;BYDAY=SA,SU;COUNT=4")

	result, err := Expand(spec, model.Between(dtstart, dtstart.AddDate(0, 0, 13)), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, occ := range result.Occurrences {
		wd := occ.Instant().Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("weekend instant %v should have been excluded by EXRULE", occ.Instant())
		}
	}
}

func TestExpand_MultipleRRules_RuleIndexAttribution(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").
		WithRRule("FREQ=DAILY;COUNT=3").
		WithRRule("FREQ=WEEKLY;COUNT=3")

	result, err := Expand(spec, model.Between(dtstart, dtstart.AddDate(0, 1, 0)), 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seenRuleIndex := map[int]bool{}
	for _, occ := range result.Occurrences {
		seenRuleIndex[occ.RuleIndex] = true
	}
	if !seenRuleIndex[0] {
		t.Error("expected at least one occurrence attributed to rule_index 0")
	}
}

func TestExpand_DeterministicOrdering(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=5")

	result, err := Expand(spec, model.Unbounded(), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(result.Occurrences); i++ {
		if result.Occurrences[i-1].StartUTC > result.Occurrences[i].StartUTC {
			t.Errorf("occurrences not ascending at index %d", i)
		}
	}
}

func TestExpand_InvalidHardLimit(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=1")

	_, err := Expand(spec, model.Unbounded(), 0)
	if err == nil {
		t.Fatal("expected error for hard limit < 1")
	}
}

func TestExpand_InvalidSpec(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	spec := mustSpec(t, dtstart, model.KindDateTime, "UTC") // no RRULE, no RDATE

	_, err := Expand(spec, model.Unbounded(), 10)
	if err == nil {
		t.Fatal("expected validation error for spec with no rrules or rdates")
	}
}

func TestIsPotentiallyUnbounded_EngineLevel(t *testing.T) {
	dtstart := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	bounded := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY;COUNT=5")
	if IsPotentiallyUnbounded(bounded) {
		t.Error("spec with COUNT should not be potentially unbounded")
	}

	unbounded := mustSpec(t, dtstart, model.KindDateTime, "UTC").WithRRule("FREQ=DAILY")
	if !IsPotentiallyUnbounded(unbounded) {
		t.Error("spec lacking COUNT/UNTIL should be potentially unbounded")
	}
}
