// Package explain implements §4.5: given a candidate instant, report
// whether the spec includes it, and if not, why.
package explain

import (
	"strconv"
	"time"

	rr "github.com/teambition/rrule-go"

	"recurrence/internal/model"
	"recurrence/internal/rrulespec"
	"recurrence/internal/timeutil"
)

// Explain classifies at against spec.
func Explain(spec *model.RecurrenceSpec, at time.Time) (*model.ExplainResult, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	loc, err := timeutil.ResolveZone(spec.Tz)
	if err != nil {
		return nil, err
	}

	rrules := make([]*rrulespec.Rule, 0, len(spec.Rrules))
	for _, raw := range spec.Rrules {
		rule, err := rrulespec.Parse(raw, spec.Dtstart, spec.DtstartKind)
		if err != nil {
			return nil, err
		}
		rrules = append(rrules, rule)
	}
	exrules := make([]*rrulespec.Rule, 0, len(spec.Exrules))
	for _, raw := range spec.Exrules {
		rule, err := rrulespec.Parse(raw, spec.Dtstart, spec.DtstartKind)
		if err != nil {
			return nil, err
		}
		exrules = append(exrules, rule)
	}

	result := &model.ExplainResult{
		At:    at.In(loc).Format("2006-01-02T15:04:05"),
		Notes: []string{},
	}

	// Generation and exclusion are independent questions (§4.5 steps 2-4):
	// an instant can be both generated by a rule and separately excluded,
	// and generated_by/generated_rule_index must reflect that regardless
	// of whether the instant ends up included.
	generated := false

	for i, d := range spec.Rdates {
		if d.Equal(at) {
			generated = true
			result.GeneratedBy = model.SourceRDate
			idx := i
			result.GeneratedRuleIndex = &idx
			result.Notes = append(result.Notes, "instant matches an explicit RDATE")
			break
		}
	}
	if !generated {
		for i, rule := range rrules {
			if ruleMatches(rule, spec.Dtstart, at) {
				generated = true
				result.GeneratedBy = model.SourceRRule
				idx := i
				result.GeneratedRuleIndex = &idx
				result.Notes = append(result.Notes, "instant matches RRULE at rule_index "+strconv.Itoa(i))
				break
			}
		}
	}
	if !generated {
		result.Notes = append(result.Notes, "instant is not produced by any RRULE or RDATE")
	}

	excluded := false
	for _, d := range spec.Exdates {
		if d.Equal(at) {
			excluded = true
			result.ExcludedBy = "EXDATE"
			result.Notes = append(result.Notes, "instant matches an explicit EXDATE")
			break
		}
	}
	if !excluded {
		for i, rule := range exrules {
			if ruleMatches(rule, spec.Dtstart, at) {
				excluded = true
				result.ExcludedBy = "EXRULE"
				result.Notes = append(result.Notes, "instant matches EXRULE at rule_index "+strconv.Itoa(i))
				break
			}
		}
	}

	result.Included = generated && !excluded
	return result, nil
}

// ruleMatches probes a single compiled rule (with DTSTART, no exclusions)
// for membership at instant.
func ruleMatches(rule *rrulespec.Rule, dtstart, instant time.Time) bool {
	probe := &rr.Set{}
	probe.DTStart(dtstart)
	probe.RRule(rule.RRule)
	return len(probe.Between(instant, instant, true)) > 0
}
