// Package expand implements the expansion engine (§4.4): it composes
// RRULE/RDATE inclusions with EXRULE/EXDATE exclusions under a
// deterministic ordering, bounded by a caller-chosen hard limit.
package expand

import (
	"sort"
	"time"

	rr "github.com/teambition/rrule-go"

	"recurrence/internal/model"
	"recurrence/internal/rrulespec"
	"recurrence/internal/timeutil"
)

// compiled holds the per-rule parse results shared by Expand and the
// rule-index attribution probe, so a rule is only parsed once per call.
type compiled struct {
	rrules []*rrulespec.Rule
	exrules []*rrulespec.Rule
}

func compile(spec *model.RecurrenceSpec) (*compiled, error) {
	c := &compiled{}
	for _, raw := range spec.Rrules {
		rule, err := rrulespec.Parse(raw, spec.Dtstart, spec.DtstartKind)
		if err != nil {
			return nil, err
		}
		c.rrules = append(c.rrules, rule)
	}
	for _, raw := range spec.Exrules {
		rule, err := rrulespec.Parse(raw, spec.Dtstart, spec.DtstartKind)
		if err != nil {
			return nil, err
		}
		c.exrules = append(c.exrules, rule)
	}
	return c, nil
}

func buildSet(spec *model.RecurrenceSpec, c *compiled) *rr.Set {
	set := &rr.Set{}
	set.DTStart(spec.Dtstart)
	for _, rule := range c.rrules {
		set.RRule(rule.RRule)
	}
	for _, rule := range c.exrules {
		set.ExRule(rule.RRule)
	}
	for _, d := range spec.Rdates {
		set.RDate(d)
	}
	for _, d := range spec.Exdates {
		set.ExDate(d)
	}
	return set
}

// Expand runs query against spec, returning at most hardLimit occurrences.
func Expand(spec *model.RecurrenceSpec, query model.ExpandQuery, hardLimit int) (*model.ExpandResult, error) {
	if hardLimit < 1 {
		return nil, model.ErrInvalidLimit(hardLimit)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	loc, err := timeutil.ResolveZone(spec.Tz)
	if err != nil {
		return nil, err
	}

	c, err := compile(spec)
	if err != nil {
		return nil, err
	}
	set := buildSet(spec, c)

	var instants []time.Time
	switch query.Kind {
	case model.QueryBetween:
		instants, err = between(set, query.Start, query.End, hardLimit)
	case model.QueryAfter:
		if query.Count > hardLimit {
			return nil, model.ErrLimitExceeded(hardLimit)
		}
		instants = after(set, query.Pivot, query.Count)
	case model.QueryUnbounded:
		instants = unbounded(set, hardLimit)
	}
	if err != nil {
		return nil, err
	}

	rdateIndex := make(map[int64]int, len(spec.Rdates))
	for i, d := range spec.Rdates {
		rdateIndex[d.Unix()] = i
	}

	occurrences := make([]model.Occurrence, 0, len(instants))
	for _, instant := range instants {
		source, ruleIndex := classify(instant, spec.Dtstart, rdateIndex, c)
		occurrences = append(occurrences, model.NewOccurrence(instant, spec.Tz, loc, source, ruleIndex))
	}

	sort.SliceStable(occurrences, func(i, j int) bool {
		a, b := occurrences[i], occurrences[j]
		if a.StartUTC != b.StartUTC {
			return a.StartUTC < b.StartUTC
		}
		if a.StartLocal != b.StartLocal {
			return a.StartLocal < b.StartLocal
		}
		return a.RuleIndex < b.RuleIndex
	})

	return &model.ExpandResult{Occurrences: occurrences, Tz: spec.Tz, Count: len(occurrences)}, nil
}

// between asks the set for up to hardLimit+1 instants within the
// inclusive window, failing rather than silently truncating when the
// window would produce more than hardLimit.
func between(set *rr.Set, start, end time.Time, hardLimit int) ([]time.Time, error) {
	next := set.Iterator()
	occ := make([]time.Time, 0)
	for {
		t, ok := next()
		if !ok || t.After(end) {
			break
		}
		if t.Before(start) {
			continue
		}
		occ = append(occ, t)
		if len(occ) > hardLimit {
			return nil, model.ErrLimitExceeded(hardLimit)
		}
	}
	return occ, nil
}

// after returns the first count occurrences strictly after start.
func after(set *rr.Set, start time.Time, count int) []time.Time {
	next := set.Iterator()
	results := make([]time.Time, 0, count)
	for {
		t, ok := next()
		if !ok {
			break
		}
		if !t.After(start) {
			continue
		}
		results = append(results, t)
		if len(results) >= count {
			break
		}
	}
	return results
}

// unbounded returns up to hardLimit occurrences from DTSTART onward.
func unbounded(set *rr.Set, hardLimit int) []time.Time {
	next := set.Iterator()
	results := make([]time.Time, 0, hardLimit)
	for {
		t, ok := next()
		if !ok {
			break
		}
		results = append(results, t)
		if len(results) >= hardLimit {
			break
		}
	}
	return results
}

// classify determines an instant's source and rule_index (§4.4 step 4).
// An RDATE coinciding with an RRULE-generated instant wins attribution.
func classify(instant, dtstart time.Time, rdateIndex map[int64]int, c *compiled) (model.Source, int) {
	if idx, ok := rdateIndex[instant.Unix()]; ok {
		return model.SourceRDate, idx
	}
	for i, rule := range c.rrules {
		if ruleAloneMatches(rule, dtstart, instant) {
			return model.SourceRRule, i
		}
	}
	return model.SourceRRule, 0
}

// ruleAloneMatches probes a single RRULE (with DTSTART, no exclusions)
// for membership at instant, per the design note in §9.
func ruleAloneMatches(rule *rrulespec.Rule, dtstart, instant time.Time) bool {
	probe := &rr.Set{}
	probe.DTStart(dtstart)
	probe.RRule(rule.RRule)
	return len(probe.Between(instant, instant, true)) > 0
}

// IsPotentiallyUnbounded reports whether spec has an RRULE lacking both
// COUNT and UNTIL (§4.6).
func IsPotentiallyUnbounded(spec *model.RecurrenceSpec) bool {
	return spec.IsPotentiallyUnbounded(rrulespec.HasCountOrUntil)
}
