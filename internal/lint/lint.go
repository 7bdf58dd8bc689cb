// Package lint implements the diagnostic checks of §4.6: E001/W001/W002/W003.
// It works purely off the raw rule text via rrulespec.Introspect, never the
// validating parser, so it can report findings on rules that also fail to
// parse outright.
package lint

import (
	"strconv"
	"strings"

	"recurrence/internal/model"
	"recurrence/internal/rrulespec"
)

// Lint inspects spec and returns every finding it can produce without
// attempting a full expansion. hasBetween/hasLimit describe the calling
// context (§4.6): W002 only fires when the caller supplied neither a
// window nor an explicit limit to bound an otherwise-unbounded rule.
func Lint(spec *model.RecurrenceSpec, hasBetween, hasLimit bool) *model.Findings {
	findings := &model.Findings{}

	for i, raw := range spec.Rrules {
		fields := rrulespec.Introspect(raw)
		checkUntilKind(findings, i, raw, fields, spec.DtstartKind)
		if !hasBetween && !hasLimit {
			checkUnbounded(findings, i, raw, fields)
		}
		checkBysetpos(findings, i, raw, fields)
	}
	for i, raw := range spec.Exrules {
		fields := rrulespec.Introspect(raw)
		checkUntilKind(findings, i, raw, fields, spec.DtstartKind)
		checkBysetpos(findings, i, raw, fields)
	}

	return findings
}

// checkUntilKind emits E001 when UNTIL's value type disagrees with DTSTART's.
func checkUntilKind(f *model.Findings, idx int, raw string, fields map[string]string, dtstartKind model.DTStartKind) {
	until, ok := fields["UNTIL"]
	if !ok {
		return
	}
	untilIsDateTime := strings.Contains(until, "T")
	dtstartIsDateTime := dtstartKind == model.KindDateTime
	if untilIsDateTime != dtstartIsDateTime {
		f.AddError("E001", "UNTIL value type does not match DTSTART value type", ruleDetail(idx, raw))
		return
	}
	// W001: a DATE-TIME UNTIL that is not UTC ("Z") is floating and
	// interpreted in the rule's own timezone at expansion time, which is
	// rarely what authors intend.
	if untilIsDateTime && !strings.HasSuffix(until, "Z") {
		f.AddWarning("W001", "UNTIL is a non-UTC DATE-TIME; RFC 5545 requires UNTIL in UTC", ruleDetail(idx, raw))
	}
}

// checkUnbounded emits W002 when a rule has neither COUNT nor UNTIL.
func checkUnbounded(f *model.Findings, idx int, raw string, fields map[string]string) {
	_, hasCount := fields["COUNT"]
	_, hasUntil := fields["UNTIL"]
	if !hasCount && !hasUntil {
		f.AddWarning("W002", "rule is potentially unbounded (no COUNT or UNTIL); expansion requires an explicit window or limit", ruleDetail(idx, raw))
	}
}

// checkBysetpos emits W003 when BYSETPOS appears without an anchor BYxxx
// field to select positions from.
func checkBysetpos(f *model.Findings, idx int, raw string, fields map[string]string) {
	if _, ok := fields["BYSETPOS"]; !ok {
		return
	}
	anchors := []string{"BYSECOND", "BYMINUTE", "BYHOUR", "BYDAY", "BYMONTHDAY", "BYYEARDAY", "BYWEEKNO", "BYMONTH"}
	for _, a := range anchors {
		if _, ok := fields[a]; ok {
			return
		}
	}
	f.AddWarning("W003", "BYSETPOS has no anchor BYxxx field to select positions from", ruleDetail(idx, raw))
}

func ruleDetail(idx int, raw string) string {
	return "rule_index=" + strconv.Itoa(idx) + " " + raw
}
