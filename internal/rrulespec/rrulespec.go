// Package rrulespec parses and validates a single RRULE/EXRULE body
// against its DTSTART, and exposes a syntax-only field introspector for
// the linter. Expansion itself lives in package expand; this package
// wraps github.com/teambition/rrule-go's parser and adds the RFC 5545
// semantic checks that library doesn't enforce on its own (UNTIL
// value-type agreement, BYWEEKNO/nth-weekday frequency restrictions,
// BYxxx field ranges).
package rrulespec

import (
	"regexp"
	"strings"
	"time"

	rr "github.com/teambition/rrule-go"

	"recurrence/internal/model"
)

// Rule is a parsed, validated RRULE/EXRULE body together with its raw
// source text.
type Rule struct {
	Raw   string
	RRule *rr.RRule
}

var reUntil = regexp.MustCompile(`(?i)UNTIL=([^;]+)`)

// Parse parses body (no leading "RRULE:"/"EXRULE:" prefix) against
// dtstart/dtstartKind, returning *model.EngineError{Kind: InvalidRrule}
// on any syntax or semantic failure.
func Parse(body string, dtstart time.Time, dtstartKind model.DTStartKind) (*Rule, error) {
	raw := strings.TrimSpace(body)
	if raw == "" {
		return nil, model.ErrInvalidRrule(body, "empty rule")
	}

	opt, err := rr.StrToROption(raw)
	if err != nil {
		return nil, model.ErrInvalidRrule(raw, err.Error())
	}
	opt.Dtstart = dtstart

	if err := validateSemantics(raw, opt, dtstartKind); err != nil {
		return nil, err
	}

	parsed, err := rr.NewRRule(*opt)
	if err != nil {
		return nil, model.ErrInvalidRrule(raw, err.Error())
	}
	return &Rule{Raw: raw, RRule: parsed}, nil
}

func validateSemantics(raw string, opt *rr.ROption, dtstartKind model.DTStartKind) error {
	if err := validateUntilKind(raw, dtstartKind); err != nil {
		return err
	}
	if len(opt.Byweekno) > 0 && opt.Freq != rr.YEARLY {
		return model.ErrInvalidRrule(raw, "BYWEEKNO is only valid with FREQ=YEARLY")
	}
	if err := validateNthWeekday(raw, opt); err != nil {
		return err
	}
	return validateFieldRanges(raw, opt)
}

// validateUntilKind enforces "UNTIL value-type equals DTSTART value-type
// at the rule level": a DATE dtstart forbids a DATE-TIME (has a "T")
// UNTIL, and vice-versa.
func validateUntilKind(raw string, dtstartKind model.DTStartKind) error {
	m := reUntil.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	untilIsDateTime := strings.Contains(m[1], "T")
	if dtstartKind == model.KindDate && untilIsDateTime {
		return model.ErrInvalidRrule(raw, "UNTIL is DATE-TIME but DTSTART is DATE")
	}
	if dtstartKind == model.KindDateTime && !untilIsDateTime {
		return model.ErrInvalidRrule(raw, "UNTIL is DATE but DTSTART is DATE-TIME")
	}
	return nil
}

// validateNthWeekday enforces that a positional BYDAY (e.g. "-1FR",
// "2MO") is only used with FREQ=MONTHLY or FREQ=YEARLY.
func validateNthWeekday(raw string, opt *rr.ROption) error {
	hasNth := false
	for _, wd := range opt.Byweekday {
		if wd.N() != 0 {
			hasNth = true
			break
		}
	}
	if hasNth && opt.Freq != rr.MONTHLY && opt.Freq != rr.YEARLY {
		return model.ErrInvalidRrule(raw, "a positional BYDAY (nth weekday) requires FREQ=MONTHLY or FREQ=YEARLY")
	}
	return nil
}

func validateFieldRanges(raw string, opt *rr.ROption) error {
	type rangeCheck struct {
		name      string
		values    []int
		min, max  int
		allowNeg  bool
	}
	checks := []rangeCheck{
		{"BYSECOND", opt.Bysecond, 0, 59, false},
		{"BYMINUTE", opt.Byminute, 0, 59, false},
		{"BYHOUR", opt.Byhour, 0, 23, false},
		{"BYMONTHDAY", opt.Bymonthday, 1, 31, true},
		{"BYYEARDAY", opt.Byyearday, 1, 366, true},
		{"BYWEEKNO", opt.Byweekno, 1, 53, true},
		{"BYMONTH", opt.Bymonth, 1, 12, false},
		{"BYSETPOS", opt.Bysetpos, 1, 366, true},
	}
	for _, c := range checks {
		for _, v := range c.values {
			n := v
			if c.allowNeg && n < 0 {
				n = -n
			}
			if n < c.min || n > c.max {
				return model.ErrInvalidRrule(raw, c.name+" value out of range")
			}
		}
	}
	return nil
}

// HasCountOrUntil reports whether body names COUNT or UNTIL, used by
// IsPotentiallyUnbounded without requiring a full parse.
func HasCountOrUntil(body string) bool {
	fields := Introspect(body)
	_, hasCount := fields["COUNT"]
	_, hasUntil := fields["UNTIL"]
	return hasCount || hasUntil
}

// Introspect splits a rule string into a case-normalized key->value map
// without any semantic validation (§4.3). Multiple occurrences of a key
// retain the last. Used by the linter and by HasCountOrUntil; never by
// Parse.
func Introspect(body string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(body, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		value := ""
		if len(kv) == 2 {
			value = strings.TrimSpace(kv[1])
		}
		if key == "" {
			continue
		}
		out[key] = value
	}
	return out
}
