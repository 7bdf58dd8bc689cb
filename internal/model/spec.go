// Package model holds the plain data carriers shared by every engine
// package: the recurrence specification callers build, the query
// variants they can ask, and the result shapes the engine returns.
// Nothing in this package has behavior beyond simple invariant checks;
// serialization and rendering are the caller's concern (see render.go
// and the cmd_*.go files of the main package).
package model

import "time"

// DTStartKind records whether an instant was parsed with date-only or
// date-time semantics, per RFC 5545 VALUE=DATE vs the implicit
// DATE-TIME default.
type DTStartKind string

const (
	KindDate     DTStartKind = "DATE"
	KindDateTime DTStartKind = "DATE_TIME"
)

// RecurrenceSpec is the immutable input to every engine operation.
// Order in Rrules/Exrules is semantically significant: it defines the
// rule_index reported in outputs and the tie-break among rules
// producing the same instant.
type RecurrenceSpec struct {
	Dtstart     time.Time
	DtstartKind DTStartKind
	Tz          string // canonical IANA name

	Rrules []string // raw rule bodies, no leading "RRULE:"
	Exrules []string // raw rule bodies, no leading "EXRULE:"

	Rdates []time.Time
	Exdates []time.Time
}

// NewSpec builds a RecurrenceSpec anchored at dtstart in the named zone.
func NewSpec(dtstart time.Time, kind DTStartKind, tz string) *RecurrenceSpec {
	return &RecurrenceSpec{
		Dtstart:     dtstart,
		DtstartKind: kind,
		Tz:          tz,
	}
}

func (s *RecurrenceSpec) WithRRule(rule string) *RecurrenceSpec {
	s.Rrules = append(s.Rrules, rule)
	return s
}

func (s *RecurrenceSpec) WithExRule(rule string) *RecurrenceSpec {
	s.Exrules = append(s.Exrules, rule)
	return s
}

func (s *RecurrenceSpec) WithRDate(t time.Time) *RecurrenceSpec {
	s.Rdates = append(s.Rdates, t)
	return s
}

func (s *RecurrenceSpec) WithExDate(t time.Time) *RecurrenceSpec {
	s.Exdates = append(s.Exdates, t)
	return s
}

// Validate enforces the §3 structural invariants that hold regardless
// of rule syntax: at least one source of occurrences, and a resolved
// zone name. Rule-level syntax is validated separately (rrulespec.Parse).
func (s *RecurrenceSpec) Validate() error {
	if s.Tz == "" {
		return ErrMissingField("tz")
	}
	if len(s.Rrules) == 0 && len(s.Rdates) == 0 {
		return ErrMissingField("rrules or rdates")
	}
	return nil
}

// IsPotentiallyUnbounded reports whether any RRULE lacks both COUNT and
// UNTIL (§4.6). It inspects raw rule text via the field introspector so
// it never fails on a syntactically invalid rule; that is the linter's
// job, not this invariant's.
func (s *RecurrenceSpec) IsPotentiallyUnbounded(hasCount func(rule string) bool) bool {
	for _, r := range s.Rrules {
		if !hasCount(r) {
			return true
		}
	}
	return false
}

// Source identifies whether an occurrence came from an RRULE expansion
// or an explicit RDATE.
type Source string

const (
	SourceRRule Source = "RRULE"
	SourceRDate Source = "RDATE"
)

// Occurrence is one produced instant, rendered in both local and UTC form.
type Occurrence struct {
	StartLocal string `json:"start_local"`
	StartUTC   string `json:"start_utc"`
	Tz         string `json:"tz"`
	Source     Source `json:"source"`
	RuleIndex  int    `json:"rule_index"`

	// instant is kept for internal comparisons (explain, sort); not serialized.
	instant time.Time
}

func NewOccurrence(instant time.Time, tz string, loc *time.Location, source Source, ruleIndex int) Occurrence {
	return Occurrence{
		StartLocal: instant.In(loc).Format("2006-01-02T15:04:05"),
		StartUTC:   instant.UTC().Format("2006-01-02T15:04:05Z"),
		Tz:         tz,
		Source:     source,
		RuleIndex:  ruleIndex,
		instant:    instant,
	}
}

// Instant returns the absolute instant this occurrence represents.
func (o Occurrence) Instant() time.Time { return o.instant }

// Finding is one lint diagnostic, identified by a stable code.
type Finding struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Findings groups diagnostics by severity. A spec with nonempty Errors
// is invalid for expansion even if expansion would technically succeed.
type Findings struct {
	Errors   []Finding `json:"errors"`
	Warnings []Finding `json:"warnings"`
	Hints    []Finding `json:"hints"`
}

func (f *Findings) AddError(code, message, details string) {
	f.Errors = append(f.Errors, Finding{Code: code, Message: message, Details: details})
}

func (f *Findings) AddWarning(code, message, details string) {
	f.Warnings = append(f.Warnings, Finding{Code: code, Message: message, Details: details})
}

func (f *Findings) AddHint(code, message, details string) {
	f.Hints = append(f.Hints, Finding{Code: code, Message: message, Details: details})
}

// ExpandResult is the output of an expand operation.
type ExpandResult struct {
	Occurrences []Occurrence `json:"occurrences"`
	Tz          string       `json:"tz"`
	Count       int          `json:"count"`
}

// ExplainResult classifies a single candidate instant.
type ExplainResult struct {
	At                 string `json:"at"`
	Included           bool   `json:"included"`
	GeneratedBy        Source `json:"generated_by,omitempty"`
	GeneratedRuleIndex *int   `json:"generated_rule_index,omitempty"`
	ExcludedBy         string `json:"excluded_by,omitempty"`
	Notes              []string `json:"notes"`
}
