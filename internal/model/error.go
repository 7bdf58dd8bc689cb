package model

import "fmt"

// Kind is one of the stable error identifiers surfaced to callers.
type Kind string

const (
	KindInvalidTimezone     Kind = "InvalidTimezone"
	KindInvalidDateTime     Kind = "InvalidDateTime"
	KindInvalidRrule        Kind = "InvalidRrule"
	KindMissingField        Kind = "MissingField"
	KindInvalidIcs          Kind = "InvalidIcs"
	KindLimitExceeded       Kind = "LimitExceeded"
	KindInvalidLimit        Kind = "InvalidLimit"
	KindInvalidCount        Kind = "InvalidCount"
	KindUnsafeUnboundedRule Kind = "UnsafeUnboundedRule"
)

// EngineError is the typed error every engine operation returns instead
// of an ad-hoc fmt.Errorf. Callers distinguish the safety errors
// (LimitExceeded, UnsafeUnboundedRule) from the rest to pick an exit code.
type EngineError struct {
	Kind    Kind
	Message string
	// Rule carries the offending rule string for KindInvalidRrule.
	Rule string
	// Limit carries the hard limit for KindLimitExceeded.
	Limit int
}

func (e *EngineError) Error() string {
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule=%q)", e.Kind, e.Message, e.Rule)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is lets errors.Is(err, &EngineError{Kind: KindX}) match on Kind alone.
func (e *EngineError) Is(target error) bool {
	t, ok := target.(*EngineError)
	if !ok {
		return false
	}
	if t.Kind == "" {
		return false
	}
	return t.Kind == e.Kind
}

func newErr(kind Kind, format string, args ...interface{}) *EngineError {
	return &EngineError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func ErrInvalidTimezone(name string) *EngineError {
	return newErr(KindInvalidTimezone, "unknown IANA zone %q", name)
}

func ErrInvalidDateTime(reason string) *EngineError {
	return newErr(KindInvalidDateTime, "%s", reason)
}

func ErrInvalidRrule(rule, reason string) *EngineError {
	e := newErr(KindInvalidRrule, "%s", reason)
	e.Rule = rule
	return e
}

func ErrMissingField(field string) *EngineError {
	return newErr(KindMissingField, "missing required field %q", field)
}

func ErrInvalidIcs(reason string) *EngineError {
	return newErr(KindInvalidIcs, "%s", reason)
}

func ErrLimitExceeded(limit int) *EngineError {
	e := newErr(KindLimitExceeded, "window would produce more than the hard limit of %d occurrences", limit)
	e.Limit = limit
	return e
}

func ErrInvalidLimit(limit int) *EngineError {
	return newErr(KindInvalidLimit, "hard limit must be >= 1, got %d", limit)
}

func ErrInvalidCount(count int) *EngineError {
	return newErr(KindInvalidCount, "count must be >= 1, got %d", count)
}

func ErrUnsafeUnboundedRule() *EngineError {
	return newErr(KindUnsafeUnboundedRule, "spec has a rule with neither COUNT nor UNTIL; supply --limit, --between-start/--between-end, or --after to bound it")
}
