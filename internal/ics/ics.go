// Package ics implements the iCalendar collaborator (§4.8): it unfolds
// RFC 5545 physical lines back into logical lines, then extracts the
// handful of properties the engine cares about (DTSTART, RRULE, EXRULE,
// RDATE, EXDATE) from a single VEVENT-shaped block. It is a reader, the
// mirror image of the teacher's VEVENT writer in its line folding
// (internal/calendar), not a general-purpose calendar library.
package ics

import (
	"strings"
	"time"

	"recurrence/internal/model"
	"recurrence/internal/timeutil"
)

// Extracted holds the raw property values pulled from one VEVENT block,
// before any timezone resolution or rule parsing.
type Extracted struct {
	DTStart     string // value after the colon, VALUE=/TZID= params stripped from the key
	DTStartKind model.DTStartKind
	TZID        string // from DTSTART;TZID=..., empty if UTC/floating

	RRules  []string
	ExRules []string
	RDates  []dateListProp
	ExDates []dateListProp
}

// dateListProp is one RDATE/EXDATE occurrence: its raw comma-joined
// compact values plus its own TZID/VALUE parameters, which RFC 5545
// permits to differ from DTSTART's (§4.8 item 5). Either field is the
// empty string/"" when the property didn't carry that parameter.
type dateListProp struct {
	Raw  string
	TZID string
	Kind model.DTStartKind
}

// Unfold reverses RFC 5545 line folding: a CRLF (or bare LF) followed by
// a single space or tab continues the previous logical line.
func Unfold(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	raw := strings.Split(content, "\n")

	var lines []string
	for _, line := range raw {
		if len(line) > 0 && (line[0] == ' ' || line[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ExtractVEvent scans the unfolded lines of a single VEVENT block (the
// BEGIN:VEVENT/END:VEVENT markers are tolerated but not required) and
// pulls out the recurrence-relevant properties.
func ExtractVEvent(lines []string) (*Extracted, error) {
	ex := &Extracted{}
	haveDTStart := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || line == "BEGIN:VEVENT" || line == "END:VEVENT" {
			continue
		}

		name, params, value, ok := splitProperty(line)
		if !ok {
			continue
		}

		switch name {
		case "DTSTART":
			haveDTStart = true
			ex.DTStart = value
			ex.DTStartKind = valueKind(params)
			ex.TZID = params["TZID"]
		case "RRULE":
			ex.RRules = append(ex.RRules, value)
		case "EXRULE":
			ex.ExRules = append(ex.ExRules, value)
		case "RDATE":
			ex.RDates = append(ex.RDates, dateListProp{Raw: value, TZID: params["TZID"], Kind: paramKind(params)})
		case "EXDATE":
			ex.ExDates = append(ex.ExDates, dateListProp{Raw: value, TZID: params["TZID"], Kind: paramKind(params)})
		}
	}

	if !haveDTStart {
		return nil, model.ErrMissingField("DTSTART")
	}
	return ex, nil
}

// splitProperty parses "NAME;PARAM=val;PARAM2=val2:VALUE" into its parts.
// Values are NOT unescaped here (COMMA-joined multi-value properties like
// RDATE/EXDATE are split by the caller, which needs the raw commas).
func splitProperty(line string) (name string, params map[string]string, value string, ok bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", nil, "", false
	}
	head, value := line[:colon], line[colon+1:]

	parts := strings.Split(head, ";")
	name = strings.ToUpper(strings.TrimSpace(parts[0]))
	params = map[string]string{}
	for _, p := range parts[1:] {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			continue
		}
		params[strings.ToUpper(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return name, params, value, true
}

func valueKind(params map[string]string) model.DTStartKind {
	if strings.EqualFold(params["VALUE"], "DATE") {
		return model.KindDate
	}
	return model.KindDateTime
}

// paramKind is like valueKind but returns "" (unset) rather than defaulting
// to DATE-TIME, so RDATE/EXDATE callers can tell "VALUE=DATE-TIME given" from
// "no VALUE param at all" and fall back to DTSTART's kind in the latter case.
func paramKind(params map[string]string) model.DTStartKind {
	v, ok := params["VALUE"]
	if !ok {
		return ""
	}
	if strings.EqualFold(v, "DATE") {
		return model.KindDate
	}
	return model.KindDateTime
}

// ToSpec resolves ex into a *model.RecurrenceSpec, using fallbackZone
// when DTSTART carries no TZID and isn't UTC (a "floating" time) — the
// iCalendar collaborator's own zone, distinct from the stricter
// engine-level ResolveZone which never guesses.
func (ex *Extracted) ToSpec(fallbackZone string) (*model.RecurrenceSpec, error) {
	tz := ex.TZID
	if tz == "" {
		tz = fallbackZone
		if strings.HasSuffix(ex.DTStart, "Z") {
			tz = "UTC"
		}
	}
	loc, err := timeutil.ResolveZone(tz)
	if err != nil {
		return nil, err
	}

	dtstart, err := timeutil.ParseCompact(ex.DTStart, loc, ex.DTStartKind)
	if err != nil {
		return nil, err
	}

	spec := model.NewSpec(dtstart, ex.DTStartKind, tz)
	for _, r := range ex.RRules {
		spec.WithRRule(r)
	}
	for _, r := range ex.ExRules {
		spec.WithExRule(r)
	}

	for _, prop := range ex.RDates {
		dates, err := parseDateListProp(prop, ex.DTStartKind, fallbackZone)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			spec.WithRDate(d)
		}
	}
	for _, prop := range ex.ExDates {
		dates, err := parseDateListProp(prop, ex.DTStartKind, fallbackZone)
		if err != nil {
			return nil, err
		}
		for _, d := range dates {
			spec.WithExDate(d)
		}
	}

	return spec, nil
}

// parseDateListProp resolves one RDATE/EXDATE occurrence against its own
// TZID/VALUE parameters (§4.8 item 5), independent of DTSTART's. RFC 5545
// permits either to be omitted when it matches DTSTART's, so an absent
// VALUE falls back to dtstartKind and an absent TZID falls back to
// fallbackZone, the same caller-supplied default DTSTART itself would use.
func parseDateListProp(prop dateListProp, dtstartKind model.DTStartKind, fallbackZone string) ([]time.Time, error) {
	kind := dtstartKind
	if prop.Kind != "" {
		kind = prop.Kind
	}

	tz := prop.TZID
	if tz == "" {
		tz = fallbackZone
	}
	loc, err := timeutil.ResolveZone(tz)
	if err != nil {
		return nil, err
	}

	var out []time.Time
	for _, raw := range strings.Split(prop.Raw, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		t, err := timeutil.ParseCompact(raw, loc, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
