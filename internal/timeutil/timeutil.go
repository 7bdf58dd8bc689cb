// Package timeutil parses the datetime forms the engine accepts (ISO
// date, RFC 3339, iCalendar compact form) and resolves IANA zone names,
// rejecting local wall times that are ambiguous or nonexistent under
// daylight-saving transitions rather than silently picking one.
package timeutil

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"recurrence/internal/constants"
	"recurrence/internal/model"
)

const (
	layoutLocalNoOff  = constants.DateTimeFormatISOSecondsT
	layoutCompact     = constants.ICSFormatLocal
	layoutCompactUTC  = constants.ICSFormatUTC
	layoutCompactDate = constants.ICSFormatDateOnly
)

var (
	reISODate  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reLocalDT  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}$`)
	reCompactDT = regexp.MustCompile(`^\d{8}T\d{6}Z?$`)
	reCompactDate = regexp.MustCompile(`^\d{8}$`)
)

// ResolveZone looks up a canonical IANA zone name. tzdata itself carries
// entries such as EST, CET or Etc/GMT+5, so abbreviations and fixed
// offsets are rejected explicitly: apart from "UTC", a name must have the
// Area/Location form and must not be an Etc/GMT±N offset zone.
func ResolveZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, model.ErrInvalidTimezone(name)
	}
	if name != "UTC" && (!strings.Contains(name, "/") ||
		strings.HasPrefix(name, "Etc/GMT+") || strings.HasPrefix(name, "Etc/GMT-")) {
		return nil, model.ErrInvalidTimezone(name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, model.ErrInvalidTimezone(name)
	}
	return loc, nil
}

// ParseDateTime implements §4.1: ISO date, RFC 3339 with offset, or a
// bare local "YYYY-MM-DDTHH:MM:SS". Ambiguous/nonexistent local times
// are rejected rather than coerced.
func ParseDateTime(value string, zone *time.Location) (time.Time, model.DTStartKind, error) {
	value = strings.TrimSpace(value)
	switch {
	case reISODate.MatchString(value):
		t, err := localizeStrict(value+"T00:00:00", zone)
		if err != nil {
			return time.Time{}, "", err
		}
		return t, model.KindDate, nil

	case reLocalDT.MatchString(value):
		t, err := localizeStrict(value, zone)
		if err != nil {
			return time.Time{}, "", err
		}
		return t, model.KindDateTime, nil

	default:
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return t.In(zone), model.KindDateTime, nil
		}
		return time.Time{}, "", model.ErrInvalidDateTime("value \"" + value + "\" matches no supported datetime format")
	}
}

// ParseCompact implements the iCalendar basic-form parser: YYYYMMDD for
// DATE, YYYYMMDDTHHMMSS[Z] for DATE_TIME.
func ParseCompact(value string, zone *time.Location, kind model.DTStartKind) (time.Time, error) {
	value = strings.TrimSpace(value)
	if kind == model.KindDate {
		if !reCompactDate.MatchString(value) {
			return time.Time{}, model.ErrInvalidDateTime("expected YYYYMMDD, got " + value)
		}
		t, err := time.ParseInLocation(layoutCompactDate, value, zone)
		if err != nil {
			return time.Time{}, model.ErrInvalidDateTime(err.Error())
		}
		return t, nil
	}

	if !reCompactDT.MatchString(value) {
		return time.Time{}, model.ErrInvalidDateTime("expected YYYYMMDDTHHMMSS[Z], got " + value)
	}
	if strings.HasSuffix(value, "Z") {
		t, err := time.ParseInLocation(layoutCompactUTC, value, time.UTC)
		if err != nil {
			return time.Time{}, model.ErrInvalidDateTime(err.Error())
		}
		return t.In(zone), nil
	}
	return localizeStrict(toISOLocal(value), zone)
}

// toISOLocal turns "20060102T150405" into "2006-01-02T15:04:05" so it
// can reuse the same strict localizer as ParseDateTime.
func toISOLocal(compact string) string {
	t, err := time.Parse(layoutCompact, compact)
	if err != nil {
		return compact
	}
	return t.Format(layoutLocalNoOff)
}

// localizeStrict parses a "YYYY-MM-DDTHH:MM:SS" wall clock in zone,
// failing if it falls in a spring-forward gap or a fall-back overlap.
func localizeStrict(iso string, zone *time.Location) (time.Time, error) {
	parsed, err := time.ParseInLocation(layoutLocalNoOff, iso, zone)
	if err != nil {
		return time.Time{}, model.ErrInvalidDateTime(err.Error())
	}

	y, mo, d := parsed.Date()
	h, mi, s := parsed.Clock()

	// A nonexistent local time (spring-forward gap): Go's time.Date
	// normalizes forward past the gap, so the round trip disagrees
	// with what was typed.
	want := iso
	got := parsed.Format(layoutLocalNoOff)
	if want != got {
		return time.Time{}, model.ErrInvalidDateTime("local time " + iso + " does not exist in " + zone.String() + " (DST gap)")
	}

	if ambiguous(y, mo, d, h, mi, s, zone, parsed) {
		return time.Time{}, model.ErrInvalidDateTime("local time " + iso + " is ambiguous in " + zone.String() + " (DST overlap); use an explicit offset")
	}

	return parsed, nil
}

// ambiguous detects a fall-back overlap: the same wall clock is
// reachable via two different UTC instants with two different offsets.
// It probes the offsets a few hours either side of the candidate
// instant (every real-world DST shift is under 2 hours) and checks
// whether the "other" offset, reapplied to the same wall-clock fields,
// also yields a self-consistent local reading.
func ambiguous(y int, mo time.Month, d, h, mi, s int, zone *time.Location, candidate time.Time) bool {
	_, candOff := candidate.Zone()

	probe := func(delta time.Duration) int {
		_, off := candidate.Add(delta).Zone()
		return off
	}
	before := probe(-3 * time.Hour)
	after := probe(3 * time.Hour)

	others := map[int]bool{}
	if before != candOff {
		others[before] = true
	}
	if after != candOff {
		others[after] = true
	}

	naiveUTC := time.Date(y, mo, d, h, mi, s, 0, time.UTC)
	for otherOff := range others {
		alt := naiveUTC.Add(-time.Duration(otherOff) * time.Second)
		wall := alt.In(zone)
		wy, wmo, wd := wall.Date()
		wh, wmi, ws := wall.Clock()
		if wy == y && wmo == mo && wd == d && wh == h && wmi == mi && ws == s {
			_, walloff := wall.Zone()
			if walloff == otherOff {
				return true
			}
		}
	}
	return false
}

// FormatCompact renders t (assumed already in the desired zone) in
// iCalendar basic form, honoring kind.
func FormatCompact(t time.Time, kind model.DTStartKind, utc bool) string {
	if kind == model.KindDate {
		return t.Format(layoutCompactDate)
	}
	if utc {
		return t.UTC().Format(layoutCompactUTC)
	}
	return t.Format(layoutCompact)
}

// ParseIntSafe parses a small non-negative integer, defaulting to 0 on
// any malformed input rather than panicking.
func ParseIntSafe(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
