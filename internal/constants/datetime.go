// Package constants holds the iCalendar (RFC 5545) format strings shared
// between the time parser and the ICS collaborator, expressed as Go
// reference-time layouts: Mon Jan 2 15:04:05 MST 2006.
package constants

const (
	// DateTimeFormatISOSecondsT is the bare local "YYYY-MM-DDTHH:MM:SS"
	// form accepted by ParseDateTime, distinct from RFC3339 in that it
	// carries no offset.
	DateTimeFormatISOSecondsT = "2006-01-02T15:04:05"

	// ICS/iCalendar basic-format layouts (RFC 5545 §3.3.5).
	ICSFormatUTC      = "20060102T150405Z" // UTC time in ICS format
	ICSFormatLocal    = "20060102T150405"  // Local (floating) time in ICS format
	ICSFormatDateOnly = "20060102"         // Date-only (VALUE=DATE) in ICS format
)
