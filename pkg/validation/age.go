package validation

import "time"

// DateLayout is the wire format for calendar dates (date of birth, start date).
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD string as midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(DateLayout, value, loc)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AgeOn returns the age in whole years of someone born on birth, as of today.
// The year difference is decremented when today's (month, day) falls before
// the birthday's (month, day); a Feb 29 birthday is reached on Mar 1 in
// non-leap years.
func AgeOn(birth, today time.Time) int {
	age := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeFromString parses dateOfBirth and returns the age as of today.
// ok is false when the date cannot be parsed.
func AgeFromString(dateOfBirth string, today time.Time) (age int, ok bool) {
	birth, err := ParseDate(dateOfBirth, today.Location())
	if err != nil {
		return 0, false
	}
	return AgeOn(birth, today), true
}
