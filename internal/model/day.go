package model

import "strings"

// Day is a lowercase day bucket key. The canonical set is the seven
// weekdays plus "general", the default catch-all bucket.
type Day string

const (
	DayMonday    Day = "monday"
	DayTuesday   Day = "tuesday"
	DayWednesday Day = "wednesday"
	DayThursday  Day = "thursday"
	DayFriday    Day = "friday"
	DaySaturday  Day = "saturday"
	DaySunday    Day = "sunday"
	DayGeneral   Day = "general"
)

// WeekOrder returns the canonical days in fixed week order, General last.
func WeekOrder() []Day {
	return []Day{
		DayMonday,
		DayTuesday,
		DayWednesday,
		DayThursday,
		DayFriday,
		DaySaturday,
		DaySunday,
		DayGeneral,
	}
}

func (d Day) IsCanonical() bool {
	switch d {
	case DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday, DayGeneral:
		return true
	default:
		return false
	}
}

// Capitalized returns the serialization form of the key: "monday" -> "Monday".
func (d Day) Capitalized() string {
	s := string(d)
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// NormalizeDay lowercases and trims raw input. Blank input falls back to
// the general bucket.
func NormalizeDay(raw string) Day {
	d := Day(strings.ToLower(strings.TrimSpace(raw)))
	if d == "" {
		return DayGeneral
	}
	return d
}
