// Package schedule implements the time and slot model for the booking flow:
// the fixed daily slot grid, human time-label parsing, timezone-aware
// slot-to-instant conversion, and half-open interval overlap.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// The grid is a fixed 9-to-5 hourly set regardless of the selected service's
// duration. Two adjacent bookable slots can therefore still conflict once one
// is taken; availability filtering handles that, the grid does not.
var slotGrid = []string{
	"9:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"1:00 PM",
	"2:00 PM",
	"3:00 PM",
	"4:00 PM",
	"5:00 PM",
}

var (
	dateRe      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeLabelRe = regexp.MustCompile(`(?i)^(\d{1,2}):(\d{2})\s*(AM|PM)$`)
)

// Slots returns the offerable start-time labels shown to customers.
func Slots() []string {
	out := make([]string, len(slotGrid))
	copy(out, slotGrid)
	return out
}

// ValidDate reports whether date is a YYYY-MM-DD calendar date string.
func ValidDate(date string) bool {
	return dateRe.MatchString(date)
}

// ParseTimeLabel converts an "H:MM AM|PM" label to minutes since midnight.
// Hour must be 1-12 and minute 0-59; the meridiem is case-insensitive.
// Hour 12 wraps via hour%12, so "12:00 AM" is 0 and "12:00 PM" is 720.
func ParseTimeLabel(label string) (int, bool) {
	m := timeLabelRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, false
	}
	hourRaw, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	if hourRaw < 1 || hourRaw > 12 {
		return 0, false
	}
	if minute < 0 || minute > 59 {
		return 0, false
	}
	hour := hourRaw % 12
	if strings.EqualFold(m[3], "PM") {
		hour += 12
	}
	return hour*60 + minute, true
}

// LoadLocation resolves an IANA timezone name, falling back to UTC when the
// name is empty or unknown (mirrors the provider's location record semantics).
func LoadLocation(tz string) *time.Location {
	if tz == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayStart returns midnight of the given YYYY-MM-DD date in loc.
func DayStart(date string, loc *time.Location) (time.Time, error) {
	if !ValidDate(date) {
		return time.Time{}, fmt.Errorf("schedule: invalid date: %s", date)
	}
	start, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("schedule: invalid date: %s", date)
	}
	return start, nil
}

// SlotStart combines a day's midnight with a slot offset in minutes.
func SlotStart(dayStart time.Time, slotMinutes int) time.Time {
	return dayStart.Add(time.Duration(slotMinutes) * time.Minute)
}

// ParseStartAt combines a calendar date and a time label into an absolute
// instant in loc, for appointment creation.
func ParseStartAt(date, timeLabel string, loc *time.Location) (time.Time, error) {
	dayStart, err := DayStart(date, loc)
	if err != nil {
		return time.Time{}, err
	}
	minutes, ok := ParseTimeLabel(timeLabel)
	if !ok {
		return time.Time{}, fmt.Errorf("schedule: invalid time: %s", timeLabel)
	}
	return SlotStart(dayStart, minutes), nil
}

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
