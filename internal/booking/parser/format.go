package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var clockRe = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?$`)

// ParseClock converts a start-time string such as "2:00 PM", "9 am" or
// "14:30" into a 24-hour clock. ok is false when the text does not look like
// a clock time at all.
func ParseClock(s string) (hour, minute int, ok bool) {
	fields := strings.Fields(strings.TrimSpace(s))
	if len(fields) == 0 {
		return 0, 0, false
	}

	period := ""
	if len(fields) > 1 {
		period = strings.ToLower(fields[len(fields)-1])
	}

	m := clockRe.FindStringSubmatch(fields[0])
	if m == nil {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 23 {
		return 0, 0, false
	}
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, 0, false
		}
	}

	switch period {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return 0, 0, false
	}

	return hour, minute, true
}

// FormatClock renders a 24-hour clock as the 12-hour "3:04 PM" form used by
// the business-hours list.
func FormatClock(hour, minute int) string {
	t := time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC)
	return t.Format("3:04 PM")
}

// AddMinutes shifts a start-time string by the given number of minutes,
// returning the 12-hour form. Unparseable input is returned unchanged so a
// malformed slot still renders something sensible.
func AddMinutes(start string, minutes int) string {
	hour, minute, ok := ParseClock(start)
	if !ok {
		return start
	}
	t := time.Date(2000, time.January, 1, hour, minute, 0, 0, time.UTC).
		Add(time.Duration(minutes) * time.Minute)
	return t.Format("3:04 PM")
}

// FormatSlotTime renders a slot as spoken text, e.g.
// "Monday, June 2nd at 2:00 PM". When the start time cannot be parsed the
// raw text is appended after the date instead.
func FormatSlotTime(date time.Time, startTime string) string {
	day := fmt.Sprintf("%s, %s %s", date.Weekday(), date.Month(), ordinal(date.Day()))

	hour, minute, ok := ParseClock(startTime)
	if !ok {
		return fmt.Sprintf("%s at %s", day, startTime)
	}
	return fmt.Sprintf("%s at %s", day, FormatClock(hour, minute))
}

// ordinal renders 1 -> "1st", 2 -> "2nd", 11 -> "11th" and so on.
func ordinal(n int) string {
	suffix := "th"
	if n%100 < 11 || n%100 > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
