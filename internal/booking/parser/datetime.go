// Package parser turns a raw utterance into an intent plus optional
// date and time-of-day. Extraction is deterministic and never fails:
// rule tables are evaluated in a fixed order, first match wins, and an
// unmatched field is simply left unset.
package parser

import (
	"regexp"
	"time"

	"github.com/bookative-core/server/internal/booking/model"
)

var (
	bookIntentRe  = regexp.MustCompile(`(?i)book|schedule|appointment|meeting`)
	availIntentRe = regexp.MustCompile(`(?i)available|free|open`)

	thisWeekRe = regexp.MustCompile(`(?i)this\s+week`)
	nextWeekRe = regexp.MustCompile(`(?i)next\s+week`)
)

// timeRules are tried in priority order; the first match wins. The ordering
// resolves ambiguity between "2:30 pm", "2pm" and 24-hour "14:30" inputs and
// must be preserved.
var timeRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\d{1,2}:\d{2}\s*(?:am|pm)`),
	regexp.MustCompile(`(?i)\d{1,2}\s*(?:am|pm)`),
	regexp.MustCompile(`\d{1,2}:\d{2}`),
}

// dateRule resolves a matched phrase to a concrete day relative to today.
// Either days is used directly, or weekday (with the next flag) feeds the
// offset formula (target - current) mod 7, adding 7 when the rule is flagged
// next or the raw offset is non-positive. A bare weekday equal to today's
// therefore resolves to the following week, never today.
type dateRule struct {
	re      *regexp.Regexp
	days    int
	weekday time.Weekday
	relDays bool
	next    bool
}

// dateRules are tried top to bottom, first match wins. "next <weekday>"
// entries precede the bare weekday entries so the flagged variant takes
// priority for the same weekday name.
var dateRules = []dateRule{
	{re: regexp.MustCompile(`(?i)tomorrow`), days: 1, relDays: true},
	{re: regexp.MustCompile(`(?i)today`), days: 0, relDays: true},
	{re: regexp.MustCompile(`(?i)next\s+monday`), weekday: time.Monday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+tuesday`), weekday: time.Tuesday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+wednesday`), weekday: time.Wednesday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+thursday`), weekday: time.Thursday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+friday`), weekday: time.Friday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+saturday`), weekday: time.Saturday, next: true},
	{re: regexp.MustCompile(`(?i)next\s+sunday`), weekday: time.Sunday, next: true},
	{re: regexp.MustCompile(`(?i)monday`), weekday: time.Monday},
	{re: regexp.MustCompile(`(?i)tuesday`), weekday: time.Tuesday},
	{re: regexp.MustCompile(`(?i)wednesday`), weekday: time.Wednesday},
	{re: regexp.MustCompile(`(?i)thursday`), weekday: time.Thursday},
	{re: regexp.MustCompile(`(?i)friday`), weekday: time.Friday},
	{re: regexp.MustCompile(`(?i)saturday`), weekday: time.Saturday},
	{re: regexp.MustCompile(`(?i)sunday`), weekday: time.Sunday},
}

// Parse extracts intent, date and time from one utterance relative to the
// current clock.
func Parse(utterance string) model.ExtractionResult {
	return ParseAt(utterance, time.Now())
}

// ParseAt is Parse with an explicit reference time, for deterministic use.
func ParseAt(utterance string, now time.Time) model.ExtractionResult {
	var result model.ExtractionResult

	// Booking keywords are checked before availability keywords.
	if bookIntentRe.MatchString(utterance) {
		result.Intent = model.IntentBookAppointment
	} else if availIntentRe.MatchString(utterance) {
		result.Intent = model.IntentCheckAvailability
	}

	for _, re := range timeRules {
		if m := re.FindString(utterance); m != "" {
			result.Time = m
			break
		}
	}

	for _, rule := range dateRules {
		if !rule.re.MatchString(utterance) {
			continue
		}
		if rule.relDays {
			result.Date = now.AddDate(0, 0, rule.days)
		} else {
			daysToAdd := int(rule.weekday) - int(now.Weekday())
			if rule.next || daysToAdd <= 0 {
				daysToAdd += 7
			}
			result.Date = now.AddDate(0, 0, daysToAdd)
		}
		break
	}

	// Whole-phrase overrides run last and replace any date set above. The
	// ordering is deliberate and must not change.
	if thisWeekRe.MatchString(utterance) {
		result.Date = endOfWeek(now)
	} else if nextWeekRe.MatchString(utterance) {
		result.Date = startOfWeek(now).AddDate(0, 0, 7)
	}

	return result
}

// startOfWeek returns the Sunday beginning the week containing t.
func startOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, -int(t.Weekday()))
}

// endOfWeek returns the Saturday ending the week containing t.
func endOfWeek(t time.Time) time.Time {
	return t.AddDate(0, 0, 6-int(t.Weekday()))
}
