// Package week holds the calendar arithmetic behind the weekly feed: the
// ordinal week-of-month label, relative "time ago" strings and the day
// bucket labels used to group the posts feed. All functions are pure.
package week

import (
	"fmt"
	"time"
)

var monthNames = [12]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

var weekOrdinals = [5]string{"Primera", "Segunda", "Tercera", "Cuarta", "Quinta"}

// DateOf returns the calendar date of the given week of the year, anchored to
// the first Monday on or after January 1 (ISO-style week start). weekNumber is
// expected in [1,53]; out-of-range values are not validated and produce a
// nonsensical but well-formed date.
func DateOf(weekNumber, year int) time.Time {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	offset := (int(time.Monday) - int(jan1.Weekday()) + 7) % 7
	firstMonday := jan1.AddDate(0, 0, offset)
	return firstMonday.AddDate(0, 0, (weekNumber-1)*7)
}

// Label renders the human-readable week label, e.g. (2, 2025) →
// "Segunda semana de enero 2025". Month and year both come from the anchored
// date, so a week number past the year's end rolls into the next year instead
// of mislabeling it.
func Label(weekNumber, year int) string {
	date := DateOf(weekNumber, year)
	weekOfMonth := (date.Day() + 6) / 7
	ordinal := "Última"
	if weekOfMonth >= 1 && weekOfMonth <= len(weekOrdinals) {
		ordinal = weekOrdinals[weekOfMonth-1]
	}
	return fmt.Sprintf("%s semana de %s %d", ordinal, monthNames[date.Month()-1], date.Year())
}

// TimeAgo renders the elapsed time between t and now with fixed integer-second
// thresholds. Boundary values round down.
func TimeAgo(t, now time.Time) string {
	diff := int64(now.Sub(t) / time.Second)

	const (
		minute = int64(60)
		hour   = minute * 60
		day    = hour * 24
		week   = day * 7
		month  = day * 30
		year   = day * 365
	)

	switch {
	case diff < minute:
		return "ahora"
	case diff < hour:
		return fmt.Sprintf("%dm", diff/minute)
	case diff < day:
		return fmt.Sprintf("%dh", diff/hour)
	case diff < week:
		return fmt.Sprintf("%dd", diff/day)
	case diff < month:
		return fmt.Sprintf("%dsem", diff/week)
	case diff < year:
		return fmt.Sprintf("%dm", diff/month)
	default:
		return fmt.Sprintf("%da", diff/year)
	}
}

// DayLabel buckets a timestamp for the grouped posts view: "Hoy", "Ayer" or
// the long-form Spanish date. Equality is calendar-date equality in t's
// location relative to now.
func DayLabel(t, now time.Time) string {
	if sameDate(t, now) {
		return "Hoy"
	}
	if sameDate(t, now.AddDate(0, 0, -1)) {
		return "Ayer"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
