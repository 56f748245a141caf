// Package schedule decides whether a given invocation should run at
// all: the sync is a no-op outside the configured local work window.
package schedule

import "time"

// NowIn returns the current wall-clock time in the named zone.
func NowIn(tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, err
	}
	return time.Now().In(loc), nil
}

// InWorkWindow reports whether t falls inside [startHour, endHour).
func InWorkWindow(t time.Time, startHour, endHour int) bool {
	h := t.Hour()
	return startHour <= h && h < endHour
}

// MonthName returns the English month name used in sheet titles
// ("July 2025" contains MonthName for July).
func MonthName(t time.Time) string {
	return t.Month().String()
}
