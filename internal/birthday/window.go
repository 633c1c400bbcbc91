// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package birthday implements the upcoming-birthday window.
//
// A birthday matches a window [From, To] when its month and day, re-anchored
// to the window's start year or to the following year, lands inside the
// window. Anchoring to both years keeps windows that straddle New Year
// correct: on Dec 28 a seven-day window reaches Jan 4, and a Jan 2 birthday
// matches through its next-year probe.
//
// A Feb 29 birthday has no probe in a non-leap year. That probe is skipped,
// so the contact can still match through the other year's probe.
package birthday

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-contacts/models"
)

// DefaultDays is the window length used when the caller does not supply one.
const DefaultDays = 7

// MaxDays is the longest window accepted by the service layer.
const MaxDays = 366

// ErrInvalidProbeDate is returned by [Probe] when the birthday's month and
// day do not exist in the probe year.
var ErrInvalidProbeDate = errors.New("birthday does not exist in probe year")

// Window is an inclusive range of calendar dates.
type Window struct {
	From models.Date
	To   models.Date
}

// NewWindow returns the window that starts on today's date and ends days
// calendar days later, both ends inclusive.
func NewWindow(today time.Time, days int) Window {
	from := models.DateOf(today)
	return Window{
		From: from,
		To:   from.AddDays(days),
	}
}

// Years returns the two probe years of the window: the year it starts in and
// the one after.
func (w Window) Years() (thisYear, nextYear int) {
	return w.From.Year(), w.From.Year() + 1
}

// Includes reports whether d lies in [From, To].
func (w Window) Includes(d models.Date) bool {
	return !d.Before(w.From.Time) && !d.After(w.To.Time)
}

// Contains reports whether birthday matches the window through either probe
// year. Probes that cannot be computed are skipped.
func (w Window) Contains(birthday models.Date) bool {
	thisYear, nextYear := w.Years()
	for _, year := range []int{thisYear, nextYear} {
		probe, err := Probe(birthday, year)
		if err != nil {
			continue
		}
		if w.Includes(probe) {
			return true
		}
	}

	return false
}

// Probe re-anchors birthday's month and day to year.
//
// It returns [ErrInvalidProbeDate] for Feb 29 in a non-leap year instead of
// silently rolling over to Mar 1.
func Probe(birthday models.Date, year int) (models.Date, error) {
	probe := models.NewDate(year, birthday.Month(), birthday.Day())
	if probe.Month() != birthday.Month() || probe.Day() != birthday.Day() {
		return models.Date{}, fmt.Errorf("%w: %02d-%02d in %d", ErrInvalidProbeDate, birthday.Month(), birthday.Day(), year)
	}

	return probe, nil
}

// IsLeapYear reports whether year has a Feb 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// Filter returns the contacts whose birthday matches w, preserving order.
// Contacts without a birthday never match.
func Filter(contacts []models.Contact, w Window) []models.Contact {
	matched := make([]models.Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Birthday == nil {
			continue
		}
		if w.Contains(*c.Birthday) {
			matched = append(matched, c)
		}
	}

	return matched
}
