/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package schedule expands a recurrence.Rule into concrete instants.
//
// A Rule carries no start date, so every expansion is anchored at a start
// instant: the first candidate is the rule's time of day on the start's
// calendar date, in the schedule's location. Day counting for intervals
// (every 2 weeks, every 3 months) is relative to that anchor.
//
// Expansion follows RFC 5545 semantics via github.com/teambition/rrule-go.
// That calendar is stricter than the codec's: a "DAY-31" rule does not fire
// in 30-day months and a "02-29" rule fires only in leap years.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"github.com/samber/mo"
	"github.com/teambition/rrule-go"
)

// DefaultLimit caps Between when Options.Limit is not set.
const DefaultLimit = 1000

// ErrZeroStart is returned when an expansion is requested without a start.
var ErrZeroStart = errors.New("dxrecur: schedule start must be set")

// Options tunes an expansion.
type Options struct {
	// Location is the zone in which the rule's time of day is read.
	// Nil means the location of the start instant.
	Location *time.Location

	// Limit caps the number of instants returned by Between. Zero or
	// negative means DefaultLimit.
	Limit int
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

// Schedule is a Rule bound to a start instant and a location. It is safe for
// concurrent use; every call iterates independently.
type Schedule struct {
	rule  recurrence.Rule
	start time.Time
	opt   rrule.ROption
}

// New binds r to start. It fails if r is invalid or start is zero.
func New(r recurrence.Rule, start time.Time, loc *time.Location) (*Schedule, error) {
	opt, err := ToROption(r, start, loc)
	if err != nil {
		return nil, err
	}
	if _, err := rrule.NewRRule(opt); err != nil {
		return nil, fmt.Errorf("dxrecur: cannot expand rule %q: %w", r.String(), err)
	}
	return &Schedule{rule: r, start: opt.Dtstart, opt: opt}, nil
}

// Rule returns the bound rule.
func (s *Schedule) Rule() recurrence.Rule { return s.rule }

// Start returns the anchor instant, which is the first candidate occurrence.
func (s *Schedule) Start() time.Time { return s.start }

// ROption returns a copy of the rrule options backing s.
func (s *Schedule) ROption() rrule.ROption { return s.opt }

// Next returns the first occurrence strictly after after.
func (s *Schedule) Next(after time.Time) mo.Option[time.Time] {
	rr := s.rrule(time.Time{})
	t := rr.After(after, false)
	if t.IsZero() {
		return mo.None[time.Time]()
	}
	return mo.Some(t)
}

// Between returns the occurrences in [from, to], oldest first, and at most
// limit of them. A zero or negative limit means DefaultLimit.
func (s *Schedule) Between(from, to time.Time, limit int) []time.Time {
	if to.Before(from) {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	next := s.rrule(to).Iterator()
	out := make([]time.Time, 0, min(limit, 64))
	for len(out) < limit {
		t, ok := next()
		if !ok || t.After(to) {
			break
		}
		if t.Before(from) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// rrule builds a fresh iterator source, optionally bounded by until.
func (s *Schedule) rrule(until time.Time) *rrule.RRule {
	opt := s.opt
	if !until.IsZero() {
		opt.Until = until
	}
	// Options were validated in New.
	rr, _ := rrule.NewRRule(opt)
	return rr
}

// Next is a shortcut for New(r, start, nil) followed by Schedule.Next.
// It returns mo.None when r or start is invalid.
func Next(r recurrence.Rule, start, after time.Time) mo.Option[time.Time] {
	s, err := New(r, start, nil)
	if err != nil {
		return mo.None[time.Time]()
	}
	return s.Next(after)
}

// Between is a shortcut for New followed by Schedule.Between.
func Between(r recurrence.Rule, start, from, to time.Time, opts Options) ([]time.Time, error) {
	s, err := New(r, start, opts.Location)
	if err != nil {
		return nil, err
	}
	return s.Between(from, to, opts.limit()), nil
}
