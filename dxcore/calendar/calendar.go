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

// Package calendar exports recurring transactions as iCalendar (RFC 5545)
// events so that calendar clients can display upcoming payments.
//
// Each transaction becomes one VEVENT whose RRULE mirrors its frequency. The
// canonical wire string is kept verbatim in the X-DXRECUR-FREQUENCY property,
// so a calendar produced here can be read back without loss:
//
//	BEGIN:VEVENT
//	UID:5b0c...
//	SUMMARY:Rent
//	DTSTART;TZID=Europe/Berlin:20250101T080000
//	RRULE:FREQ=MONTHLY;INTERVAL=1;BYMONTHDAY=1;BYHOUR=8;BYMINUTE=0;BYSECOND=0
//	X-DXRECUR-FREQUENCY:M\;1\;DAY-1\;08:00:00
//	END:VEVENT
package calendar

import (
	"errors"
	"fmt"
	"io"
	"time"

	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"dirpx.dev/dxrecur/dxcore/model/transaction"
	"dirpx.dev/dxrecur/dxcore/schedule"
	"dirpx.dev/rxmerr"
	"github.com/emersion/go-ical"
)

const (
	// PropFrequency carries the canonical rule string of a transaction.
	PropFrequency = "X-DXRECUR-FREQUENCY"

	// DefaultProductID is the PRODID written when Exporter.ProductID is empty.
	DefaultProductID = "-//dirpx.dev//dxrecur//EN"
)

// Exporter turns recurring transactions into calendar events.
//
// The zero Exporter is usable: it writes DefaultProductID, reads rule times
// in UTC, and stamps events with time.Now.
type Exporter struct {
	// ProductID is the PRODID of encoded calendars.
	ProductID string

	// Location is the zone in which rule times of day are read.
	Location *time.Location

	// Now returns the DTSTAMP of generated events.
	Now func() time.Time
}

func (e Exporter) productID() string {
	if e.ProductID == "" {
		return DefaultProductID
	}
	return e.ProductID
}

func (e Exporter) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

func (e Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now().UTC()
}

// Event builds the VEVENT of tx. It fails if tx is invalid or never fires.
//
// DTSTART is the first occurrence, written in the exporter's location with
// a TZID parameter unless that location is UTC. The RRULE hours are local to
// the same zone, so clients expand the series at the rule's wall-clock time.
func (e Exporter) Event(tx transaction.RecurringTransaction) (*ical.Event, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	s, err := schedule.New(tx.Frequency, tx.Start, e.location())
	if err != nil {
		return nil, err
	}
	first, ok := s.Next(tx.Start.Add(-time.Nanosecond)).Get()
	if !ok || !tx.Active(first) {
		return nil, fmt.Errorf("dxrecur: transaction %s has no occurrence", tx.ID)
	}

	opt := s.ROption()
	opt.Dtstart = first
	if tx.End != nil {
		opt.Until = *tx.End
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, tx.ID)
	event.Props.SetText(ical.PropSummary, tx.Title)
	if tx.Description != nil && *tx.Description != "" {
		event.Props.SetText(ical.PropDescription, *tx.Description)
	}
	event.Props.SetDateTime(ical.PropDateTimeStamp, e.now())
	event.Props.SetDateTime(ical.PropDateTimeStart, first)
	event.Props.SetRecurrenceRule(&opt)
	event.Props.SetText(PropFrequency, tx.Frequency.String())

	return event, nil
}

// Calendar builds a VCALENDAR holding one event per transaction.
func (e Exporter) Calendar(txs ...transaction.RecurringTransaction) (*ical.Calendar, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, e.productID())

	for i, tx := range txs {
		event, err := e.Event(tx)
		if err != nil {
			return nil, fmt.Errorf("transaction[%d] (%s): %w", i, tx.ID, err)
		}
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}

// Encode writes the calendar of txs to w.
func (e Exporter) Encode(w io.Writer, txs ...transaction.RecurringTransaction) error {
	if len(txs) == 0 {
		return errors.New("dxrecur: calendar needs at least one transaction")
	}
	cal, err := e.Calendar(txs...)
	if err != nil {
		return err
	}
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("dxrecur: cannot encode calendar: %w", err)
	}
	return nil
}

// DecodeFrequencies reads a calendar written by Encode and returns the rule
// of each event, keyed by UID.
//
// Events without X-DXRECUR-FREQUENCY are skipped. Events whose frequency does
// not parse are left out of the map and reported together in the returned
// error, so callers can keep the usable ones.
func DecodeFrequencies(r io.Reader) (map[string]recurrence.Rule, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("dxrecur: cannot decode calendar: %w", err)
	}

	rules := make(map[string]recurrence.Rule)
	c := rxmerr.NewCollector()
	for _, event := range cal.Events() {
		raw, err := event.Props.Text(PropFrequency)
		if err != nil || raw == "" {
			continue
		}
		uid, _ := event.Props.Text(ical.PropUID)

		rule, err := recurrence.Parse(raw)
		if err != nil {
			c.Append(fmt.Errorf("event %q: %w", uid, err))
			continue
		}
		rules[uid] = rule
	}
	return rules, c.Err()
}
