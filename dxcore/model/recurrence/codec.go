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

package recurrence

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"
)

const (
	fieldSep = ";"
	listSep  = ","
)

// Parse decodes the wire string
//
//	<unit-tag>;<count>[;<payload>];<HH:MM:SS>
//
// into a validated Rule. Surrounding whitespace is trimmed; nothing else is
// normalized. D takes exactly three fields and W, M and Y exactly four.
//
// Weekly payloads are comma-separated weekday tags; unknown tags are dropped,
// but an empty resulting set fails. Monthly payloads are "DAY-<n>" or
// "<POSITION>-<WEEKDAY>". Yearly payloads are "<month>-<day>".
//
// Any violated constraint discards the whole result: Parse returns the zero
// Rule and an *InvalidRuleError whose Input is s.
func Parse(s string) (Rule, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Rule{}, invalidInput(s, "empty input")
	}

	fields := strings.Split(trimmed, fieldSep)

	tag, err := ParseUnitTag(fields[0])
	if err != nil {
		return Rule{}, &InvalidRuleError{Input: s, Field: "Rule.Unit", Value: fields[0], Err: err}
	}

	want := 4
	if tag == TagDaily {
		want = 3
	}
	if len(fields) != want {
		return Rule{}, invalidInput(s, fmt.Sprintf("unit %s takes %d fields, got %d", tag, want, len(fields)))
	}

	count, err := strconv.Atoi(fields[1])
	if err != nil {
		return Rule{}, &InvalidRuleError{Input: s, Field: "Rule.Count", Value: fields[1], Reason: "must be a base-10 integer"}
	}

	unit, err := parseUnit(tag, fields[2:want-1])
	if err != nil {
		return Rule{}, withInput(s, err)
	}

	at, err := ParseTimeOfDay(fields[want-1])
	if err != nil {
		return Rule{}, withInput(s, err)
	}

	r, err := NewRule(unit, count, at)
	if err != nil {
		return Rule{}, withInput(s, err)
	}
	return r, nil
}

// ParseOption is Parse for callers that only need to know whether a stored
// string is usable. It returns mo.None when Parse would fail.
func ParseOption(s string) mo.Option[Rule] {
	r, err := Parse(s)
	if err != nil {
		return mo.None[Rule]()
	}
	return mo.Some(r)
}

// parseUnit decodes the payload segment, if any, for tag.
func parseUnit(tag UnitTag, payload []string) (Unit, error) {
	switch tag {
	case TagDaily:
		return Daily{}, nil
	case TagWeekly:
		var days []Weekday
		for _, t := range strings.Split(payload[0], listSep) {
			if d, err := ParseWeekday(t); err == nil {
				days = append(days, d)
			}
		}
		return NewWeekly(days...)
	case TagMonthly:
		md, err := ParseMonthDay(payload[0])
		if err != nil {
			return nil, err
		}
		return NewMonthly(md)
	case TagYearly:
		d, err := ParseDayOfYear(payload[0])
		if err != nil {
			return nil, err
		}
		return NewYearly(d)
	default:
		return nil, invalidField("Rule.Unit", tag.String(), "unknown unit tag")
	}
}

// Serialize returns the canonical wire string of r, the inverse of Parse:
//
//	D;3;06:00:00
//	W;2;MONDAY,WEDNESDAY;18:30:00
//	M;1;LAST-FRIDAY;08:00:00
//	M;1;DAY-15;08:00:00
//	Y;1;12-25;07:00:00
//
// Weekdays are written Sunday-first; yearly month and day and all time
// components are zero-padded to two digits. The zero Rule serializes to "".
func Serialize(r Rule) string {
	if r.unit == nil {
		return ""
	}

	var p payloadWriter
	r.unit.Accept(&p)

	parts := make([]string, 0, 4)
	parts = append(parts, r.unit.Tag().String(), strconv.Itoa(r.count))
	if p.ok {
		parts = append(parts, p.payload)
	}
	parts = append(parts, r.time.String())
	return strings.Join(parts, fieldSep)
}

// payloadWriter renders the payload segment of each unit arm.
type payloadWriter struct {
	payload string
	ok      bool
}

func (p *payloadWriter) VisitDaily(Daily) {}

func (p *payloadWriter) VisitWeekly(w Weekly) {
	p.payload, p.ok = w.days.String(), true
}

func (p *payloadWriter) VisitMonthly(m Monthly) {
	p.payload, p.ok = m.day.String(), true
}

func (p *payloadWriter) VisitYearly(y Yearly) {
	p.payload, p.ok = y.day.String(), true
}
