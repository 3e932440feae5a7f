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
	"encoding/json"
	"fmt"
	"strings"
	"time"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Weekday is one of the seven days of the week.
//
// The zero value WeekdayUnknown is not a day and fails Validate. Defined
// days are ordered Sunday-first, matching time.Weekday, and that order is
// used wherever a set of weekdays is rendered. Only equality and set
// membership are meaningful; the numeric order carries no semantics.
//
// JSON and YAML use the upper-case wire tag ("MONDAY").
type Weekday uint8

const (
	// WeekdayUnknown is the zero value and does not name a day.
	WeekdayUnknown Weekday = iota
	Sunday
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Wire tags for Weekday values.
const (
	SundayStr    = "SUNDAY"
	MondayStr    = "MONDAY"
	TuesdayStr   = "TUESDAY"
	WednesdayStr = "WEDNESDAY"
	ThursdayStr  = "THURSDAY"
	FridayStr    = "FRIDAY"
	SaturdayStr  = "SATURDAY"
)

var weekdayTags = [...]string{
	Sunday:    SundayStr,
	Monday:    MondayStr,
	Tuesday:   TuesdayStr,
	Wednesday: WednesdayStr,
	Thursday:  ThursdayStr,
	Friday:    FridayStr,
	Saturday:  SaturdayStr,
}

// Weekdays returns all seven days, Sunday first.
func Weekdays() []Weekday {
	return []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}
}

// ParseWeekday parses an upper-case wire tag such as "FRIDAY".
//
// Matching is exact: wire strings are produced by Serialize, not typed by
// people, so "friday" and " FRIDAY" are rejected with a *dxerrors.ParseError.
func ParseWeekday(s string) (Weekday, error) {
	for d := Sunday; d <= Saturday; d++ {
		if weekdayTags[d] == s {
			return d, nil
		}
	}
	return WeekdayUnknown, &dxerrors.ParseError{Type: "Weekday", Value: s}
}

// WeekdayOf converts a time.Weekday.
func WeekdayOf(d time.Weekday) Weekday {
	if d < time.Sunday || d > time.Saturday {
		return WeekdayUnknown
	}
	return Weekday(d) + Sunday
}

// Compile-time assertion that Weekday implements model.Model.
var _ model.Model = (*Weekday)(nil)

// String returns the wire tag, or "Weekday(n)" for undefined values.
func (w Weekday) String() string {
	if w.Validate() != nil {
		return fmt.Sprintf("Weekday(%d)", uint8(w))
	}
	return weekdayTags[w]
}

// Name returns the capitalized English name used in descriptions ("Friday").
func (w Weekday) Name() string {
	if w.Validate() != nil {
		return w.String()
	}
	return w.TimeWeekday().String()
}

// TimeWeekday converts w to a time.Weekday. The result is meaningless for
// invalid values.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(w - Sunday)
}

// Redacted returns the same value as String; weekdays are not sensitive.
func (w Weekday) Redacted() string {
	return w.String()
}

// TypeName returns "Weekday".
func (w Weekday) TypeName() string {
	return "Weekday"
}

// IsZero reports whether w is WeekdayUnknown.
func (w Weekday) IsZero() bool {
	return w == WeekdayUnknown
}

// Equal reports whether w and other are the same day.
func (w Weekday) Equal(other Weekday) bool {
	return w == other
}

// Validate returns an error unless w is one of Sunday..Saturday.
func (w Weekday) Validate() error {
	if w < Sunday || w > Saturday {
		return invalidField("Weekday", uint8(w), "must be one of SUNDAY..SATURDAY")
	}
	return nil
}

// MarshalJSON encodes the wire tag as a JSON string.
func (w Weekday) MarshalJSON() ([]byte, error) {
	if err := w.Validate(); err != nil {
		return nil, &dxerrors.MarshalError{Type: w.TypeName(), Value: int(w)}
	}
	return json.Marshal(w.String())
}

// UnmarshalJSON decodes a JSON string holding a wire tag.
func (w *Weekday) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: w.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := ParseWeekday(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", w.TypeName(), err)
	}

	*w = parsed
	return nil
}

// MarshalYAML encodes the wire tag as a YAML string.
func (w Weekday) MarshalYAML() (interface{}, error) {
	if err := w.Validate(); err != nil {
		return nil, &dxerrors.MarshalError{Type: w.TypeName(), Value: int(w)}
	}
	return w.String(), nil
}

// UnmarshalYAML decodes a YAML string holding a wire tag.
func (w *Weekday) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: w.TypeName(), Reason: err.Error()}
	}

	parsed, err := ParseWeekday(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", w.TypeName(), err)
	}

	*w = parsed
	return nil
}

// WeekdaySet is an unordered set of weekdays stored as a bit mask.
//
// Because the set is a plain integer, two sets holding the same days are
// equal under ==, regardless of the order in which days were added. The
// zero value is the empty set.
type WeekdaySet uint8

// NewWeekdaySet returns the set of the given days. Invalid days are ignored.
func NewWeekdaySet(days ...Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// With returns s plus d. Invalid days leave s unchanged.
func (s WeekdaySet) With(d Weekday) WeekdaySet {
	if d.Validate() != nil {
		return s
	}
	return s | 1<<(d-Sunday)
}

// Has reports whether d is in s.
func (s WeekdaySet) Has(d Weekday) bool {
	if d.Validate() != nil {
		return false
	}
	return s&(1<<(d-Sunday)) != 0
}

// Len returns the number of days in s.
func (s WeekdaySet) Len() int {
	n := 0
	for _, d := range Weekdays() {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// IsEmpty reports whether s holds no days.
func (s WeekdaySet) IsEmpty() bool {
	return s&0x7f == 0
}

// Days returns the members of s, Sunday first.
func (s WeekdaySet) Days() []Weekday {
	days := make([]Weekday, 0, 7)
	for _, d := range Weekdays() {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// String returns the comma-separated wire tags, Sunday first.
func (s WeekdaySet) String() string {
	days := s.Days()
	tags := make([]string, len(days))
	for i, d := range days {
		tags[i] = d.String()
	}
	return strings.Join(tags, ",")
}
