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
	"strconv"
	"strings"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"gopkg.in/yaml.v3"
)

// MonthDay selects the day within a month on which a Monthly rule fires.
//
// It is a tagged union of two variants:
//
//   - fixed: a numeric day 1..31, built with FixedDay, wire form "DAY-15";
//   - ordinal: the Nth weekday of the month, built with OrdinalDay, wire
//     form "LAST-FRIDAY".
//
// An ordinal MonthDay never carries PositionDay. The zero value is neither
// variant and fails Validate.
type MonthDay struct {
	position OrdinalPosition
	weekday  Weekday
	day      int
}

// FixedDay returns the MonthDay for the numeric day of the month.
//
// It fails unless day is in 1..31. Whether a given month has that day is
// not checked here.
func FixedDay(day int) (MonthDay, error) {
	md := MonthDay{position: PositionDay, day: day}
	if err := md.Validate(); err != nil {
		return MonthDay{}, err
	}
	return md, nil
}

// OrdinalDay returns the MonthDay for the position-th weekday of the month,
// for example OrdinalDay(PositionLast, Friday).
//
// It fails if position is PositionDay or undefined, or weekday is invalid.
func OrdinalDay(position OrdinalPosition, weekday Weekday) (MonthDay, error) {
	if position == PositionDay {
		return MonthDay{}, invalidField("MonthDay.Position", position.String(), "must be an ordinal position; use FixedDay for DAY")
	}
	md := MonthDay{position: position, weekday: weekday}
	if err := md.Validate(); err != nil {
		return MonthDay{}, err
	}
	return md, nil
}

// ParseMonthDay parses the wire payload "<POSITION>-<value>".
//
// When POSITION is DAY the value is a base-10 day number; otherwise it is a
// weekday tag.
func ParseMonthDay(s string) (MonthDay, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return MonthDay{}, invalidField("MonthDay", s, "must have the form <POSITION>-<DAY|WEEKDAY>")
	}

	position, err := ParseOrdinalPosition(parts[0])
	if err != nil {
		return MonthDay{}, &InvalidRuleError{Field: "MonthDay.Position", Value: parts[0], Err: err}
	}

	if position == PositionDay {
		day, err := strconv.Atoi(parts[1])
		if err != nil {
			return MonthDay{}, invalidField("MonthDay.Day", parts[1], "must be a base-10 integer")
		}
		return FixedDay(day)
	}

	weekday, err := ParseWeekday(parts[1])
	if err != nil {
		return MonthDay{}, &InvalidRuleError{Field: "MonthDay.Weekday", Value: parts[1], Err: err}
	}
	return OrdinalDay(position, weekday)
}

// Compile-time assertion that MonthDay implements model.Model.
var _ model.Model = (*MonthDay)(nil)

// IsFixed reports whether md is a fixed numeric day.
func (md MonthDay) IsFixed() bool {
	return md.position == PositionDay
}

// Day returns the fixed day, or 0 for an ordinal MonthDay.
func (md MonthDay) Day() int {
	return md.day
}

// Position returns the ordinal position, or PositionDay for a fixed day.
func (md MonthDay) Position() OrdinalPosition {
	return md.position
}

// Weekday returns the weekday of an ordinal MonthDay, or WeekdayUnknown for
// a fixed day.
func (md MonthDay) Weekday() Weekday {
	return md.weekday
}

// String returns the wire payload: "DAY-<n>" or "<POSITION>-<WEEKDAY>".
func (md MonthDay) String() string {
	if md.IsFixed() {
		return PositionDayStr + "-" + strconv.Itoa(md.day)
	}
	return md.position.String() + "-" + md.weekday.String()
}

// Describe returns the English phrase used after "on the": "15th" or
// "last Friday".
func (md MonthDay) Describe() string {
	if md.IsFixed() {
		return ordinalSuffix(md.day)
	}
	return md.position.Name() + " " + md.weekday.Name()
}

// Redacted returns the same value as String.
func (md MonthDay) Redacted() string {
	return md.String()
}

// TypeName returns "MonthDay".
func (md MonthDay) TypeName() string {
	return "MonthDay"
}

// IsZero reports whether md is the zero value.
func (md MonthDay) IsZero() bool {
	return md == MonthDay{}
}

// Equal reports whether md and other select the same day.
func (md MonthDay) Equal(other MonthDay) bool {
	return md == other
}

// Validate checks the invariant of whichever variant md holds.
func (md MonthDay) Validate() error {
	switch {
	case md.position == PositionDay:
		if md.day < 1 || md.day > 31 {
			return invalidField("MonthDay.Day", md.day, "must be in 1..31")
		}
		if md.weekday != WeekdayUnknown {
			return invalidField("MonthDay.Weekday", md.weekday.String(), "must be unset for a fixed day")
		}
		return nil
	case md.position.IsOrdinal():
		if err := md.weekday.Validate(); err != nil {
			return invalidField("MonthDay.Weekday", uint8(md.weekday), "must be one of SUNDAY..SATURDAY")
		}
		if md.day != 0 {
			return invalidField("MonthDay.Day", md.day, "must be unset for an ordinal day")
		}
		return nil
	default:
		return invalidField("MonthDay.Position", uint8(md.position), "must be one of DAY, FIRST, SECOND, THIRD, FOURTH, LAST")
	}
}

// MarshalJSON encodes md as its wire payload string.
func (md MonthDay) MarshalJSON() ([]byte, error) {
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", md.TypeName(), err)
	}
	return json.Marshal(md.String())
}

// UnmarshalJSON decodes a wire payload string.
func (md *MonthDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: md.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := ParseMonthDay(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", md.TypeName(), err)
	}

	*md = parsed
	return nil
}

// MarshalYAML encodes md as its wire payload string.
func (md MonthDay) MarshalYAML() (interface{}, error) {
	if err := md.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", md.TypeName(), err)
	}
	return md.String(), nil
}

// UnmarshalYAML decodes a wire payload string.
func (md *MonthDay) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: md.TypeName(), Reason: err.Error()}
	}

	parsed, err := ParseMonthDay(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", md.TypeName(), err)
	}

	*md = parsed
	return nil
}

// ordinalSuffix renders 1 as "1st", 12 as "12th", 22 as "22nd".
func ordinalSuffix(n int) string {
	suffix := "th"
	switch n % 100 {
	case 11, 12, 13:
	default:
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
