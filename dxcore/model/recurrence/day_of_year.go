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
	"time"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"gopkg.in/yaml.v3"
)

// DayOfYear is a month/day pair on which a Yearly rule fires.
//
// Month is 1..12 and day is 1..MaxDayOfMonth(month). February always allows
// day 29: the codec uses a simplified calendar with no leap-year check, and
// a rule on February 29 simply has no occurrence in common years.
//
// The wire, JSON and YAML form is zero-padded "MM-DD". The zero value fails
// Validate.
type DayOfYear struct {
	month int
	day   int
}

// MaxDayOfMonth returns the largest day accepted for month: 29 for
// February, 30 for April, June, September and November, 31 otherwise.
// It returns 0 when month is outside 1..12.
func MaxDayOfMonth(month int) int {
	switch month {
	case 2:
		return 29
	case 4, 6, 9, 11:
		return 30
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	default:
		return 0
	}
}

// NewDayOfYear returns the DayOfYear for month and day.
func NewDayOfYear(month, day int) (DayOfYear, error) {
	d := DayOfYear{month: month, day: day}
	if err := d.Validate(); err != nil {
		return DayOfYear{}, err
	}
	return d, nil
}

// ParseDayOfYear parses "<month>-<day>" as two base-10 integers.
func ParseDayOfYear(s string) (DayOfYear, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return DayOfYear{}, invalidField("DayOfYear", s, "must have the form MM-DD")
	}

	month, err := strconv.Atoi(parts[0])
	if err != nil {
		return DayOfYear{}, invalidField("DayOfYear.Month", parts[0], "must be a base-10 integer")
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil {
		return DayOfYear{}, invalidField("DayOfYear.Day", parts[1], "must be a base-10 integer")
	}

	return NewDayOfYear(month, day)
}

// Compile-time assertion that DayOfYear implements model.Model.
var _ model.Model = (*DayOfYear)(nil)

// Month returns the month, 1..12.
func (d DayOfYear) Month() int { return d.month }

// Day returns the day of the month.
func (d DayOfYear) Day() int { return d.day }

// String returns the zero-padded wire form "MM-DD".
func (d DayOfYear) String() string {
	return fmt.Sprintf("%02d-%02d", d.month, d.day)
}

// Describe returns the English form used in descriptions ("December 25").
func (d DayOfYear) Describe() string {
	if d.Validate() != nil {
		return d.String()
	}
	return time.Month(d.month).String() + " " + strconv.Itoa(d.day)
}

// Redacted returns the same value as String.
func (d DayOfYear) Redacted() string {
	return d.String()
}

// TypeName returns "DayOfYear".
func (d DayOfYear) TypeName() string {
	return "DayOfYear"
}

// IsZero reports whether d is the zero value.
func (d DayOfYear) IsZero() bool {
	return d.month == 0 && d.day == 0
}

// Equal reports whether d and other are the same month and day.
func (d DayOfYear) Equal(other DayOfYear) bool {
	return d == other
}

// Validate checks the month range first, then the day against the month's
// limit.
func (d DayOfYear) Validate() error {
	if d.month < 1 || d.month > 12 {
		return invalidField("DayOfYear.Month", d.month, "must be in 1..12")
	}
	if limit := MaxDayOfMonth(d.month); d.day < 1 || d.day > limit {
		return invalidField("DayOfYear.Day", d.day, fmt.Sprintf("must be in 1..%d for month %d", limit, d.month))
	}
	return nil
}

// MarshalJSON encodes d as the JSON string "MM-DD".
func (d DayOfYear) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a JSON string "MM-DD".
func (d *DayOfYear) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: d.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := ParseDayOfYear(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", d.TypeName(), err)
	}

	*d = parsed
	return nil
}

// MarshalYAML encodes d as the YAML string "MM-DD".
func (d DayOfYear) MarshalYAML() (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	return d.String(), nil
}

// UnmarshalYAML decodes a YAML string "MM-DD".
func (d *DayOfYear) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: d.TypeName(), Reason: err.Error()}
	}

	parsed, err := ParseDayOfYear(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", d.TypeName(), err)
	}

	*d = parsed
	return nil
}
