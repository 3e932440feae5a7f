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

// TimeOfDay is a wall-clock time with second precision, without date or
// location.
//
// Values are created by NewTimeOfDay or ParseTimeOfDay, both of which
// reject out-of-range components. The zero value is midnight (00:00:00) and
// is valid. The canonical text form is zero-padded "HH:MM:SS", used for the
// wire format, String, JSON and YAML.
type TimeOfDay struct {
	hours   int
	minutes int
	seconds int
}

// NewTimeOfDay returns the time hours:minutes:seconds.
//
// It fails with *InvalidRuleError unless hours is in 0..23 and minutes and
// seconds are in 0..59.
func NewTimeOfDay(hours, minutes, seconds int) (TimeOfDay, error) {
	t := TimeOfDay{hours: hours, minutes: minutes, seconds: seconds}
	if err := t.Validate(); err != nil {
		return TimeOfDay{}, err
	}
	return t, nil
}

// ParseTimeOfDay parses "HH:MM:SS".
//
// Exactly three colon-separated base-10 integers are required; padding is
// optional on input ("9:0:0" is accepted) and always present on output.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return TimeOfDay{}, invalidField("TimeOfDay", s, "must have the form HH:MM:SS")
	}

	var v [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return TimeOfDay{}, &InvalidRuleError{
				Field:  "TimeOfDay",
				Value:  s,
				Reason: fmt.Sprintf("component %q is not an integer", p),
			}
		}
		v[i] = n
	}

	return NewTimeOfDay(v[0], v[1], v[2])
}

// Compile-time assertion that TimeOfDay implements model.Model.
var _ model.Model = (*TimeOfDay)(nil)

// Hours returns the hour, 0..23.
func (t TimeOfDay) Hours() int { return t.hours }

// Minutes returns the minute, 0..59.
func (t TimeOfDay) Minutes() int { return t.minutes }

// Seconds returns the second, 0..59.
func (t TimeOfDay) Seconds() int { return t.seconds }

// On returns the instant at time t on the calendar date of d, in loc. A nil
// loc uses d's location.
func (t TimeOfDay) On(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = d.Location()
	} else {
		d = d.In(loc)
	}
	y, m, day := d.Date()
	return time.Date(y, m, day, t.hours, t.minutes, t.seconds, 0, loc)
}

// String returns the zero-padded form "HH:MM:SS".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.hours, t.minutes, t.seconds)
}

// Redacted returns the same value as String.
func (t TimeOfDay) Redacted() string {
	return t.String()
}

// TypeName returns "TimeOfDay".
func (t TimeOfDay) TypeName() string {
	return "TimeOfDay"
}

// IsZero reports whether t is midnight.
func (t TimeOfDay) IsZero() bool {
	return t == TimeOfDay{}
}

// Equal reports whether t and other denote the same time.
func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t == other
}

// Validate checks the component ranges.
func (t TimeOfDay) Validate() error {
	if t.hours < 0 || t.hours > 23 {
		return invalidField("TimeOfDay.Hours", t.hours, "must be in 0..23")
	}
	if t.minutes < 0 || t.minutes > 59 {
		return invalidField("TimeOfDay.Minutes", t.minutes, "must be in 0..59")
	}
	if t.seconds < 0 || t.seconds > 59 {
		return invalidField("TimeOfDay.Seconds", t.seconds, "must be in 0..59")
	}
	return nil
}

// MarshalJSON encodes t as the JSON string "HH:MM:SS".
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string "HH:MM:SS".
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: t.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
	}

	*t = parsed
	return nil
}

// MarshalYAML encodes t as the YAML string "HH:MM:SS".
func (t TimeOfDay) MarshalYAML() (interface{}, error) {
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", t.TypeName(), err)
	}
	return t.String(), nil
}

// UnmarshalYAML decodes a YAML string "HH:MM:SS".
func (t *TimeOfDay) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: t.TypeName(), Reason: err.Error()}
	}

	parsed, err := ParseTimeOfDay(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", t.TypeName(), err)
	}

	*t = parsed
	return nil
}
