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

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model"
	"gopkg.in/yaml.v3"
)

// Rule describes how a recurring transaction repeats: every Count Units at
// Time. For example, "every 2 weeks on Monday and Wednesday at 09:00:00".
//
// Rules are built by NewRule or Parse and are immutable. Two rules are
// equal under == (and Equal) exactly when unit, count and time match; weekday
// sets compare as sets.
//
// The zero Rule has no unit and fails Validate.
//
// JSON and YAML encode a Rule as its canonical wire string, so a record
// holding a Rule field stores exactly what Serialize returns:
//
//	{"frequency": "W;2;MONDAY,WEDNESDAY;18:30:00"}
type Rule struct {
	unit  Unit
	count int
	time  TimeOfDay
}

// NewRule returns the rule "every count units at at".
//
// It fails with *InvalidRuleError if unit is nil or invalid, count is less
// than 1 or at is out of range.
func NewRule(unit Unit, count int, at TimeOfDay) (Rule, error) {
	r := Rule{unit: unit, count: count, time: at}
	if err := r.Validate(); err != nil {
		return Rule{}, err
	}
	return r, nil
}

// MustParse is like Parse but panics on failure. It is intended for rules
// written as literals in code and tests.
func MustParse(s string) Rule {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// Compile-time assertion that Rule implements model.Model.
var _ model.Model = (*Rule)(nil)

// Unit returns the frequency unit.
func (r Rule) Unit() Unit { return r.unit }

// Count returns the repeat count, at least 1.
func (r Rule) Count() int { return r.count }

// Time returns the time of day.
func (r Rule) Time() TimeOfDay { return r.time }

// String returns the canonical wire string; see Serialize.
func (r Rule) String() string {
	return Serialize(r)
}

// Describe returns the display sentence; see Describe.
func (r Rule) Describe() string {
	return Describe(r)
}

// Redacted returns the same value as String; schedules are not sensitive.
func (r Rule) Redacted() string {
	return r.String()
}

// TypeName returns "Rule".
func (r Rule) TypeName() string {
	return "Rule"
}

// IsZero reports whether r is the zero Rule.
func (r Rule) IsZero() bool {
	return r.unit == nil && r.count == 0 && r.time.IsZero()
}

// Equal reports whether r and other describe the same schedule.
func (r Rule) Equal(other Rule) bool {
	return r == other
}

// Validate checks the unit, count and time.
func (r Rule) Validate() error {
	if r.unit == nil {
		return invalidField("Rule.Unit", nil, "must be set")
	}
	if err := r.unit.Validate(); err != nil {
		return err
	}
	if r.count < 1 {
		return invalidField("Rule.Count", r.count, "must be at least 1")
	}
	return r.time.Validate()
}

// MarshalJSON encodes r as its wire string.
func (r Rule) MarshalJSON() ([]byte, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string holding a wire string.
func (r *Rule) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: r.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := Parse(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", r.TypeName(), err)
	}

	*r = parsed
	return nil
}

// MarshalYAML encodes r as its wire string.
func (r Rule) MarshalYAML() (interface{}, error) {
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", r.TypeName(), err)
	}
	return r.String(), nil
}

// UnmarshalYAML decodes a YAML string holding a wire string.
func (r *Rule) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: r.TypeName(), Reason: err.Error()}
	}

	parsed, err := Parse(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", r.TypeName(), err)
	}

	*r = parsed
	return nil
}
