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
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRule is the sentinel matched by every *InvalidRuleError.
//
//	if errors.Is(err, recurrence.ErrInvalidRule) {
//	    // stored frequency is corrupt; skip this record
//	}
var ErrInvalidRule = errors.New("dxrecur: invalid recurrence rule")

// InvalidRuleError is the single failure kind of the codec.
//
// Parse failures carry the raw Input. Constructor failures carry the
// offending Field (for example "TimeOfDay.Hours") and Value. When a parse
// fails because a constructor rejected a decoded field, both are set.
type InvalidRuleError struct {
	// Input is the raw wire string, set for parse failures.
	Input string

	// Field names the violated field as Type.Field.
	Field string

	// Value is the rejected field value.
	Value any

	// Reason is a short explanation of the violation.
	Reason string

	// Err is the underlying cause, such as a *dxerrors.ParseError for an
	// unknown weekday tag.
	Err error
}

// Error formats the failure as
//
//	dxrecur: invalid recurrence rule "<input>": <field>=<value>: <reason>: <cause>
//
// omitting the parts that are not set.
func (e *InvalidRuleError) Error() string {
	var b strings.Builder
	b.WriteString(ErrInvalidRule.Error())
	if e.Input != "" {
		fmt.Fprintf(&b, " %q", e.Input)
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
		if e.Value != nil {
			fmt.Fprintf(&b, "=%v", e.Value)
		}
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *InvalidRuleError) Unwrap() error { return e.Err }

// Is reports whether target is ErrInvalidRule.
func (e *InvalidRuleError) Is(target error) bool { return target == ErrInvalidRule }

func invalidField(field string, value any, reason string) *InvalidRuleError {
	return &InvalidRuleError{Field: field, Value: value, Reason: reason}
}

func invalidInput(input, reason string) *InvalidRuleError {
	return &InvalidRuleError{Input: input, Reason: reason}
}

// withInput attaches the raw wire string to a field-level failure.
func withInput(input string, err error) error {
	var ire *InvalidRuleError
	if errors.As(err, &ire) {
		c := *ire
		c.Input = input
		return &c
	}
	return &InvalidRuleError{Input: input, Err: err}
}
