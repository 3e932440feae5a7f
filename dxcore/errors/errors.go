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

// Package errors provides reusable error types for dxrecur model types.
//
// The recurrence and transaction packages share these carriers when parsing
// tags (weekday and ordinal names), marshaling values that fail validation,
// unmarshaling JSON or YAML payloads, and reporting field-level validation
// failures. Each type is a plain value carrier with a stable message format
// prefixed with "dxrecur:".
//
// # Error Types
//
//   - ParseError
//     Returned when a textual tag does not name a known enum-like value.
//
//   - MarshalError
//     Returned when an enum-like value outside its constant set is marshaled.
//
//   - UnmarshalError
//     Returned when a raw JSON or YAML payload cannot be decoded at all.
//
//   - ValidationError
//     Returned by Validate methods of record types (for example
//     RecurringTransaction) for a single violated field constraint.
//
// Packages MAY alias these types locally:
//
//	type ParseError = errors.ParseError
package errors

import "strconv"

// ParseError is returned when parsing a string into a strongly typed enum-like
// value fails.
//
// Type identifies the logical type being parsed (for example, "Weekday" or
// "OrdinalPosition"), and Value contains the exact string that could not be
// interpreted.
//
// # Example
//
//	func ParseWeekday(s string) (Weekday, error) {
//	    switch s {
//	    case "MONDAY":
//	        return Monday, nil
//	    default:
//	        // "dxrecur: invalid Weekday value: <value>"
//	        return WeekdayUnknown, &errors.ParseError{Type: "Weekday", Value: s}
//	    }
//	}
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Weekday").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"dxrecur: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "dxrecur: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling a typed value fails due to it being
// outside the set of valid constants.
//
// In most cases a MarshalError indicates a programming error, such as a zero
// Weekday that was never assigned.
type MarshalError struct {
	// Type is the logical name of the type being marshaled (for example, "Weekday").
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled because it does not correspond to a known constant.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"dxrecur: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "dxrecur: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails
// before any domain validation could take place, for example because a JSON
// payload holds a number where a rule string was expected.
//
// Data contains the original raw payload when available. Callers MAY log or
// redact it; it is not part of the formatted message.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal. It is nil for YAML
	// inputs, which are decoded from a node tree.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"dxrecur: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "dxrecur: cannot unmarshal " + e.Type + ": " + e.Reason
}

// ValidationError is returned when validation of a model type fails.
//
// Type identifies the logical name of the type being validated (for example,
// "RecurringTransaction"), Field optionally identifies which field failed,
// Reason explains the violation and Value optionally holds the offending
// value.
//
// # Example
//
//	func (t RecurringTransaction) Validate() error {
//	    if t.Title == "" {
//	        return &errors.ValidationError{
//	            Type:   "RecurringTransaction",
//	            Field:  "Title",
//	            Reason: "must not be empty",
//	        }
//	    }
//	    return nil
//	}
type ValidationError struct {
	// Type is the logical name of the type being validated.
	Type string

	// Field is the name of the field that failed validation.
	// May be empty if the error applies to the entire type.
	Field string

	// Reason is a short, human-readable explanation of why validation failed.
	Reason string

	// Value optionally contains the invalid value.
	// May be nil if not applicable or if the value should not be logged.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message format is:
//
//	"dxrecur: invalid {Type}.{Field}: {Reason}" (when Field is specified)
//	"dxrecur: invalid {Type}: {Reason}" (when Field is empty)
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "dxrecur: invalid " + e.Type + "." + e.Field + ": " + e.Reason
	}
	return "dxrecur: invalid " + e.Type + ": " + e.Reason
}
