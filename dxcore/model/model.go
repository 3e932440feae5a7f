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

// Package model defines the contracts that all dxrecur domain types MUST
// implement: validation, JSON and YAML serialization, safe logging, type
// identification and zero-value detection.
//
// Recurrence value types (TimeOfDay, Weekday, MonthDay, DayOfYear, Rule) and
// record types (RecurringTransaction) implement Model so that they can be
// handled uniformly by the helpers in this package: ValidateAll, FilterZero,
// MustValidate, SafeString, ToJSON, ToYAML, FromJSON, FromYAML, Clone and
// Equal. Only pointer types satisfy Model, so helpers take *T.
//
// Model types are immutable value types. Methods never mutate the receiver
// except the Unmarshal methods, which MUST NOT be called concurrently with
// any other method on the same instance.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts required
// for dxrecur domain types.
//
// Example implementation:
//
//	type MyModel struct {
//	    Field string
//	}
//
//	func (m MyModel) Validate() error {
//	    if m.Field == "" {
//	        return errors.New("field required")
//	    }
//	    return nil
//	}
//
//	func (m MyModel) TypeName() string { return "MyModel" }
//	func (m MyModel) IsZero() bool { return m.Field == "" }
//	func (m MyModel) Redacted() string { return "MyModel{...}" }
//	func (m MyModel) String() string { return "MyModel{Field:" + m.Field + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*MyModel)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST return nil if and only if every invariant of the instance
// holds, MUST be deterministic and MUST NOT have side effects. Errors SHOULD
// name the offending field and value, for example
// "Rule.Count must be at least 1, got 0" rather than "validation failed".
//
// The zero value of a type SHOULD fail validation unless it represents a
// meaningful state (a zero TimeOfDay is midnight and is valid; a zero Rule
// has no unit and is not).
type Validatable interface {
	// Validate checks that the instance satisfies all invariants.
	Validate() error
}

// Serializable defines the contract for types that can be serialized to and
// deserialized from JSON and YAML.
//
// Marshal methods MUST validate before encoding and refuse to emit invalid
// values. Unmarshal methods MUST validate after decoding and leave the
// receiver untouched on failure. A value marshaled and unmarshaled again
// MUST be equal to the original.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that provide safe string
// representations for logging.
//
// Redacted returns a form suitable for production logs; it MUST hide
// sensitive fields such as transaction amounts and free-text descriptions.
// String returns the full representation and MUST NOT be used for
// production logging of types carrying sensitive data.
type Loggable interface {
	// Redacted returns a safe string representation suitable for logging.
	Redacted() string

	// String returns a human-readable representation of the instance that
	// MAY include sensitive data.
	String() string
}

// Identifiable defines the contract for types that can identify themselves
// by a canonical type name.
//
// TypeName MUST return a constant CamelCase name without package prefix,
// for example "Rule" or "DayOfYear".
type Identifiable interface {
	// TypeName returns the canonical name of this model type.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can report whether they
// are in a zero or empty state.
type ZeroCheckable interface {
	// IsZero reports whether this instance holds its type's zero value.
	IsZero() bool
}

// Comparable defines the contract for types that can be compared for
// semantic equality. Equal MUST be reflexive, symmetric and transitive.
//
// Example:
//
//	func (r Rule) Equal(other Rule) bool {
//	    return r.count == other.count && r.time == other.time && ...
//	}
type Comparable[T any] interface {
	// Equal reports whether this instance is equal to another instance of
	// the same type.
	Equal(other T) bool
}
