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

// OrdinalPosition selects which occurrence of a weekday within a month a
// MonthDay refers to.
//
// PositionDay is a sentinel: it appears only in the wire form "DAY-<n>" of a
// fixed numeric day and is never carried by an ordinal MonthDay. The zero
// value PositionUnknown fails Validate.
type OrdinalPosition uint8

const (
	// PositionUnknown is the zero value and does not name a position.
	PositionUnknown OrdinalPosition = iota

	// PositionDay marks a fixed numeric day rather than an ordinal.
	PositionDay

	PositionFirst
	PositionSecond
	PositionThird
	PositionFourth

	// PositionLast is the last occurrence of the weekday in the month,
	// which may be the fourth or the fifth.
	PositionLast
)

// Wire tags for OrdinalPosition values.
const (
	PositionDayStr    = "DAY"
	PositionFirstStr  = "FIRST"
	PositionSecondStr = "SECOND"
	PositionThirdStr  = "THIRD"
	PositionFourthStr = "FOURTH"
	PositionLastStr   = "LAST"
)

var positionTags = [...]string{
	PositionDay:    PositionDayStr,
	PositionFirst:  PositionFirstStr,
	PositionSecond: PositionSecondStr,
	PositionThird:  PositionThirdStr,
	PositionFourth: PositionFourthStr,
	PositionLast:   PositionLastStr,
}

// ParseOrdinalPosition parses an upper-case wire tag such as "LAST".
// Matching is exact.
func ParseOrdinalPosition(s string) (OrdinalPosition, error) {
	for p := PositionDay; p <= PositionLast; p++ {
		if positionTags[p] == s {
			return p, nil
		}
	}
	return PositionUnknown, &dxerrors.ParseError{Type: "OrdinalPosition", Value: s}
}

// Compile-time assertion that OrdinalPosition implements model.Model.
var _ model.Model = (*OrdinalPosition)(nil)

// String returns the wire tag, or "OrdinalPosition(n)" for undefined values.
func (p OrdinalPosition) String() string {
	if p.Validate() != nil {
		return fmt.Sprintf("OrdinalPosition(%d)", uint8(p))
	}
	return positionTags[p]
}

// Name returns the lower-case English word used in descriptions ("last").
// PositionDay has no ordinal word and returns "day".
func (p OrdinalPosition) Name() string {
	switch p {
	case PositionDay:
		return "day"
	case PositionFirst:
		return "first"
	case PositionSecond:
		return "second"
	case PositionThird:
		return "third"
	case PositionFourth:
		return "fourth"
	case PositionLast:
		return "last"
	default:
		return p.String()
	}
}

// N returns the RFC 5545 BYDAY ordinal: 1..4 for FIRST..FOURTH, -1 for
// LAST and 0 for DAY or invalid values.
func (p OrdinalPosition) N() int {
	switch p {
	case PositionFirst:
		return 1
	case PositionSecond:
		return 2
	case PositionThird:
		return 3
	case PositionFourth:
		return 4
	case PositionLast:
		return -1
	default:
		return 0
	}
}

// IsOrdinal reports whether p is one of FIRST..LAST.
func (p OrdinalPosition) IsOrdinal() bool {
	return p >= PositionFirst && p <= PositionLast
}

// Redacted returns the same value as String.
func (p OrdinalPosition) Redacted() string {
	return p.String()
}

// TypeName returns "OrdinalPosition".
func (p OrdinalPosition) TypeName() string {
	return "OrdinalPosition"
}

// IsZero reports whether p is PositionUnknown.
func (p OrdinalPosition) IsZero() bool {
	return p == PositionUnknown
}

// Equal reports whether p and other are the same position.
func (p OrdinalPosition) Equal(other OrdinalPosition) bool {
	return p == other
}

// Validate returns an error unless p is one of DAY..LAST.
func (p OrdinalPosition) Validate() error {
	if p < PositionDay || p > PositionLast {
		return invalidField("OrdinalPosition", uint8(p), "must be one of DAY, FIRST, SECOND, THIRD, FOURTH, LAST")
	}
	return nil
}

// MarshalJSON encodes the wire tag as a JSON string.
func (p OrdinalPosition) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, &dxerrors.MarshalError{Type: p.TypeName(), Value: int(p)}
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a JSON string holding a wire tag.
func (p *OrdinalPosition) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return &dxerrors.UnmarshalError{Type: p.TypeName(), Data: data, Reason: err.Error()}
	}

	parsed, err := ParseOrdinalPosition(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", p.TypeName(), err)
	}

	*p = parsed
	return nil
}

// MarshalYAML encodes the wire tag as a YAML string.
func (p OrdinalPosition) MarshalYAML() (interface{}, error) {
	if err := p.Validate(); err != nil {
		return nil, &dxerrors.MarshalError{Type: p.TypeName(), Value: int(p)}
	}
	return p.String(), nil
}

// UnmarshalYAML decodes a YAML string holding a wire tag.
func (p *OrdinalPosition) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &dxerrors.UnmarshalError{Type: p.TypeName(), Reason: err.Error()}
	}

	parsed, err := ParseOrdinalPosition(str)
	if err != nil {
		return fmt.Errorf("unmarshaled %s is invalid: %w", p.TypeName(), err)
	}

	*p = parsed
	return nil
}
