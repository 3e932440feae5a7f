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

import dxerrors "dirpx.dev/dxrecur/dxcore/errors"

// UnitTag is the single-letter wire tag of a frequency unit.
type UnitTag byte

const (
	TagDaily   UnitTag = 'D'
	TagWeekly  UnitTag = 'W'
	TagMonthly UnitTag = 'M'
	TagYearly  UnitTag = 'Y'
)

// ParseUnitTag parses one of "D", "W", "M", "Y".
func ParseUnitTag(s string) (UnitTag, error) {
	if len(s) == 1 {
		switch t := UnitTag(s[0]); t {
		case TagDaily, TagWeekly, TagMonthly, TagYearly:
			return t, nil
		}
	}
	return 0, &dxerrors.ParseError{Type: "UnitTag", Value: s}
}

// String returns the tag letter.
func (t UnitTag) String() string {
	return string(rune(t))
}

// Unit is the repeat granularity of a Rule: exactly one of Daily, Weekly,
// Monthly or Yearly.
//
// Unit is a closed sum type. Code that must handle every arm implements
// UnitVisitor and calls Accept; adding an arm adds a method to UnitVisitor,
// which turns every incomplete handler into a compile error.
//
// All arms are comparable values, so two Units are equal under == exactly
// when they have the same arm and payload.
type Unit interface {
	// Tag returns the wire tag of the arm.
	Tag() UnitTag

	// Accept calls the visitor method for the arm.
	Accept(v UnitVisitor)

	// Validate checks the arm's payload.
	Validate() error

	// String returns a debugging form such as "Weekly{MONDAY,FRIDAY}".
	String() string

	isUnit()
}

// UnitVisitor handles each arm of Unit.
type UnitVisitor interface {
	VisitDaily(Daily)
	VisitWeekly(Weekly)
	VisitMonthly(Monthly)
	VisitYearly(Yearly)
}

// Daily repeats every N days. It has no payload.
type Daily struct{}

func (Daily) Tag() UnitTag           { return TagDaily }
func (d Daily) Accept(v UnitVisitor) { v.VisitDaily(d) }
func (Daily) Validate() error        { return nil }
func (Daily) String() string         { return "Daily" }
func (Daily) isUnit()                {}

// Weekly repeats every N weeks on a non-empty set of weekdays.
type Weekly struct {
	days WeekdaySet
}

// NewWeekly returns a Weekly unit on the given days. Duplicates collapse;
// it fails if any day is invalid or no day is given.
func NewWeekly(days ...Weekday) (Weekly, error) {
	for _, d := range days {
		if d.Validate() != nil {
			return Weekly{}, invalidField("Weekly.Days", uint8(d), "must contain only SUNDAY..SATURDAY")
		}
	}
	w := Weekly{days: NewWeekdaySet(days...)}
	if err := w.Validate(); err != nil {
		return Weekly{}, err
	}
	return w, nil
}

// Days returns the weekday set.
func (w Weekly) Days() WeekdaySet     { return w.days }
func (Weekly) Tag() UnitTag           { return TagWeekly }
func (w Weekly) Accept(v UnitVisitor) { v.VisitWeekly(w) }
func (w Weekly) String() string       { return "Weekly{" + w.days.String() + "}" }
func (Weekly) isUnit()                {}

// Validate fails when the set is empty.
func (w Weekly) Validate() error {
	if w.days.IsEmpty() {
		return invalidField("Weekly.Days", nil, "must contain at least one weekday")
	}
	return nil
}

// Monthly repeats every N months on a MonthDay.
type Monthly struct {
	day MonthDay
}

// NewMonthly returns a Monthly unit on day.
func NewMonthly(day MonthDay) (Monthly, error) {
	m := Monthly{day: day}
	if err := m.Validate(); err != nil {
		return Monthly{}, err
	}
	return m, nil
}

// Day returns the day selector.
func (m Monthly) Day() MonthDay        { return m.day }
func (Monthly) Tag() UnitTag           { return TagMonthly }
func (m Monthly) Accept(v UnitVisitor) { v.VisitMonthly(m) }
func (m Monthly) Validate() error      { return m.day.Validate() }
func (m Monthly) String() string       { return "Monthly{" + m.day.String() + "}" }
func (Monthly) isUnit()                {}

// Yearly repeats every N years on a DayOfYear.
type Yearly struct {
	day DayOfYear
}

// NewYearly returns a Yearly unit on day.
func NewYearly(day DayOfYear) (Yearly, error) {
	y := Yearly{day: day}
	if err := y.Validate(); err != nil {
		return Yearly{}, err
	}
	return y, nil
}

// Day returns the month/day pair.
func (y Yearly) Day() DayOfYear       { return y.day }
func (Yearly) Tag() UnitTag           { return TagYearly }
func (y Yearly) Accept(v UnitVisitor) { v.VisitYearly(y) }
func (y Yearly) Validate() error      { return y.day.Validate() }
func (y Yearly) String() string       { return "Yearly{" + y.day.String() + "}" }
func (Yearly) isUnit()                {}

// Compile-time assertions that every arm implements Unit.
var (
	_ Unit = Daily{}
	_ Unit = Weekly{}
	_ Unit = Monthly{}
	_ Unit = Yearly{}
)

// unitName returns the singular English noun for an arm.
type unitName struct{ name string }

func (n *unitName) VisitDaily(Daily)     { n.name = "day" }
func (n *unitName) VisitWeekly(Weekly)   { n.name = "week" }
func (n *unitName) VisitMonthly(Monthly) { n.name = "month" }
func (n *unitName) VisitYearly(Yearly)   { n.name = "year" }

// UnitName returns "day", "week", "month" or "year".
func UnitName(u Unit) string {
	if u == nil {
		return "<nil>"
	}
	var n unitName
	u.Accept(&n)
	return n.name
}
