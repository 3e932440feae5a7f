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

package recurrence_test

import (
	"encoding/json"
	"errors"
	"testing"

	dxerrors "dirpx.dev/dxrecur/dxcore/errors"
	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"gopkg.in/yaml.v3"
)

func mustTime(t *testing.T, h, m, s int) recurrence.TimeOfDay {
	t.Helper()
	at, err := recurrence.NewTimeOfDay(h, m, s)
	if err != nil {
		t.Fatalf("NewTimeOfDay(%d, %d, %d) error = %v", h, m, s, err)
	}
	return at
}

func mustParse(t *testing.T, s string) recurrence.Rule {
	t.Helper()
	r, err := recurrence.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q) error = %v", s, err)
	}
	return r
}

func TestParse_Scenarios(t *testing.T) {
	t.Run("weekly", func(t *testing.T) {
		r := mustParse(t, "W;2;MONDAY,WEDNESDAY;18:30:00")

		w, ok := r.Unit().(recurrence.Weekly)
		if !ok {
			t.Fatalf("Unit() is %T, want Weekly", r.Unit())
		}
		if want := recurrence.NewWeekdaySet(recurrence.Monday, recurrence.Wednesday); w.Days() != want {
			t.Errorf("Days() = %v, want %v", w.Days(), want)
		}
		if r.Count() != 2 {
			t.Errorf("Count() = %d, want 2", r.Count())
		}
		if want := mustTime(t, 18, 30, 0); r.Time() != want {
			t.Errorf("Time() = %v, want %v", r.Time(), want)
		}
		if got := recurrence.Serialize(r); got != "W;2;MONDAY,WEDNESDAY;18:30:00" {
			t.Errorf("Serialize() = %q", got)
		}
	})

	t.Run("monthly_ordinal", func(t *testing.T) {
		r := mustParse(t, "M;1;LAST-FRIDAY;08:00:00")

		m, ok := r.Unit().(recurrence.Monthly)
		if !ok {
			t.Fatalf("Unit() is %T, want Monthly", r.Unit())
		}
		if m.Day().IsFixed() {
			t.Error("Day().IsFixed() = true, want false")
		}
		if m.Day().Position() != recurrence.PositionLast || m.Day().Weekday() != recurrence.Friday {
			t.Errorf("Day() = %v, want LAST-FRIDAY", m.Day())
		}
		if got, want := recurrence.Describe(r), "Every 1 month(s) on the last Friday at 08:00:00"; got != want {
			t.Errorf("Describe() = %q, want %q", got, want)
		}
	})

	t.Run("monthly_fixed", func(t *testing.T) {
		r := mustParse(t, "M;1;DAY-15;08:00:00")

		m, ok := r.Unit().(recurrence.Monthly)
		if !ok {
			t.Fatalf("Unit() is %T, want Monthly", r.Unit())
		}
		if !m.Day().IsFixed() || m.Day().Day() != 15 {
			t.Errorf("Day() = %v, want DAY-15", m.Day())
		}
		if got, want := recurrence.Describe(r), "Every 1 month(s) on the 15th at 08:00:00"; got != want {
			t.Errorf("Describe() = %q, want %q", got, want)
		}
	})

	t.Run("yearly", func(t *testing.T) {
		r := mustParse(t, "Y;1;12-25;07:00:00")

		y, ok := r.Unit().(recurrence.Yearly)
		if !ok {
			t.Fatalf("Unit() is %T, want Yearly", r.Unit())
		}
		if y.Day().Month() != 12 || y.Day().Day() != 25 {
			t.Errorf("Day() = %v, want 12-25", y.Day())
		}
		if got, want := recurrence.Describe(r), "Every 1 year(s) on December 25 at 07:00:00"; got != want {
			t.Errorf("Describe() = %q, want %q", got, want)
		}
	})

	t.Run("yearly_february_29", func(t *testing.T) {
		mustParse(t, "Y;1;02-29;07:00:00")

		_, err := recurrence.Parse("Y;1;02-30;07:00:00")
		if !errors.Is(err, recurrence.ErrInvalidRule) {
			t.Errorf("Parse(02-30) error = %v, want ErrInvalidRule", err)
		}
	})

	t.Run("serialize_daily", func(t *testing.T) {
		r, err := recurrence.NewRule(recurrence.Daily{}, 3, mustTime(t, 6, 0, 0))
		if err != nil {
			t.Fatalf("NewRule() error = %v", err)
		}
		if got := recurrence.Serialize(r); got != "D;3;06:00:00" {
			t.Errorf("Serialize() = %q, want %q", got, "D;3;06:00:00")
		}
		if got, want := recurrence.Describe(r), "Every 3 day(s) at 06:00:00"; got != want {
			t.Errorf("Describe() = %q, want %q", got, want)
		}
	})
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"D;1;09:00:00",
		"D;3;06:00:00",
		"D;365;23:59:59",
		"W;1;SUNDAY;00:00:00",
		"W;2;MONDAY,WEDNESDAY;18:30:00",
		"W;1;SUNDAY,MONDAY,TUESDAY,WEDNESDAY,THURSDAY,FRIDAY,SATURDAY;12:00:00",
		"M;1;DAY-1;08:00:00",
		"M;6;DAY-31;08:00:00",
		"M;1;FIRST-MONDAY;08:00:00",
		"M;2;SECOND-TUESDAY;08:00:00",
		"M;3;THIRD-WEDNESDAY;08:00:00",
		"M;1;FOURTH-THURSDAY;08:00:00",
		"M;1;LAST-FRIDAY;08:00:00",
		"Y;1;01-01;00:00:00",
		"Y;1;02-29;07:00:00",
		"Y;2;12-25;07:00:00",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			r := mustParse(t, in)
			if got := recurrence.Serialize(r); got != in {
				t.Errorf("Serialize() = %q, want %q", got, in)
			}
			if again := mustParse(t, recurrence.Serialize(r)); !again.Equal(r) {
				t.Errorf("Parse(Serialize()) = %v, want %v", again, r)
			}
		})
	}
}

func TestParse_Normalizes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "weekday_order", input: "W;1;FRIDAY,MONDAY;09:00:00", want: "W;1;MONDAY,FRIDAY;09:00:00"},
		{name: "weekday_duplicates", input: "W;1;MONDAY,MONDAY;09:00:00", want: "W;1;MONDAY;09:00:00"},
		{name: "unknown_weekday_dropped", input: "W;1;MONDAY,FUNDAY;09:00:00", want: "W;1;MONDAY;09:00:00"},
		{name: "time_padding", input: "D;1;9:0:0", want: "D;1;09:00:00"},
		{name: "year_padding", input: "Y;1;3-7;07:00:00", want: "Y;1;03-07;07:00:00"},
		{name: "outer_whitespace", input: "  D;1;09:00:00\n", want: "D;1;09:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recurrence.Serialize(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("Serialize(Parse(%q)) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_WeekdaySetsEqual(t *testing.T) {
	a := recurrence.MustParse("W;1;FRIDAY,MONDAY;09:00:00")
	b := recurrence.MustParse("W;1;MONDAY,FRIDAY;09:00:00")
	if !a.Equal(b) || a != b {
		t.Errorf("%v and %v should be equal", a, b)
	}
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{name: "empty", input: ""},
		{name: "blank", input: "   "},
		{name: "unknown_tag", input: "X;1;09:00:00", field: "Rule.Unit"},
		{name: "lower_case_tag", input: "d;1;09:00:00", field: "Rule.Unit"},
		{name: "non_numeric_count", input: "D;abc;09:00:00", field: "Rule.Count"},
		{name: "zero_count", input: "D;0;09:00:00", field: "Rule.Count"},
		{name: "negative_count", input: "D;-2;09:00:00", field: "Rule.Count"},
		{name: "empty_weekday_set", input: "W;1;;09:00:00", field: "Weekly.Days"},
		{name: "only_unknown_weekdays", input: "W;1;FUNDAY;09:00:00", field: "Weekly.Days"},
		{name: "hour_out_of_range", input: "D;1;25:00:00", field: "TimeOfDay.Hours"},
		{name: "minute_out_of_range", input: "D;1;09:61:00", field: "TimeOfDay.Minutes"},
		{name: "short_time", input: "D;1;09:00", field: "TimeOfDay"},
		{name: "february_30", input: "Y;1;02-30;09:00:00", field: "DayOfYear.Day"},
		{name: "april_31", input: "Y;1;04-31;09:00:00", field: "DayOfYear.Day"},
		{name: "month_13", input: "Y;1;13-01;09:00:00", field: "DayOfYear.Month"},
		{name: "fixed_day_32", input: "M;1;DAY-32;09:00:00", field: "MonthDay.Day"},
		{name: "unknown_position", input: "M;1;FIFTH-MONDAY;09:00:00", field: "MonthDay.Position"},
		{name: "malformed_month_day", input: "M;1;LASTFRIDAY;09:00:00", field: "MonthDay"},
		{name: "daily_with_payload", input: "D;1;X;09:00:00"},
		{name: "weekly_without_payload", input: "W;1;09:00:00"},
		{name: "trailing_separator", input: "D;1;09:00:00;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := recurrence.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) = %v, want error", tt.input, r)
			}
			if !r.IsZero() {
				t.Errorf("Parse(%q) returned a partial rule %v", tt.input, r)
			}
			if !errors.Is(err, recurrence.ErrInvalidRule) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidRule", tt.input, err)
			}

			var ire *recurrence.InvalidRuleError
			if !errors.As(err, &ire) {
				t.Fatalf("Parse(%q) error %T is not *InvalidRuleError", tt.input, err)
			}
			if ire.Input != tt.input {
				t.Errorf("Input = %q, want %q", ire.Input, tt.input)
			}
			if ire.Field != tt.field {
				t.Errorf("Field = %q, want %q", ire.Field, tt.field)
			}
		})
	}
}

func TestParse_UnknownTagCause(t *testing.T) {
	_, err := recurrence.Parse("Q;1;09:00:00")
	var pe *dxerrors.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError cause", err)
	}
	if pe.Type != "UnitTag" || pe.Value != "Q" {
		t.Errorf("ParseError = %+v, want UnitTag Q", pe)
	}
}

func TestParseOption(t *testing.T) {
	some := recurrence.ParseOption("D;1;09:00:00")
	if !some.IsPresent() {
		t.Fatal("ParseOption(valid) is absent")
	}
	if got := some.MustGet().String(); got != "D;1;09:00:00" {
		t.Errorf("ParseOption(valid) = %q", got)
	}

	if recurrence.ParseOption("D;0;09:00:00").IsPresent() {
		t.Error("ParseOption(invalid) is present")
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse(\"nope\") did not panic")
		}
	}()
	recurrence.MustParse("D;1;09:00:00")
	recurrence.MustParse("nope")
}

func TestNewRule(t *testing.T) {
	at := mustTime(t, 9, 0, 0)

	if _, err := recurrence.NewRule(nil, 1, at); !errors.Is(err, recurrence.ErrInvalidRule) {
		t.Errorf("NewRule(nil) error = %v, want ErrInvalidRule", err)
	}

	_, err := recurrence.NewRule(recurrence.Daily{}, 0, at)
	var ire *recurrence.InvalidRuleError
	if !errors.As(err, &ire) {
		t.Fatalf("NewRule(count 0) error = %v, want *InvalidRuleError", err)
	}
	if ire.Field != "Rule.Count" || ire.Value != 0 || ire.Input != "" {
		t.Errorf("NewRule(count 0) error = %+v", ire)
	}

	_, err = recurrence.NewRule(recurrence.Weekly{}, 1, at)
	if !errors.As(err, &ire) || ire.Field != "Weekly.Days" {
		t.Errorf("NewRule(empty weekly) error = %v, want Weekly.Days", err)
	}
}

func TestNewWeekly(t *testing.T) {
	tests := []struct {
		name    string
		days    []recurrence.Weekday
		want    string
		wantErr bool
	}{
		{name: "single", days: []recurrence.Weekday{recurrence.Monday}, want: "MONDAY"},
		{name: "duplicates", days: []recurrence.Weekday{recurrence.Friday, recurrence.Monday, recurrence.Friday}, want: "MONDAY,FRIDAY"},
		{name: "none", wantErr: true},
		{name: "unknown", days: []recurrence.Weekday{recurrence.WeekdayUnknown}, wantErr: true},
		{name: "out_of_range_with_valid", days: []recurrence.Weekday{recurrence.Weekday(42), recurrence.Monday}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := recurrence.NewWeekly(tt.days...)
			if tt.wantErr {
				var ire *recurrence.InvalidRuleError
				if !errors.As(err, &ire) || ire.Field != "Weekly.Days" {
					t.Fatalf("NewWeekly(%v) = %v, %v; want Weekly.Days error", tt.days, w, err)
				}
				if !w.Days().IsEmpty() {
					t.Errorf("NewWeekly(%v) returned days %v on error", tt.days, w.Days())
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWeekly(%v) error = %v", tt.days, err)
			}
			if got := w.Days().String(); got != tt.want {
				t.Errorf("Days() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		wire string
		want string
	}{
		{wire: "D;1;09:00:00", want: "Every 1 day(s) at 09:00:00"},
		{wire: "W;2;MONDAY,WEDNESDAY;18:30:00", want: "Every 2 week(s) on Monday, Wednesday at 18:30:00"},
		{wire: "W;1;SATURDAY,SUNDAY;10:00:00", want: "Every 1 week(s) on Sunday, Saturday at 10:00:00"},
		{wire: "M;1;LAST-FRIDAY;08:00:00", want: "Every 1 month(s) on the last Friday at 08:00:00"},
		{wire: "M;1;DAY-15;08:00:00", want: "Every 1 month(s) on the 15th at 08:00:00"},
		{wire: "M;3;DAY-2;08:00:00", want: "Every 3 month(s) on the 2nd at 08:00:00"},
		{wire: "Y;1;12-25;07:00:00", want: "Every 1 year(s) on December 25 at 07:00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			r := recurrence.MustParse(tt.wire)
			if got := recurrence.Describe(r); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
			if got := r.Describe(); got != tt.want {
				t.Errorf("Rule.Describe() = %q, want %q", got, tt.want)
			}
		})
	}

	if got := recurrence.Describe(recurrence.Rule{}); got != "" {
		t.Errorf("Describe(zero) = %q, want empty", got)
	}
}

func TestUnitName(t *testing.T) {
	tests := []struct {
		unit recurrence.Unit
		want string
	}{
		{unit: recurrence.Daily{}, want: "day"},
		{unit: recurrence.MustParse("W;1;MONDAY;09:00:00").Unit(), want: "week"},
		{unit: recurrence.MustParse("M;1;DAY-1;09:00:00").Unit(), want: "month"},
		{unit: recurrence.MustParse("Y;1;01-01;09:00:00").Unit(), want: "year"},
		{unit: nil, want: "<nil>"},
	}

	for _, tt := range tests {
		if got := recurrence.UnitName(tt.unit); got != tt.want {
			t.Errorf("UnitName(%v) = %q, want %q", tt.unit, got, tt.want)
		}
	}
}

func TestRule_ZeroValue(t *testing.T) {
	var r recurrence.Rule
	if !r.IsZero() {
		t.Error("IsZero() = false for zero Rule")
	}
	if r.Validate() == nil {
		t.Error("Validate() = nil for zero Rule")
	}
	if got := recurrence.Serialize(r); got != "" {
		t.Errorf("Serialize(zero) = %q, want empty", got)
	}
	if r.TypeName() != "Rule" {
		t.Errorf("TypeName() = %q", r.TypeName())
	}
	if _, err := json.Marshal(r); err == nil {
		t.Error("json.Marshal(zero Rule) succeeded")
	}
}

type record struct {
	Title     string          `json:"title" yaml:"title"`
	Frequency recurrence.Rule `json:"frequency" yaml:"frequency"`
}

func TestRule_JSON(t *testing.T) {
	in := record{Title: "Rent", Frequency: recurrence.MustParse("M;1;DAY-1;08:00:00")}

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if want := `{"title":"Rent","frequency":"M;1;DAY-1;08:00:00"}`; string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var out record
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !out.Frequency.Equal(in.Frequency) {
		t.Errorf("round-trip frequency = %v, want %v", out.Frequency, in.Frequency)
	}

	err = json.Unmarshal([]byte(`{"frequency":"D;0;08:00:00"}`), &out)
	if !errors.Is(err, recurrence.ErrInvalidRule) {
		t.Errorf("json.Unmarshal(bad rule) error = %v, want ErrInvalidRule", err)
	}

	err = json.Unmarshal([]byte(`{"frequency":42}`), &out)
	var ue *dxerrors.UnmarshalError
	if !errors.As(err, &ue) {
		t.Errorf("json.Unmarshal(number) error = %v, want *UnmarshalError", err)
	}
}

func TestRule_YAML(t *testing.T) {
	in := record{Title: "Gym", Frequency: recurrence.MustParse("W;1;TUESDAY,THURSDAY;07:30:00")}

	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		t.Fatalf("yaml.Unmarshal(raw) error = %v", err)
	}
	if got := raw["frequency"]; got != "W;1;TUESDAY,THURSDAY;07:30:00" {
		t.Errorf("frequency = %q", got)
	}

	var out record
	if err := yaml.Unmarshal(data, &out); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if !out.Frequency.Equal(in.Frequency) {
		t.Errorf("round-trip frequency = %v, want %v", out.Frequency, in.Frequency)
	}

	err = yaml.Unmarshal([]byte("frequency: \"X;1;07:30:00\"\n"), &out)
	if !errors.Is(err, recurrence.ErrInvalidRule) {
		t.Errorf("yaml.Unmarshal(bad rule) error = %v, want ErrInvalidRule", err)
	}
}
