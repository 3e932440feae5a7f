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

package schedule

import (
	"time"

	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"github.com/teambition/rrule-go"
)

// rruleWeekdays is indexed by time.Weekday.
var rruleWeekdays = [...]rrule.Weekday{
	time.Sunday:    rrule.SU,
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
}

// RRuleWeekday converts a valid weekday to its rrule counterpart.
func RRuleWeekday(d recurrence.Weekday) rrule.Weekday {
	return rruleWeekdays[d.TimeWeekday()]
}

// ToROption maps r onto RFC 5545 recurrence options anchored at start:
//
//	D;1;09:00:00                   FREQ=DAILY;INTERVAL=1
//	W;2;MONDAY,WEDNESDAY;18:30:00  FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,WE
//	M;1;DAY-15;08:00:00            FREQ=MONTHLY;INTERVAL=1;BYMONTHDAY=15
//	M;1;LAST-FRIDAY;08:00:00       FREQ=MONTHLY;INTERVAL=1;BYDAY=-1FR
//	Y;1;12-25;07:00:00             FREQ=YEARLY;INTERVAL=1;BYMONTH=12;BYMONTHDAY=25
//
// BYHOUR, BYMINUTE and BYSECOND always carry the rule's time of day. DTSTART
// is that time on start's calendar date in loc, or in start's own location
// when loc is nil.
func ToROption(r recurrence.Rule, start time.Time, loc *time.Location) (rrule.ROption, error) {
	if err := r.Validate(); err != nil {
		return rrule.ROption{}, err
	}
	if start.IsZero() {
		return rrule.ROption{}, ErrZeroStart
	}

	at := r.Time()
	opt := rrule.ROption{
		Interval: r.Count(),
		Dtstart:  at.On(start, loc),
		Byhour:   []int{at.Hours()},
		Byminute: []int{at.Minutes()},
		Bysecond: []int{at.Seconds()},
	}
	r.Unit().Accept(&optionBuilder{opt: &opt})
	return opt, nil
}

// optionBuilder fills in the frequency and BY* parts for each unit arm.
type optionBuilder struct {
	opt *rrule.ROption
}

func (b *optionBuilder) VisitDaily(recurrence.Daily) {
	b.opt.Freq = rrule.DAILY
}

func (b *optionBuilder) VisitWeekly(w recurrence.Weekly) {
	b.opt.Freq = rrule.WEEKLY
	for _, d := range w.Days().Days() {
		b.opt.Byweekday = append(b.opt.Byweekday, RRuleWeekday(d))
	}
}

func (b *optionBuilder) VisitMonthly(m recurrence.Monthly) {
	b.opt.Freq = rrule.MONTHLY
	md := m.Day()
	if md.IsFixed() {
		b.opt.Bymonthday = []int{md.Day()}
		return
	}
	wd := RRuleWeekday(md.Weekday())
	b.opt.Byweekday = []rrule.Weekday{wd.Nth(md.Position().N())}
}

func (b *optionBuilder) VisitYearly(y recurrence.Yearly) {
	b.opt.Freq = rrule.YEARLY
	b.opt.Bymonth = []int{y.Day().Month()}
	b.opt.Bymonthday = []int{y.Day().Day()}
}
