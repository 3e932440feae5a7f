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
	"fmt"
	"strings"
)

// Describe returns an English sentence for r:
//
//	Every 1 day(s) at 09:00:00
//	Every 2 week(s) on Monday, Wednesday at 18:30:00
//	Every 1 month(s) on the last Friday at 08:00:00
//	Every 1 month(s) on the 15th at 08:00:00
//	Every 1 year(s) on December 25 at 07:00:00
//
// The sentence is for display only. It must not be stored or parsed back;
// use Serialize for that. The zero Rule describes as "".
func Describe(r Rule) string {
	if r.unit == nil {
		return ""
	}
	d := describer{count: r.count, at: r.time.String()}
	r.unit.Accept(&d)
	return d.out
}

type describer struct {
	count int
	at    string
	out   string
}

func (d *describer) VisitDaily(Daily) {
	d.out = fmt.Sprintf("Every %d day(s) at %s", d.count, d.at)
}

func (d *describer) VisitWeekly(w Weekly) {
	days := w.days.Days()
	names := make([]string, len(days))
	for i, day := range days {
		names[i] = day.Name()
	}
	d.out = fmt.Sprintf("Every %d week(s) on %s at %s", d.count, strings.Join(names, ", "), d.at)
}

func (d *describer) VisitMonthly(m Monthly) {
	d.out = fmt.Sprintf("Every %d month(s) on the %s at %s", d.count, m.day.Describe(), d.at)
}

func (d *describer) VisitYearly(y Yearly) {
	d.out = fmt.Sprintf("Every %d year(s) on %s at %s", d.count, y.day.Describe(), d.at)
}
