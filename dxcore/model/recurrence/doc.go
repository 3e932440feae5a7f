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

// Package recurrence implements the recurrence-rule codec used by recurring
// transactions: the structured representation of how a transaction repeats,
// its compact wire format and a human-readable description.
//
// A Rule combines a frequency Unit, a repeat count and a TimeOfDay. The unit
// is one of four arms:
//
//	Daily                      every N days
//	Weekly(WeekdaySet)         every N weeks on the given weekdays
//	Monthly(MonthDay)          every N months on a fixed day or an ordinal weekday
//	Yearly(DayOfYear)          every N years on a month/day pair
//
// # Wire format
//
// Fields are separated by ';'. The payload segment is present for W, M and Y
// and absent for D:
//
//	<unit-tag>;<count>[;<payload>];<HH:MM:SS>
//
//	D;1;09:00:00
//	W;2;MONDAY,WEDNESDAY;18:30:00
//	M;1;LAST-FRIDAY;08:00:00
//	M;1;DAY-15;08:00:00
//	Y;1;12-25;07:00:00
//
// Parse and Serialize are inverse: Parse(Serialize(r)) == r for every valid
// Rule. Weekday lists are serialized Sunday-first, so a parsed string may
// come back with its weekdays reordered. Describe renders a display-only
// English sentence that is never meant to be parsed or stored.
//
// # Errors
//
// Every constructor and Parse fail with *InvalidRuleError, which matches
// ErrInvalidRule under errors.Is. No partially valid value is ever returned.
//
// # Calendar model
//
// DayOfYear always accepts February 29 and MonthDay accepts any day 1..31;
// the codec does not consult a real calendar. Mapping a rule onto concrete
// dates is the job of the schedule package.
//
// All types are immutable values and every function in this package is
// pure, so they are safe for concurrent use without synchronization.
package recurrence
