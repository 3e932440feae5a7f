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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dirpx.dev/dxrecur/dxcore/calendar"
	"dirpx.dev/dxrecur/dxcore/model"
	"dirpx.dev/dxrecur/dxcore/model/recurrence"
	"dirpx.dev/dxrecur/dxcore/model/transaction"
	"dirpx.dev/dxrecur/dxcore/schedule"
	"github.com/spf13/pflag"
)

// parsed is the JSON line printed by "parse".
type parsed struct {
	Input       string          `json:"input"`
	Rule        recurrence.Rule `json:"rule"`
	Unit        string          `json:"unit"`
	Count       int             `json:"count"`
	Time        string          `json:"time"`
	Description string          `json:"description"`
}

// eachRule parses every argument and calls fn for the valid ones. Invalid
// rules are logged at WARN and make the result errRecords.
func (a *app) eachRule(args []string, fn func(input string, r recurrence.Rule) error) error {
	if len(args) == 0 {
		return usagef("at least one rule is required")
	}

	failed := 0
	for _, input := range args {
		r, err := recurrence.Parse(input)
		if err != nil {
			failed++
			a.logger.Warn("rejected rule", "input", input, "error", err)
			continue
		}
		a.logger.Debug("parsed rule", "input", input, "rule", model.SafeString(&r, false))
		if err := fn(input, r); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d: %w", failed, len(args), errRecords)
	}
	return nil
}

func runParse(a *app, args []string) error {
	enc := json.NewEncoder(a.stdout)
	return a.eachRule(args, func(input string, r recurrence.Rule) error {
		return enc.Encode(parsed{
			Input:       input,
			Rule:        r,
			Unit:        recurrence.UnitName(r.Unit()),
			Count:       r.Count(),
			Time:        r.Time().String(),
			Description: r.Describe(),
		})
	})
}

func runDescribe(a *app, args []string) error {
	return a.eachRule(args, func(_ string, r recurrence.Rule) error {
		_, err := fmt.Fprintln(a.stdout, recurrence.Describe(r))
		return err
	})
}

func runNext(a *app, args []string) error {
	flagSet := pflag.NewFlagSet("next", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	from := flagSet.String("from", "", "anchor instant, RFC 3339 (default now)")
	count := flagSet.IntP("count", "n", a.cfg.Occurrences, "number of occurrences")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usagef("next: %v", err)
	}
	if flagSet.NArg() != 1 {
		return usagef("next takes exactly one rule")
	}
	if *count < 1 {
		return usagef("next: --count must be at least 1")
	}

	start, err := a.instant(*from)
	if err != nil {
		return err
	}

	return a.eachRule(flagSet.Args(), func(_ string, r recurrence.Rule) error {
		s, err := schedule.New(r, start, a.loc)
		if err != nil {
			return err
		}
		after := start.Add(-time.Nanosecond)
		for i := 0; i < *count; i++ {
			next, ok := s.Next(after).Get()
			if !ok {
				break
			}
			fmt.Fprintln(a.stdout, next.Format(time.RFC3339))
			after = next
		}
		return nil
	})
}

func runICal(a *app, args []string) error {
	flagSet := pflag.NewFlagSet("ical", pflag.ContinueOnError)
	flagSet.SetOutput(a.stderr)
	title := flagSet.String("title", "Recurring transaction", "event summary")
	from := flagSet.String("start", "", "first day of the series, RFC 3339 (default now)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return usagef("ical: %v", err)
	}
	if flagSet.NArg() != 1 {
		return usagef("ical takes exactly one rule")
	}

	start, err := a.instant(*from)
	if err != nil {
		return err
	}

	exporter := calendar.Exporter{ProductID: a.cfg.ProductID, Location: a.loc, Now: a.now}
	return a.eachRule(flagSet.Args(), func(_ string, r recurrence.Rule) error {
		tx, err := transaction.New(*title, r, start, 0, false, "dxrecur", "dxrecur")
		if err != nil {
			return err
		}
		return exporter.Encode(a.stdout, tx)
	})
}

// instant parses an RFC 3339 flag value, or returns now when it is empty.
func (a *app) instant(value string) (time.Time, error) {
	if value == "" {
		return a.now().In(a.loc), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, usagef("invalid time %q: want RFC 3339", value)
	}
	return t, nil
}
