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

// dxrecur inspects recurrence rule strings as stored on recurring
// transactions.
//
// Usage:
//
//	dxrecur [--config FILE] [--log-level LEVEL] [--timezone ZONE] <command> [flags] <rule>...
//
// Commands:
//
//	parse     print the canonical form of each rule as JSON
//	describe  print an English sentence for each rule
//	next      print the next occurrences of a rule
//	ical      print a one-event iCalendar file for a rule
//
// Rules that fail to parse are logged and skipped; the exit status is 1 if
// any rule failed and 2 on usage errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitData  = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, time.Now))
}

// app carries what every command needs.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
	cfg    Config
	loc    *time.Location
	now    func() time.Time
}

type command struct {
	name    string
	summary string
	run     func(a *app, args []string) error
}

var commands = []command{
	{name: "parse", summary: "print the canonical form of each rule as JSON", run: runParse},
	{name: "describe", summary: "print an English sentence for each rule", run: runDescribe},
	{name: "next", summary: "print the next occurrences of a rule", run: runNext},
	{name: "ical", summary: "print a one-event iCalendar file for a rule", run: runICal},
}

// usageError marks failures caused by how the command was invoked.
type usageError struct{ msg string }

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// errRecords is returned when some rules were rejected. Each rejection has
// been logged already.
var errRecords = errors.New("one or more rules were rejected")

func run(args []string, stdout, stderr io.Writer, now func() time.Time) int {
	var configPath, logLevel, timezone string

	flagSet := pflag.NewFlagSet("dxrecur", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.SetInterspersed(false)
	flagSet.StringVar(&configPath, "config", "", "YAML config file")
	flagSet.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&timezone, "timezone", "", "IANA zone in which rule times are read")
	flagSet.Usage = func() { printUsage(stderr, flagSet) }

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if timezone != "" {
		cfg.Timezone = timezone
	}
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	level, _ := cfg.level()
	loc, _ := cfg.location()
	a := &app{
		stdout: stdout,
		stderr: stderr,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		cfg:    cfg,
		loc:    loc,
		now:    now,
	}

	rest := flagSet.Args()
	if len(rest) == 0 {
		printUsage(stderr, flagSet)
		return exitUsage
	}

	for _, c := range commands {
		if c.name != rest[0] {
			continue
		}
		a.logger.Debug("running command", "command", c.name, "args", len(rest)-1, "timezone", cfg.Timezone)
		err := c.run(a, rest[1:])
		var ue *usageError
		switch {
		case err == nil:
			return exitOK
		case errors.As(err, &ue):
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		case errors.Is(err, errRecords):
			return exitData
		default:
			a.logger.Error("command failed", "command", c.name, "error", err)
			return exitData
		}
	}

	fmt.Fprintf(stderr, "error: unknown command %q\n", rest[0])
	printUsage(stderr, flagSet)
	return exitUsage
}

func printUsage(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage:\n  dxrecur [flags] <command> [command flags] <rule>...\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(w, "  %-9s %s\n", c.name, c.summary)
	}
	fmt.Fprintf(w, "\nFlags:\n")
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
