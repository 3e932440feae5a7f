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
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"dirpx.dev/dxrecur/dxcore/calendar"
	"gopkg.in/yaml.v3"
)

// Config is the optional YAML file passed with --config:
//
//	log_level: debug
//	timezone: Europe/Berlin
//	occurrences: 10
//	product_id: -//example//budget//EN
//
// Command-line flags override file values.
type Config struct {
	LogLevel    string `yaml:"log_level"`
	Timezone    string `yaml:"timezone"`
	Occurrences int    `yaml:"occurrences"`
	ProductID   string `yaml:"product_id"`
}

func defaultConfig() Config {
	return Config{
		LogLevel:    "info",
		Timezone:    "UTC",
		Occurrences: 5,
		ProductID:   calendar.DefaultProductID,
	}
}

// loadConfig reads path over the defaults. Unknown keys are rejected.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("cannot read config %s: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if _, err := c.level(); err != nil {
		return err
	}
	if _, err := c.location(); err != nil {
		return err
	}
	if c.Occurrences < 1 {
		return fmt.Errorf("occurrences must be at least 1, got %d", c.Occurrences)
	}
	return nil
}

func (c Config) level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return l, fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return l, nil
}

func (c Config) location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
