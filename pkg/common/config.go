// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package common holds the configuration shared by the emberlord commands.
package common

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"laptudirm.com/x/emberlord/pkg/engine"
	"laptudirm.com/x/emberlord/pkg/match"
)

//go:embed config.yaml
var DefaultConfigFile []byte

type Config struct {
	FirstMover  string `yaml:"first-mover"`
	TurnTime    string `yaml:"turn-time"`
	PenaltySeed int64  `yaml:"penalty-seed"`
	Color       bool   `yaml:"color"`

	Book         string `yaml:"book"`
	BookStrategy string `yaml:"book-strategy"`
}

// EnvPrefix is the prefix of the environment variables which override the
// configuration file.
const EnvPrefix = "EMBERLORD_"

// Load reads the configuration file of the given directory, creating it
// first if it does not exist, and applies the environment overrides. A
// .env file in the working directory is read into the environment.
func Load(dir string) (*Config, error) {
	if err := LoadEnv(".env"); err != nil {
		return nil, err
	}

	return LoadFrom(dir)
}

// LoadEnv reads the given .env files into the environment. Missing files
// are skipped and variables which are already set are left alone.
func LoadEnv(files ...string) error {
	for _, file := range files {
		err := godotenv.Load(file)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue
		case err != nil:
			return fmt.Errorf("config: %s: %w", file, err)
		}

		logrus.WithField("file", file).Debug("config: environment loaded")
	}

	return nil
}

// LoadFrom reads the config.yaml file of the given directory, creating it
// from the default configuration if needed, and applies the environment
// overrides.
func LoadFrom(dir string) (*Config, error) {
	if err := TryMkdir(dir); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	file := filepath.Join(dir, "config.yaml")
	if err := TryCreate(file, DefaultConfigFile); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", file, err)
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	logrus.WithField("file", file).Trace("config: loaded")
	return config, nil
}

// Parse parses a configuration file on top of the default configuration,
// so keys missing from data keep their default values.
func Parse(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(DefaultConfigFile, &config); err != nil {
		panic("default config: " + err.Error())
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	return &config, nil
}

func (config *Config) applyEnv(lookup func(string) (string, bool)) error {
	if value, found := lookup(EnvPrefix + "FIRST_MOVER"); found {
		config.FirstMover = value
	}

	if value, found := lookup(EnvPrefix + "TURN_TIME"); found {
		config.TurnTime = value
	}

	if value, found := lookup(EnvPrefix + "PENALTY_SEED"); found {
		seed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("%sPENALTY_SEED: %w", EnvPrefix, err)
		}
		config.PenaltySeed = seed
	}

	if value, found := lookup(EnvPrefix + "COLOR"); found {
		color, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%sCOLOR: %w", EnvPrefix, err)
		}
		config.Color = color
	}

	if value, found := lookup(EnvPrefix + "BOOK"); found {
		config.Book = value
	}

	if value, found := lookup(EnvPrefix + "BOOK_STRATEGY"); found {
		config.BookStrategy = value
	}

	return nil
}

// Validate checks that every value of the configuration can be used.
func (config *Config) Validate() error {
	if _, err := config.Rules(); err != nil {
		return err
	}

	if _, err := config.TimeControl(); err != nil {
		return err
	}

	switch config.BookStrategy {
	case "sequential", "random":
		return nil
	default:
		return fmt.Errorf("book-strategy: unknown strategy %q", config.BookStrategy)
	}
}

// Rules returns the game rules the configuration asks for.
func (config *Config) Rules() (engine.Rules, error) {
	side, err := engine.ParseSide(config.FirstMover)
	if err != nil {
		return engine.Rules{}, fmt.Errorf("first-mover: %w", err)
	}

	return engine.Rules{FirstMover: side}, nil
}

// TimeControl returns the configured time control, nil for untimed games.
func (config *Config) TimeControl() (*match.TimeControl, error) {
	if config.TurnTime == "" {
		return nil, nil
	}

	tc, err := match.ParseTime(config.TurnTime)
	if err != nil {
		return nil, fmt.Errorf("turn-time: %w", err)
	}

	return &tc, nil
}

// Dump returns the configuration in the configuration file format.
func (config *Config) Dump() ([]byte, error) {
	return yaml.Marshal(config)
}
