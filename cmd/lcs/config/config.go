// Copyright 2026 Michael J. Fromberger. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines the configuration settings shared by the
// subcommands of the lcs command-line tool.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/creachadair/substr/alphabet"
	"github.com/creachadair/substr/match"
	"github.com/creachadair/substr/probe"
	yaml "gopkg.in/yaml.v3"
)

// Settings represents the stored configuration settings for the lcs tool.
type Settings struct {
	// The name of the character alphabet: "unicode" (default), "dna",
	// "digits", "lower", or "letters".
	Alphabet string `json:"alphabet,omitempty" yaml:"alphabet"`

	// How hash collisions are handled: "exact" (default) or "overwrite".
	Mode string `json:"mode,omitempty" yaml:"mode"`

	// Rolling hash parameters. Zero values select the library defaults.
	Base    uint64 `json:"base,omitempty" yaml:"base"`
	Modulus uint64 `json:"modulus,omitempty" yaml:"modulus"`

	// The maximum number of searches to run concurrently in a batch.
	// Values ≤ 0 mean 1 per CPU.
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency"`
}

// Options returns search options corresponding to the settings in s.
// It reports an error if the alphabet or mode is not recognized.
func (s *Settings) Options() (*match.Options, error) {
	enc, err := alphabet.Lookup(s.Alphabet)
	if err != nil {
		return nil, err
	}
	mode, err := probe.ParseMode(s.Mode)
	if err != nil {
		return nil, err
	}
	return &match.Options{
		Base:    s.Base,
		Modulus: s.Modulus,
		Encoder: enc,
		Mode:    mode,
	}, nil
}

// ExpandString calls os.ExpandEnv to expand environment variables in *s.
// The value of *s is replaced.
func ExpandString(s *string) { *s = os.ExpandEnv(*s) }

// Load reads and parses the contents of a config file from path.  If the
// specified path does not exist, an empty config is returned without error.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return new(Settings), nil
	} else if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	cfg := new(Settings)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// ToJSON converts a value to indented JSON.
func ToJSON(msg any) string {
	bits, err := json.Marshal(msg)
	if err != nil {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, bits, "", "  "); err != nil {
		return "null"
	}
	return buf.String()
}
