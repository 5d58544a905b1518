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

// Program lcs finds the longest substring common to two inputs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/creachadair/command"
	"github.com/creachadair/substr/cmd/lcs/config"
	"github.com/creachadair/substr/match"
)

var (
	configPath = "$HOME/.config/lcs/config.yml"
	alphaName  string
	modeName   string
	debugLog   bool
)

// settings is the value of env.Config for all subcommands.
type settings struct {
	Context context.Context
	*config.Settings
	Search *match.Options
}

func getSettings(env *command.Env) *settings { return env.Config.(*settings) }

func debug(msg string, args ...any) {
	if debugLog {
		log.Printf("DEBUG :: "+msg, args...)
	}
}

func main() {
	root := &command.C{
		Name: filepath.Base(os.Args[0]),
		Usage: `<command> [arguments]
help [<command>]`,
		Help: `Find the longest substring common to two inputs.

Each input argument names a file to read, or "-" for stdin.
If the argument begins with "@", the rest of it is the literal input text.
Files whose names end in ".sz" are decompressed as snappy framed streams.

The LCS_CONFIG environment variable, if set, overrides the default
configuration file path.`,

		SetFlags: func(env *command.Env, fs *flag.FlagSet) {
			if cf, ok := os.LookupEnv("LCS_CONFIG"); ok && cf != "" {
				configPath = cf
			}
			fs.StringVar(&configPath, "config", configPath, "Configuration file path")
			fs.StringVar(&alphaName, "alphabet", "", "Character alphabet (overrides config)")
			fs.StringVar(&modeName, "mode", "", "Collision mode, exact or overwrite (overrides config)")
			fs.BoolVar(&debugLog, "debug", false, "Enable debug logging")
		},

		Init: func(env *command.Env) error {
			config.ExpandString(&configPath)
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if alphaName != "" {
				cfg.Alphabet = alphaName
			}
			if modeName != "" {
				cfg.Mode = modeName
			}
			opts, err := cfg.Options()
			if err != nil {
				return err
			}
			debug("Loaded config from %q: %+v", configPath, *cfg)
			env.Config = &settings{
				Context:  context.Background(),
				Settings: cfg,
				Search:   opts,
			}
			return nil
		},

		Commands: []*command.C{
			{
				Name:  "match",
				Usage: "match [-json] [-o path] <a> <b>",
				Help:  "Print the longest substring common to inputs a and b.",

				SetFlags: func(env *command.Env, fs *flag.FlagSet) {
					fs.BoolVar(&matchFlags.JSON, "json", false, "Print a JSON report")
					fs.StringVar(&matchFlags.Output, "o", "", "Write output to this file instead of stdout")
				},
				Run: runMatch,
			},
			{
				Name:  "batch",
				Usage: "batch [-j N] [-json] <manifest>",
				Help: `Search every pair of inputs listed in a manifest.

Each non-blank line of the manifest names two inputs separated by
whitespace. Lines beginning with "#" are ignored. Pairs are searched
concurrently; results are printed in manifest order.`,

				SetFlags: func(env *command.Env, fs *flag.FlagSet) {
					fs.IntVar(&batchFlags.Jobs, "j", 0, "Maximum concurrent searches (overrides config)")
					fs.BoolVar(&batchFlags.JSON, "json", false, "Print a JSON report")
				},
				Run: runBatch,
			},
			command.HelpCommand(nil),
		},
	}
	command.RunOrFail(root.NewEnv(nil), os.Args[1:])
}
