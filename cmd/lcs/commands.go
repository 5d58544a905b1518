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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/creachadair/atomicfile"
	"github.com/creachadair/command"
	"github.com/creachadair/substr/cmd/lcs/config"
	"github.com/creachadair/substr/match"
	"github.com/creachadair/taskgroup"
	"github.com/golang/snappy"
)

var matchFlags struct {
	JSON   bool
	Output string
}

var batchFlags struct {
	Jobs int
	JSON bool
}

// report is the JSON form of a search result.
type report struct {
	A          string `json:"a,omitempty"`
	B          string `json:"b,omitempty"`
	Match      string `json:"match"`
	Query      int    `json:"query"`
	Ref        int    `json:"ref"`
	Length     int    `json:"length"`
	Probes     int    `json:"probes"`
	Collisions int    `json:"collisions"`
}

func newReport(a, b string, res *match.Result) report {
	return report{
		A:          a,
		B:          b,
		Match:      res.Text,
		Query:      res.Query,
		Ref:        res.Ref,
		Length:     res.Len(),
		Probes:     res.Stats.Probes,
		Collisions: res.Stats.Collisions,
	}
}

func runMatch(env *command.Env, args []string) error {
	if len(args) != 2 {
		return errors.New("usage is: match <a> <b>")
	}
	s := getSettings(env)
	a, err := readInput(args[0])
	if err != nil {
		return err
	}
	b, err := readInput(args[1])
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := s.Search.Search(a, b)
	if err != nil {
		return err
	}
	debug("Searched %d × %d runes: %d probes, %d collisions [%v elapsed]",
		utf8.RuneCountInString(a), utf8.RuneCountInString(b),
		res.Stats.Probes, res.Stats.Collisions, time.Since(start).Truncate(time.Microsecond))

	var out string
	if matchFlags.JSON {
		out = config.ToJSON(newReport("", "", res)) + "\n"
	} else {
		out = res.Text + "\n"
	}
	if matchFlags.Output != "" {
		return atomicfile.WriteData(matchFlags.Output, []byte(out), 0644)
	}
	_, err = io.WriteString(os.Stdout, out)
	return err
}

func runBatch(env *command.Env, args []string) error {
	if len(args) != 1 {
		return errors.New("usage is: batch <manifest>")
	}
	s := getSettings(env)
	pairs, err := loadManifest(args[0])
	if err != nil {
		return err
	}
	jobs := batchFlags.Jobs
	if jobs <= 0 {
		jobs = s.Concurrency
	}

	start := time.Now()
	results, err := searchPairs(s.Context, s.Search, pairs, jobs)
	if err != nil {
		return err
	}
	debug("Searched %d pairs [%v elapsed]", len(pairs), time.Since(start).Truncate(time.Millisecond))

	if batchFlags.JSON {
		rs := make([]report, len(pairs))
		for i, p := range pairs {
			rs[i] = newReport(p.A, p.B, results[i])
		}
		fmt.Println(config.ToJSON(rs))
		return nil
	}
	for i, p := range pairs {
		fmt.Printf("%s\t%s\t%d\t%q\n", p.A, p.B, results[i].Len(), results[i].Text)
	}
	return nil
}

// A pair names two inputs to compare.
type pair struct {
	Line int    // manifest line number, 1-based
	A, B string // input names, as accepted by readInput
}

// loadManifest reads the manifest at path, or stdin if path is "-".
func loadManifest(path string) ([]pair, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return parseManifest(r)
}

// parseManifest parses lines of the form "a b", skipping blank lines and
// comments beginning with "#".
func parseManifest(r io.Reader) ([]pair, error) {
	var pairs []pair
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fs := strings.Fields(line)
		if len(fs) != 2 {
			return nil, fmt.Errorf("line %d: got %d fields, want 2", ln, len(fs))
		}
		pairs = append(pairs, pair{Line: ln, A: fs[0], B: fs[1]})
	}
	return pairs, sc.Err()
}

// searchPairs searches each pair of inputs, running up to jobs searches
// concurrently. Each search uses its own collision table. If jobs ≤ 0, it
// runs one search per CPU.
func searchPairs(ctx context.Context, opts *match.Options, pairs []pair, jobs int) ([]*match.Result, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make([]*match.Result, len(pairs))
	g, run := taskgroup.New(cancel).Limit(jobs)
	for i, p := range pairs {
		run(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := readInput(p.A)
			if err != nil {
				return fmt.Errorf("line %d: %w", p.Line, err)
			}
			b, err := readInput(p.B)
			if err != nil {
				return fmt.Errorf("line %d: %w", p.Line, err)
			}
			res, err := opts.Search(a, b)
			if err != nil {
				return fmt.Errorf("line %d: %w", p.Line, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readInput returns the text denoted by name. If name is "-" it reads stdin;
// if name begins with "@" the rest of name is the text. Otherwise name is a
// file path, and files ending in ".sz" are decoded as snappy framed streams.
// The text must be valid UTF-8.
func readInput(name string) (string, error) {
	if text, ok := strings.CutPrefix(name, "@"); ok {
		return checkText(name, text)
	}
	var data []byte
	var err error
	if name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = readFile(name)
	}
	if err != nil {
		return "", err
	}
	return checkText(name, string(data))
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if strings.HasSuffix(path, ".sz") {
		data, err := io.ReadAll(snappy.NewReader(f))
		if err != nil {
			return nil, fmt.Errorf("decompressing %q: %w", path, err)
		}
		return data, nil
	}
	return io.ReadAll(f)
}

func checkText(name, text string) (string, error) {
	if !utf8.ValidString(text) {
		return "", fmt.Errorf("input %q is not valid UTF-8", name)
	}
	return text, nil
}
