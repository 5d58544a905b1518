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

package probe_test

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/creachadair/substr/probe"
	"github.com/creachadair/substr/rollhash"
	"github.com/google/go-cmp/cmp"
)

func TestDegenerate(t *testing.T) {
	tab := probe.NewTable(probe.Exact)
	ref, query := []rune("abc"), []rune("abcd")
	for _, n := range []int{-1, 0, 4, 5} {
		if hit, ok := tab.Probe(rollhash.Hasher{}, ref, query, n); ok {
			t.Errorf("Probe(n=%d): got %+v, want no match", n, hit)
		}
	}
	if got := tab.Stats(); got != (probe.Stats{}) {
		t.Errorf("Stats after degenerate probes: got %+v, want zero", got)
	}
}

func TestProbe(t *testing.T) {
	tests := []struct {
		ref, query string
		n          int
		want       probe.Hit
		ok         bool
	}{
		{"abcdef", "zcdeq", 3, probe.Hit{Ref: 2, Query: 1, Len: 3}, true},
		{"abcdef", "zcdeq", 4, probe.Hit{}, false},
		{"abcdef", "zcdeq", 1, probe.Hit{Ref: 2, Query: 1, Len: 1}, true},
		{"abc", "xyz", 1, probe.Hit{}, false},
		{"ananas", "banana", 5, probe.Hit{Ref: 0, Query: 1, Len: 5}, true},
		{"aa", "aaaa", 2, probe.Hit{Ref: 0, Query: 0, Len: 2}, true},
		{"xxabyyab", "ab", 2, probe.Hit{Ref: 2, Query: 0, Len: 2}, true},
		{"日本語のテキスト", "テキスト処理", 4, probe.Hit{Ref: 4, Query: 0, Len: 4}, true},
	}
	for _, mode := range []probe.Mode{probe.Exact, probe.Overwrite} {
		for _, test := range tests {
			tab := probe.NewTable(mode)
			got, ok := tab.Probe(rollhash.Hasher{}, []rune(test.ref), []rune(test.query), test.n)
			if ok != test.ok {
				t.Errorf("%v Probe(%q, %q, %d): got ok=%v, want %v", mode, test.ref, test.query, test.n, ok, test.ok)
			}
			if mode == probe.Overwrite && ok {
				// The most recent occurrence in the reference wins.
				continue
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("%v Probe(%q, %q, %d) (-want, +got):\n%s", mode, test.ref, test.query, test.n, diff)
			}
		}
	}
}

func TestOverwriteMisses(t *testing.T) {
	// With modulus 3, 'a' (97) and 'd' (100) collide. In Overwrite mode the
	// later 'd' displaces the 'a', and the genuine match is lost.
	h := rollhash.Hasher{Base: 2, Modulus: 3}
	ref, query := []rune("ad"), []rune("a")

	exact := probe.NewTable(probe.Exact)
	if hit, ok := exact.Probe(h, ref, query, 1); !ok || hit != (probe.Hit{Ref: 0, Query: 0, Len: 1}) {
		t.Errorf("Exact: got %+v, %v; want match at 0", hit, ok)
	}
	if got := exact.Stats().Collisions; got != 0 {
		t.Errorf("Exact collisions: got %d, want 0", got)
	}

	over := probe.NewTable(probe.Overwrite)
	if hit, ok := over.Probe(h, ref, query, 1); ok {
		t.Errorf("Overwrite: got %+v, want no match", hit)
	}
	if got := over.Stats().Collisions; got != 1 {
		t.Errorf("Overwrite collisions: got %d, want 1", got)
	}
	if got := over.Len(); got != 1 {
		t.Errorf("Overwrite Len: got %d, want 1", got)
	}
}

func TestReset(t *testing.T) {
	tab := probe.NewTable(probe.Exact)
	tab.Probe(rollhash.Hasher{}, []rune("abcdefgh"), []rune("zzz"), 3)
	if tab.Len() == 0 {
		t.Fatal("Len after probe: got 0, want > 0")
	}
	tab.Reset()
	if got := tab.Len(); got != 0 {
		t.Errorf("Len after Reset: got %d, want 0", got)
	}
	want := probe.Stats{Probes: 1, Windows: 6 + 1}
	if diff := cmp.Diff(want, tab.Stats()); diff != "" {
		t.Errorf("Stats (-want, +got):\n%s", diff)
	}
}

func TestExactAgreesWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	gen := func(n int) []rune {
		var sb strings.Builder
		for range n {
			sb.WriteByte("abcd"[rng.IntN(4)])
		}
		return []rune(sb.String())
	}
	// A tiny modulus forces many collisions between unequal windows.
	hashers := []rollhash.Hasher{{}, {Base: 2, Modulus: 3}, {Base: 5, Modulus: 7}}
	for range 200 {
		ref, query := gen(rng.IntN(20)), gen(rng.IntN(20))
		for _, h := range hashers {
			for n := 1; n <= min(len(ref), len(query)); n++ {
				hit, ok := probe.NewTable(probe.Exact).Probe(h, ref, query, n)
				want := bruteFirst(ref, query, n)
				if ok != (want >= 0) {
					t.Fatalf("Probe(%q, %q, %d): got ok=%v, want %v", string(ref), string(query), n, ok, want >= 0)
				}
				if !ok {
					continue
				}
				if hit.Query != want {
					t.Errorf("Probe(%q, %q, %d): query offset %d, want %d", string(ref), string(query), n, hit.Query, want)
				}
				if a, b := string(ref[hit.Ref:hit.Ref+n]), string(query[hit.Query:hit.Query+n]); a != b {
					t.Errorf("Probe(%q, %q, %d): unverified match %q vs %q", string(ref), string(query), n, a, b)
				}
			}
		}
	}
}

// bruteFirst returns the offset of the first length-n window of query that
// occurs in ref, or -1.
func bruteFirst(ref, query []rune, n int) int {
	r := string(ref)
	for j := 0; j+n <= len(query); j++ {
		if strings.Contains(r, string(query[j:j+n])) {
			return j
		}
	}
	return -1
}

func TestParseMode(t *testing.T) {
	for _, m := range []probe.Mode{probe.Exact, probe.Overwrite} {
		got, err := probe.ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q): got %v, %v; want %v", m.String(), got, err, m)
		}
	}
	if got, err := probe.ParseMode(""); err != nil || got != probe.Exact {
		t.Errorf("ParseMode(\"\"): got %v, %v; want exact", got, err)
	}
	if _, err := probe.ParseMode("fuzzy"); err == nil {
		t.Error("ParseMode(fuzzy): got nil, want error")
	}
	if got := probe.Mode(9).String(); got != "Mode(9)" {
		t.Errorf("String: got %q, want Mode(9)", got)
	}
}
