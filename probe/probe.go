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

// Package probe implements a length probe: for one fixed candidate length,
// it reports whether two character sequences share a common substring of
// exactly that length, using a table of rolling hashes.
//
// Every hash hit is verified by comparing characters, so a reported match is
// always genuine. Depending on the Mode of the table, a genuine match can be
// missed (Overwrite) or not (Exact).
package probe

import (
	"fmt"
	"slices"

	"github.com/creachadair/substr/rollhash"
)

// A Mode selects how a Table handles reference windows that share a hash.
type Mode int

const (
	// Exact keeps every reference offset for a hash, in insertion order, and
	// verifies each in turn. A probe in this mode never misses a match.
	Exact Mode = iota

	// Overwrite keeps only the most recent reference offset for a hash. A
	// match whose reference occurrence was displaced by a later window with
	// the same hash but different contents is missed.
	Overwrite
)

var modeNames = []string{Exact: "exact", Overwrite: "overwrite"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode with the given name. The empty string denotes
// Exact.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return Exact, nil
	}
	if i := slices.Index(modeNames, s); i >= 0 {
		return Mode(i), nil
	}
	return 0, fmt.Errorf("unknown probe mode %q", s)
}

// A Hit records the location of a verified common substring.
type Hit struct {
	Ref   int // offset of the match in the reference
	Query int // offset of the match in the query
	Len   int // length of the match
}

// Stats record counters for the probes run on a Table.
type Stats struct {
	Probes     int // the number of non-degenerate probes
	Windows    int // the number of windows hashed
	Collisions int // hash hits whose contents were not equal
}

// A Table maps rolling hash values to offsets of windows in a reference
// sequence, for a single candidate length.
//
// A Table is not safe for concurrent use. Two searches running concurrently
// must not share a Table.
type Table struct {
	mode  Mode
	slots map[uint64][]int
	stats Stats
}

// NewTable constructs an empty table with the given mode.
func NewTable(mode Mode) *Table {
	return &Table{mode: mode, slots: make(map[uint64][]int)}
}

// Mode returns the mode of t.
func (t *Table) Mode() Mode { return t.mode }

// Reset discards all entries of t. Entries for one length are meaningless for
// any other, so the table must be reset before probing a different length.
// Reset does not clear the stats.
func (t *Table) Reset() { clear(t.slots) }

// Len reports the number of distinct hash values stored in t.
func (t *Table) Len() int { return len(t.slots) }

// Stats returns the counters accumulated by t since it was created.
func (t *Table) Stats() Stats { return t.stats }

func (t *Table) add(v uint64, off int) {
	if t.mode == Overwrite {
		t.slots[v] = append(t.slots[v][:0], off)
	} else {
		t.slots[v] = append(t.slots[v], off)
	}
}

// Probe reports whether ref and query share a substring of exactly n
// characters, hashed by h. If so, it returns the location of the first such
// substring in query, scanning left to right. If n ≤ 0 or n exceeds the
// length of either input, Probe reports no match.
//
// Probe adds the windows of ref to t, and leaves them there.
func (t *Table) Probe(h rollhash.Hasher, ref, query []rune, n int) (Hit, bool) {
	if n <= 0 || n > len(ref) || n > len(query) {
		return Hit{}, false
	}
	t.stats.Probes++
	w := h.Window(n)

	for i := 0; i+n <= len(ref); i++ {
		var v uint64
		if i == 0 {
			v = w.Start(ref)
		} else {
			v = w.Update(ref[i+n-1])
		}
		t.add(v, i)
		t.stats.Windows++
	}

	for j := 0; j+n <= len(query); j++ {
		var v uint64
		if j == 0 {
			v = w.Start(query)
		} else {
			v = w.Update(query[j+n-1])
		}
		t.stats.Windows++

		for _, i := range t.slots[v] {
			if slices.Equal(ref[i:i+n], query[j:j+n]) {
				return Hit{Ref: i, Query: j, Len: n}, true
			}
			t.stats.Collisions++
		}
	}
	return Hit{}, false
}
