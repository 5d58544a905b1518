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

// Package match finds the longest substring common to two strings.
//
// The search combines a Rabin-Karp rolling hash with a binary search over
// candidate lengths. For a fixed length L, a probe hashes every window of
// length L in one string and looks up the windows of the other; if a match
// of length L exists then so does a match of every shorter length, so the
// largest length with a match can be found in O(log n) probes. The expected
// running time is O((|s1|+|s2|) log min(|s1|,|s2|)).
//
// Strings are compared as sequences of Unicode code points. Offsets in a
// Match are counted in characters, not bytes.
package match

import (
	"fmt"
	"unicode/utf8"

	"github.com/creachadair/mds/mapset"
	"github.com/creachadair/substr/alphabet"
	"github.com/creachadair/substr/probe"
	"github.com/creachadair/substr/rollhash"
)

// Longest returns the longest substring that occurs in both s1 and s2, or ""
// if they have no character in common. If several distinct substrings have
// the maximum length, Longest returns the one that occurs first in s1.
func Longest(s1, s2 string) string {
	res, err := (*Options)(nil).Search(s1, s2)
	if err != nil {
		panic(err) // the default settings are always valid
	}
	return res.Text
}

// Options provide optional settings for a search. A nil *Options is ready
// for use and provides default values as described.
type Options struct {
	// The hash base and modulus. Zero values use the defaults from the
	// rollhash package.
	Base, Modulus uint64

	// The character encoder for the rolling hash. If nil, uses
	// alphabet.CodePoint. If the encoder implements alphabet.Checker, the
	// inputs are checked before searching. Bytes that are not valid UTF-8
	// are passed to the encoder as values greater than utf8.MaxRune.
	Encoder alphabet.Encoder

	// How hash collisions between reference windows are handled. The default
	// is probe.Exact.
	Mode probe.Mode
}

func (o *Options) hasher() rollhash.Hasher {
	if o == nil {
		return rollhash.Hasher{}
	}
	return rollhash.Hasher{Base: o.Base, Modulus: o.Modulus, Encoder: o.Encoder}
}

func (o *Options) mode() probe.Mode {
	if o == nil {
		return probe.Exact
	}
	return o.Mode
}

// A Match describes a substring common to both inputs of a search.
type Match struct {
	Text  string // the matching text, a substring of both inputs
	Query int    // offset of Text in s1, in characters
	Ref   int    // offset of Text in s2, in characters
}

// Len returns the length of m in characters. Each byte of Text that is not
// part of a valid UTF-8 encoding counts as one character.
func (m Match) Len() int { return utf8.RuneCountInString(m.Text) }

// Stats record how much work a search did.
type Stats struct {
	Probes     int // the number of candidate lengths probed
	Windows    int // the number of windows hashed
	Collisions int // hash hits whose contents were not equal
	Length     int // the length of the match, in characters
}

// A Result is the outcome of a search. If the inputs share no characters,
// the Match is empty.
type Result struct {
	Match
	Stats Stats
}

// Search finds the longest substring common to s1 and s2. In Exact mode the
// result is the leftmost occurrence in s1 among those of maximum length; in
// Overwrite mode the result is a verified common substring, but it may be
// shorter than the longest.
//
// The inputs need not be valid UTF-8. Each byte that is not part of a valid
// encoding is treated as a character of its own, distinct from every rune
// and from every other byte value, so the match is always a byte-for-byte
// substring of both inputs.
//
// Search reports an error only if the hash settings are invalid, or if the
// encoder is an alphabet.Checker and either input has a character it does
// not support.
func (o *Options) Search(s1, s2 string) (*Result, error) {
	h := o.hasher()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if c, ok := h.Encoder.(alphabet.Checker); ok {
		if err := c.Check(s1); err != nil {
			return nil, fmt.Errorf("first input: %w", err)
		}
		if err := c.Check(s2); err != nil {
			return nil, fmt.Errorf("second input: %w", err)
		}
	}

	// The second string is the reference, whose windows populate the table,
	// and the first is the query scanned against it.
	s := &searcher{
		hash: h,
		tab:  probe.NewTable(o.mode()),
		text: s1,
	}
	s.ref, _ = decode(s2)
	s.query, s.offs = decode(s1)

	m := s.longest()
	ps := s.tab.Stats()
	return &Result{Match: m, Stats: Stats{
		Probes:     ps.Probes,
		Windows:    ps.Windows,
		Collisions: ps.Collisions,
		Length:     m.Len(),
	}}, nil
}

// Byte b of an invalid encoding is assigned the code badByte+b, which is
// beyond the range of valid runes.
const badByte = utf8.MaxRune + 1

// decode splits s into character codes. Valid runes are their own codes;
// each byte not part of a valid encoding gets a code of its own above
// utf8.MaxRune. The offsets have one more entry than the codes, giving the
// byte offset in s where each character begins and, last, len(s).
func decode(s string) ([]rune, []int) {
	codes := make([]rune, 0, len(s))
	offs := make([]int, 0, len(s)+1)
	for i := 0; i < len(s); {
		r, n := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && n == 1 {
			r = badByte + rune(s[i])
		}
		codes = append(codes, r)
		offs = append(offs, i)
		i += n
	}
	return codes, append(offs, len(s))
}

type searcher struct {
	hash  rollhash.Hasher
	tab   *probe.Table
	ref   []rune
	query []rune
	text  string // the query text
	offs  []int  // byte offsets of query characters in text
}

// longest runs a binary search over candidate lengths. Invariant: a match of
// length lo has been found (or lo == 0), and none exists of length hi unless
// hi is the initial upper bound.
func (s *searcher) longest() Match {
	if disjoint(s.ref, s.query) {
		return Match{}
	}
	var best Match
	lo, hi := 0, min(len(s.ref), len(s.query))
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if m, ok := s.probe(mid); ok {
			best, lo = m, mid
		} else {
			hi = mid
		}
	}
	if m, ok := s.probe(hi); ok {
		return m
	}
	return best // the match recorded for lo, or empty if lo == 0
}

// probe reports whether the inputs share a substring of length n.
func (s *searcher) probe(n int) (Match, bool) {
	s.tab.Reset()
	hit, ok := s.tab.Probe(s.hash, s.ref, s.query, n)
	if !ok {
		return Match{}, false
	}
	return Match{
		Text:  s.text[s.offs[hit.Query]:s.offs[hit.Query+hit.Len]],
		Query: hit.Query,
		Ref:   hit.Ref,
	}, true
}

// disjoint reports whether a and b have no character in common.
func disjoint(a, b []rune) bool {
	chars := mapset.New(a...)
	for _, r := range b {
		if chars.Has(r) {
			return false
		}
	}
	return true
}
