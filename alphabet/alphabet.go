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

// Package alphabet defines the mapping from characters to the integer
// identifiers used by the rolling hash.
//
// The default encoder, CodePoint, uses the Unicode code point of each
// character. Callers whose inputs are drawn from a small known alphabet can
// use an Alphabet instead, which assigns each character a dense identifier in
// [0, k). The choice of encoder affects the magnitude of intermediate hash
// values but never the correctness of a match, since every hash hit is
// verified by comparing characters.
package alphabet

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// An Encoder maps a character to a non-negative integer identifier. The
// identifier for a given character must not change during a search.
type Encoder interface {
	Encode(r rune) uint64
}

// A Checker is an Encoder that can report whether a string is drawn entirely
// from the characters it supports.
type Checker interface {
	Encoder

	// Check reports an error for the first character of s that the encoder
	// does not support, or nil if all characters are supported.
	Check(s string) error
}

// Func adapts a function to the Encoder interface.
type Func func(rune) uint64

// Encode implements the Encoder interface.
func (f Func) Encode(r rune) uint64 { return f(r) }

// CodePoint is the default Encoder. It returns the code point of r.
var CodePoint Encoder = Func(func(r rune) uint64 { return uint64(r) })

var (
	// ErrEmpty is reported by New for an alphabet with no characters.
	ErrEmpty = errors.New("empty alphabet")

	// ErrDuplicate is reported by New when a character is listed twice.
	ErrDuplicate = errors.New("duplicate character")
)

// An Alphabet is an Encoder over a fixed set of characters. The characters
// are assigned identifiers 0, 1, ..., k-1 in the order they were given to
// New. Characters outside the alphabet all encode to k.
type Alphabet struct {
	name string
	ids  map[rune]uint64
}

// New constructs an Alphabet with the given name over the characters of
// chars. It reports an error if chars is empty, is not valid UTF-8, or
// contains the same character more than once.
func New(name, chars string) (*Alphabet, error) {
	if chars == "" {
		return nil, ErrEmpty
	} else if !utf8.ValidString(chars) {
		return nil, fmt.Errorf("alphabet %q: invalid UTF-8", name)
	}
	a := &Alphabet{name: name, ids: make(map[rune]uint64)}
	for _, r := range chars {
		if _, ok := a.ids[r]; ok {
			return nil, fmt.Errorf("alphabet %q: %w %q", name, ErrDuplicate, r)
		}
		a.ids[r] = uint64(len(a.ids))
	}
	return a, nil
}

// MustNew is as New, but panics if the alphabet is invalid.
func MustNew(name, chars string) *Alphabet {
	a, err := New(name, chars)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the name of the alphabet.
func (a *Alphabet) Name() string { return a.name }

// Len returns the number of characters in the alphabet.
func (a *Alphabet) Len() int { return len(a.ids) }

// Contains reports whether r is a member of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.ids[r]
	return ok
}

// Encode implements the Encoder interface. A character not in the alphabet
// encodes to a.Len().
func (a *Alphabet) Encode(r rune) uint64 {
	if id, ok := a.ids[r]; ok {
		return id
	}
	return uint64(len(a.ids))
}

// Check implements the Checker interface. If s contains a character outside
// the alphabet, the concrete type of the error is *RuneError.
func (a *Alphabet) Check(s string) error {
	for i, r := range []rune(s) {
		if !a.Contains(r) {
			return &RuneError{Alphabet: a.name, Offset: i, Rune: r}
		}
	}
	return nil
}

// RuneError is the concrete type of errors reported by Alphabet.Check.
type RuneError struct {
	Alphabet string // the name of the alphabet
	Offset   int    // the offset of the character, in runes
	Rune     rune   // the offending character
}

// Error satisfies the error interface.
func (e *RuneError) Error() string {
	return fmt.Sprintf("character %q at offset %d is not in alphabet %q", e.Rune, e.Offset, e.Alphabet)
}

// Predefined alphabets.
var (
	Nucleotides = MustNew("dna", "ACGT")
	Digits      = MustNew("digits", "0123456789")
	Lower       = MustNew("lower", "abcdefghijklmnopqrstuvwxyz")
	Letters     = MustNew("letters", "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ")
)

// Lookup returns the Encoder with the given name. The names "" and "unicode"
// denote CodePoint; the others are the names of the predefined alphabets.
func Lookup(name string) (Encoder, error) {
	switch name {
	case "", "unicode":
		return CodePoint, nil
	}
	for _, a := range []*Alphabet{Nucleotides, Digits, Lower, Letters} {
		if a.name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("unknown alphabet %q", name)
}
