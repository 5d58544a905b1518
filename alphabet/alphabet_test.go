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

package alphabet_test

import (
	"errors"
	"testing"

	"github.com/creachadair/substr/alphabet"
	"github.com/google/go-cmp/cmp"
)

func TestCodePoint(t *testing.T) {
	for _, r := range "aZ0\x00é世🙂" {
		if got := alphabet.CodePoint.Encode(r); got != uint64(r) {
			t.Errorf("Encode(%q): got %d, want %d", r, got, r)
		}
	}
}

func TestAlphabet(t *testing.T) {
	a := alphabet.MustNew("test", "xyzé")
	if got, want := a.Len(), 4; got != want {
		t.Errorf("Len: got %d, want %d", got, want)
	}
	if got := a.Name(); got != "test" {
		t.Errorf("Name: got %q, want test", got)
	}

	var got []uint64
	for _, r := range "éxyzq" {
		got = append(got, a.Encode(r))
	}
	if diff := cmp.Diff([]uint64{3, 0, 1, 2, 4}, got); diff != "" {
		t.Errorf("Encode (-want, +got):\n%s", diff)
	}
	if !a.Contains('é') || a.Contains('q') {
		t.Error("Contains: wrong membership")
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := alphabet.New("none", ""); !errors.Is(err, alphabet.ErrEmpty) {
		t.Errorf("New empty: got %v, want %v", err, alphabet.ErrEmpty)
	}
	if _, err := alphabet.New("dup", "abca"); !errors.Is(err, alphabet.ErrDuplicate) {
		t.Errorf("New duplicate: got %v, want %v", err, alphabet.ErrDuplicate)
	}
	if _, err := alphabet.New("bad", "a\xffb"); err == nil {
		t.Error("New invalid UTF-8: got nil, want error")
	}
}

func TestCheck(t *testing.T) {
	if err := alphabet.Nucleotides.Check("GATTACA"); err != nil {
		t.Errorf("Check(GATTACA): unexpected error: %v", err)
	}
	err := alphabet.Nucleotides.Check("GATTäCA")
	var re *alphabet.RuneError
	if !errors.As(err, &re) {
		t.Fatalf("Check(GATTäCA): got %v, want *RuneError", err)
	}
	want := &alphabet.RuneError{Alphabet: "dna", Offset: 4, Rune: 'ä'}
	if diff := cmp.Diff(want, re); diff != "" {
		t.Errorf("RuneError (-want, +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want alphabet.Encoder
	}{
		{"", alphabet.CodePoint},
		{"unicode", alphabet.CodePoint},
		{"dna", alphabet.Nucleotides},
		{"digits", alphabet.Digits},
		{"lower", alphabet.Lower},
		{"letters", alphabet.Letters},
	}
	for _, test := range tests {
		got, err := alphabet.Lookup(test.name)
		if err != nil {
			t.Errorf("Lookup(%q): unexpected error: %v", test.name, err)
			continue
		}
		// Func values are not comparable; compare by behaviour.
		for _, r := range "AC9z" {
			if g, w := got.Encode(r), test.want.Encode(r); g != w {
				t.Errorf("Lookup(%q).Encode(%q): got %d, want %d", test.name, r, g, w)
			}
		}
	}
	if _, err := alphabet.Lookup("klingon"); err == nil {
		t.Error("Lookup(klingon): got nil, want error")
	}
}
