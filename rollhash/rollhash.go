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

// Package rollhash implements a Rabin-Karp polynomial rolling hash over
// windows of characters.
//
// The hash of a window w of n characters is
//
//	H(w) = Σ enc(w[i]) * base^(n-1-i)  (mod m)
//
// where enc is the character encoder. When the window slides right by one
// character, the new hash can be computed from the old one in constant time
// without rereading the window.
//
// Hash values are only comparable when they were computed with the same
// base, modulus, encoder, and window length.
package rollhash

import (
	"errors"
	"fmt"

	"github.com/creachadair/substr/alphabet"
)

// These values are the defaults used if a Hasher field is zero.
const (
	// DefaultBase is the default multiplier for each character position.
	DefaultBase = 1031

	// DefaultModulus is the default modulus. It is prime.
	DefaultModulus = 2147483659

	// MaxModulus is the largest permitted modulus. Below this bound the
	// product of any two reduced values fits in a uint64.
	MaxModulus = 1 << 32
)

// ErrParams is reported by Validate for unusable hash parameters.
var ErrParams = errors.New("invalid hash parameters")

// A Hasher carries the settings for a rolling hash. A zero Hasher is ready
// for use and uses the default base, modulus, and encoder.
//
// The modulus should be prime and coprime to the base, but note that this
// is not checked.
type Hasher struct {
	Base    uint64           // if zero, use DefaultBase
	Modulus uint64           // if zero, use DefaultModulus
	Encoder alphabet.Encoder // if nil, use alphabet.CodePoint
}

func (h Hasher) base() uint64 {
	if h.Base == 0 {
		return DefaultBase
	}
	return h.Base
}

func (h Hasher) mod() uint64 {
	if h.Modulus == 0 {
		return DefaultModulus
	}
	return h.Modulus
}

func (h Hasher) encoder() alphabet.Encoder {
	if h.Encoder == nil {
		return alphabet.CodePoint
	}
	return h.Encoder
}

// Validate reports an error wrapping ErrParams if the settings of h cannot
// be used to compute hashes without overflow.
func (h Hasher) Validate() error {
	b, m := h.base(), h.mod()
	switch {
	case b < 2:
		return fmt.Errorf("%w: base %d < 2", ErrParams, b)
	case m <= b:
		return fmt.Errorf("%w: modulus %d <= base %d", ErrParams, m, b)
	case m > MaxModulus:
		return fmt.Errorf("%w: modulus %d > %d", ErrParams, m, uint64(MaxModulus))
	}
	return nil
}

// code returns the encoding of r reduced modulo m.
func (h Hasher) code(r rune) uint64 { return h.encoder().Encode(r) % h.mod() }

// Initial computes the hash of window directly, without rolling.
func (h Hasher) Initial(window []rune) uint64 {
	b, m := h.base(), h.mod()
	var s uint64
	for _, r := range window {
		s = (s*b%m + h.code(r)) % m
	}
	return s
}

// Roll returns the hash of the window of n characters obtained by removing
// out from the left and appending in on the right of the window whose hash
// is prev.
//
// The result is meaningful only if prev is the hash of the immediately
// preceding window, computed by h with the same n. Nothing checks this.
func (h Hasher) Roll(prev uint64, in, out rune, n int) uint64 {
	return h.roll(prev, h.code(in), h.code(out), h.Pow(n))
}

// roll computes (prev*base + in - out*shift) mod m, pinned to [0, m).
// The arguments must already be reduced modulo m.
func (h Hasher) roll(prev, in, out, shift uint64) uint64 {
	b, m := h.base(), h.mod()
	s := (prev*b%m + in) % m
	return (s + m - out*shift%m) % m
}

// Pow returns base**e modulo m.
func (h Hasher) Pow(e int) uint64 { return exptmod(h.base(), uint64(e), h.mod()) }

// Window returns a fresh rolling window of n characters using the settings
// from h. Windows are independent and each may be used by one goroutine.
// Window will panic if n ≤ 0.
func (h Hasher) Window(n int) *Window {
	if n <= 0 {
		panic("rollhash: window size must be positive")
	}
	return &Window{
		Hasher: h,
		shift:  h.Pow(n),
		buf:    make([]uint64, n),
	}
}

// A Window is a rolling hash over the most recent n characters added to it.
// The window keeps its own copy of the characters it covers, so the
// character leaving the window is never supplied by the caller.
type Window struct {
	Hasher // base settings

	hash  uint64   // current hash value
	shift uint64   // base^n, for removing the oldest character
	buf   []uint64 // encoded window contents (ring)
	next  int      // offset in buf of the oldest character
}

// Reset restores w to its initial state, as if filled with zero codes.
func (w *Window) Reset() {
	w.hash = 0
	w.next = 0
	clear(w.buf)
}

// Start loads the window with the first Size() characters of s, which must
// have at least that many, and returns their hash as computed by Initial.
func (w *Window) Start(s []rune) uint64 {
	s = s[:len(w.buf)]
	for i, r := range s {
		w.buf[i] = w.code(r)
	}
	w.next = 0
	w.hash = w.Initial(s)
	return w.hash
}

// Update shifts r into the window, displacing the oldest character, and
// returns the updated hash value.
func (w *Window) Update(r rune) uint64 {
	in := w.code(r)
	out := w.buf[w.next]
	w.buf[w.next] = in
	w.next = (w.next + 1) % len(w.buf)
	w.hash = w.roll(w.hash, in, out, w.shift)
	return w.hash
}

// Sum returns the current hash value of w.
func (w *Window) Sum() uint64 { return w.hash }

// Size returns the number of characters covered by w.
func (w *Window) Size() int { return len(w.buf) }

// exptmod(b, e, m) computes b**e modulo m.
func exptmod(b, e, m uint64) uint64 {
	s := uint64(1) % m
	b %= m
	for e != 0 {
		if e&1 == 1 {
			s = (s * b) % m
		}
		b = (b * b) % m
		e >>= 1
	}
	return s
}
