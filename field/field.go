// Copyright 2026 Google LLC. All Rights Reserved.
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

// Package field implements arithmetic in prime fields GF(p).
//
// Elements are represented as *big.Int values in [0, p). Operations never
// modify their arguments and always return a freshly allocated result.
package field

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// ErrNotInvertible is returned by Inv for the zero element.
var ErrNotInvertible = errors.New("field: zero has no multiplicative inverse")

// ID names one of the predefined fields.
type ID int

const (
	// UnknownField is the zero value and names no field.
	UnknownField ID = iota
	// Mersenne127 is GF(2^127 - 1). It embeds any 64-bit secret.
	Mersenne127
	// Prime256 is GF(2^256 - 189), the largest prime below 2^256.
	Prime256
)

var idNames = map[ID]string{
	Mersenne127: "MERSENNE_127",
	Prime256:    "PRIME_256",
}

func (id ID) String() string {
	if n, ok := idNames[id]; ok {
		return n
	}
	return fmt.Sprintf("ID(%d)", int(id))
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	n, ok := idNames[id]
	if !ok {
		return nil, fmt.Errorf("field: cannot marshal %v", id)
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	for k, n := range idNames {
		if strings.EqualFold(n, string(text)) {
			*id = k
			return nil
		}
	}
	return fmt.Errorf("field: unknown field %q", text)
}

var (
	mersenne127 = mustNew(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1)))
	prime256    = mustNew(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(189)))
)

// ByID returns the predefined field with the given ID.
func ByID(id ID) (*Field, error) {
	switch id {
	case Mersenne127:
		return mersenne127, nil
	case Prime256:
		return prime256, nil
	}
	return nil, fmt.Errorf("field: unknown field %v", id)
}

// Default returns GF(2^127 - 1).
func Default() *Field {
	return mersenne127
}

// Field is a prime field. It is immutable and safe for concurrent use.
type Field struct {
	p *big.Int
	// maxIndex is p-1, the number of nonzero elements.
	maxIndex *big.Int
}

// New returns the field of integers modulo p. p must be a prime greater
// than 2.
func New(p *big.Int) (*Field, error) {
	if p == nil || p.Cmp(big.NewInt(2)) <= 0 {
		return nil, fmt.Errorf("field: modulus %v must be a prime greater than 2", p)
	}
	if !p.ProbablyPrime(32) {
		return nil, fmt.Errorf("field: modulus %v is not prime", p)
	}
	return &Field{
		p:        new(big.Int).Set(p),
		maxIndex: new(big.Int).Sub(p, big.NewInt(1)),
	}, nil
}

func mustNew(p *big.Int) *Field {
	f, err := New(p)
	if err != nil {
		panic(err)
	}
	return f
}

func (f *Field) String() string {
	return fmt.Sprintf("GF(%v)", f.p)
}

// Modulus returns a copy of p.
func (f *Field) Modulus() *big.Int {
	return new(big.Int).Set(f.p)
}

// MaxIndex returns the number of nonzero elements, p-1. This bounds the
// number of distinct evaluation points available for secret sharing.
func (f *Field) MaxIndex() *big.Int {
	return new(big.Int).Set(f.maxIndex)
}

// ElementSize returns the number of bytes needed to encode any element.
func (f *Field) ElementSize() int {
	return (f.p.BitLen() + 7) / 8
}

// Contains reports whether x is an element of the field, i.e. 0 <= x < p.
func (f *Field) Contains(x *big.Int) bool {
	return x != nil && x.Sign() >= 0 && x.Cmp(f.p) < 0
}

// Reduce returns x mod p.
func (f *Field) Reduce(x *big.Int) *big.Int {
	return new(big.Int).Mod(x, f.p)
}

// FromUint64 returns v mod p.
func (f *Field) FromUint64(v uint64) *big.Int {
	return f.Reduce(new(big.Int).SetUint64(v))
}

// Add returns a + b mod p.
func (f *Field) Add(a, b *big.Int) *big.Int {
	r := new(big.Int).Add(a, b)
	return r.Mod(r, f.p)
}

// Sub returns a - b mod p.
func (f *Field) Sub(a, b *big.Int) *big.Int {
	r := new(big.Int).Sub(a, b)
	return r.Mod(r, f.p)
}

// Neg returns -a mod p.
func (f *Field) Neg(a *big.Int) *big.Int {
	r := new(big.Int).Neg(a)
	return r.Mod(r, f.p)
}

// Mul returns a * b mod p.
func (f *Field) Mul(a, b *big.Int) *big.Int {
	r := new(big.Int).Mul(a, b)
	return r.Mod(r, f.p)
}

// Inv returns the multiplicative inverse of a.
func (f *Field) Inv(a *big.Int) (*big.Int, error) {
	r := f.Reduce(a)
	if r.Sign() == 0 {
		return nil, ErrNotInvertible
	}
	return r.ModInverse(r, f.p), nil
}

// Rand returns an element drawn uniformly at random from the field using the
// given source. A nil source means crypto/rand.Reader.
func (f *Field) Rand(r io.Reader) (*big.Int, error) {
	if r == nil {
		r = rand.Reader
	}
	v, err := rand.Int(r, f.p)
	if err != nil {
		return nil, fmt.Errorf("field: failed to sample element: %w", err)
	}
	return v, nil
}

// Bytes returns the fixed-width big-endian encoding of the element x, which
// must be in [0, p).
func (f *Field) Bytes(x *big.Int) []byte {
	return x.FillBytes(make([]byte, f.ElementSize()))
}

// Wipe overwrites the words of x with zeros and sets x to 0. It is used to
// clear secret material such as polynomial coefficients once they are no
// longer needed.
func Wipe(x *big.Int) {
	if x == nil {
		return
	}
	words := x.Bits()
	for i := range words {
		words[i] = 0
	}
	x.SetInt64(0)
}
