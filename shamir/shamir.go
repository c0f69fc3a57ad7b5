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

// Package shamir implements Shamir's threshold secret sharing over a prime
// field.
//
// A secret s is the constant term of a random polynomial of degree t-1. Share
// i is the evaluation of that polynomial at x = i, for i in 1..n. Any t shares
// determine the polynomial, and hence s, by Lagrange interpolation at x = 0;
// any t-1 shares are consistent with every possible secret.
//
// Reconstruction takes the threshold as an explicit argument and refuses to
// interpolate from fewer shares, since doing so silently yields a wrong value.
package shamir

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"github.com/iotledger/iotcrypto/field"
)

// Splitter splits secrets into shares and reconstructs them.
//
// A Splitter is safe for concurrent use if its random source is.
type Splitter struct {
	field *field.Field
	rand  io.Reader
}

// NewSplitter returns a Splitter over f drawing coefficients from r. A nil f
// means field.Default(); a nil r means crypto/rand.Reader.
func NewSplitter(f *field.Field, r io.Reader) *Splitter {
	if f == nil {
		f = field.Default()
	}
	if r == nil {
		r = rand.Reader
	}
	return &Splitter{field: f, rand: r}
}

// Field returns the field the splitter works in.
func (s *Splitter) Field() *field.Field {
	return s.field
}

// Split divides secret into n shares, any t of which reconstruct it. The
// shares have indices 1..n, in order.
func (s *Splitter) Split(secret *big.Int, n, t int) ([]Share, error) {
	if t < 1 || t > n {
		return nil, &InvalidThresholdError{Threshold: t, Total: n}
	}
	if big.NewInt(int64(n)).Cmp(s.field.MaxIndex()) > 0 {
		return nil, &ShareCountOverflowError{Total: n, MaxIndex: s.field.MaxIndex()}
	}
	if !s.field.Contains(secret) {
		return nil, fmt.Errorf("shamir: secret is not an element of %v", s.field)
	}

	// coeffs[0] is the secret itself; it is not wiped since it belongs to
	// the caller.
	coeffs := make([]*big.Int, t)
	coeffs[0] = secret
	defer func() {
		for _, c := range coeffs[1:] {
			field.Wipe(c)
		}
	}()
	for i := 1; i < t; i++ {
		c, err := s.field.Rand(s.rand)
		if err != nil {
			return nil, fmt.Errorf("shamir: failed to generate random coefficients: %w", err)
		}
		coeffs[i] = c
	}

	shares := make([]Share, n)
	for i := range shares {
		x := big.NewInt(int64(i + 1))
		shares[i] = Share{Index: i + 1, Value: evaluate(s.field, coeffs, x)}
	}
	return shares, nil
}

// Reconstruct recovers the secret from shares split with threshold t. See
// the package-level Reconstruct.
func (s *Splitter) Reconstruct(shares []Share, t int) (*big.Int, error) {
	return Reconstruct(s.field, shares, t)
}

// Reconstruct recovers the secret from shares that were split over f with
// threshold t. At least t shares with pairwise distinct indices must be
// supplied; exactly the first t are interpolated. The result is only correct
// if the shares come from a single split.
func Reconstruct(f *field.Field, shares []Share, t int) (*big.Int, error) {
	if f == nil {
		f = field.Default()
	}
	if t < 1 {
		return nil, &InvalidThresholdError{Threshold: t, Total: len(shares)}
	}
	if len(shares) < t {
		return nil, &InsufficientSharesError{Have: len(shares), Need: t}
	}
	seen := make(map[int]bool, len(shares))
	for _, sh := range shares {
		if err := checkShare(f, sh); err != nil {
			return nil, err
		}
		if seen[sh.Index] {
			return nil, &DuplicateIndexError{Index: sh.Index}
		}
		seen[sh.Index] = true
	}
	return interpolateAt(f, shares[:t], new(big.Int)), nil
}

func checkShare(f *field.Field, sh Share) error {
	if sh.Index < 1 || big.NewInt(int64(sh.Index)).Cmp(f.MaxIndex()) > 0 {
		return &InvalidShareError{Index: sh.Index, Reason: "index is not a nonzero field element"}
	}
	if !f.Contains(sh.Value) {
		return &InvalidShareError{Index: sh.Index, Reason: "value is not a field element"}
	}
	return nil
}

// evaluate evaluates the polynomial with the given coefficients at x using
// Horner's method: p(x) = a0 + x(a1 + x(a2 + ... + x*an)).
func evaluate(f *field.Field, coeffs []*big.Int, x *big.Int) *big.Int {
	result := new(big.Int).Set(coeffs[len(coeffs)-1])
	for i := len(coeffs) - 2; i >= 0; i-- {
		result = f.Add(f.Mul(result, x), coeffs[i])
	}
	return result
}

// interpolateAt evaluates at x the unique polynomial of degree < len(points)
// passing through the given points. Indices must be pairwise distinct.
func interpolateAt(f *field.Field, points []Share, x *big.Int) *big.Int {
	result := new(big.Int)
	for i, pi := range points {
		xi := big.NewInt(int64(pi.Index))
		num, den := big.NewInt(1), big.NewInt(1)
		for j, pj := range points {
			if i == j {
				continue
			}
			xj := big.NewInt(int64(pj.Index))
			num = f.Mul(num, f.Sub(x, xj))
			den = f.Mul(den, f.Sub(xi, xj))
		}
		inv, err := f.Inv(den)
		if err != nil {
			// Distinct indices below p give a nonzero denominator.
			panic(fmt.Sprintf("shamir: interpolating over repeated index %d", pi.Index))
		}
		result = f.Add(result, f.Mul(pi.Value, f.Mul(num, inv)))
	}
	return result
}
