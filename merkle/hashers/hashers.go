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

// Package hashers provides the named digest functions a Merkle tree can be
// built with.
package hashers

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"strings"

	"github.com/iotledger/iotcrypto/merkle"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Strategy identifies a digest function.
type Strategy int

// Supported strategies. The zero value is deliberately invalid so that an
// unset configuration field is caught.
const (
	UnknownStrategy Strategy = iota
	SHA256
	SHA512_256
	SHA3_256
	BLAKE2B_256
	BLAKE3_256
)

var strategyNames = map[Strategy]string{
	SHA256:      "SHA256",
	SHA512_256:  "SHA512_256",
	SHA3_256:    "SHA3_256",
	BLAKE2B_256: "BLAKE2B_256",
	BLAKE3_256:  "BLAKE3_256",
}

var hashFuncs = map[Strategy]merkle.HashFunc{
	SHA256: func(b []byte) []byte {
		h := sha256.Sum256(b)
		return h[:]
	},
	SHA512_256: func(b []byte) []byte {
		h := sha512.Sum512_256(b)
		return h[:]
	},
	SHA3_256: func(b []byte) []byte {
		h := sha3.Sum256(b)
		return h[:]
	},
	BLAKE2B_256: func(b []byte) []byte {
		h := blake2b.Sum256(b)
		return h[:]
	},
	BLAKE3_256: func(b []byte) []byte {
		h := blake3.Sum256(b)
		return h[:]
	},
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the given name. Matching is case
// insensitive.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return UnknownStrategy, fmt.Errorf("hashers: unknown strategy %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	n, ok := strategyNames[s]
	if !ok {
		return nil, fmt.Errorf("hashers: cannot marshal %v", s)
	}
	return []byte(n), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// New returns the digest function for the strategy.
func New(s Strategy) (merkle.HashFunc, error) {
	if f, ok := hashFuncs[s]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("hashers: %v is an unknown hash strategy", s)
}
