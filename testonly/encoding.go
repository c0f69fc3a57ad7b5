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

package testonly

import (
	"encoding/hex"
	"testing"
)

// MustHexDecode decodes its input string from hex and panics if this fails.
func MustHexDecode(b string) []byte {
	r, err := hex.DecodeString(b)
	if err != nil {
		panic(err)
	}
	return r
}

// Records returns n distinct records for use as tree leaves or ledger
// entries.
func Records(n int) [][]byte {
	ret := make([][]byte, n)
	for i := range ret {
		ret[i] = []byte{byte(i >> 8), byte(i), 'r'}
	}
	return ret
}

// FlipBit returns a copy of b with bit i flipped.
func FlipBit(t testing.TB, b []byte, i int) []byte {
	t.Helper()
	if i/8 >= len(b) {
		t.Fatalf("FlipBit: bit %d out of range for %d bytes", i, len(b))
	}
	r := append([]byte(nil), b...)
	r[i/8] ^= 1 << uint(i%8)
	return r
}
