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

package merkle

// HashFunc is a pure digest function mapping arbitrary bytes to a fixed-length
// digest. It must be deterministic and safe for concurrent use.
type HashFunc func(data []byte) []byte

// Domain separation prefixes, as defined by RFC 6962.
const (
	LeafHashPrefix = 0
	NodeHashPrefix = 1
)

// Hasher applies domain separation on top of a HashFunc, so that a leaf
// digest can never be confused with an interior node digest regardless of
// which digest function is supplied.
type Hasher struct {
	fn HashFunc
}

// NewHasher returns a Hasher that uses fn for all digests.
func NewHasher(fn HashFunc) Hasher {
	return Hasher{fn: fn}
}

// HashLeaf returns the Merkle tree leaf hash of the data passed in through leaf.
// The hashed structure is LeafHashPrefix||leaf.
func (h Hasher) HashLeaf(leaf []byte) []byte {
	buf := make([]byte, 0, len(leaf)+1)
	buf = append(buf, LeafHashPrefix)
	buf = append(buf, leaf...)
	return h.fn(buf)
}

// HashChildren returns the inner Merkle tree node hash of the two child nodes
// l and r. The hashed structure is NodeHashPrefix||l||r.
func (h Hasher) HashChildren(l, r []byte) []byte {
	buf := make([]byte, 0, len(l)+len(r)+1)
	buf = append(buf, NodeHashPrefix)
	buf = append(buf, l...)
	buf = append(buf, r...)
	return h.fn(buf)
}

// Size returns the number of bytes in output hashes.
func (h Hasher) Size() int {
	return len(h.fn(nil))
}

// LeafHash returns the domain-separated digest of record under fn. This is the
// value callers pass to Verify.
func LeafHash(fn HashFunc, record []byte) []byte {
	return NewHasher(fn).HashLeaf(record)
}
