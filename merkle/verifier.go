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

import (
	"bytes"
	"errors"
	"fmt"
)

// RootFromProof calculates the root hash implied by the proof for the leaf
// with the given leaf hash. The proof is rejected unless its shape matches
// the path from p.LeafIndex to the root of a tree of p.TreeSize leaves.
func RootFromProof(leafHash []byte, p *Proof, fn HashFunc) ([]byte, error) {
	if p == nil {
		return nil, errors.New("merkle: nil proof")
	}
	if fn == nil {
		return nil, errors.New("merkle: nil hash function")
	}
	if p.TreeSize == 0 {
		return nil, errors.New("merkle: proof for an empty tree")
	}
	if p.LeafIndex >= p.TreeSize {
		return nil, &IndexOutOfRangeError{Index: p.LeafIndex, Size: p.TreeSize}
	}
	if len(leafHash) == 0 {
		return nil, errors.New("merkle: empty leaf hash")
	}

	want := sides(p.LeafIndex, p.TreeSize)
	if got := len(p.Steps); got != len(want) {
		return nil, fmt.Errorf("merkle: invalid proof, expected %d steps, but have %d", len(want), got)
	}
	h := NewHasher(fn)
	hash := leafHash
	for i, s := range p.Steps {
		if s.Side != want[i] {
			return nil, fmt.Errorf("merkle: proof step %d has side %v, want %v", i, s.Side, want[i])
		}
		switch s.Side {
		case Left:
			if len(s.Hash) == 0 {
				return nil, fmt.Errorf("merkle: proof step %d has no sibling hash", i)
			}
			hash = h.HashChildren(s.Hash, hash)
		case Right:
			if len(s.Hash) == 0 {
				return nil, fmt.Errorf("merkle: proof step %d has no sibling hash", i)
			}
			hash = h.HashChildren(hash, s.Hash)
		default:
			if len(s.Hash) != 0 {
				return nil, fmt.Errorf("merkle: promoted proof step %d carries a hash", i)
			}
		}
	}
	return hash, nil
}

// VerifyInclusion verifies the proof for the leaf with the given leaf hash
// against the expected root, and explains why when it does not hold.
func VerifyInclusion(leafHash []byte, p *Proof, root []byte, fn HashFunc) error {
	calcRoot, err := RootFromProof(leafHash, p, fn)
	if err != nil {
		return err
	}
	if !bytes.Equal(calcRoot, root) {
		return RootMismatchError{
			CalculatedRoot: calcRoot,
			ExpectedRoot:   root,
		}
	}
	return nil
}

// Verify reports whether the proof shows that the leaf with the given leaf
// hash is included in the tree with the given root. It never panics and is
// safe to call with untrusted input; malformed proofs are simply rejected.
//
// The leaf hash must be domain separated, i.e. computed with LeafHash.
func Verify(leafHash []byte, p *Proof, root []byte, fn HashFunc) bool {
	return VerifyInclusion(leafHash, p, root, fn) == nil
}
