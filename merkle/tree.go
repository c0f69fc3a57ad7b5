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

// Package merkle provides an immutable binary Merkle tree with inclusion
// proofs.
//
// Leaves are hashed as fn(0x00||record) and interior nodes as
// fn(0x01||left||right). Levels are built bottom-up by pairing adjacent nodes
// from left to right. When a level has an odd number of nodes, the last node
// is promoted to the next level unchanged; it is never duplicated. The
// resulting shape is the one described in RFC 6962, section 2.1.
package merkle

import (
	"errors"
)

// Tree is a Merkle tree built once over a finalized, ordered sequence of
// records. It is never mutated after Build returns, so it is safe for
// concurrent use.
type Tree struct {
	leaves [][]byte
	// levels holds node hashes indexed by (level, index). Level 0 holds the
	// leaf hashes and the last level holds only the root.
	levels [][][]byte
}

// Build returns the Merkle tree over leaves, hashed with fn. The order of
// leaves is significant. Returns ErrEmptyInput if leaves is empty.
func Build(leaves [][]byte, fn HashFunc) (*Tree, error) {
	if len(leaves) == 0 {
		return nil, ErrEmptyInput
	}
	if fn == nil {
		return nil, errors.New("merkle: nil hash function")
	}
	h := NewHasher(fn)

	records := make([][]byte, len(leaves))
	level := make([][]byte, len(leaves))
	for i, l := range leaves {
		records[i] = append([]byte(nil), l...)
		level[i] = h.HashLeaf(l)
	}

	levels := [][][]byte{level}
	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			next = append(next, h.HashChildren(level[i], level[i+1]))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		levels = append(levels, next)
		level = next
	}

	return &Tree{leaves: records, levels: levels}, nil
}

// Root returns the root hash of the tree.
func (t *Tree) Root() []byte {
	return clone(t.levels[len(t.levels)-1][0])
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() uint64 {
	return uint64(len(t.leaves))
}

// Leaf returns a copy of the record at the given index.
func (t *Tree) Leaf(index uint64) ([]byte, error) {
	if err := t.checkIndex(index); err != nil {
		return nil, err
	}
	return clone(t.leaves[index]), nil
}

// LeafHash returns the leaf hash of the record at the given index.
func (t *Tree) LeafHash(index uint64) ([]byte, error) {
	if err := t.checkIndex(index); err != nil {
		return nil, err
	}
	return clone(t.levels[0][index]), nil
}

// Prove returns the inclusion proof for the leaf at the given index. The proof
// has one step per level below the root, ordered from the leaf upwards.
func (t *Tree) Prove(index uint64) (*Proof, error) {
	if err := t.checkIndex(index); err != nil {
		return nil, err
	}
	path := sides(index, t.LeafCount())
	steps := make([]Step, len(path))
	node := index
	for lvl, side := range path {
		switch side {
		case Left:
			steps[lvl] = Step{Side: Left, Hash: clone(t.levels[lvl][node-1])}
		case Right:
			steps[lvl] = Step{Side: Right, Hash: clone(t.levels[lvl][node+1])}
		default:
			steps[lvl] = Step{Side: None}
		}
		node = parent(node)
	}
	return &Proof{LeafIndex: index, TreeSize: t.LeafCount(), Steps: steps}, nil
}

func (t *Tree) checkIndex(index uint64) error {
	if index >= t.LeafCount() {
		return &IndexOutOfRangeError{Index: index, Size: t.LeafCount()}
	}
	return nil
}

func clone(b []byte) []byte {
	return append([]byte(nil), b...)
}
