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
	"crypto/sha512"
	"fmt"
	"testing"

	tmp "github.com/iotledger/iotcrypto/testonly"
	"github.com/transparency-dev/merkle/proof"
	"github.com/transparency-dev/merkle/rfc6962"
)

// inclusionProbe is a parameter set for inclusion proof verification.
type inclusionProbe struct {
	leafHash []byte
	proof    *Proof
	root     []byte

	desc string
}

func copyProof(p *Proof) *Proof {
	ret := &Proof{LeafIndex: p.LeafIndex, TreeSize: p.TreeSize, Steps: make([]Step, len(p.Steps))}
	for i, s := range p.Steps {
		ret.Steps[i] = Step{Side: s.Side, Hash: append([]byte(nil), s.Hash...)}
	}
	return ret
}

func corruptInclusionProof(leafHash []byte, p *Proof, root []byte) []inclusionProbe {
	withIndex := func(i uint64) *Proof {
		c := copyProof(p)
		c.LeafIndex = i
		return c
	}
	withSize := func(s uint64) *Proof {
		c := copyProof(p)
		c.TreeSize = s
		return c
	}
	ret := []inclusionProbe{
		// Wrong leaf index.
		{leafHash, withIndex(p.LeafIndex - 1), root, "leafIndex - 1"},
		{leafHash, withIndex(p.LeafIndex + 1), root, "leafIndex + 1"},
		{leafHash, withIndex(p.LeafIndex ^ 2), root, "leafIndex ^ 2"},
		// Wrong tree height.
		{leafHash, withSize(p.TreeSize * 2), root, "treeSize * 2"},
		{leafHash, withSize(p.TreeSize / 2), root, "treeSize / 2"},
		// Wrong leaf or root.
		{[]byte("WrongLeaf"), p, root, "wrong leaf"},
		{nil, p, root, "nil leaf"},
		{leafHash, p, sha256Sum(nil), "empty root"},
		{leafHash, p, nil, "nil root"},
		// Missing proof.
		{leafHash, nil, root, "nil proof"},
	}
	// Add garbage at the end and at the front.
	c := copyProof(p)
	c.Steps = append(c.Steps, Step{Side: Right, Hash: root})
	ret = append(ret, inclusionProbe{leafHash, c, root, "trailing root"})
	c = copyProof(p)
	c.Steps = append([]Step{{Side: Left, Hash: root}}, c.Steps...)
	ret = append(ret, inclusionProbe{leafHash, c, root, "preceding root"})

	for i, s := range p.Steps {
		if s.Side == None {
			// Forge a sibling where the node was promoted.
			c := copyProof(p)
			c.Steps[i] = Step{Side: Right, Hash: leafHash}
			ret = append(ret, inclusionProbe{leafHash, c, root, fmt.Sprintf("forged sibling at %d", i)})
			c = copyProof(p)
			c.Steps[i].Hash = leafHash
			ret = append(ret, inclusionProbe{leafHash, c, root, fmt.Sprintf("hash on promoted step %d", i)})
			continue
		}
		// Modify single bit in an element of the proof.
		c := copyProof(p)
		c.Steps[i].Hash[0] ^= 8
		ret = append(ret, inclusionProbe{leafHash, c, root, fmt.Sprintf("modified step[%d] bit 3", i)})
		// Swap the side.
		c = copyProof(p)
		c.Steps[i].Side = Left + Right - s.Side
		ret = append(ret, inclusionProbe{leafHash, c, root, fmt.Sprintf("swapped side at %d", i)})
		// Drop the hash.
		c = copyProof(p)
		c.Steps[i].Hash = nil
		ret = append(ret, inclusionProbe{leafHash, c, root, fmt.Sprintf("missing hash at %d", i)})
	}
	if ln := len(p.Steps); ln > 0 {
		c := copyProof(p)
		c.Steps = c.Steps[:ln-1]
		ret = append(ret, inclusionProbe{leafHash, c, root, "removed step"})
	}
	return ret
}

func TestVerifyRoundTrip(t *testing.T) {
	for size := 1; size <= 40; size++ {
		records := tmp.Records(size)
		tree, err := Build(records, sha256Sum)
		if err != nil {
			t.Fatalf("Build(%d): %v", size, err)
		}
		for i, r := range records {
			p, err := tree.Prove(uint64(i))
			if err != nil {
				t.Fatalf("Prove(%d) in tree of size %d: %v", i, size, err)
			}
			if err := VerifyInclusion(LeafHash(sha256Sum, r), p, tree.Root(), sha256Sum); err != nil {
				t.Errorf("VerifyInclusion(%d, %d): %v", i, size, err)
			}
		}
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	records := tmp.Records(11)
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, r := range records {
		p, err := tree.Prove(uint64(i))
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		for bit := 0; bit < len(r)*8; bit++ {
			mutated := tmp.FlipBit(t, r, bit)
			if Verify(LeafHash(sha256Sum, mutated), p, tree.Root(), sha256Sum) {
				t.Errorf("Verify accepted record %d with bit %d flipped", i, bit)
			}
		}
	}
}

func TestVerifyRejectsCorruptProofs(t *testing.T) {
	for _, size := range []int{1, 2, 3, 5, 8, 13} {
		records := tmp.Records(size)
		tree, err := Build(records, sha256Sum)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for i, r := range records {
			p, err := tree.Prove(uint64(i))
			if err != nil {
				t.Fatalf("Prove(%d): %v", i, err)
			}
			leafHash := LeafHash(sha256Sum, r)
			for _, probe := range corruptInclusionProof(leafHash, p, tree.Root()) {
				if Verify(probe.leafHash, probe.proof, probe.root, sha256Sum) {
					t.Errorf("size %d index %d: incorrectly verified against: %s", size, i, probe.desc)
				}
			}
		}
	}
}

func TestVerifyWrongHashFunc(t *testing.T) {
	records := tmp.Records(6)
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p, err := tree.Prove(3)
	if err != nil {
		t.Fatalf("Prove: %v", err)
	}
	sha512Sum := func(b []byte) []byte {
		h := sha512.Sum512_256(b)
		return h[:]
	}
	if Verify(LeafHash(sha512Sum, records[3]), p, tree.Root(), sha512Sum) {
		t.Error("Verify succeeded with a different hash function")
	}
	if Verify(LeafHash(sha256Sum, records[3]), p, tree.Root(), nil) {
		t.Error("Verify succeeded with a nil hash function")
	}
}

// Leaf and interior node hashing must not be interchangeable: the concatenated
// children of an interior node are not a leaf of the tree.
func TestDomainSeparation(t *testing.T) {
	records := [][]byte{[]byte("a"), []byte("b")}
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	l0, _ := tree.LeafHash(0)
	l1, _ := tree.LeafHash(1)
	forged := append(append([]byte(nil), l0...), l1...)
	single, err := Build([][]byte{forged}, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if string(single.Root()) == string(tree.Root()) {
		t.Error("leaf over concatenated children collides with interior node")
	}
	if Verify(sha256Sum(forged), &Proof{LeafIndex: 0, TreeSize: 1}, tree.Root(), sha256Sum) {
		t.Error("Verify accepted an undomain-separated digest as the root")
	}
}

// The audit paths and roots must agree with an independent RFC 6962
// implementation.
func TestAgainstReferenceImplementation(t *testing.T) {
	th := rfc6962.DefaultHasher
	for size := 1; size <= 33; size++ {
		records := tmp.Records(size)
		tree, err := Build(records, sha256Sum)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		for i, r := range records {
			p, err := tree.Prove(uint64(i))
			if err != nil {
				t.Fatalf("Prove: %v", err)
			}
			if err := proof.VerifyInclusion(th, uint64(i), uint64(size), th.HashLeaf(r), p.Hashes(), tree.Root()); err != nil {
				t.Errorf("reference VerifyInclusion(%d, %d): %v", i, size, err)
			}
		}
	}
}
