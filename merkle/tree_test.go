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
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/iotledger/iotcrypto/merkle/testonly"
	tmp "github.com/iotledger/iotcrypto/testonly"
)

func sha256Sum(b []byte) []byte {
	h := sha256.Sum256(b)
	return h[:]
}

func TestBuildEmpty(t *testing.T) {
	for _, leaves := range [][][]byte{nil, {}} {
		if _, err := Build(leaves, sha256Sum); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Build(%v)=%v, want ErrEmptyInput", leaves, err)
		}
	}
}

func TestBuildNilHashFunc(t *testing.T) {
	if _, err := Build([][]byte{[]byte("a")}, nil); err == nil {
		t.Error("Build with nil hash function succeeded")
	}
}

func TestBuildRootHashes(t *testing.T) {
	inputs := testonly.LeafInputs()
	for i, want := range testonly.RootHashes() {
		size := i + 1
		t.Run(fmt.Sprintf("size:%d", size), func(t *testing.T) {
			tree, err := Build(inputs[:size], sha256Sum)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got := tree.Root(); !cmp.Equal(got, want) {
				t.Errorf("Root()=%x, want %x", got, want)
			}
			if got, want := tree.LeafCount(), uint64(size); got != want {
				t.Errorf("LeafCount()=%d, want %d", got, want)
			}
		})
	}
}

func TestBuildNodeHashes(t *testing.T) {
	inputs := testonly.LeafInputs()
	tree, err := Build(inputs, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if diff := cmp.Diff(testonly.NodeHashes(), tree.levels); diff != "" {
		t.Errorf("levels mismatch (-want +got):\n%s", diff)
	}
}

func TestSingleLeafRoot(t *testing.T) {
	tree, err := Build([][]byte{[]byte("only")}, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got, want := tree.Root(), LeafHash(sha256Sum, []byte("only")); !cmp.Equal(got, want) {
		t.Errorf("Root()=%x, want leaf hash %x", got, want)
	}
	p, err := tree.Prove(0)
	if err != nil {
		t.Fatalf("Prove(0): %v", err)
	}
	if len(p.Steps) != 0 {
		t.Errorf("Prove(0) has %d steps, want 0", len(p.Steps))
	}
}

func TestOddLeafCountDeterminism(t *testing.T) {
	for _, size := range []int{3, 5, 7, 9, 31} {
		records := tmp.Records(size)
		t1, err := Build(records, sha256Sum)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		t2, err := Build(records, sha256Sum)
		if err != nil {
			t.Fatalf("Build: %v", err)
		}
		if !cmp.Equal(t1.Root(), t2.Root()) {
			t.Errorf("size %d: roots differ between builds: %x vs %x", size, t1.Root(), t2.Root())
		}
	}
}

func TestTreeIsImmutable(t *testing.T) {
	records := [][]byte{[]byte("a"), []byte("b")}
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	root := tree.Root()
	records[0][0] = 'z'
	got := tree.Root()
	got[0] ^= 0xff
	if !cmp.Equal(tree.Root(), root) {
		t.Error("root changed after mutating inputs or returned slices")
	}
	leaf, err := tree.Leaf(0)
	if err != nil {
		t.Fatalf("Leaf(0): %v", err)
	}
	if got, want := string(leaf), "a"; got != want {
		t.Errorf("Leaf(0)=%q, want %q", got, want)
	}
}

func TestProveOutOfRange(t *testing.T) {
	tree, err := Build(tmp.Records(4), sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for _, index := range []uint64{4, 5, 1 << 40} {
		_, err := tree.Prove(index)
		var e *IndexOutOfRangeError
		if !errors.As(err, &e) {
			t.Fatalf("Prove(%d)=%v, want IndexOutOfRangeError", index, err)
		}
		if e.Index != index || e.Size != 4 {
			t.Errorf("Prove(%d) error=%+v", index, e)
		}
	}
	if _, err := tree.Leaf(4); err == nil {
		t.Error("Leaf(4) succeeded on a tree of size 4")
	}
	if _, err := tree.LeafHash(4); err == nil {
		t.Error("LeafHash(4) succeeded on a tree of size 4")
	}
}

func TestProofLength(t *testing.T) {
	for _, tc := range []struct {
		size uint64
		want int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {1000, 10}, {1024, 10}, {1025, 11},
	} {
		if got := len(sides(tc.size-1, tc.size)); got != tc.want {
			t.Errorf("len(sides(%d, %d))=%d, want %d", tc.size-1, tc.size, got, tc.want)
		}
	}
}

func TestInclusionPaths(t *testing.T) {
	inputs := testonly.LeafInputs()
	for _, tc := range testonly.InclusionPaths() {
		t.Run(fmt.Sprintf("%d:%d", tc.LeafIndex, tc.TreeSize), func(t *testing.T) {
			tree, err := Build(inputs[:tc.TreeSize], sha256Sum)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			p, err := tree.Prove(tc.LeafIndex)
			if err != nil {
				t.Fatalf("Prove: %v", err)
			}
			if got, want := p.Hashes(), tc.Hashes; !cmp.Equal(got, want, cmpopts.EquateEmpty()) {
				t.Errorf("audit path mismatch:\ngot: %x\nwant: %x", got, want)
			}
		})
	}
}

// Scenario with three leaves: the third leaf has no sibling at the bottom
// level and is promoted.
func TestThreeLeafTree(t *testing.T) {
	records := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	wantRoot := tmp.MustHexDecode("36642e73c2540ab121e3a6bf9545b0a24982cd830eb13d3cd19de3ce6c021ec1")
	if got := tree.Root(); !cmp.Equal(got, wantRoot) {
		t.Errorf("Root()=%x, want %x", got, wantRoot)
	}

	p, err := tree.Prove(2)
	if err != nil {
		t.Fatalf("Prove(2): %v", err)
	}
	want := &Proof{
		LeafIndex: 2,
		TreeSize:  3,
		Steps: []Step{
			{Side: None},
			{Side: Left, Hash: tmp.MustHexDecode("b137985ff484fb600db93107c77b0365c80d78f5b429ded0fd97361d077999eb")},
		},
	}
	if diff := cmp.Diff(want, p); diff != "" {
		t.Errorf("Prove(2) mismatch (-want +got):\n%s", diff)
	}

	if !Verify(LeafHash(sha256Sum, []byte("c")), p, tree.Root(), sha256Sum) {
		t.Error("Verify(c) = false, want true")
	}
	if Verify(LeafHash(sha256Sum, []byte("a")), p, tree.Root(), sha256Sum) {
		t.Error("Verify(a) with proof for index 2 = true, want false")
	}
}
