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

package ledger

import (
	"bytes"
	"fmt"

	"github.com/iotledger/iotcrypto"
	"github.com/iotledger/iotcrypto/merkle"
	"google.golang.org/protobuf/encoding/protowire"
)

// Header describes a sealed block and links it to its predecessor.
type Header struct {
	Height uint64
	// Prev is the previous header's Hash; all zeros for the first block.
	Prev iotcrypto.Hash
	// Root is the root of the tree over the block's records.
	Root iotcrypto.Hash
	// Size is the number of records in the block.
	Size uint64
	// Hash commits to all of the above.
	Hash iotcrypto.Hash
}

// Block is a sealed header together with its records.
type Block struct {
	Header
	Records [][]byte
}

// Receipt proves that a record was sealed into a block.
type Receipt struct {
	Height uint64
	Root   iotcrypto.Hash
	Proof  *merkle.Proof
}

// Field numbers of the hashed header body, as in the protobuf message
//
//	message HeaderBody { uint64 height = 1; uint64 size = 2; bytes root = 3; }
const (
	headerHeightField protowire.Number = 1
	headerSizeField   protowire.Number = 2
	headerRootField   protowire.Number = 3
)

func encodeHeaderBody(h *Header) []byte {
	var b []byte
	b = protowire.AppendTag(b, headerHeightField, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Height)
	b = protowire.AppendTag(b, headerSizeField, protowire.VarintType)
	b = protowire.AppendVarint(b, h.Size)
	b = protowire.AppendTag(b, headerRootField, protowire.BytesType)
	b = protowire.AppendBytes(b, h.Root)
	return b
}

// HeaderHash returns the hash of h chained onto h.Prev. The stored h.Hash is
// ignored.
func HeaderHash(fn merkle.HashFunc, h *Header) iotcrypto.Hash {
	return merkle.NewHasher(fn).HashChildren(h.Prev, encodeHeaderBody(h))
}

// genesisPrev is the Prev of the block at height 0.
func genesisPrev(fn merkle.HashFunc) iotcrypto.Hash {
	return make([]byte, merkle.NewHasher(fn).Size())
}

// VerifyChain checks that headers form an unbroken chain: consecutive
// heights, each Prev equal to the previous Hash and each Hash correctly
// computed. A chain starting at height 0 must start from the zero hash.
func VerifyChain(fn merkle.HashFunc, headers []*Header) error {
	for i, h := range headers {
		if h == nil {
			return fmt.Errorf("ledger: header %d is missing", i)
		}
		switch {
		case i > 0:
			prev := headers[i-1]
			if h.Height != prev.Height+1 {
				return fmt.Errorf("ledger: header at height %d follows height %d", h.Height, prev.Height)
			}
			if !h.Prev.Equal(prev.Hash) {
				return fmt.Errorf("ledger: header at height %d does not link to its predecessor", h.Height)
			}
		case h.Height == 0:
			if !h.Prev.Equal(genesisPrev(fn)) {
				return fmt.Errorf("ledger: first header has non-zero previous hash %v", h.Prev)
			}
		}
		if want := HeaderHash(fn, h); !bytes.Equal(h.Hash, want) {
			return fmt.Errorf("ledger: header at height %d has hash %v, want %v", h.Height, h.Hash, want)
		}
	}
	return nil
}

// VerifyReceipt reports whether receipt proves that record is part of the
// block described by header. It never panics on malformed input.
func VerifyReceipt(fn merkle.HashFunc, record []byte, receipt *Receipt, header *Header) bool {
	if fn == nil || receipt == nil || header == nil || receipt.Proof == nil {
		return false
	}
	if receipt.Height != header.Height || !receipt.Root.Equal(header.Root) {
		return false
	}
	if receipt.Proof.TreeSize != header.Size {
		return false
	}
	return merkle.Verify(merkle.LeafHash(fn, record), receipt.Proof, header.Root, fn)
}
