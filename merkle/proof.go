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
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Side says where the sibling of a node on a proof path sits.
type Side uint8

const (
	// None marks a level at which the node had no sibling and was promoted
	// unchanged.
	None Side = iota
	// Left means the sibling is the left child; the path node is on the right.
	Left
	// Right means the sibling is the right child; the path node is on the left.
	Right
)

func (s Side) String() string {
	switch s {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Side(%d)", uint8(s))
}

// Step is one level of an inclusion proof.
type Step struct {
	Side Side
	// Hash is the sibling hash. It is empty when Side is None.
	Hash []byte
}

// Proof is an inclusion proof for the leaf at LeafIndex in a tree of TreeSize
// leaves. Steps are ordered from the leaf level towards the root.
type Proof struct {
	LeafIndex uint64
	TreeSize  uint64
	Steps     []Step
}

// Hashes returns the sibling hashes of the proof, skipping promoted levels.
// The result is the RFC 6962 audit path for the same leaf.
func (p *Proof) Hashes() [][]byte {
	ret := make([][]byte, 0, len(p.Steps))
	for _, s := range p.Steps {
		if s.Side != None {
			ret = append(ret, s.Hash)
		}
	}
	return ret
}

// Wire format field numbers. The encoding is that of the protobuf messages
//
//	message Proof { uint64 leaf_index = 1; uint64 tree_size = 2; repeated Step steps = 3; }
//	message Step  { uint32 side = 1; bytes hash = 2; }
const (
	proofLeafIndexField protowire.Number = 1
	proofTreeSizeField  protowire.Number = 2
	proofStepField      protowire.Number = 3

	stepSideField protowire.Number = 1
	stepHashField protowire.Number = 2
)

// MarshalBinary encodes the proof in a stable protobuf wire format.
func (p *Proof) MarshalBinary() ([]byte, error) {
	var b []byte
	b = protowire.AppendTag(b, proofLeafIndexField, protowire.VarintType)
	b = protowire.AppendVarint(b, p.LeafIndex)
	b = protowire.AppendTag(b, proofTreeSizeField, protowire.VarintType)
	b = protowire.AppendVarint(b, p.TreeSize)
	for _, s := range p.Steps {
		var sb []byte
		sb = protowire.AppendTag(sb, stepSideField, protowire.VarintType)
		sb = protowire.AppendVarint(sb, uint64(s.Side))
		if len(s.Hash) > 0 {
			sb = protowire.AppendTag(sb, stepHashField, protowire.BytesType)
			sb = protowire.AppendBytes(sb, s.Hash)
		}
		b = protowire.AppendTag(b, proofStepField, protowire.BytesType)
		b = protowire.AppendBytes(b, sb)
	}
	return b, nil
}

// UnmarshalBinary decodes a proof produced by MarshalBinary. Unknown fields
// are skipped. The decoded proof is not checked for consistency; Verify does
// that.
func (p *Proof) UnmarshalBinary(data []byte) error {
	var out Proof
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("merkle: bad proof tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == proofLeafIndexField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("merkle: bad leaf index: %w", protowire.ParseError(n))
			}
			out.LeafIndex = v
			data = data[n:]
		case num == proofTreeSizeField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("merkle: bad tree size: %w", protowire.ParseError(n))
			}
			out.TreeSize = v
			data = data[n:]
		case num == proofStepField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("merkle: bad proof step: %w", protowire.ParseError(n))
			}
			s, err := unmarshalStep(v)
			if err != nil {
				return err
			}
			out.Steps = append(out.Steps, s)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("merkle: bad field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	*p = out
	return nil
}

func unmarshalStep(data []byte) (Step, error) {
	var s Step
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return Step{}, fmt.Errorf("merkle: bad step tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == stepSideField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return Step{}, fmt.Errorf("merkle: bad step side: %w", protowire.ParseError(n))
			}
			if v > uint64(Right) {
				return Step{}, errors.New("merkle: unknown step side")
			}
			s.Side = Side(v)
			data = data[n:]
		case num == stepHashField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return Step{}, fmt.Errorf("merkle: bad step hash: %w", protowire.ParseError(n))
			}
			s.Hash = append([]byte(nil), v...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return Step{}, fmt.Errorf("merkle: bad step field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	return s, nil
}
