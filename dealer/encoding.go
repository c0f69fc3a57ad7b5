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

package dealer

import (
	"errors"
	"fmt"

	"github.com/iotledger/iotcrypto/field"
	"github.com/iotledger/iotcrypto/merkle"
	"github.com/iotledger/iotcrypto/shamir"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of the committed leaf, as in the protobuf message
//
//	message Leaf { uint64 index = 1; bytes value = 2; bytes salt = 3; }
//
// The value is the fixed-width big-endian field element, so that equal
// shares always produce equal leaves.
const (
	leafIndexField protowire.Number = 1
	leafValueField protowire.Number = 2
	leafSaltField  protowire.Number = 3
)

// encodeLeaf returns the tree leaf committing to sh and salt. sh.Value must
// be an element of f.
func encodeLeaf(f *field.Field, sh shamir.Share, salt []byte) []byte {
	var b []byte
	b = protowire.AppendTag(b, leafIndexField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(sh.Index))
	b = protowire.AppendTag(b, leafValueField, protowire.BytesType)
	b = protowire.AppendBytes(b, f.Bytes(sh.Value))
	b = protowire.AppendTag(b, leafSaltField, protowire.BytesType)
	b = protowire.AppendBytes(b, salt)
	return b
}

// Field numbers of a serialized CommittedShare:
//
//	message CommittedShare { bytes share = 1; bytes salt = 2; bytes proof = 3; }
const (
	committedShareField protowire.Number = 1
	committedSaltField  protowire.Number = 2
	committedProofField protowire.Number = 3
)

// MarshalBinary encodes the committed share for handing to its holder.
func (cs CommittedShare) MarshalBinary() ([]byte, error) {
	if cs.Proof == nil {
		return nil, errors.New("dealer: cannot marshal a share without a proof")
	}
	share, err := cs.Share.MarshalBinary()
	if err != nil {
		return nil, err
	}
	proof, err := cs.Proof.MarshalBinary()
	if err != nil {
		return nil, err
	}
	var b []byte
	b = protowire.AppendTag(b, committedShareField, protowire.BytesType)
	b = protowire.AppendBytes(b, share)
	b = protowire.AppendTag(b, committedSaltField, protowire.BytesType)
	b = protowire.AppendBytes(b, cs.Salt)
	b = protowire.AppendTag(b, committedProofField, protowire.BytesType)
	b = protowire.AppendBytes(b, proof)
	return b, nil
}

// UnmarshalBinary decodes a committed share produced by MarshalBinary.
// Unknown fields are skipped.
func (cs *CommittedShare) UnmarshalBinary(data []byte) error {
	var (
		out      CommittedShare
		hasShare bool
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("dealer: bad committed share tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		if typ != protowire.BytesType || num < committedShareField || num > committedProofField {
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("dealer: bad committed share field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
			continue
		}
		v, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return fmt.Errorf("dealer: bad committed share field %d: %w", num, protowire.ParseError(n))
		}
		data = data[n:]
		switch num {
		case committedShareField:
			if err := out.Share.UnmarshalBinary(v); err != nil {
				return err
			}
			hasShare = true
		case committedSaltField:
			out.Salt = append([]byte{}, v...)
		case committedProofField:
			out.Proof = new(merkle.Proof)
			if err := out.Proof.UnmarshalBinary(v); err != nil {
				return err
			}
		}
	}
	if !hasShare {
		return errors.New("dealer: committed share has no share")
	}
	if out.Proof == nil {
		return errors.New("dealer: committed share has no proof")
	}
	*cs = out
	return nil
}
