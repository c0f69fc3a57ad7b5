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

package shamir

import (
	"errors"
	"fmt"
	"math/big"

	"google.golang.org/protobuf/encoding/protowire"
)

// Share is one evaluation of the sharing polynomial.
type Share struct {
	// Index is the evaluation point, in [1, n].
	Index int
	// Value is the polynomial evaluated at Index.
	Value *big.Int
}

// String omits the share value.
func (s Share) String() string {
	return fmt.Sprintf("Share{Index: %d}", s.Index)
}

// Wire format field numbers, as in the protobuf message
//
//	message Share { uint64 index = 1; bytes value = 2; }
const (
	shareIndexField protowire.Number = 1
	shareValueField protowire.Number = 2
)

// MarshalBinary encodes the share in a stable protobuf wire format. The
// value is encoded as a minimal big-endian integer.
func (s Share) MarshalBinary() ([]byte, error) {
	if s.Index < 1 {
		return nil, fmt.Errorf("shamir: cannot marshal share with index %d", s.Index)
	}
	if s.Value == nil || s.Value.Sign() < 0 {
		return nil, errors.New("shamir: cannot marshal share without a non-negative value")
	}
	var b []byte
	b = protowire.AppendTag(b, shareIndexField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Index))
	b = protowire.AppendTag(b, shareValueField, protowire.BytesType)
	b = protowire.AppendBytes(b, s.Value.Bytes())
	return b, nil
}

// UnmarshalBinary decodes a share produced by MarshalBinary. Unknown fields
// are skipped. Whether the share belongs to a given field is checked by
// Reconstruct.
func (s *Share) UnmarshalBinary(data []byte) error {
	var (
		out      Share
		hasIndex bool
	)
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return fmt.Errorf("shamir: bad share tag: %w", protowire.ParseError(n))
		}
		data = data[n:]
		switch {
		case num == shareIndexField && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return fmt.Errorf("shamir: bad share index: %w", protowire.ParseError(n))
			}
			if v == 0 || v > uint64(maxInt) {
				return fmt.Errorf("shamir: share index %d out of range", v)
			}
			out.Index = int(v)
			hasIndex = true
			data = data[n:]
		case num == shareValueField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return fmt.Errorf("shamir: bad share value: %w", protowire.ParseError(n))
			}
			out.Value = new(big.Int).SetBytes(v)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return fmt.Errorf("shamir: bad share field %d: %w", num, protowire.ParseError(n))
			}
			data = data[n:]
		}
	}
	if !hasIndex {
		return errors.New("shamir: share has no index")
	}
	if out.Value == nil {
		out.Value = new(big.Int)
	}
	*s = out
	return nil
}

const maxInt = int(^uint(0) >> 1)
