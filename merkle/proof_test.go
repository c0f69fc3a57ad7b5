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
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	tmp "github.com/iotledger/iotcrypto/testonly"
	"google.golang.org/protobuf/encoding/protowire"
)

func TestProofMarshalRoundTrip(t *testing.T) {
	records := tmp.Records(7)
	tree, err := Build(records, sha256Sum)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, r := range records {
		p, err := tree.Prove(uint64(i))
		if err != nil {
			t.Fatalf("Prove(%d): %v", i, err)
		}
		b, err := p.MarshalBinary()
		if err != nil {
			t.Fatalf("MarshalBinary: %v", err)
		}
		var got Proof
		if err := got.UnmarshalBinary(b); err != nil {
			t.Fatalf("UnmarshalBinary: %v", err)
		}
		if diff := cmp.Diff(p, &got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("round trip mismatch (-want +got):\n%s", diff)
		}
		if !Verify(LeafHash(sha256Sum, r), &got, tree.Root(), sha256Sum) {
			t.Errorf("decoded proof for leaf %d does not verify", i)
		}
	}
}

func TestProofUnmarshalSkipsUnknownFields(t *testing.T) {
	p := &Proof{LeafIndex: 1, TreeSize: 2, Steps: []Step{{Side: Left, Hash: []byte{1, 2, 3}}}}
	b, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}
	b = protowire.AppendTag(b, 15, protowire.BytesType)
	b = protowire.AppendBytes(b, []byte("future"))
	var got Proof
	if err := got.UnmarshalBinary(b); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if diff := cmp.Diff(p, &got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestProofUnmarshalMalformed(t *testing.T) {
	badSide := protowire.AppendTag(nil, stepSideField, protowire.VarintType)
	badSide = protowire.AppendVarint(badSide, 7)
	for _, tc := range []struct {
		desc string
		data []byte
	}{
		{desc: "truncated tag", data: []byte{0x80}},
		{desc: "truncated varint", data: []byte{0x08, 0xff}},
		{desc: "truncated step", data: []byte{0x1a, 0x05, 0x08}},
		{desc: "unknown side", data: protowire.AppendBytes(protowire.AppendTag(nil, proofStepField, protowire.BytesType), badSide)},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			var p Proof
			if err := p.UnmarshalBinary(tc.data); err == nil {
				t.Errorf("UnmarshalBinary(%x) succeeded, want error", tc.data)
			}
		})
	}
}

func TestSideString(t *testing.T) {
	for _, tc := range []struct {
		s    Side
		want string
	}{
		{None, "none"}, {Left, "left"}, {Right, "right"}, {Side(9), "Side(9)"},
	} {
		if got := tc.s.String(); got != tc.want {
			t.Errorf("Side(%d).String()=%q, want %q", tc.s, got, tc.want)
		}
	}
}
