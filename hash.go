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

// Package iotcrypto holds the types shared by the tamper-evidence and
// secret-sharing packages of this module.
package iotcrypto

import (
	"bytes"
	"encoding/hex"
)

// Hash represents the output of a digest function, most commonly a Merkle
// tree root.
type Hash []byte

func (h Hash) String() string {
	return hex.EncodeToString(h)
}

// Equal reports whether h and o hold the same bytes.
func (h Hash) Equal(o Hash) bool {
	return bytes.Equal(h, o)
}
