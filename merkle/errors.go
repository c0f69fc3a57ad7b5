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
)

// ErrEmptyInput is returned by Build when no leaves are supplied. A tree
// always has at least one leaf.
var ErrEmptyInput = errors.New("merkle: cannot build a tree from zero leaves")

// IndexOutOfRangeError is returned when a leaf index does not address a leaf
// of the tree.
type IndexOutOfRangeError struct {
	Index uint64
	Size  uint64
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("merkle: leaf index %d out of range for tree of size %d", e.Index, e.Size)
}

// RootMismatchError occurs when an inclusion proof fails.
type RootMismatchError struct {
	ExpectedRoot   []byte
	CalculatedRoot []byte
}

func (e RootMismatchError) Error() string {
	return fmt.Sprintf("calculated root:\n%x\n does not match expected root:\n%x", e.CalculatedRoot, e.ExpectedRoot)
}
