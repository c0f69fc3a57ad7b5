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

// parent returns the index of the parent node in the parent level of the tree.
func parent(index uint64) uint64 {
	return index >> 1
}

// isRightChild returns true if the node is a right child.
func isRightChild(index uint64) bool {
	return index&1 == 1
}

// sides returns the sibling side at every level on the path from leaf index
// to the root of a tree with size leaves. The result is fully determined by
// the pair (index, size), which is what binds a proof to its leaf position.
// Requires index < size.
func sides(index, size uint64) []Side {
	var ret []Side
	for lastNode := size - 1; lastNode > 0; lastNode = parent(lastNode) {
		switch {
		case isRightChild(index):
			ret = append(ret, Left)
		case index < lastNode:
			ret = append(ret, Right)
		default:
			// The node is the unpaired last node of its level and is promoted
			// unchanged.
			ret = append(ret, None)
		}
		index = parent(index)
	}
	return ret
}
