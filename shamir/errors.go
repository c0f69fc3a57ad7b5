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
	"fmt"
	"math/big"
)

// InvalidThresholdError is returned when a threshold is not in [1, total].
type InvalidThresholdError struct {
	Threshold int
	Total     int
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("shamir: threshold %d must satisfy 1 <= threshold <= %d", e.Threshold, e.Total)
}

// ShareCountOverflowError is returned when more shares are requested than
// the field has distinct nonzero evaluation points.
type ShareCountOverflowError struct {
	Total    int
	MaxIndex *big.Int
}

func (e *ShareCountOverflowError) Error() string {
	return fmt.Sprintf("shamir: cannot create %d shares, the field has only %v nonzero indices", e.Total, e.MaxIndex)
}

// DuplicateIndexError is returned when two shares have the same index.
type DuplicateIndexError struct {
	Index int
}

func (e *DuplicateIndexError) Error() string {
	return fmt.Sprintf("shamir: duplicate share index %d", e.Index)
}

// InsufficientSharesError is returned when fewer shares than the threshold
// are supplied for reconstruction.
type InsufficientSharesError struct {
	Have int
	Need int
}

func (e *InsufficientSharesError) Error() string {
	return fmt.Sprintf("shamir: insufficient shares: need %d, got %d", e.Need, e.Have)
}

// InvalidShareError is returned for a share whose index or value is not a
// valid field element for its role.
type InvalidShareError struct {
	Index  int
	Reason string
}

func (e *InvalidShareError) Error() string {
	return fmt.Sprintf("shamir: invalid share %d: %s", e.Index, e.Reason)
}
