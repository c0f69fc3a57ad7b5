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
	"errors"
	"fmt"

	"github.com/iotledger/iotcrypto/merkle/hashers"
	"gopkg.in/yaml.v2"
)

// DefaultMaxBatchSize is the number of records a block holds by default.
const DefaultMaxBatchSize = 1024

// Config configures a Ledger.
type Config struct {
	// HashStrategy is the digest used for block trees and headers.
	HashStrategy hashers.Strategy `yaml:"hash_strategy"`
	// MaxBatchSize caps the number of records pending in a block.
	MaxBatchSize int `yaml:"max_batch_size"`
}

// DefaultConfig returns a Config using SHA-256 and DefaultMaxBatchSize.
func DefaultConfig() Config {
	return Config{
		HashStrategy: hashers.SHA256,
		MaxBatchSize: DefaultMaxBatchSize,
	}
}

// ParseConfig decodes a YAML document into a Config. Keys that are absent
// keep their DefaultConfig values; unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("ledger: failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	if _, err := hashers.New(c.HashStrategy); err != nil {
		return fmt.Errorf("ledger: %w", err)
	}
	if c.MaxBatchSize < 1 {
		return errors.New("ledger: max_batch_size must be positive")
	}
	return nil
}
