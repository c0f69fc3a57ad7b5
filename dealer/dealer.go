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

// Package dealer distributes a secret as Shamir shares whose integrity can be
// checked against a single published digest.
//
// Each share is committed, together with a random salt, as a leaf of a Merkle
// tree. The tree root is published; every share holder receives the share,
// its salt and an inclusion proof. At recovery time each supplied share is
// verified against the root before any interpolation happens, so a forged or
// corrupted share is rejected instead of silently producing a wrong secret.
package dealer

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/iotledger/iotcrypto"
	"github.com/iotledger/iotcrypto/field"
	"github.com/iotledger/iotcrypto/merkle"
	"github.com/iotledger/iotcrypto/merkle/hashers"
	"github.com/iotledger/iotcrypto/monitoring"
	"github.com/iotledger/iotcrypto/shamir"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// DefaultSaltSize is the number of salt bytes committed with each share.
const DefaultSaltSize = 32

// Options configures a Dealer. Zero fields take the documented defaults.
type Options struct {
	// Field is the field shares live in. Default field.Mersenne127.
	Field field.ID `yaml:"field"`
	// Hash is the commitment tree's digest. Default hashers.SHA256.
	Hash hashers.Strategy `yaml:"hash"`
	// SaltSize is the per-share salt length in bytes. Default
	// DefaultSaltSize.
	SaltSize int `yaml:"salt_size"`
	// Rand supplies polynomial coefficients and salts. Default
	// crypto/rand.Reader.
	Rand io.Reader `yaml:"-"`
	// MetricFactory receives the dealer's metrics. Default
	// monitoring.InertMetricFactory.
	MetricFactory monitoring.MetricFactory `yaml:"-"`
}

// CommittedShare is a share with the material needed to check it against a
// dealing's root.
type CommittedShare struct {
	shamir.Share
	Salt  []byte
	Proof *merkle.Proof
}

// Dealing is the result of Deal.
type Dealing struct {
	// Root commits to every share of the dealing.
	Root      iotcrypto.Hash
	Threshold int
	Total     int
	// Shares[i] has index i+1.
	Shares []CommittedShare
}

// Dealer splits secrets into committed shares and recovers them. A Dealer
// is safe for concurrent use if its random source is.
type Dealer struct {
	field    *field.Field
	hash     merkle.HashFunc
	saltSize int
	rand     io.Reader
	splitter *shamir.Splitter
	metrics  *dealerMetrics
}

type dealerMetrics struct {
	deals       monitoring.Counter
	dealLatency monitoring.Histogram
	shares      monitoring.Counter
	recoveries  monitoring.Counter
}

func newMetrics(mf monitoring.MetricFactory) *dealerMetrics {
	return &dealerMetrics{
		deals:       mf.NewCounter("dealer_deals", "Number of secrets dealt, by result", "result"),
		dealLatency: mf.NewHistogram("dealer_deal_seconds", "Time taken to split and commit a secret", monitoring.OperationBuckets()),
		shares:      mf.NewCounter("dealer_verified_shares", "Number of committed shares checked, by result", "result"),
		recoveries:  mf.NewCounter("dealer_recoveries", "Number of recovery attempts, by result", "result"),
	}
}

// New returns a Dealer configured by opts.
func New(opts Options) (*Dealer, error) {
	if opts.Field == field.UnknownField {
		opts.Field = field.Mersenne127
	}
	if opts.Hash == hashers.UnknownStrategy {
		opts.Hash = hashers.SHA256
	}
	if opts.SaltSize == 0 {
		opts.SaltSize = DefaultSaltSize
	}
	if opts.SaltSize < 0 {
		return nil, fmt.Errorf("dealer: negative salt size %d", opts.SaltSize)
	}
	if opts.Rand == nil {
		opts.Rand = rand.Reader
	}
	if opts.MetricFactory == nil {
		opts.MetricFactory = monitoring.InertMetricFactory{}
	}
	f, err := field.ByID(opts.Field)
	if err != nil {
		return nil, fmt.Errorf("dealer: %w", err)
	}
	fn, err := hashers.New(opts.Hash)
	if err != nil {
		return nil, fmt.Errorf("dealer: %w", err)
	}
	return &Dealer{
		field:    f,
		hash:     fn,
		saltSize: opts.SaltSize,
		rand:     opts.Rand,
		splitter: shamir.NewSplitter(f, opts.Rand),
		metrics:  newMetrics(opts.MetricFactory),
	}, nil
}

// Field returns the field shares are dealt in.
func (d *Dealer) Field() *field.Field {
	return d.field
}

// Deal splits secret into n shares with threshold t and commits to them.
func (d *Dealer) Deal(ctx context.Context, secret *big.Int, n, t int) (*Dealing, error) {
	start := time.Now()
	dealing, err := d.deal(ctx, secret, n, t)
	if err != nil {
		d.metrics.deals.Inc("error")
		return nil, err
	}
	d.metrics.deals.Inc("ok")
	d.metrics.dealLatency.Observe(time.Since(start).Seconds())
	klog.V(1).Infof("dealer: dealt %d shares with threshold %d, root %v", n, t, dealing.Root)
	return dealing, nil
}

func (d *Dealer) deal(ctx context.Context, secret *big.Int, n, t int) (*Dealing, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	shares, err := d.splitter.Split(secret, n, t)
	if err != nil {
		return nil, err
	}

	committed := make([]CommittedShare, n)
	leaves := make([][]byte, n)
	for i, sh := range shares {
		salt := make([]byte, d.saltSize)
		if _, err := io.ReadFull(d.rand, salt); err != nil {
			return nil, fmt.Errorf("dealer: failed to generate salt: %w", err)
		}
		committed[i] = CommittedShare{Share: sh, Salt: salt}
		leaves[i] = encodeLeaf(d.field, sh, salt)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := merkle.Build(leaves, d.hash)
	if err != nil {
		return nil, fmt.Errorf("dealer: failed to build commitment tree: %w", err)
	}
	for i := range committed {
		p, err := tree.Prove(uint64(i))
		if err != nil {
			return nil, fmt.Errorf("dealer: failed to prove share %d: %w", i+1, err)
		}
		committed[i].Proof = p
	}
	return &Dealing{
		Root:      tree.Root(),
		Threshold: t,
		Total:     n,
		Shares:    committed,
	}, nil
}

// VerifyShare checks that cs is one of the shares committed to by root.
func (d *Dealer) VerifyShare(root iotcrypto.Hash, cs CommittedShare) error {
	if cs.Proof == nil {
		return errors.New("dealer: share has no proof")
	}
	if cs.Index < 1 {
		return fmt.Errorf("dealer: invalid share index %d", cs.Index)
	}
	// Share i sits at leaf i-1; a proof for any other position cannot vouch
	// for this index.
	if cs.Proof.LeafIndex != uint64(cs.Index-1) {
		return fmt.Errorf("dealer: proof is for leaf %d, share %d is at leaf %d", cs.Proof.LeafIndex, cs.Index, cs.Index-1)
	}
	if !d.field.Contains(cs.Value) {
		return fmt.Errorf("dealer: share %d value is not a field element", cs.Index)
	}
	leafHash := merkle.LeafHash(d.hash, encodeLeaf(d.field, cs.Share, cs.Salt))
	return merkle.VerifyInclusion(leafHash, cs.Proof, root, d.hash)
}

// Recover verifies every supplied share against root and reconstructs the
// secret from the first t of them. Any share that fails verification aborts
// recovery with an *UnverifiedShareError.
func (d *Dealer) Recover(ctx context.Context, root iotcrypto.Hash, shares []CommittedShare, t int) (*big.Int, error) {
	secret, err := d.recover(ctx, root, shares, t)
	if err != nil {
		d.metrics.recoveries.Inc("error")
		return nil, err
	}
	d.metrics.recoveries.Inc("ok")
	return secret, nil
}

func (d *Dealer) recover(ctx context.Context, root iotcrypto.Hash, shares []CommittedShare, t int) (*big.Int, error) {
	g, gctx := errgroup.WithContext(ctx)
	for _, cs := range shares {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := d.VerifyShare(root, cs); err != nil {
				d.metrics.shares.Inc("rejected")
				klog.Warningf("dealer: rejected share %d: %v", cs.Index, err)
				return &UnverifiedShareError{Index: cs.Index, Err: err}
			}
			d.metrics.shares.Inc("verified")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plain := make([]shamir.Share, len(shares))
	for i, cs := range shares {
		plain[i] = cs.Share
	}
	return shamir.Reconstruct(d.field, plain, t)
}

// UnverifiedShareError is returned by Recover when a share does not match
// the dealing's root.
type UnverifiedShareError struct {
	Index int
	Err   error
}

func (e *UnverifiedShareError) Error() string {
	return fmt.Sprintf("dealer: share %d failed verification: %v", e.Index, e.Err)
}

func (e *UnverifiedShareError) Unwrap() error {
	return e.Err
}
