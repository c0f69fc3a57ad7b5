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

// Package ledger keeps an append-only sequence of record batches. Each batch
// is sealed into a block whose header carries the root of a Merkle tree over
// the batch and the hash of the previous header, so that any later change to
// a sealed record or header is detectable. Holders of a receipt can check
// their record against a block header without the rest of the block.
package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/iotledger/iotcrypto"
	"github.com/iotledger/iotcrypto/merkle"
	"github.com/iotledger/iotcrypto/merkle/hashers"
	"github.com/iotledger/iotcrypto/monitoring"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"k8s.io/klog/v2"
)

const degree = 8

// sealed is a stored block. tree is built from records when the block is
// sealed and serves inclusion proofs.
type sealed struct {
	header  Header
	records [][]byte
	tree    *merkle.Tree
}

func byHeight(a, b *sealed) bool {
	return a.header.Height < b.header.Height
}

// Ledger is an in-memory sealed-batch ledger. It is safe for concurrent use.
type Ledger struct {
	cfg Config
	fn  merkle.HashFunc

	// mu guards pending and blocks.
	mu      sync.RWMutex
	pending [][]byte
	blocks  *btree.BTreeG[*sealed]

	metrics *ledgerMetrics
}

type ledgerMetrics struct {
	appended    monitoring.Counter
	pending     monitoring.Gauge
	sealed      monitoring.Counter
	blockSize   monitoring.Histogram
	sealLatency monitoring.Histogram
	audits      monitoring.Counter
}

func newMetrics(mf monitoring.MetricFactory) *ledgerMetrics {
	return &ledgerMetrics{
		appended:    mf.NewCounter("ledger_appended_records", "Number of records appended"),
		pending:     mf.NewGauge("ledger_pending_records", "Number of records waiting to be sealed"),
		sealed:      mf.NewCounter("ledger_sealed_blocks", "Number of blocks sealed"),
		blockSize:   mf.NewHistogram("ledger_block_size", "Records per sealed block", monitoring.SizeBuckets()),
		sealLatency: mf.NewHistogram("ledger_seal_seconds", "Time taken to seal a block", monitoring.OperationBuckets()),
		audits:      mf.NewCounter("ledger_audits", "Number of audits, by result", "result"),
	}
}

// New returns an empty ledger. A nil mf means monitoring.InertMetricFactory.
func New(cfg Config, mf monitoring.MetricFactory) (*Ledger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, err := hashers.New(cfg.HashStrategy)
	if err != nil {
		return nil, err
	}
	if mf == nil {
		mf = monitoring.InertMetricFactory{}
	}
	return &Ledger{
		cfg:     cfg,
		fn:      fn,
		blocks:  btree.NewG(degree, byHeight),
		metrics: newMetrics(mf),
	}, nil
}

// HashFunc returns the digest the ledger hashes with, for use with
// VerifyReceipt and VerifyChain.
func (l *Ledger) HashFunc() merkle.HashFunc {
	return l.fn
}

// Append adds a copy of record to the pending batch and returns the number
// of pending records.
func (l *Ledger) Append(ctx context.Context, record []byte) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, status.FromContextError(err).Err()
	}
	if len(record) == 0 {
		return 0, status.Error(codes.InvalidArgument, "empty record")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) >= l.cfg.MaxBatchSize {
		return 0, status.Errorf(codes.ResourceExhausted, "pending batch is full (%d records), seal it first", l.cfg.MaxBatchSize)
	}
	l.pending = append(l.pending, append([]byte(nil), record...))
	l.metrics.appended.Inc()
	l.metrics.pending.Set(float64(len(l.pending)))
	return len(l.pending), nil
}

// Seal turns the pending batch into the next block.
func (l *Ledger) Seal(ctx context.Context) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	start := time.Now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.pending) == 0 {
		return nil, status.Error(codes.FailedPrecondition, "no pending records to seal")
	}
	tree, err := merkle.Build(l.pending, l.fn)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "failed to build block tree: %v", err)
	}

	h := Header{
		Prev: genesisPrev(l.fn),
		Root: tree.Root(),
		Size: tree.LeafCount(),
	}
	if head, ok := l.blocks.Max(); ok {
		h.Height = head.header.Height + 1
		h.Prev = head.header.Hash
	}
	h.Hash = HeaderHash(l.fn, &h)

	b := &sealed{header: h, records: l.pending, tree: tree}
	l.blocks.ReplaceOrInsert(b)
	l.pending = nil

	l.metrics.sealed.Inc()
	l.metrics.pending.Set(0)
	l.metrics.blockSize.Observe(float64(h.Size))
	l.metrics.sealLatency.Observe(time.Since(start).Seconds())
	klog.V(1).Infof("ledger: sealed block %d with %d records, root %v", h.Height, h.Size, h.Root)
	return b.toBlock(), nil
}

func (s *sealed) toBlock() *Block {
	records := make([][]byte, len(s.records))
	for i, r := range s.records {
		records[i] = append([]byte(nil), r...)
	}
	return &Block{Header: s.header.clone(), Records: records}
}

func (h Header) clone() Header {
	h.Prev = append(iotcrypto.Hash(nil), h.Prev...)
	h.Root = append(iotcrypto.Hash(nil), h.Root...)
	h.Hash = append(iotcrypto.Hash(nil), h.Hash...)
	return h
}

// get returns the block at height. Callers hold l.mu.
func (l *Ledger) get(height uint64) (*sealed, error) {
	b, ok := l.blocks.Get(&sealed{header: Header{Height: height}})
	if !ok {
		return nil, status.Errorf(codes.NotFound, "no block at height %d", height)
	}
	return b, nil
}

// Block returns a copy of the block at height.
func (l *Ledger) Block(ctx context.Context, height uint64) (*Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, err := l.get(height)
	if err != nil {
		return nil, err
	}
	return b.toBlock(), nil
}

// Head returns the header of the latest block.
func (l *Ledger) Head(ctx context.Context) (*Header, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	head, ok := l.blocks.Max()
	if !ok {
		return nil, status.Error(codes.NotFound, "ledger has no blocks")
	}
	h := head.header.clone()
	return &h, nil
}

// Prove returns a receipt for the record at index in the block at height.
func (l *Ledger) Prove(ctx context.Context, height, index uint64) (*Receipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, status.FromContextError(err).Err()
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	b, err := l.get(height)
	if err != nil {
		return nil, err
	}
	p, err := b.tree.Prove(index)
	if err != nil {
		var ie *merkle.IndexOutOfRangeError
		if errors.As(err, &ie) {
			return nil, status.Errorf(codes.OutOfRange, "block %d: %v", height, err)
		}
		return nil, status.Errorf(codes.Internal, "block %d: %v", height, err)
	}
	return &Receipt{
		Height: height,
		Root:   append(iotcrypto.Hash(nil), b.header.Root...),
		Proof:  p,
	}, nil
}

// Audit recomputes every block's tree from its stored records and checks the
// header chain. Any inconsistency is reported as codes.DataLoss.
func (l *Ledger) Audit(ctx context.Context) error {
	err := l.audit(ctx)
	if err != nil {
		l.metrics.audits.Inc("failed")
		klog.Errorf("ledger: audit failed: %v", err)
		return err
	}
	l.metrics.audits.Inc("ok")
	return nil
}

func (l *Ledger) audit(ctx context.Context) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var (
		headers  []*Header
		auditErr error
	)
	l.blocks.Ascend(func(b *sealed) bool {
		if err := ctx.Err(); err != nil {
			auditErr = status.FromContextError(err).Err()
			return false
		}
		tree, err := merkle.Build(b.records, l.fn)
		if err != nil {
			auditErr = status.Errorf(codes.DataLoss, "block %d: %v", b.header.Height, err)
			return false
		}
		if got := tree.LeafCount(); got != b.header.Size {
			auditErr = status.Errorf(codes.DataLoss, "block %d holds %d records, header says %d", b.header.Height, got, b.header.Size)
			return false
		}
		if root := iotcrypto.Hash(tree.Root()); !root.Equal(b.header.Root) {
			auditErr = status.Errorf(codes.DataLoss, "block %d records hash to %v, header root is %v", b.header.Height, root, b.header.Root)
			return false
		}
		h := b.header
		headers = append(headers, &h)
		return true
	})
	if auditErr != nil {
		return auditErr
	}
	if err := VerifyChain(l.fn, headers); err != nil {
		return status.Error(codes.DataLoss, err.Error())
	}
	return nil
}
