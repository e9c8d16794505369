// Package database handles the data model for the blockchain: transactions,
// blocks and the proof of work needed to admit a block into the chain.
package database

import (
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// TimeStampFormat is the layout used for a block's creation time.
const TimeStampFormat = "15:04:05"

// =============================================================================

// Block represents a single transaction committed to the chain along with
// the information linking it to its parent.
type Block struct {
	Tx        Tx     `json:"tx"`         // Transaction recorded by this block.
	CreatorID string `json:"creator_id"` // Account who constructed the block.
	PrevHash  string `json:"prev_hash"`  // Bitcoin: Hash of the previous block in the chain.
	TimeStamp string `json:"timestamp"`  // Time the block was constructed.
	Nonce     uint64 `json:"nonce"`      // Bitcoin: Value identified to solve the hash solution.
}

// BlockOption changes how NewBlock constructs a block.
type BlockOption func(b *blockConfig)

type blockConfig struct {
	timeStamp string
	now       func() time.Time
}

// WithTimeStamp sets the creation time of the block to the specified value.
func WithTimeStamp(timeStamp string) BlockOption {
	return func(b *blockConfig) {
		b.timeStamp = timeStamp
	}
}

// WithClock replaces the wall clock used to stamp the block.
func WithClock(now func() time.Time) BlockOption {
	return func(b *blockConfig) {
		b.now = now
	}
}

// NewBlock constructs a candidate block ready to be mined. The nonce starts
// at zero and the timestamp is taken from the clock at the time of this call
// unless one is provided.
func NewBlock(tx Tx, creatorID string, prevHash string, options ...BlockOption) Block {
	cfg := blockConfig{
		now: time.Now,
	}

	for _, option := range options {
		option(&cfg)
	}

	if cfg.timeStamp == "" {
		cfg.timeStamp = cfg.now().UTC().Format(TimeStampFormat)
	}

	return Block{
		Tx:        tx,
		CreatorID: creatorID,
		PrevHash:  prevHash,
		TimeStamp: cfg.timeStamp,
		Nonce:     0,
	}
}

// Hash returns the SHA256 digest for the block.
func (b Block) Hash() string {
	return b.HashWith(digest.SHA256)
}

// HashWith returns the digest for the block using the specified algorithm.
// The hash is never cached since the nonce changes while mining.
func (b Block) HashWith(alg digest.Algorithm) string {
	return alg.Hex(
		b.Tx.String(),
		b.CreatorID,
		b.PrevHash,
		b.TimeStamp,
		strconv.FormatUint(b.Nonce, 10),
	)
}

// IncrementNonce moves the nonce to the next value to try.
func (b *Block) IncrementNonce() {
	b.Nonce++
}
