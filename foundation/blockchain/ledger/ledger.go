// Package ledger is the core API for the blockchain. It maintains the ordered
// chain of blocks, admits new blocks through proof of work and validates the
// linkage between blocks.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/shopspring/decimal"
)

// DefaultDifficulty is the number of leading zeros required when no
// difficulty is configured.
const DefaultDifficulty = 4

// GenesisPrevHash is the previous hash recorded in the genesis block.
const GenesisPrevHash = "0"

// Set of error variables for the ledger.
var (
	ErrInvalidDifficulty = errors.New("difficulty exceeds the digest length")
	ErrBlockNotFound     = errors.New("block not found")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of blocks.
type EventHandler func(v string, args ...any)

// Option changes the construction of a Ledger.
type Option func(l *Ledger)

// WithDifficulty sets the starting difficulty. A difficulty larger than the
// digest length causes every append to fail with database.ErrUnsolvable.
func WithDifficulty(difficulty uint) Option {
	return func(l *Ledger) {
		l.difficulty = difficulty
	}
}

// WithAlgorithm sets the digest algorithm used for mining and validation.
func WithAlgorithm(alg digest.Algorithm) Option {
	return func(l *Ledger) {
		l.algorithm = alg
	}
}

// WithClock replaces the wall clock used to stamp the genesis block and
// candidates built by the ledger.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithEventHandler registers a function to receive processing events.
func WithEventHandler(ev EventHandler) Option {
	return func(l *Ledger) {
		l.evHandler = ev
	}
}

// =============================================================================

// Ledger manages the chain of blocks. The sequence and the difficulty are
// protected as one unit. The write lock is held while a block is mined, so
// readers wait on the miner. Length is the exception and never waits.
type Ledger struct {
	mu         sync.RWMutex
	blocks     []database.Block
	difficulty uint
	length     atomic.Int64

	algorithm digest.Algorithm
	now       func() time.Time
	evHandler EventHandler
}

// New constructs a ledger seeded with an unmined genesis block.
func New(options ...Option) *Ledger {
	l := Ledger{
		difficulty: DefaultDifficulty,
		algorithm:  digest.SHA256,
		now:        time.Now,
	}

	for _, option := range options {
		option(&l)
	}

	// Build a safe event handler function for use.
	ev := l.evHandler
	l.evHandler = func(v string, args ...any) {
		if ev != nil {
			ev(v, args...)
		}
	}

	l.blocks = []database.Block{genesis(l.now)}
	l.length.Store(1)
	l.evHandler("ledger: New: genesis[%s]", l.blocks[0].HashWith(l.algorithm))

	return &l
}

// genesis constructs the block that seeds the chain. It is never mined.
func genesis(now func() time.Time) database.Block {
	tx := database.Tx{
		Sender:   "genesis",
		Receiver: "genesis",
		Amount:   decimal.Zero,
	}

	return database.NewBlock(tx, "0", GenesisPrevHash, database.WithClock(now))
}

// Append mines the candidate block against the current difficulty and adds
// it to the end of the chain. The candidate's previous hash is not checked
// here, IsValid will report a bad link. Append blocks until the block is mined.
func (l *Ledger) Append(candidate database.Block) database.Block {
	block, _ := l.AppendContext(context.Background(), candidate)
	return block
}

// AppendContext is Append with support for cancelling the mining operation.
// Nothing is added to the chain when mining is cancelled.
func (l *Ledger) AppendContext(ctx context.Context, candidate database.Block) (database.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	block, _, err := l.add(ctx, candidate)
	return block, err
}

// AppendTx builds a block for the transaction linked to the current tail,
// mines it and adds it to the chain. The tail can't move between building
// and adding the block, so concurrent callers always extend a valid chain.
// The position of the new block is returned with it.
func (l *Ledger) AppendTx(ctx context.Context, tx database.Tx, creatorID string) (database.Block, int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	candidate := database.NewBlock(tx, creatorID, l.tailHash(), database.WithClock(l.now))

	return l.add(ctx, candidate)
}

// add mines and pushes the candidate. The caller must hold the write lock.
func (l *Ledger) add(ctx context.Context, candidate database.Block) (database.Block, int, error) {
	l.evHandler("ledger: Append: MINING: perform POW: difficulty[%d]", l.difficulty)

	block, err := database.POW(ctx, candidate, l.difficulty, l.algorithm, l.evHandler)
	if err != nil {
		return database.Block{}, -1, fmt.Errorf("mining block: %w", err)
	}

	l.blocks = append(l.blocks, block)
	l.length.Store(int64(len(l.blocks)))

	index := len(l.blocks) - 1
	l.evHandler("ledger: Append: block[%d] added: hash[%s]", index, block.HashWith(l.algorithm))

	return block, index, nil
}

// Candidate constructs a block for the transaction that is linked to the
// current tail of the chain. The tail can move before the block is appended,
// use AppendTx when other goroutines write to the ledger.
func (l *Ledger) Candidate(tx database.Tx, creatorID string) database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return database.NewBlock(tx, creatorID, l.tailHash(), database.WithClock(l.now))
}

// SetDifficulty changes the difficulty used for future blocks. Blocks
// already in the chain are not affected.
func (l *Ledger) SetDifficulty(difficulty uint) error {
	if difficulty > uint(l.algorithm.Length()) {
		return fmt.Errorf("difficulty %d, max %d: %w", difficulty, l.algorithm.Length(), ErrInvalidDifficulty)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evHandler("ledger: SetDifficulty: from[%d] to[%d]", l.difficulty, difficulty)
	l.difficulty = difficulty

	return nil
}

// Difficulty returns the difficulty used for the next block.
func (l *Ledger) Difficulty() uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.difficulty
}

// Algorithm returns the digest algorithm used by the ledger.
func (l *Ledger) Algorithm() digest.Algorithm {
	return l.algorithm
}

// Hash returns the digest of the block using the ledger's algorithm.
func (l *Ledger) Hash(block database.Block) string {
	return block.HashWith(l.algorithm)
}

// TailHash returns the digest of the last block in the chain.
func (l *Ledger) TailHash() string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.tailHash()
}

func (l *Ledger) tailHash() string {
	return l.blocks[len(l.blocks)-1].HashWith(l.algorithm)
}

// Length returns the number of blocks in the chain, genesis included. It
// doesn't wait for a block being mined.
func (l *Ledger) Length() int {
	return int(l.length.Load())
}

// Blocks returns a copy of the chain in order.
func (l *Ledger) Blocks() []database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	blocks := make([]database.Block, len(l.blocks))
	copy(blocks, l.blocks)

	return blocks
}

// Block returns the block at the specified position in the chain.
func (l *Ledger) Block(index int) (database.Block, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if index < 0 || index >= len(l.blocks) {
		return database.Block{}, fmt.Errorf("index %d, length %d: %w", index, len(l.blocks), ErrBlockNotFound)
	}

	return l.blocks[index], nil
}
