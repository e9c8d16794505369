package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// cancelCheckInterval is how many attempts are made between checks of the
// context for cancellation.
const cancelCheckInterval = 1_024

// ErrUnsolvable is returned from POW when the difficulty asks for more zeros
// than the digest has characters.
var ErrUnsolvable = errors.New("difficulty exceeds the digest length")

// Mine performs the work to find a nonce that solves the cryptographic POW
// puzzle for the specified difficulty using SHA256. The search starts from
// the block's current nonce and blocks until it is solved. A difficulty larger
// than the digest length can never be solved and the block is returned
// unchanged.
func Mine(block Block, difficulty uint) Block {
	nb, _ := POW(context.Background(), block, difficulty, digest.SHA256, nil)
	return nb
}

// POW performs the work to find a nonce that solves the cryptographic POW
// puzzle. The first nonce at or after the block's current nonce that solves
// the puzzle is kept. The search can be cancelled through the context.
func POW(ctx context.Context, block Block, difficulty uint, alg digest.Algorithm, ev func(v string, args ...any)) (Block, error) {
	if ev == nil {
		ev = func(string, ...any) {}
	}

	if difficulty > uint(alg.Length()) {
		return block, fmt.Errorf("difficulty %d, max %d: %w", difficulty, alg.Length(), ErrUnsolvable)
	}

	ev("database: POW: MINING: started: difficulty[%d] nonce[%d]", difficulty, block.Nonce)
	defer ev("database: POW: MINING: completed")

	// Loop until we find a solution or are told to stop.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: POW: MINING: attempts[%d]", attempts)
		}

		if attempts%cancelCheckInterval == 0 && ctx.Err() != nil {
			ev("database: POW: MINING: CANCELLED: attempts[%d]", attempts)
			return Block{}, ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := block.HashWith(alg)
		if !IsHashSolved(difficulty, hash) {
			block.IncrementNonce()
			continue
		}

		ev("database: POW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]: nonce[%d]", block.PrevHash, hash, block.Nonce)
		ev("database: POW: MINING: attempts[%d]", attempts)

		return block, nil
	}
}

// IsHashSolved checks the hash to make sure it complies with the POW rules.
// We need to match a difficulty number of leading 0 hex characters.
func IsHashSolved(difficulty uint, hash string) bool {
	if difficulty > uint(len(hash)) {
		return false
	}

	return hash[:difficulty] == strings.Repeat("0", int(difficulty))
}
