package ledger

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
)

// LinkError is returned from Validate when a block's previous hash doesn't
// match the digest of its parent.
type LinkError struct {
	Index int    // Position of the block holding the bad link.
	Got   string // Previous hash recorded in the block.
	Exp   string // Digest of the parent block.
}

// Error implements the error interface.
func (le *LinkError) Error() string {
	return fmt.Sprintf("block %d: parent block hash doesn't match, got %s, exp %s", le.Index, le.Got, le.Exp)
}

// IsLinkError checks if an error of type LinkError exists.
func IsLinkError(err error) bool {
	var le *LinkError
	return errors.As(err, &le)
}

// =============================================================================

// IsValid walks the chain and reports whether every block is linked to the
// digest of its parent. Proof of work is not checked.
func (l *Ledger) IsValid() bool {
	return l.Validate() == nil
}

// Validate walks the chain and returns a LinkError for the first block that
// isn't linked to the digest of its parent.
func (l *Ledger) Validate() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err := validateLinks(l.blocks, l.algorithm); err != nil {
		l.evHandler("ledger: Validate: chain is invalid: %s", err)
		return err
	}

	l.evHandler("ledger: Validate: chain is valid: blocks[%d]", len(l.blocks))
	return nil
}

func validateLinks(blocks []database.Block, alg digest.Algorithm) error {
	if len(blocks) == 0 {
		return nil
	}

	hash := blocks[0].HashWith(alg)
	for i, block := range blocks[1:] {
		if block.PrevHash != hash {
			return &LinkError{Index: i + 1, Got: block.PrevHash, Exp: hash}
		}

		hash = block.HashWith(alg)
	}

	return nil
}
