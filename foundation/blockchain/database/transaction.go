package database

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned from NewTx when the amount is negative.
var ErrInvalidAmount = errors.New("transaction amount must not be negative")

// =============================================================================

// Tx is the transactional information between two parties recorded in a block.
type Tx struct {
	Sender   string          `json:"sender"`   // Party sending the value.
	Receiver string          `json:"receiver"` // Party receiving the value.
	Amount   decimal.Decimal `json:"amount"`   // Value moved, never negative.
}

// NewTx constructs a new transaction.
func NewTx(sender string, receiver string, amount decimal.Decimal) (Tx, error) {
	if amount.IsNegative() {
		return Tx{}, fmt.Errorf("amount %s: %w", amount, ErrInvalidAmount)
	}

	tx := Tx{
		Sender:   sender,
		Receiver: receiver,
		Amount:   amount,
	}

	return tx, nil
}

// String implements the fmt.Stringer interface. This is the canonical form
// of the transaction that is fed into the block digest.
func (tx Tx) String() string {
	return fmt.Sprintf("Transaction(sender=%s, receiver=%s, amount=%s)", tx.Sender, tx.Receiver, tx.Amount)
}
