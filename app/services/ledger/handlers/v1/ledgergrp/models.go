package ledgergrp

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/shopspring/decimal"
)

type newTx struct {
	Sender    string          `json:"sender" validate:"required"`
	Receiver  string          `json:"receiver" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	CreatorID string          `json:"creator_id"`
}

type tx struct {
	Sender   string          `json:"sender"`
	Receiver string          `json:"receiver"`
	Amount   decimal.Decimal `json:"amount"`
}

type block struct {
	Index     int    `json:"index"`
	Hash      string `json:"hash"`
	PrevHash  string `json:"prev_hash"`
	CreatorID string `json:"creator_id"`
	TimeStamp string `json:"timestamp"`
	Nonce     uint64 `json:"nonce"`
	Tx        tx     `json:"tx"`
}

func toBlock(index int, hash string, blk database.Block) block {
	return block{
		Index:     index,
		Hash:      hash,
		PrevHash:  blk.PrevHash,
		CreatorID: blk.CreatorID,
		TimeStamp: blk.TimeStamp,
		Nonce:     blk.Nonce,
		Tx: tx{
			Sender:   blk.Tx.Sender,
			Receiver: blk.Tx.Receiver,
			Amount:   blk.Tx.Amount,
		},
	}
}

type setDifficulty struct {
	Difficulty *uint `json:"difficulty" validate:"required"`
}

type difficulty struct {
	Difficulty    uint   `json:"difficulty"`
	MaxDifficulty uint   `json:"max_difficulty"`
	Algorithm     string `json:"algorithm"`
}

type validation struct {
	Valid  bool   `json:"valid"`
	Blocks int    `json:"blocks"`
	Error  string `json:"error,omitempty"`
}
