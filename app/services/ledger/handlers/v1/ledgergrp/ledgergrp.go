// Package ledgergrp maintains the group of handlers for ledger access.
package ledgergrp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/ledger/business/sys/metrics"
	"github.com/ardanlabs/ledger/business/sys/validate"
	"github.com/ardanlabs/ledger/business/web/errs"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/ledger"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log           *zap.SugaredLogger
	Ledger        *ledger.Ledger
	CreatorID     string
	MaxDifficulty uint
	MiningTimeout time.Duration
	WS            websocket.Upgrader
	Evts          *events.Events
}

// AddBlock records the transaction in a new block linked to the tail of the
// chain. The call returns once the block has been mined.
func (h Handlers) AddBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx newTx
	if err := web.Decode(r, &ntx); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(ntx); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	tx, err := database.NewTx(ntx.Sender, ntx.Receiver, ntx.Amount)
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	creatorID := ntx.CreatorID
	if creatorID == "" {
		creatorID = h.CreatorID
	}

	h.Log.Infow("add block", "traceid", v.TraceID, "tx", tx, "creator", creatorID, "difficulty", h.Ledger.Difficulty())

	if h.MiningTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.MiningTimeout)
		defer cancel()
	}

	blk, index, err := h.Ledger.AppendTx(ctx, tx, creatorID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return errs.NewTrusted(fmt.Errorf("block not mined: %w", err), http.StatusServiceUnavailable)
		}
		return fmt.Errorf("appending block: %w", err)
	}
	metrics.AddMined(ctx)

	return web.Respond(ctx, w, toBlock(index, h.Ledger.Hash(blk), blk), http.StatusCreated)
}

// QueryBlocks returns all the blocks in the chain in order.
func (h Handlers) QueryBlocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blks := h.Ledger.Blocks()

	out := make([]block, len(blks))
	for i, blk := range blks {
		out[i] = toBlock(i, h.Ledger.Hash(blk), blk)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// QueryBlock returns the block at the specified index.
func (h Handlers) QueryBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	index, err := strconv.Atoi(web.Param(r, "index"))
	if err != nil {
		return errs.NewTrusted(fmt.Errorf("invalid index: %w", err), http.StatusBadRequest)
	}

	blk, err := h.Ledger.Block(index)
	if err != nil {
		if errors.Is(err, ledger.ErrBlockNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return fmt.Errorf("querying block[%d]: %w", index, err)
	}

	return web.Respond(ctx, w, toBlock(index, h.Ledger.Hash(blk), blk), http.StatusOK)
}

// QueryDifficulty returns the difficulty used for the next block.
func (h Handlers) QueryDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	d := difficulty{
		Difficulty:    h.Ledger.Difficulty(),
		MaxDifficulty: h.MaxDifficulty,
		Algorithm:     h.Ledger.Algorithm().String(),
	}

	return web.Respond(ctx, w, d, http.StatusOK)
}

// SetDifficulty changes the difficulty used for future blocks.
func (h Handlers) SetDifficulty(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var sd setDifficulty
	if err := web.Decode(r, &sd); err != nil {
		return errs.NewTrusted(fmt.Errorf("unable to decode payload: %w", err), http.StatusBadRequest)
	}

	if err := validate.Check(sd); err != nil {
		return fmt.Errorf("validating data: %w", err)
	}

	if *sd.Difficulty > h.MaxDifficulty {
		err := fmt.Errorf("difficulty %d is above the max of %d", *sd.Difficulty, h.MaxDifficulty)
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	h.Log.Infow("set difficulty", "traceid", v.TraceID, "difficulty", *sd.Difficulty)

	if err := h.Ledger.SetDifficulty(*sd.Difficulty); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	return h.QueryDifficulty(ctx, w, r)
}

// Validate walks the chain and reports if every block is linked to its parent.
// A broken chain is a normal result, not an error.
func (h Handlers) Validate(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := validation{
		Valid:  true,
		Blocks: h.Ledger.Length(),
	}

	if err := h.Ledger.Validate(); err != nil {
		resp.Valid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Events handles a web socket to provide ledger events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the ledger or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}
