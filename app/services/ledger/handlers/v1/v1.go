// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/v1/ledgergrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/ledger"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log           *zap.SugaredLogger
	Ledger        *ledger.Ledger
	Evts          *events.Events
	CreatorID     string
	MaxDifficulty uint
	MiningTimeout time.Duration
}

// Routes binds all the version 1 routes.
func Routes(app *web.App, cfg Config) {
	lgh := ledgergrp.Handlers{
		Log:           cfg.Log,
		Ledger:        cfg.Ledger,
		CreatorID:     cfg.CreatorID,
		MaxDifficulty: cfg.MaxDifficulty,
		MiningTimeout: cfg.MiningTimeout,
		WS:            websocket.Upgrader{},
		Evts:          cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", lgh.Events)
	app.Handle(http.MethodGet, version, "/blocks", lgh.QueryBlocks)
	app.Handle(http.MethodGet, version, "/blocks/:index", lgh.QueryBlock)
	app.Handle(http.MethodPost, version, "/blocks", lgh.AddBlock)
	app.Handle(http.MethodGet, version, "/difficulty", lgh.QueryDifficulty)
	app.Handle(http.MethodPut, version, "/difficulty", lgh.SetDifficulty)
	app.Handle(http.MethodGet, version, "/validate", lgh.Validate)
}
