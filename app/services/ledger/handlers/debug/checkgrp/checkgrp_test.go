package checkgrp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/app/services/ledger/handlers/debug/checkgrp"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/ledger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_ReadinessWhileMining(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(64))

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	mining := make(chan struct{})
	go func() {
		defer close(mining)
		l.AppendTx(ctx, tx, "42")
	}()
	defer func() {
		cancel()
		<-mining
	}()

	// Give the miner time to take the ledger.
	time.Sleep(50 * time.Millisecond)

	cgh := checkgrp.Handlers{
		Build:  "test",
		Log:    zap.NewNop().Sugar(),
		Ledger: l,
	}

	t.Log("Given the need to check readiness while a block is being mined.")
	{
		w := httptest.NewRecorder()
		done := make(chan struct{})
		go func() {
			defer close(done)
			cgh.Readiness(w, httptest.NewRequest(http.MethodGet, "/debug/readiness", nil))
		}()

		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatalf("\t%s\tShould answer readiness without waiting on the miner.", failed)
		}
		t.Logf("\t%s\tShould answer readiness without waiting on the miner.", success)

		if w.Code != http.StatusOK {
			t.Fatalf("\t%s\tShould receive a status code of 200: %d", failed, w.Code)
		}
		t.Logf("\t%s\tShould receive a status code of 200.", success)
	}
}
