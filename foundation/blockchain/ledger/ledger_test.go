package ledger_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/digest"
	"github.com/ardanlabs/ledger/foundation/blockchain/ledger"
	"github.com/shopspring/decimal"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func ifErrFailNow(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Error(err)
		t.FailNow()
	}
}

// =============================================================================

func Test_Genesis(t *testing.T) {
	l := ledger.New()

	if l.Length() != 1 {
		t.Fatalf("\t%s\tShould start with only the genesis block, got %d.", failed, l.Length())
	}
	t.Logf("\t%s\tShould start with only the genesis block.", success)

	if l.Difficulty() != ledger.DefaultDifficulty {
		t.Fatalf("\t%s\tShould start with the default difficulty, got %d.", failed, l.Difficulty())
	}
	t.Logf("\t%s\tShould start with the default difficulty.", success)

	gen := l.Blocks()[0]
	if gen.PrevHash != ledger.GenesisPrevHash || gen.Nonce != 0 {
		t.Fatalf("\t%s\tShould have an unmined genesis block: prev[%s] nonce[%d].", failed, gen.PrevHash, gen.Nonce)
	}
	t.Logf("\t%s\tShould have an unmined genesis block.", success)

	if l.TailHash() != gen.Hash() {
		t.Fatalf("\t%s\tShould have the genesis block as the tail.", failed)
	}
	t.Logf("\t%s\tShould have the genesis block as the tail.", success)

	if !l.IsValid() {
		t.Fatalf("\t%s\tShould be valid with only the genesis block.", failed)
	}
	t.Logf("\t%s\tShould be valid with only the genesis block.", success)
}

func Test_EndToEnd(t *testing.T) {
	t.Log("Given the need to add transactions to the ledger.")
	{
		l := ledger.New(ledger.WithDifficulty(2))

		tx, err := database.NewTx("1", "B", decimal.NewFromFloat(10.0))
		ifErrFailNow(t, err)

		candidate := database.NewBlock(tx, "42", l.Blocks()[0].Hash())
		l.Append(candidate)

		if l.Length() != 2 {
			t.Fatalf("\t%s\tShould have two blocks, got %d.", failed, l.Length())
		}
		t.Logf("\t%s\tShould have two blocks.", success)

		if !l.IsValid() {
			t.Fatalf("\t%s\tShould be valid after appending a linked block.", failed)
		}
		t.Logf("\t%s\tShould be valid after appending a linked block.", success)

		mined := l.Blocks()[1]
		if !strings.HasPrefix(mined.Hash(), "00") {
			t.Fatalf("\t%s\tShould have mined the block to two zeros, got %s.", failed, mined.Hash())
		}
		t.Logf("\t%s\tShould have mined the block to two zeros.", success)

		bad := database.NewBlock(tx, "42", "not-the-tail-hash")
		l.Append(bad)

		if l.Length() != 3 {
			t.Fatalf("\t%s\tShould accept a block with a bad link, got %d blocks.", failed, l.Length())
		}
		t.Logf("\t%s\tShould accept a block with a bad link.", success)

		if l.IsValid() {
			t.Fatalf("\t%s\tShould be invalid after appending a block with a bad link.", failed)
		}
		t.Logf("\t%s\tShould be invalid after appending a block with a bad link.", success)

		var le *ledger.LinkError
		if !errors.As(l.Validate(), &le) || le.Index != 2 {
			t.Fatalf("\t%s\tShould report the bad link at block 2: %v", failed, l.Validate())
		}
		t.Logf("\t%s\tShould report the bad link at block 2.", success)
	}
}

func Test_AppendMany(t *testing.T) {
	type table struct {
		name       string
		alg        digest.Algorithm
		difficulty uint
		blocks     int
	}

	tt := []table{
		{name: "sha256", alg: digest.SHA256, difficulty: 2, blocks: 5},
		{name: "keccak256", alg: digest.Keccak256, difficulty: 2, blocks: 5},
		{name: "no-work", alg: digest.SHA256, difficulty: 0, blocks: 20},
	}

	for _, tst := range tt {
		f := func(t *testing.T) {
			l := ledger.New(ledger.WithAlgorithm(tst.alg), ledger.WithDifficulty(tst.difficulty))

			for i := 0; i < tst.blocks; i++ {
				tx, err := database.NewTx(fmt.Sprint(i), "B", decimal.NewFromInt(int64(i)))
				ifErrFailNow(t, err)

				block := l.Append(l.Candidate(tx, "42"))
				if !database.IsHashSolved(tst.difficulty, l.Hash(block)) {
					t.Fatalf("Test %s:\tShould mine block %d against the difficulty.", tst.name, i)
				}

				if l.TailHash() != l.Hash(block) {
					t.Fatalf("Test %s:\tShould advance the tail to block %d.", tst.name, i)
				}
			}

			if l.Length() != tst.blocks+1 {
				t.Fatalf("Test %s:\tShould have %d blocks, got %d.", tst.name, tst.blocks+1, l.Length())
			}

			for n := 0; n < 3; n++ {
				if !l.IsValid() {
					t.Fatalf("Test %s:\tShould stay valid: %v", tst.name, l.Validate())
				}
			}
		}

		t.Run(tst.name, f)
	}
}

func Test_Difficulty(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(1))

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	ifErrFailNow(t, err)

	first := l.Append(l.Candidate(tx, "42"))

	ifErrFailNow(t, l.SetDifficulty(3))
	if l.Difficulty() != 3 {
		t.Fatalf("\t%s\tShould change the difficulty, got %d.", failed, l.Difficulty())
	}
	t.Logf("\t%s\tShould change the difficulty.", success)

	second := l.Append(l.Candidate(tx, "42"))
	if !strings.HasPrefix(second.Hash(), "000") {
		t.Fatalf("\t%s\tShould mine new blocks at the new difficulty, got %s.", failed, second.Hash())
	}
	t.Logf("\t%s\tShould mine new blocks at the new difficulty.", success)

	blocks := l.Blocks()
	if blocks[1] != first {
		t.Fatalf("\t%s\tShould not change blocks mined before the difficulty change.", failed)
	}
	t.Logf("\t%s\tShould not change blocks mined before the difficulty change.", success)

	if !l.IsValid() {
		t.Fatalf("\t%s\tShould stay valid after a difficulty change.", failed)
	}
	t.Logf("\t%s\tShould stay valid after a difficulty change.", success)

	if err := l.SetDifficulty(65); !errors.Is(err, ledger.ErrInvalidDifficulty) {
		t.Fatalf("\t%s\tShould reject a difficulty larger than the digest, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould reject a difficulty larger than the digest.", success)

	if l.Difficulty() != 3 {
		t.Fatalf("\t%s\tShould keep the old difficulty after a rejected change, got %d.", failed, l.Difficulty())
	}
	t.Logf("\t%s\tShould keep the old difficulty after a rejected change.", success)
}

func Test_AppendCancel(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(64))

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	ifErrFailNow(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := l.AppendContext(ctx, l.Candidate(tx, "42")); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("\t%s\tShould stop mining at the deadline, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould stop mining at the deadline.", success)

	if l.Length() != 1 {
		t.Fatalf("\t%s\tShould not add a block when mining is cancelled, got %d.", failed, l.Length())
	}
	t.Logf("\t%s\tShould not add a block when mining is cancelled.", success)
}

func Test_Block(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(0))

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	ifErrFailNow(t, err)
	appended := l.Append(l.Candidate(tx, "42"))

	got, err := l.Block(1)
	ifErrFailNow(t, err)
	if got != appended {
		t.Fatalf("\t%s\tShould get back the appended block.", failed)
	}
	t.Logf("\t%s\tShould get back the appended block.", success)

	for _, index := range []int{-1, 2} {
		if _, err := l.Block(index); !errors.Is(err, ledger.ErrBlockNotFound) {
			t.Fatalf("\t%s\tShould not find block %d, got %v.", failed, index, err)
		}
	}
	t.Logf("\t%s\tShould not find blocks outside the chain.", success)

	blocks := l.Blocks()
	blocks[1].PrevHash = "changed"
	if !l.IsValid() {
		t.Fatalf("\t%s\tShould not let a copy of the blocks change the chain.", failed)
	}
	t.Logf("\t%s\tShould not let a copy of the blocks change the chain.", success)
}

func Test_Events(t *testing.T) {
	var events []string
	ev := func(v string, args ...any) {
		events = append(events, fmt.Sprintf(v, args...))
	}

	now := func() time.Time {
		return time.Date(2021, time.March, 4, 9, 30, 0, 0, time.UTC)
	}

	l := ledger.New(ledger.WithDifficulty(1), ledger.WithEventHandler(ev), ledger.WithClock(now))

	if ts := l.Blocks()[0].TimeStamp; ts != "09:30:00" {
		t.Fatalf("\t%s\tShould stamp genesis from the clock, got %s.", failed, ts)
	}
	t.Logf("\t%s\tShould stamp genesis from the clock.", success)

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	ifErrFailNow(t, err)
	l.Append(l.Candidate(tx, "42"))
	l.IsValid()

	var added, valid bool
	for _, e := range events {
		switch {
		case strings.Contains(e, "block[1] added"):
			added = true
		case strings.Contains(e, "chain is valid"):
			valid = true
		}
	}

	if !added || !valid {
		t.Fatalf("\t%s\tShould report append and validate events: %v", failed, events)
	}
	t.Logf("\t%s\tShould report append and validate events.", success)
}

func Test_AppendTxConcurrent(t *testing.T) {
	const writers = 16

	l := ledger.New(ledger.WithDifficulty(2))

	t.Log("Given the need to add transactions from many goroutines.")
	{
		var wg sync.WaitGroup
		indexes := make(chan int, writers)

		for i := 0; i < writers; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()

				tx, err := database.NewTx(fmt.Sprint(i), "B", decimal.NewFromInt(int64(i)))
				if err != nil {
					t.Error(err)
					return
				}

				blk, index, err := l.AppendTx(context.Background(), tx, "42")
				if err != nil {
					t.Error(err)
					return
				}

				got, err := l.Block(index)
				if err != nil || got != blk {
					t.Errorf("\t%s\tShould find block %d at its reported index.", failed, index)
				}
				indexes <- index
			}()
		}

		wg.Wait()
		close(indexes)

		if l.Length() != writers+1 {
			t.Fatalf("\t%s\tShould have %d blocks, got %d.", failed, writers+1, l.Length())
		}
		t.Logf("\t%s\tShould have %d blocks.", success, writers+1)

		if err := l.Validate(); err != nil {
			t.Fatalf("\t%s\tShould link every block to its parent: %v", failed, err)
		}
		t.Logf("\t%s\tShould link every block to its parent.", success)

		seen := make(map[int]bool)
		for index := range indexes {
			if seen[index] {
				t.Fatalf("\t%s\tShould report a unique index, got %d twice.", failed, index)
			}
			seen[index] = true
		}
		t.Logf("\t%s\tShould report a unique index for every block.", success)
	}
}

func Test_AppendUnsolvable(t *testing.T) {
	l := ledger.New(ledger.WithDifficulty(65))

	tx, err := database.NewTx("1", "B", decimal.NewFromInt(1))
	ifErrFailNow(t, err)

	if _, _, err := l.AppendTx(context.Background(), tx, "42"); !errors.Is(err, database.ErrUnsolvable) {
		t.Fatalf("\t%s\tShould refuse to mine above the digest length, got %v.", failed, err)
	}
	t.Logf("\t%s\tShould refuse to mine above the digest length.", success)

	if l.Length() != 1 {
		t.Fatalf("\t%s\tShould not add an unsolvable block, got %d blocks.", failed, l.Length())
	}
	t.Logf("\t%s\tShould not add an unsolvable block.", success)
}
