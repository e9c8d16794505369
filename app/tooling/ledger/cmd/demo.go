package cmd

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/ledger"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	demoDifficulty uint
	demoVerbose    bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a ledger in process: mine a block, then break the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoVerbose {
			pterm.EnableDebugMessages()
		}

		_, err := runDemo(demoDifficulty, func(v string, args ...any) {
			pterm.Debug.Printfln(v, args...)
		})
		return err
	},
}

// runDemo mines a linked block and then a block with a bad link, checking
// the validity of the chain after each.
func runDemo(difficulty uint, ev ledger.EventHandler) (*ledger.Ledger, error) {
	l := ledger.New(ledger.WithDifficulty(difficulty), ledger.WithEventHandler(ev))

	tx, err := database.NewTx("1", "B", decimal.NewFromFloat(10.0))
	if err != nil {
		return nil, err
	}

	l.Append(database.NewBlock(tx, "42", l.TailHash()))
	if err := l.Validate(); err != nil {
		return nil, fmt.Errorf("chain should be valid: %w", err)
	}
	pterm.Success.Printfln("Linked block mined, ledger of %d blocks is valid", l.Length())

	l.Append(database.NewBlock(tx, "42", "bad-prev-hash"))
	if err := l.Validate(); err != nil {
		pterm.Warning.Printfln("Block with a bad link mined, ledger is invalid: %s", err)
	}

	blks := l.Blocks()
	out := make([]block, len(blks))
	for i, blk := range blks {
		out[i] = block{
			Index:     i,
			Hash:      l.Hash(blk),
			PrevHash:  blk.PrevHash,
			CreatorID: blk.CreatorID,
			TimeStamp: blk.TimeStamp,
			Nonce:     blk.Nonce,
		}
		out[i].Tx.Sender = blk.Tx.Sender
		out[i].Tx.Receiver = blk.Tx.Receiver
		out[i].Tx.Amount = blk.Tx.Amount
	}

	return l, renderBlocks(out)
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().UintVarP(&demoDifficulty, "difficulty", "d", 2, "Difficulty used to mine the blocks.")
	demoCmd.Flags().BoolVarP(&demoVerbose, "verbose", "v", false, "Show the mining events.")
}
