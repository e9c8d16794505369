package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "Show every block in the ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		var blks []block
		if err := send(http.MethodGet, fmt.Sprintf("%s/v1/blocks", url), nil, &blks); err != nil {
			return err
		}

		return renderBlocks(blks)
	},
}

var blockCmd = &cobra.Command{
	Use:   "block <index>",
	Short: "Show a single block from the ledger",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("parsing index: %w", err)
		}

		var blk block
		if err := send(http.MethodGet, fmt.Sprintf("%s/v1/blocks/%d", url, index), nil, &blk); err != nil {
			return err
		}

		return renderBlock(blk)
	},
}

// renderBlocks writes the chain as a table.
func renderBlocks(blks []block) error {
	data := pterm.TableData{
		{"Index", "Sender", "Receiver", "Amount", "Creator", "Timestamp", "Nonce", "Prev Hash", "Hash"},
	}

	for _, blk := range blks {
		data = append(data, []string{
			strconv.Itoa(blk.Index),
			blk.Tx.Sender,
			blk.Tx.Receiver,
			blk.Tx.Amount.String(),
			blk.CreatorID,
			blk.TimeStamp,
			strconv.FormatUint(blk.Nonce, 10),
			short(blk.PrevHash),
			short(blk.Hash),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// renderBlock writes the fields of a single block.
func renderBlock(blk block) error {
	data := pterm.TableData{
		{"Index", strconv.Itoa(blk.Index)},
		{"Sender", blk.Tx.Sender},
		{"Receiver", blk.Tx.Receiver},
		{"Amount", blk.Tx.Amount.String()},
		{"Creator", blk.CreatorID},
		{"Timestamp", blk.TimeStamp},
		{"Nonce", strconv.FormatUint(blk.Nonce, 10)},
		{"Prev Hash", blk.PrevHash},
		{"Hash", blk.Hash},
	}

	return pterm.DefaultTable.WithData(data).Render()
}

// short trims a hash for display in a table.
func short(hash string) string {
	const size = 12
	if len(hash) <= size {
		return hash
	}
	return hash[:size] + "..."
}

func init() {
	rootCmd.AddCommand(blocksCmd)
	rootCmd.AddCommand(blockCmd)
}
