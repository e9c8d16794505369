package cmd

import (
	"fmt"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	sender    string
	receiver  string
	amount    string
	creatorID string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a transaction to the ledger in a new block",
	RunE: func(cmd *cobra.Command, args []string) error {
		amt, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("parsing amount: %w", err)
		}

		return addBlock(sender, receiver, amt, creatorID)
	},
}

func addBlock(sender string, receiver string, amount decimal.Decimal, creatorID string) error {
	tx := struct {
		Sender    string          `json:"sender"`
		Receiver  string          `json:"receiver"`
		Amount    decimal.Decimal `json:"amount"`
		CreatorID string          `json:"creator_id,omitempty"`
	}{
		Sender:    sender,
		Receiver:  receiver,
		Amount:    amount,
		CreatorID: creatorID,
	}

	spinner, _ := pterm.DefaultSpinner.Start("Mining block")

	var blk block
	if err := send(http.MethodPost, fmt.Sprintf("%s/v1/blocks", url), tx, &blk); err != nil {
		if spinner != nil {
			spinner.Fail(err)
		}
		return err
	}

	if spinner != nil {
		spinner.Success(fmt.Sprintf("Block %d added to the ledger", blk.Index))
	}

	return renderBlock(blk)
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&sender, "sender", "s", "", "Party sending the amount.")
	addCmd.Flags().StringVarP(&receiver, "receiver", "r", "", "Party receiving the amount.")
	addCmd.Flags().StringVarP(&amount, "amount", "a", "0", "Amount to send.")
	addCmd.Flags().StringVarP(&creatorID, "creator", "c", "", "Creator of the block, the service default when empty.")
	addCmd.MarkFlagRequired("sender")
	addCmd.MarkFlagRequired("receiver")
}
