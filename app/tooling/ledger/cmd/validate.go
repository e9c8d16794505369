package cmd

import (
	"fmt"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every block is linked to its parent",
	RunE: func(cmd *cobra.Command, args []string) error {
		var v validation
		if err := send(http.MethodGet, fmt.Sprintf("%s/v1/validate", url), nil, &v); err != nil {
			return err
		}

		if !v.Valid {
			pterm.Warning.Printfln("Ledger of %d blocks is invalid: %s", v.Blocks, v.Error)
			return nil
		}

		pterm.Success.Printfln("Ledger of %d blocks is valid", v.Blocks)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
