package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var difficultyCmd = &cobra.Command{
	Use:   "difficulty [n]",
	Short: "Show or change the difficulty used for the next block",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var d difficulty

		switch len(args) {
		case 0:
			if err := send(http.MethodGet, fmt.Sprintf("%s/v1/difficulty", url), nil, &d); err != nil {
				return err
			}

		default:
			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("parsing difficulty: %w", err)
			}

			req := struct {
				Difficulty uint `json:"difficulty"`
			}{
				Difficulty: uint(n),
			}
			if err := send(http.MethodPut, fmt.Sprintf("%s/v1/difficulty", url), req, &d); err != nil {
				return err
			}
		}

		pterm.Info.Printfln("difficulty[%d] max[%d] algorithm[%s]", d.Difficulty, d.MaxDifficulty, d.Algorithm)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(difficultyCmd)
}
