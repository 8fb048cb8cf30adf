package main

import (
	"strings"

	"github.com/aretw0/abacus/internal/cli"
	"github.com/spf13/cobra"
)

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Calculate one expression and exit",
	Example: `  abacus eval "6 * 9"
  abacus eval pi + 3`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Eval(commonOptions(cmd), strings.Join(args, " "), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(evalCmd)
}
