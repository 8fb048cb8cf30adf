package main

import (
	"github.com/aretw0/abacus/internal/cli"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the calculator prompt",
	Long: `Reads one calculation per line from stdin and prints the answer.
Type Q to quit. With --json every line produces one JSON object on stdout.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Only the root command defines --test.
		if test, _ := cmd.Flags().GetBool("test"); test {
			return cli.SelfTest(commonOptions(cmd), cmd.OutOrStdout())
		}

		headless, _ := cmd.Flags().GetBool("headless")
		jsonMode, _ := cmd.Flags().GetBool("json")

		return cli.Execute(cli.RunOptions{
			Options:  commonOptions(cmd),
			Headless: headless,
			JSON:     jsonMode,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("headless", false, "Run in headless mode (no banner, no colors)")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON output)")

	// 'run' is the default when no command is provided.
	rootCmd.Flags().AddFlagSet(runCmd.Flags())
	rootCmd.RunE = runCmd.RunE
}
