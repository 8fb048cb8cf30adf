package main

import (
	"fmt"
	"os"

	"github.com/aretw0/abacus/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "abacus",
	Short: "abacus evaluates single-operator arithmetic",
	Long: `abacus reads calculations such as "6 * 9" or "pi + 3" and prints the answer.
Run without a command to start the interactive prompt.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// commonOptions reads the persistent flags.
func commonOptions(cmd *cobra.Command) cli.Options {
	dir, _ := cmd.Flags().GetString("dir")
	configPath, _ := cmd.Flags().GetString("config")
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.Options{Dir: dir, ConfigPath: configPath, Debug: debug}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Directory searched for abacus.yaml")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (overrides --dir lookup)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging on stderr")

	rootCmd.Flags().Bool("test", false, "Run the self test and exit")
}
