package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "nus3kit",
	Short: "A nus3audio container utility.",
	Long:  "A CLI tool to inspect, edit and play the sounds inside nus3audio containers.",
	Run: func(cmd *cobra.Command, args []string) {
		// Display help when no subcommand is provided
		fmt.Println("Usage: nus3kit [command]")
		fmt.Println("Use 'nus3kit help' for a list of commands.")
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogger()
	},
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

var quiet bool
var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress command output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Increase command output")
}

func Execute() error {
	return rootCmd.Execute()
}
