// Package main is the entry point for the esobuilds CLI
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "esobuilds",
	Short: "ESO Logs build and buff analyzer",
	Long:  `esobuilds fetches uploaded Elder Scrolls Online combat logs and summarizes each player's gear build, role, and raid buff/debuff uptimes.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
