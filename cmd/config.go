package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Interact with the server configuration",
	Long:  `Utilities for validating and viewing the server configuration`,
}

func init() {
	rootCmd.AddCommand(configCmd)
	f.bindConfigFlag(configCmd.PersistentFlags())
}
