package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hydropump/hydropump"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hydropump",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hydropump version %s\n", hydropump.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
