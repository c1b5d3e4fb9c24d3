package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/myagri"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of myagri",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "myagri version %s\n", myagri.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
