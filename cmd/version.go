package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/drip-capital/drippay/constants"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "prints drippay version",
	Long:  "prints the version of the running drippay binary",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(constants.VERSION)
	},
}

func init() {
	RootCmd.AddCommand(versionCmd)
}
