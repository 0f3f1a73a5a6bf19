package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Заполняются через -ldflags при сборке
var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version info",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "reservation-gateway %s (commit=%s, built=%s)\n", Version, CommitSHA, BuildDate)
		},
	}
}
