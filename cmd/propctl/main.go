package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"ise-marketing/propdesk/internal/logging"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "propctl",
		Short:         "Property dashboard maintenance tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		MigrateCmd(),
		CheckCmd(),
		ImportCmd(),
		RevenueCmd(),
	)

	err := rootCmd.Execute()
	_ = logging.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
