package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "reservations",
	Short: "Space reservations microservice",
	Long:  "A reservations microservice for event spaces: availability, booking lifecycle, payment settlement, and outbox dispatch jobs.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
