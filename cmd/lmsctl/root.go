package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lmsctl",
	Short: "Control the State Loan Management System auth service",
	Long:  `lmsctl manages the auth service: run the server, migrate the database, seed initial data and inspect configuration.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
