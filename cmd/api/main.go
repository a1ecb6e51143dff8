// Package main is the entry point for the employee onboarding service.
package main

import (
	"fmt"
	"os"

	_ "go-onboarding-wizard/docs" // Important for Swagger

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Employee onboarding wizard",
	Long:  "Serves the multi-step employee onboarding wizard and manages its saved form snapshots.",
}

// @title           Employee Onboarding API
// @version         1.0
// @description     Multi-step employee onboarding wizard with validation and autosave.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
