package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "winnipeg-transit",
	Short: "A CLI for Winnipeg Transit stops and live schedules",
	Long: `winnipeg-transit-app finds bus stops near a location using the
Winnipeg Transit API and shows their real-time schedules, marking every
arrival as early, on time or late.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
