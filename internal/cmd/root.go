package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repoforge",
	Short: "A CLI tool for provisioning GitHub repositories from a desired-state list",
	Long: `Repoforge is a command-line tool for bootstrapping GitHub repositories in bulk.
It reads a YAML list of desired repositories, creates the pending ones, invites
collaborators, installs a CI pipeline, uploads encrypted Actions secrets and
records each success back into the list.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
