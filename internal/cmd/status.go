package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoforge/pkg/provision"
)

var statusCmd = &cobra.Command{
	Use:   "status <repos-file.yaml>",
	Short: "Show the provisioning state of a desired-state file",
	Long: `Show which repositories in a desired-state file are still pending and
which have already been created.

Examples:
  repoforge status repos.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, args []string) error {
	specFile := args[0]

	specs, err := provision.LoadSpecs(specFile)
	if err != nil {
		return fmt.Errorf("failed to load repository list: %w", err)
	}

	var pending, created []provision.RepoSpec
	for _, spec := range specs {
		switch spec.Status {
		case provision.StatusNeedToCreate:
			pending = append(pending, spec)
		case provision.StatusCreated:
			created = append(created, spec)
		}
	}

	if len(pending) > 0 {
		fmt.Printf("⏳ Pending repositories:\n")
		for _, spec := range pending {
			fmt.Printf("  • %s (pipeline: %s)\n", spec.Name, spec.Pipeline)
		}
	}

	if len(created) > 0 {
		fmt.Printf("\n✅ Created repositories:\n")
		for _, spec := range created {
			fmt.Printf("  • %s\n", spec.Name)
		}
	}

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Total repositories: %d\n", len(specs))
	fmt.Printf("  • Pending: %d\n", len(pending))
	fmt.Printf("  • Created: %d\n", len(created))

	return nil
}
