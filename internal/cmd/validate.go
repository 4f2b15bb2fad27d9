package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"repoforge/pkg/provision"
)

var validateCmd = &cobra.Command{
	Use:   "validate <repos-file.yaml>",
	Short: "Validate a desired-state repository file",
	Long: `Validate a YAML desired-state file for syntax and logical errors.

VALIDATION CHECKS:

• YAML syntax and structure
• Repository names follow GitHub naming rules
• Collaborator usernames follow GitHub naming rules
• Statuses are known values (need-to-create, created)
• No duplicate repository names

All problems are collected and reported together so a single run surfaces
every error in the file.

Examples:
  repoforge validate repos.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(_ *cobra.Command, args []string) error {
	specFile := args[0]

	fmt.Printf("🔍 Validating repository list: %s\n", specFile)

	specs, err := provision.LoadSpecs(specFile)
	if err != nil {
		return fmt.Errorf("failed to load repository list: %w", err)
	}

	fmt.Printf("✓ YAML syntax is valid\n")

	if err := provision.ValidateSpecs(specs); err != nil {
		return fmt.Errorf("repository list validation failed: %w", err)
	}

	pending := provision.Pending(specs)

	fmt.Printf("✓ All %d entries are valid\n", len(specs))
	fmt.Printf("\n✅ Repository list is valid and ready to apply\n")

	if len(pending) > 0 {
		fmt.Printf("\n💡 Next steps:\n")
		fmt.Printf("   • Preview changes: repoforge apply %s --dry-run\n", specFile)
		fmt.Printf("   • Provision %d pending repositories: repoforge apply %s\n", len(pending), specFile)
	}

	return nil
}
