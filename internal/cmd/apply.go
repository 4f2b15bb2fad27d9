package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"repoforge/pkg/config"
	"repoforge/pkg/fuzzy"
	"repoforge/pkg/provision"
)

var (
	applyDryRun      bool
	applyOrg         string
	applyTemplates   string
	applyRepos       []string
	applyInteractive bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <repos-file.yaml>",
	Short: "Provision pending repositories from a desired-state file",
	Long: `Provision GitHub repositories from a YAML desired-state file.

Every entry with status "need-to-create" is processed in order: the repository
is created as private in the organization, collaborators are invited with push
access, the CI pipeline template is committed to .github/workflows on the main
branch and the configured Actions secrets are encrypted and uploaded. An entry
is marked "created" only after every step succeeded; entries already marked
"created" are never touched.

Failures are isolated per repository. One failed entry keeps its pending
status and is retried on the next run while the rest of the batch continues.
The updated list is written back to the same file at the end of the run, even
when some entries failed.

Examples:
  # Provision everything pending
  repoforge apply repos.yaml

  # Preview without calling GitHub or rewriting the file
  repoforge apply repos.yaml --dry-run

  # Restrict the run to specific repositories
  repoforge apply repos.yaml --repos svc-a,svc-b

  # Pick repositories interactively
  repoforge apply repos.yaml --interactive

  # Override the organization and template directory from the config file
  repoforge apply repos.yaml --org myorg --templates ./pipelines`,
	Args: cobra.ExactArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Preview the planned work without calling GitHub or rewriting the file")
	applyCmd.Flags().StringVar(&applyOrg, "org", "", "GitHub organization to create repositories in (overrides config)")
	applyCmd.Flags().StringVar(&applyTemplates, "templates", "", "Directory holding pipeline workflow templates (overrides config)")
	applyCmd.Flags().StringSliceVar(&applyRepos, "repos", nil, "Comma-separated list of repository names to process (e.g. --repos svc-a,svc-b)")
	applyCmd.Flags().BoolVar(&applyInteractive, "interactive", false, "Pick the repositories to process from a fuzzy-searchable list")
	rootCmd.AddCommand(applyCmd)
}

func runApply(_ *cobra.Command, args []string) error {
	specFile := args[0]

	specs, err := provision.LoadSpecs(specFile)
	if err != nil {
		return fmt.Errorf("failed to load repository list: %w", err)
	}

	if err := provision.ValidateSpecs(specs); err != nil {
		return fmt.Errorf("repository list validation failed: %w", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load repoforge config: %w", err)
	}

	org := applyOrg
	if org == "" {
		if cfg.GitHub.Organization != "" {
			org = cfg.GitHub.Organization
		} else {
			return fmt.Errorf("organization not specified: use --org flag or set github.organization in config")
		}
	}

	templatesDir := applyTemplates
	if templatesDir == "" {
		templatesDir = cfg.Templates.Dir
	}

	pending := provision.Pending(specs)
	if len(pending) == 0 {
		fmt.Printf("✓ All repositories are already created. Nothing to do.\n")
		return nil
	}

	filter := cleanRepoFilter(applyRepos)
	if applyInteractive && len(filter) == 0 {
		filter, err = pickRepositories(specs, pending)
		if err != nil {
			return fmt.Errorf("repository selection failed: %w", err)
		}
	}

	if applyDryRun {
		displayApplyPlan(specs, org, filter, cfg.Secrets)
		fmt.Printf("\n✓ Dry-run completed. No changes were applied.\n")
		return nil
	}

	// Set up GitHub authentication
	authManager := provision.NewAuthManager()
	tokenInfo, err := authManager.AuthenticateFromConfig(context.Background(), cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Authentication failed: %v\n\n", err)
		fmt.Fprintf(os.Stderr, "%s\n", provision.GetAuthInstructions())
		return err
	}

	fmt.Printf("✓ Authenticated as %s\n", tokenInfo.User)

	token, err := authManager.GetToken(cfg)
	if err != nil {
		return fmt.Errorf("failed to get GitHub token: %w", err)
	}

	secrets, skippedSecrets := provision.ResolveSecrets(cfg.Secrets, token)
	for _, name := range skippedSecrets {
		fmt.Printf("⚠️  Secret %s has no value and will not be uploaded\n", name)
	}

	client := provision.NewClientFromGitHub(authManager.GetClient(), org)
	provisioner := provision.NewProvisioner(client, provision.NewTemplateLoader(templatesDir), secrets)

	fmt.Printf("\nProvisioning %d pending repositories in %s...\n", countSelected(pending, filter), org)

	result := provisioner.Run(specs, filter)

	// The file is rewritten even on partial failure so completed entries
	// are never re-provisioned
	if err := provision.SaveSpecs(specFile, specs); err != nil {
		displayApplyResults(result, org)
		return fmt.Errorf("failed to save repository list: %w", err)
	}

	displayApplyResults(result, org)

	if len(result.Failed) > 0 {
		return fmt.Errorf("provisioning failed for %d of %d repositories", result.Summary.FailedCount, result.Summary.ProvisionedCount+result.Summary.FailedCount)
	}

	return nil
}

// cleanRepoFilter drops empty entries from the --repos flag value
func cleanRepoFilter(repos []string) []string {
	var filter []string
	for _, repo := range repos {
		if strings.TrimSpace(repo) != "" {
			filter = append(filter, strings.TrimSpace(repo))
		}
	}
	return filter
}

// pickRepositories runs the interactive picker over the pending entries
func pickRepositories(specs []provision.RepoSpec, pending []string) ([]string, error) {
	pendingSet := make(map[string]bool, len(pending))
	for _, name := range pending {
		pendingSet[name] = true
	}

	options := make([]fuzzy.Option, 0, len(pending))
	for _, spec := range specs {
		if !pendingSet[spec.Name] {
			continue
		}
		description := fmt.Sprintf("pipeline: %s", spec.Pipeline)
		if len(spec.Collaborators) > 0 {
			description = fmt.Sprintf("%s, collaborators: %s", description, strings.Join(spec.Collaborators, ", "))
		}
		options = append(options, fuzzy.Option{Value: spec.Name, Description: description})
	}

	picker := fuzzy.NewFzf("Select repositories to provision >")
	if err := picker.SetOptions(options); err != nil {
		return nil, err
	}

	return picker.PickMany()
}

// countSelected returns how many pending names survive the filter
func countSelected(pending, filter []string) int {
	if len(filter) == 0 {
		return len(pending)
	}

	selected := make(map[string]bool, len(filter))
	for _, name := range filter {
		selected[name] = true
	}

	count := 0
	for _, name := range pending {
		if selected[name] {
			count++
		}
	}
	return count
}

// displayApplyPlan shows the work a real run would perform
func displayApplyPlan(specs []provision.RepoSpec, org string, filter []string, secretMappings []config.SecretMapping) {
	fmt.Printf("\n🔍 Dry-run mode: Showing planned work for organization %s\n", org)

	selected := make(map[string]bool, len(filter))
	for _, name := range filter {
		selected[name] = true
	}

	secretNames := []string{provision.TokenSecretName}
	for _, mapping := range secretMappings {
		if mapping.Name != provision.TokenSecretName {
			secretNames = append(secretNames, mapping.Name)
		}
	}
	sort.Strings(secretNames)

	planned := 0
	for _, spec := range specs {
		if spec.Status != provision.StatusNeedToCreate {
			continue
		}
		if len(filter) > 0 && !selected[spec.Name] {
			continue
		}

		planned++
		fmt.Printf("\n📦 %s/%s:\n", org, spec.Name)
		fmt.Printf("  + Repository: CREATE private repository\n")
		for _, username := range spec.Collaborators {
			fmt.Printf("  + Collaborator: ADD %s with push permission\n", username)
		}
		if spec.Pipeline != "" {
			fmt.Printf("  + Pipeline: COMMIT .github/workflows/%s.yml to %s\n", spec.Pipeline, provision.WorkflowBranch)
		} else {
			fmt.Printf("  ⚠️  Pipeline: not defined, this entry will fail\n")
		}
		fmt.Printf("  + Secrets: UPLOAD %s\n", strings.Join(secretNames, ", "))
	}

	if planned == 0 {
		fmt.Printf("\nNo pending repositories match the selection.\n")
	} else {
		fmt.Printf("\nTotal repositories to provision: %d\n", planned)
	}
}

// displayApplyResults displays the outcome of a provisioning run
func displayApplyResults(result *provision.Result, org string) {
	if len(result.Provisioned) > 0 {
		fmt.Printf("\n✅ Provisioned repositories:\n")
		for _, repoName := range result.Provisioned {
			fmt.Printf("  • %s/%s: https://github.com/%s/%s\n", org, repoName, org, repoName)
		}
	}

	if len(result.Failed) > 0 {
		fmt.Printf("\n❌ Failed repositories:\n")
		for _, repoName := range sortedKeys(result.Failed) {
			err := result.Failed[repoName]
			fmt.Printf("  • %s/%s: %v\n", org, repoName, err)
			if provision.IsErrorType(err, provision.ErrorTypeConflict) {
				fmt.Printf("    The repository already exists remotely but is still marked pending.\n")
				fmt.Printf("    Resolve the conflict manually, then update its status in the file.\n")
			}
		}
	}

	if len(result.Skipped) > 0 {
		fmt.Printf("\n⏭️  Skipped repositories:\n")
		for _, repoName := range result.Skipped {
			fmt.Printf("  • %s/%s\n", org, repoName)
		}
	}

	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Total repositories: %d\n", result.Summary.Total)
	fmt.Printf("  • Provisioned: %d\n", result.Summary.ProvisionedCount)
	fmt.Printf("  • Failed: %d\n", result.Summary.FailedCount)
	fmt.Printf("  • Skipped: %d\n", result.Summary.SkippedCount)
}

// sortedKeys returns the map keys in sorted order for stable output
func sortedKeys(m map[string]error) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
