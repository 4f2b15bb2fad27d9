package provision

import (
	"fmt"

	"repoforge/pkg/sealedbox"
)

// WorkflowBranch is the branch the pipeline file is committed to
const WorkflowBranch = "main"

// Provisioner walks the desired-state list and brings every pending entry
// to the created state. Processing is fully sequential: one repository is
// finished (or has failed) before the next begins.
type Provisioner struct {
	client    APIClient
	templates *TemplateLoader
	secrets   map[string]string
}

// NewProvisioner creates a provisioner. secrets maps secret names to
// resolved plaintext values uploaded to every new repository.
func NewProvisioner(client APIClient, templates *TemplateLoader, secrets map[string]string) *Provisioner {
	return &Provisioner{
		client:    client,
		templates: templates,
		secrets:   secrets,
	}
}

// Pending returns the names of entries still waiting to be provisioned
func Pending(specs []RepoSpec) []string {
	var names []string
	for _, spec := range specs {
		if spec.Status == StatusNeedToCreate {
			names = append(names, spec.Name)
		}
	}
	return names
}

// Run processes every pending entry, mutating statuses in place. A non-empty
// filter restricts processing to the named repositories; everything else is
// skipped. Failures are recorded per repository and never abort the batch;
// persisting the (partially updated) list is the caller's job either way.
func (p *Provisioner) Run(specs []RepoSpec, filter []string) *Result {
	result := &Result{
		Provisioned: make([]string, 0),
		Failed:      make(map[string]error),
		Skipped:     make([]string, 0),
	}

	selected := make(map[string]bool, len(filter))
	for _, name := range filter {
		selected[name] = true
	}

	for i := range specs {
		spec := &specs[i]

		if spec.Status != StatusNeedToCreate {
			result.Skipped = append(result.Skipped, spec.Name)
			continue
		}

		if len(filter) > 0 && !selected[spec.Name] {
			result.Skipped = append(result.Skipped, spec.Name)
			continue
		}

		if err := p.provisionOne(spec); err != nil {
			// Status stays need-to-create; the entry is retried next run
			result.Failed[spec.Name] = err
			continue
		}

		spec.Status = StatusCreated
		result.Provisioned = append(result.Provisioned, spec.Name)
	}

	result.Summary = Summary{
		Total:            len(specs),
		ProvisionedCount: len(result.Provisioned),
		FailedCount:      len(result.Failed),
		SkippedCount:     len(result.Skipped),
	}

	return result
}

// provisionOne runs the full provisioning sequence for a single entry:
// create, collaborators, pipeline, secrets. The first failure wins.
func (p *Provisioner) provisionOne(spec *RepoSpec) error {
	if err := p.client.CreateRepository(spec.Name); err != nil {
		return err
	}

	for _, username := range spec.Collaborators {
		if err := p.client.AddCollaborator(spec.Name, username); err != nil {
			return err
		}
	}

	if err := p.installPipeline(spec); err != nil {
		return err
	}

	return p.uploadSecrets(spec.Name)
}

// installPipeline commits the CI workflow file for the spec's pipeline type
func (p *Provisioner) installPipeline(spec *RepoSpec) error {
	if spec.Pipeline == "" {
		return &ProvisionError{
			Type:     ErrorTypeConfig,
			Message:  "pipeline type is not defined",
			Resource: fmt.Sprintf("repository %s", spec.Name),
		}
	}

	content, err := p.templates.Load(spec.Pipeline)
	if err != nil {
		return err
	}

	path := fmt.Sprintf(".github/workflows/%s.yml", spec.Pipeline)
	message := fmt.Sprintf("Add %s pipeline", spec.Pipeline)

	return p.client.UploadFile(spec.Name, path, content, message, WorkflowBranch)
}

// uploadSecrets fetches the repository's public key once and seals every
// configured secret against it
func (p *Provisioner) uploadSecrets(repo string) error {
	if len(p.secrets) == 0 {
		return nil
	}

	keyInfo, err := p.client.GetActionsPublicKey(repo)
	if err != nil {
		return err
	}

	for _, name := range SecretNames(p.secrets) {
		encrypted, err := sealedbox.Encrypt(keyInfo.Key, p.secrets[name])
		if err != nil {
			return &ProvisionError{
				Type:     ErrorTypeEncoding,
				Message:  fmt.Sprintf("failed to encrypt secret %s", name),
				Cause:    err,
				Resource: fmt.Sprintf("repository %s", repo),
			}
		}

		if err := p.client.PutSecret(repo, name, encrypted, keyInfo.KeyID); err != nil {
			return err
		}
	}

	return nil
}
