package provision

// APIClient defines the remote operations the provisioner needs. Each call
// is a single blocking request; failures are wrapped into ProvisionError.
type APIClient interface {
	// CreateRepository creates a private repository in the organization
	CreateRepository(name string) error

	// AddCollaborator grants push access; re-adding is not an error remotely
	AddCollaborator(repo, username string) error

	// GetActionsPublicKey fetches the secret encryption key for a repository
	GetActionsPublicKey(repo string) (*PublicKeyInfo, error)

	// PutSecret uploads one already-encrypted secret value
	PutSecret(repo, name, encryptedValue, keyID string) error

	// UploadFile commits a new file to the given branch
	UploadFile(repo, path string, content []byte, message, branch string) error
}

// Result aggregates the outcome of one batch run. Failures are typed per
// repository instead of aborting the batch.
type Result struct {
	Provisioned []string         `json:"provisioned"`
	Failed      map[string]error `json:"failed"`
	Skipped     []string         `json:"skipped"`
	Summary     Summary          `json:"summary"`
}

// Summary provides aggregate statistics for a batch run
type Summary struct {
	Total            int `json:"total"`
	ProvisionedCount int `json:"provisioned_count"`
	FailedCount      int `json:"failed_count"`
	SkippedCount     int `json:"skipped_count"`
}
