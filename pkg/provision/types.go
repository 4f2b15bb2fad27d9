package provision

// Status tracks where a repository spec is in its lifecycle
type Status string

const (
	// StatusNeedToCreate marks an entry waiting to be provisioned
	StatusNeedToCreate Status = "need-to-create"
	// StatusCreated marks an entry whose provisioning fully succeeded
	StatusCreated Status = "created"
)

// RepoSpec is one entry of the desired-state file. Identity is the name;
// the status field is the only part mutated at runtime.
type RepoSpec struct {
	Name          string   `yaml:"name"`
	Collaborators []string `yaml:"collaborators,omitempty"`
	Pipeline      string   `yaml:"pipeline,omitempty"`
	Status        Status   `yaml:"status"`
}

// PublicKeyInfo is the repository's Actions secret encryption key, fetched
// fresh for every repository and never cached
type PublicKeyInfo struct {
	Key   string `json:"key"`
	KeyID string `json:"key_id"`
}
