package provision

import (
	"context"
	"fmt"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
)

// Client implements the APIClient interface using the GitHub REST API
type Client struct {
	client *github.Client
	ctx    context.Context
	org    string
}

// NewClient creates a new GitHub API client scoped to an organization
func NewClient(token, org string) *Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{
		client: github.NewClient(tc),
		ctx:    ctx,
		org:    org,
	}
}

// NewClientFromGitHub wraps an already-authenticated go-github client
func NewClientFromGitHub(gh *github.Client, org string) *Client {
	return &Client{
		client: gh,
		ctx:    context.Background(),
		org:    org,
	}
}

// CreateRepository creates a new private repository in the organization.
// A name that already exists is rejected remotely with a validation error.
func (c *Client) CreateRepository(name string) error {
	repo := &github.Repository{
		Name:    github.String(name),
		Private: github.Bool(true),
	}

	_, _, err := c.client.Repositories.Create(c.ctx, c.org, repo)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("repository %s/%s", c.org, name))
	}
	return nil
}

// AddCollaborator grants a user push access to a repository
func (c *Client) AddCollaborator(repo, username string) error {
	opts := &github.RepositoryAddCollaboratorOptions{
		Permission: "push",
	}

	_, _, err := c.client.Repositories.AddCollaborator(c.ctx, c.org, repo, username, opts)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("collaborator %s for %s/%s", username, c.org, repo))
	}
	return nil
}

// GetActionsPublicKey fetches the public key used to encrypt Actions
// secrets for a repository. Fetched fresh per repository, never cached.
func (c *Client) GetActionsPublicKey(repo string) (*PublicKeyInfo, error) {
	key, _, err := c.client.Actions.GetRepoPublicKey(c.ctx, c.org, repo)
	if err != nil {
		return nil, WrapAPIError(err, fmt.Sprintf("public key for %s/%s", c.org, repo))
	}

	return &PublicKeyInfo{
		Key:   key.GetKey(),
		KeyID: key.GetKeyID(),
	}, nil
}

// PutSecret uploads one encrypted secret value to the named secret slot
func (c *Client) PutSecret(repo, name, encryptedValue, keyID string) error {
	secret := &github.EncryptedSecret{
		Name:           name,
		KeyID:          keyID,
		EncryptedValue: encryptedValue,
	}

	_, err := c.client.Actions.CreateOrUpdateRepoSecret(c.ctx, c.org, repo, secret)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("secret %s for %s/%s", name, c.org, repo))
	}
	return nil
}

// UploadFile creates a file in the repository via a content commit. The
// transport base64-encodes the content; the call fails if the branch does
// not exist or the path is already present.
func (c *Client) UploadFile(repo, path string, content []byte, message, branch string) error {
	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}

	_, _, err := c.client.Repositories.CreateFile(c.ctx, c.org, repo, path, opts)
	if err != nil {
		return WrapAPIError(err, fmt.Sprintf("file %s in %s/%s", path, c.org, repo))
	}
	return nil
}
