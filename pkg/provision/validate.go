package provision

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	validRepoName = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	validUsername = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
)

// ValidateSpecs checks the desired-state list before any API call is made
func ValidateSpecs(specs []RepoSpec) error {
	var validationErrors ValidationErrors

	seen := make(map[string]bool)
	for i, spec := range specs {
		field := fmt.Sprintf("repositories[%d]", i)

		if err := validateRepoName(spec.Name); err != nil {
			validationErrors.Add(field+".name", spec.Name, err.Error())
		}

		if seen[spec.Name] {
			validationErrors.Add(field+".name", spec.Name, "duplicate repository name")
		}
		seen[spec.Name] = true

		for j, user := range spec.Collaborators {
			if err := validateGitHubUsername(user); err != nil {
				validationErrors.Add(fmt.Sprintf("%s.collaborators[%d]", field, j), user, err.Error())
			}
		}

		switch spec.Status {
		case StatusNeedToCreate, StatusCreated:
		case "":
			validationErrors.Add(field+".status", "", "status is required")
		default:
			validationErrors.Add(field+".status", string(spec.Status),
				fmt.Sprintf("unknown status, expected %q or %q", StatusNeedToCreate, StatusCreated))
		}
	}

	if validationErrors.HasErrors() {
		return &ProvisionError{
			Type:    ErrorTypeValidation,
			Message: validationErrors.Error(),
			Cause:   validationErrors,
		}
	}

	return nil
}

// validateRepoName validates a repository name according to GitHub rules
func validateRepoName(name string) error {
	if name == "" {
		return fmt.Errorf("repository name is required")
	}

	if len(name) > 100 {
		return fmt.Errorf("repository name must be 100 characters or less")
	}

	if !validRepoName.MatchString(name) {
		return fmt.Errorf("repository name can only contain alphanumeric characters, periods, hyphens, and underscores")
	}

	if strings.HasPrefix(name, ".") || strings.HasSuffix(name, ".") {
		return fmt.Errorf("repository name cannot start or end with a period")
	}

	return nil
}

// validateGitHubUsername validates a GitHub username according to GitHub's rules
func validateGitHubUsername(username string) error {
	if username == "" {
		return fmt.Errorf("username cannot be empty")
	}

	if len(username) > 39 {
		return fmt.Errorf("username must be 39 characters or less")
	}

	if !validUsername.MatchString(username) {
		return fmt.Errorf("username '%s' is invalid: must contain only alphanumeric characters and single hyphens, cannot start or end with hyphen", username)
	}

	if strings.Contains(username, "--") {
		return fmt.Errorf("username '%s' is invalid: cannot contain consecutive hyphens", username)
	}

	return nil
}
