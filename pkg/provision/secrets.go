package provision

import (
	"os"
	"sort"

	"repoforge/pkg/config"
)

// TokenSecretName is the slot the provisioning token itself is uploaded to,
// so workflows in the new repository can call the API with it.
const TokenSecretName = "GH_TOKEN"

// ResolveSecrets materializes the configured secret mappings into the set
// uploaded to every new repository. Mappings that resolve to an empty value
// are skipped and reported, not failed: an unset environment variable means
// "not in use here", matching how optional secret sources behave.
//
// The provisioning token always wins the TokenSecretName slot.
func ResolveSecrets(mappings []config.SecretMapping, token string) (map[string]string, []string) {
	secrets := make(map[string]string, len(mappings)+1)
	var skipped []string

	for _, m := range mappings {
		value := m.Value
		if m.FromEnv != "" {
			value = os.Getenv(m.FromEnv)
		}
		if value == "" {
			skipped = append(skipped, m.Name)
			continue
		}
		secrets[m.Name] = value
	}

	secrets[TokenSecretName] = token

	return secrets, skipped
}

// SecretNames returns the secret names in upload order
func SecretNames(secrets map[string]string) []string {
	names := make([]string, 0, len(secrets))
	for name := range secrets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
