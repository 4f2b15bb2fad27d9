package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCommandRegistration(t *testing.T) {
	commands := rootCmd.Commands()

	names := make(map[string]bool, len(commands))
	for _, c := range commands {
		names[c.Name()] = true
	}

	assert.True(t, names["init"])
	assert.True(t, names["apply"])
	assert.True(t, names["validate"])
	assert.True(t, names["status"])
}

func TestRootCommandUse(t *testing.T) {
	assert.Equal(t, "repoforge", rootCmd.Use)
}
