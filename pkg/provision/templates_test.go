package provision

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "deploy.yml"), []byte("name: CI"), 0644))

	loader := NewTemplateLoader(dir)

	content, err := loader.Load("deploy")
	require.NoError(t, err)
	assert.Equal(t, []byte("name: CI"), content)
}

func TestTemplateLoaderMissingFile(t *testing.T) {
	loader := NewTemplateLoader(t.TempDir())

	_, err := loader.Load("deploy")
	require.Error(t, err)
	assert.True(t, IsErrorType(err, ErrorTypeConfig))
	assert.Contains(t, err.Error(), "deploy")
}

func TestTemplateLoaderDefaultsToWorkingDir(t *testing.T) {
	loader := NewTemplateLoader("")
	assert.Equal(t, filepath.Join(".", "deploy.yml"), loader.Path("deploy"))
}

func TestTemplateLoaderPath(t *testing.T) {
	loader := NewTemplateLoader("/etc/pipelines")
	assert.Equal(t, filepath.Join("/etc/pipelines", "release.yml"), loader.Path("release"))
}
