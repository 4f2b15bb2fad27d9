package fuzzy

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fzf "github.com/junegunn/fzf/src"
)

type stubRunner struct {
	exitCode int
	err      error
	called   bool
}

func (r *stubRunner) Run(_ *fzf.Options) (int, error) {
	r.called = true
	return r.exitCode, r.err
}

func TestFzfPickerSetOptions(t *testing.T) {
	picker := NewFzf("Select repositories")

	assert.Error(t, picker.SetOptions(nil))

	require.NoError(t, picker.SetOptions([]Option{{Value: "svc-a"}}))
	assert.Len(t, picker.options, 1)
}

func TestFzfPickerNoOptions(t *testing.T) {
	picker := NewFzf("Select repositories")

	_, err := picker.PickMany()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no options available")
}

func TestFzfPickerFallsBackWithoutTerminal(t *testing.T) {
	runner := &stubRunner{}
	picker := NewFzfWithRunner("Select repositories", runner)
	require.NoError(t, picker.SetOptions([]Option{{Value: "svc-a"}, {Value: "svc-b"}}))

	picker.fallback = func() ([]string, error) {
		return []string{"svc-b"}, nil
	}

	// Test processes have no terminal on stderr, so fzf never starts.
	values, err := picker.PickMany()
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-b"}, values)
	assert.False(t, runner.called)
}

func TestFzfPickerFallbackError(t *testing.T) {
	picker := NewFzf("Select repositories")
	require.NoError(t, picker.SetOptions([]Option{{Value: "svc-a"}}))

	picker.fallback = func() ([]string, error) {
		return nil, fmt.Errorf("fzf selection cancelled or failed")
	}

	_, err := picker.PickMany()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cancelled")
}

func TestFzfPickerExtractValues(t *testing.T) {
	picker := NewFzf("Select repositories")
	require.NoError(t, picker.SetOptions([]Option{
		{Value: "svc-a", Description: "pipeline: deploy"},
		{Value: "svc-b", Description: "pipeline: release"},
	}))

	values, err := picker.extractValues("svc-a  │  pipeline: deploy\nsvc-b  │  pipeline: release\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-a", "svc-b"}, values)
}

func TestFzfPickerExtractValuesEmpty(t *testing.T) {
	picker := NewFzf("Select repositories")

	_, err := picker.extractValues("\n\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no selection made")
}

func TestFzfPickerSetPrompt(t *testing.T) {
	picker := NewFzf("old")
	picker.SetPrompt("new")
	assert.Equal(t, "new", picker.prompt)
}
