package provision

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSpecsValid(t *testing.T) {
	specs := []RepoSpec{
		{Name: "svc-a", Collaborators: []string{"alice", "bob-smith"}, Pipeline: "deploy", Status: StatusNeedToCreate},
		{Name: "data.pipeline_v2", Status: StatusCreated},
	}

	assert.NoError(t, ValidateSpecs(specs))
}

func TestValidateSpecsEmptyList(t *testing.T) {
	assert.NoError(t, ValidateSpecs(nil))
}

func TestValidateSpecsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		specs   []RepoSpec
		wantMsg string
	}{
		{
			name:    "missing name",
			specs:   []RepoSpec{{Status: StatusNeedToCreate}},
			wantMsg: "repository name is required",
		},
		{
			name:    "illegal characters",
			specs:   []RepoSpec{{Name: "svc a!", Status: StatusNeedToCreate}},
			wantMsg: "alphanumeric",
		},
		{
			name:    "leading period",
			specs:   []RepoSpec{{Name: ".svc", Status: StatusNeedToCreate}},
			wantMsg: "period",
		},
		{
			name:    "name too long",
			specs:   []RepoSpec{{Name: strings.Repeat("a", 101), Status: StatusNeedToCreate}},
			wantMsg: "100 characters",
		},
		{
			name: "duplicate names",
			specs: []RepoSpec{
				{Name: "svc-a", Status: StatusCreated},
				{Name: "svc-a", Status: StatusNeedToCreate},
			},
			wantMsg: "duplicate",
		},
		{
			name:    "bad username",
			specs:   []RepoSpec{{Name: "svc-a", Collaborators: []string{"-alice"}, Status: StatusNeedToCreate}},
			wantMsg: "hyphen",
		},
		{
			name:    "consecutive hyphens in username",
			specs:   []RepoSpec{{Name: "svc-a", Collaborators: []string{"a--b"}, Status: StatusNeedToCreate}},
			wantMsg: "consecutive hyphens",
		},
		{
			name:    "missing status",
			specs:   []RepoSpec{{Name: "svc-a"}},
			wantMsg: "status is required",
		},
		{
			name:    "unknown status",
			specs:   []RepoSpec{{Name: "svc-a", Status: "pending"}},
			wantMsg: "unknown status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSpecs(tt.specs)
			require.Error(t, err)
			assert.True(t, IsErrorType(err, ErrorTypeValidation))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateSpecsCollectsAllErrors(t *testing.T) {
	specs := []RepoSpec{
		{Name: "", Status: ""},
		{Name: "ok-repo", Collaborators: []string{"--"}, Status: StatusCreated},
	}

	err := ValidateSpecs(specs)
	require.Error(t, err)

	var pErr *ProvisionError
	require.ErrorAs(t, err, &pErr)

	valErrs, ok := pErr.Cause.(ValidationErrors)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(valErrs), 3)
}
