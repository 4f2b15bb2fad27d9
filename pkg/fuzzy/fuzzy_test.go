package fuzzy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPicker(input string) (*Picker, *bytes.Buffer) {
	out := &bytes.Buffer{}
	picker := NewWithIO("Select repositories to provision", strings.NewReader(input), out)
	picker.AddOption("svc-a", "pipeline: deploy")
	picker.AddOption("svc-b", "pipeline: release")
	picker.AddOption("data-sync", "")
	return picker, out
}

func TestPickerPickMany(t *testing.T) {
	picker, out := newTestPicker("1,3\n")

	values, err := picker.PickMany()
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-a", "data-sync"}, values)

	assert.Contains(t, out.String(), "1. svc-a - pipeline: deploy")
	assert.Contains(t, out.String(), "3. data-sync")
}

func TestPickerPickManyAll(t *testing.T) {
	picker, _ := newTestPicker("all\n")

	values, err := picker.PickMany()
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-a", "svc-b", "data-sync"}, values)
}

func TestPickerPickManySpaceSeparated(t *testing.T) {
	picker, _ := newTestPicker("2 3\n")

	values, err := picker.PickMany()
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-b", "data-sync"}, values)
}

func TestPickerPickManyDeduplicates(t *testing.T) {
	picker, _ := newTestPicker("2,2,2\n")

	values, err := picker.PickMany()
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-b"}, values)
}

func TestPickerPickManyErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{"empty input", "\n", "no selection made"},
		{"not a number", "one\n", "invalid selection"},
		{"out of range high", "9\n", "out of range"},
		{"out of range zero", "0\n", "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picker, _ := newTestPicker(tt.input)

			_, err := picker.PickMany()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestPickerPickManyNoOptions(t *testing.T) {
	picker := NewWithIO("empty", strings.NewReader("1\n"), &bytes.Buffer{})

	_, err := picker.PickMany()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no options available")
}

func TestPickerSetOptions(t *testing.T) {
	picker := NewWithIO("prompt", strings.NewReader(""), &bytes.Buffer{})

	assert.Error(t, picker.SetOptions(nil))

	require.NoError(t, picker.SetOptions([]Option{{Value: "svc-a"}}))
	assert.Len(t, picker.options, 1)
}
