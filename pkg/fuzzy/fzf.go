package fuzzy

import (
	"fmt"
	"io"
	"os"
	"strings"

	fzf "github.com/junegunn/fzf/src"
	"golang.org/x/term"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// FzfPicker implements multi-selection using the fzf library
type FzfPicker struct {
	options  []Option
	prompt   string
	runner   FzfRunner
	fallback func() ([]string, error)
}

// NewFzf creates a new fzf-backed picker
func NewFzf(prompt string) *FzfPicker {
	p := &FzfPicker{
		prompt:  prompt,
		options: make([]Option, 0),
		runner:  &DefaultFzfRunner{},
	}
	p.fallback = p.fallbackPick
	return p
}

// NewFzfWithRunner creates a new fzf-backed picker with a custom runner (for testing)
func NewFzfWithRunner(prompt string, runner FzfRunner) *FzfPicker {
	p := &FzfPicker{
		prompt:  prompt,
		options: make([]Option, 0),
		runner:  runner,
	}
	p.fallback = p.fallbackPick
	return p
}

// SetOptions sets the available options for selection
func (p *FzfPicker) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	p.options = make([]Option, len(options))
	copy(p.options, options)
	return nil
}

// SetPrompt sets the display prompt
func (p *FzfPicker) SetPrompt(prompt string) {
	p.prompt = prompt
}

// PickMany starts the fuzzy multi-selection process. Items are toggled with
// tab inside fzf. Without a terminal, or when fzf fails to start, the plain
// numbered picker takes over.
func (p *FzfPicker) PickMany() ([]string, error) {
	if len(p.options) == 0 {
		return nil, fmt.Errorf("no options available")
	}

	// fzf needs a real terminal to draw its UI
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		return p.fallback()
	}

	// Create a temporary file with the options
	tmpFile, err := os.CreateTemp("", "fzf-options-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Ignore cleanup errors
	}()
	defer func() {
		_ = tmpFile.Close() // Ignore close errors
	}()

	// Write options to temporary file
	for _, option := range p.options {
		displayText := option.Value
		if option.Description != "" {
			displayText = fmt.Sprintf("%s  │  %s", option.Value, option.Description)
		}
		if _, err := fmt.Fprintln(tmpFile, displayText); err != nil {
			return nil, fmt.Errorf("failed to write option to file: %w", err)
		}
	}

	// Close the file so fzf can read it
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	// Prepare fzf arguments
	args := []string{
		"--prompt=" + p.prompt + " ",
		"--height=10",
		"--layout=default",
		"--multi",
		"--cycle",
		"--hscroll",
		"--hscroll-off=10",
		"--tabstop=8",
		"--clear",
		"--extended",
		"--algo=v2",
		"--tiebreak=length",
		"--sort=1000",
		"--no-mouse",
		"--no-reverse",
		"--border=none",
	}

	// Parse options and run fzf
	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	// Redirect stdin to read from our temporary file
	originalStdin := os.Stdin
	defer func() { os.Stdin = originalStdin }()

	tmpFileForReading, err := os.Open(tmpFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary file for reading: %w", err)
	}
	defer func() {
		_ = tmpFileForReading.Close() // Ignore close errors
	}()

	os.Stdin = tmpFileForReading

	// Capture stdout to get the selected result
	originalStdout := os.Stdout
	defer func() { os.Stdout = originalStdout }()

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	defer func() {
		_ = r.Close() // Ignore close errors
	}()
	defer func() {
		_ = w.Close() // Ignore close errors
	}()

	os.Stdout = w

	// Run fzf
	exitCode, err := p.runner.Run(opts)

	// Restore stdout before reading result
	_ = w.Close() // Ignore close errors
	os.Stdout = originalStdout

	if err != nil {
		// Fallback to simple picker if fzf fails
		return p.fallback()
	}

	if exitCode != fzf.ExitOk {
		return nil, fmt.Errorf("fzf selection cancelled or failed")
	}

	// Read the result
	result, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fzf result: %w", err)
	}

	return p.extractValues(string(result))
}

// extractValues resolves the raw fzf output back to option values. Each line
// has the "value  │  description" display format.
func (p *FzfPicker) extractValues(output string) ([]string, error) {
	var values []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		parts := strings.Split(line, "  │  ")
		selectedValue := strings.TrimSpace(parts[0])

		// Find the matching option to return the original value
		matched := false
		for _, option := range p.options {
			if option.Value == selectedValue {
				values = append(values, option.Value)
				matched = true
				break
			}
		}
		if !matched {
			values = append(values, selectedValue)
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no selection made")
	}

	return values, nil
}

// MultiPicker defines the interface for multi-selection pickers
type MultiPicker interface {
	SetOptions(options []Option) error
	PickMany() ([]string, error)
}

// fallbackPick provides the plain numbered selection for when fzf is unavailable
func (p *FzfPicker) fallbackPick() ([]string, error) {
	picker := New(p.prompt)
	for _, option := range p.options {
		picker.AddOption(option.Value, option.Description)
	}
	return picker.PickMany()
}

// Ensure both pickers implement the interface
var (
	_ MultiPicker = (*FzfPicker)(nil)
	_ MultiPicker = (*Picker)(nil)
)
