// Package fuzzy provides pickers for interactively choosing which pending
// repositories to provision. The fzf-backed picker is used on real
// terminals; the plain numbered picker is the universal fallback.
package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Option represents a selectable option in a picker
type Option struct {
	Value       string
	Description string
}

// Picker is a line-based multi-select prompt
type Picker struct {
	prompt  string
	options []Option
	in      io.Reader
	out     io.Writer
}

// New creates a picker reading from stdin and writing to stdout
func New(prompt string) *Picker {
	return NewWithIO(prompt, os.Stdin, os.Stdout)
}

// NewWithIO creates a picker with explicit streams (used in tests)
func NewWithIO(prompt string, in io.Reader, out io.Writer) *Picker {
	return &Picker{
		prompt:  prompt,
		options: make([]Option, 0),
		in:      in,
		out:     out,
	}
}

// AddOption adds a selectable option to the picker
func (p *Picker) AddOption(value, description string) {
	p.options = append(p.options, Option{
		Value:       value,
		Description: description,
	})
}

// SetOptions replaces all options at once
func (p *Picker) SetOptions(options []Option) error {
	if options == nil {
		return fmt.Errorf("options cannot be nil")
	}

	p.options = make([]Option, len(options))
	copy(p.options, options)
	return nil
}

// PickMany displays the options and returns the chosen subset. Input is a
// comma or space separated list of numbers, or "all".
func (p *Picker) PickMany() ([]string, error) {
	if len(p.options) == 0 {
		return nil, fmt.Errorf("no options available")
	}

	fmt.Fprintln(p.out, p.prompt)
	fmt.Fprintln(p.out, strings.Repeat("-", len(p.prompt)))

	for i, option := range p.options {
		fmt.Fprintf(p.out, "%d. %s", i+1, option.Value)
		if option.Description != "" {
			fmt.Fprintf(p.out, " - %s", option.Description)
		}
		fmt.Fprintln(p.out)
	}

	fmt.Fprintf(p.out, "\nSelect options (e.g. 1,3 or 'all'): ")

	reader := bufio.NewReader(p.in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return p.parseSelection(strings.TrimSpace(input))
}

// parseSelection resolves user input into option values
func (p *Picker) parseSelection(input string) ([]string, error) {
	if input == "" {
		return nil, fmt.Errorf("no selection made")
	}

	if strings.EqualFold(input, "all") {
		values := make([]string, len(p.options))
		for i, option := range p.options {
			values[i] = option.Value
		}
		return values, nil
	}

	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' '
	})

	var values []string
	seen := make(map[int]bool)
	for _, field := range fields {
		selection, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid selection: %s", field)
		}
		if selection < 1 || selection > len(p.options) {
			return nil, fmt.Errorf("selection out of range: %d", selection)
		}
		if seen[selection] {
			continue
		}
		seen[selection] = true
		values = append(values, p.options[selection-1].Value)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no selection made")
	}

	return values, nil
}
