// Copyright 2026 The Coinshuffle Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// labelWidth aligns the values of Field rows.
const labelWidth = 14

// Theme renders human-readable command output. Its renderer inspects
// the destination writer, so colors and bold only appear on a terminal
// and piped output stays plain text.
type Theme struct {
	heading lipgloss.Style
	label   lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	faint   lipgloss.Style
}

// NewTheme returns a theme for output written to w.
func NewTheme(w io.Writer) Theme {
	renderer := lipgloss.NewRenderer(w)
	return Theme{
		heading: renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:   renderer.NewStyle().Width(labelWidth).Foreground(lipgloss.Color("245")),
		good:    renderer.NewStyle().Foreground(lipgloss.Color("10")),
		bad:     renderer.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		faint:   renderer.NewStyle().Faint(true),
	}
}

// Heading renders a section title.
func (t Theme) Heading(text string) string {
	return t.heading.Render(text)
}

// Field renders an aligned "label  value" row.
func (t Theme) Field(label string, value any) string {
	return t.label.Render(label+":") + " " + fmt.Sprint(value)
}

// Status renders text as success or failure.
func (t Theme) Status(ok bool, text string) string {
	if ok {
		return t.good.Render(text)
	}
	return t.bad.Render(text)
}

// Faint renders secondary text.
func (t Theme) Faint(text string) string {
	return t.faint.Render(text)
}
