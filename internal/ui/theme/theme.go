// Package theme is the vatly palette: a chalkboard green base with
// chalk-coloured text and a warm highlight for whatever is in focus.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#4ADE80") // chalk green
	Secondary = lipgloss.Color("#38BDF8") // sky
	Accent    = lipgloss.Color("#FBBF24") // amber
	Success   = lipgloss.Color("#A3E635") // lime
	Error     = lipgloss.Color("#F87171") // red
	Text      = lipgloss.Color("#F1F5F2") // chalk
	TextDim   = lipgloss.Color("#9CB3A6") // smudged chalk
	BgDark    = lipgloss.Color("#0B1F17") // board
	BgCard    = lipgloss.Color("#15302A") // board edge
	Border    = lipgloss.Color("#2F5246") // frame
)

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

var (
	Title = fg(Primary).Bold(true).Align(lipgloss.Center)
	Hint  = fg(TextDim).Italic(true)

	Selected    = fg(Primary).Bold(true)
	Unselected  = fg(Text)
	Focused     = fg(Accent).Bold(true)
	ErrorText   = fg(Error).Bold(true)
	SuccessText = fg(Success)

	// Chat transcript speaker labels.
	UserName  = fg(Secondary).Bold(true)
	ModelName = fg(Primary).Bold(true)
)
