package main

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/samber/lo"

	"kikitori/annotate"
	"kikitori/pitch"
	"kikitori/transcribe"
)

var (
	furiganaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	textStyle     = lipgloss.NewStyle().Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// cell is one token column: furigana on top, surface text in the middle,
// pitch contour below.
type cell struct {
	furigana string
	text     string
	contour  string
}

// renderTokens draws three aligned lines per utterance. Tokens without a
// furigana need or pitch information leave their line blank for that column.
func renderTokens(toks []annotate.Token) string {
	cells := lo.Map(toks, func(t annotate.Token, _ int) cell {
		c := cell{text: t.Text}
		if t.NeedsFurigana {
			c.furigana = t.Reading
		}
		c.contour = contourMarks(t.Pitch)
		return c
	})

	var top, mid, bot []string
	for _, c := range cells {
		w := lo.Max([]int{lipgloss.Width(c.furigana), lipgloss.Width(c.text), lipgloss.Width(c.contour)})
		top = append(top, furiganaStyle.Render(c.furigana)+pad(w-lipgloss.Width(c.furigana)))
		mid = append(mid, textStyle.Render(c.text)+pad(w-lipgloss.Width(c.text)))
		bot = append(bot, c.contour+pad(w-lipgloss.Width(c.contour)))
	}

	lines := []string{
		strings.Join(top, " "),
		strings.Join(mid, " "),
		strings.Join(bot, " "),
	}
	// drop all-blank furigana/contour lines
	lines = lo.Filter(lines, func(l string, _ int) bool {
		return strings.TrimSpace(stripANSI(l)) != ""
	})
	return strings.Join(lines, "\n")
}

// contourMarks renders one mark per mora: a raised bar for high pitch, a low
// bar for low pitch. Fullwidth marks keep rough column alignment with kana.
func contourMarks(levels []pitch.Level) string {
	var b strings.Builder
	for _, l := range levels {
		if l == pitch.High {
			b.WriteString(highStyle.Render("￣"))
		} else {
			b.WriteString(lowStyle.Render("＿"))
		}
	}
	return b.String()
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// stripANSI removes escape sequences so blank-line detection sees only text.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func printJSON(w io.Writer, u transcribe.Utterance, toks []annotate.Token) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(map[string]any{
		"utterance": u,
		"tokens":    toks,
	})
}
