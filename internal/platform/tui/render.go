package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gor-arcade/internal/core"
)

// ansiCodes is the terminal color for each palette entry.
// ColorDefault is absent and renders unstyled.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorPurple:        "93",
}

var palette = buildPalette()

func buildPalette() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiCodes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := palette[c]; ok {
		return s
	}
	return palette[core.ColorDefault]
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	wonStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	lostStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// RenderScreen converts a Screen buffer to a styled string.
// Each row is emitted as runs of equal color so a run costs one escape sequence.
func RenderScreen(s *core.Screen) string {
	w, h := s.Width(), s.Height()
	rows := make([]string, h)
	var run []rune

	for y := range h {
		var row strings.Builder
		run = run[:0]
		current := s.GetCell(0, y).Color
		for x := range w {
			cell := s.GetCell(x, y)
			if cell.Color != current {
				row.WriteString(styleFor(current).Render(string(run)))
				run = run[:0]
				current = cell.Color
			}
			run = append(run, cell.Rune)
		}
		if len(run) > 0 {
			row.WriteString(styleFor(current).Render(string(run)))
		}
		rows[y] = row.String()
	}
	return strings.Join(rows, "\n")
}

// renderStatus formats the footer shown under the playfield.
func renderStatus(order core.Order, st core.GameState, player string) string {
	label := "Score"
	if order == core.LowerIsBetter {
		label = "Time"
	}

	line := fmt.Sprintf("%s: %d", label, st.Score)
	if player != "" {
		line = player + "  |  " + line
	}
	switch {
	case st.GameOver && st.Won:
		return statusStyle.Render(line+"  |  ") + wonStyle.Render("WON")
	case st.GameOver:
		return statusStyle.Render(line+"  |  ") + lostStyle.Render("GAME OVER")
	case st.Paused:
		line += "  |  paused"
	}
	return statusStyle.Render(line)
}
