package workspace

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TextMeasurer reports the natural bounding box of rendered card text.
type TextMeasurer interface {
	Measure(text string) (w, h float64)
}

type CellMeasurer struct{}

func (CellMeasurer) Measure(text string) (float64, float64) {
	lines := strings.Split(text, "\n")
	widest := 0
	for _, line := range lines {
		widest = max(widest, lipgloss.Width(line))
	}
	return float64(widest), float64(len(lines))
}
