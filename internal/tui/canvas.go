package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pinboard/internal/geometry"
	"pinboard/internal/workspace"
)

type palette struct {
	Background string
	Foreground string
	Muted      string
	Accent     string
	Danger     string
}

var palettes = map[workspace.Theme]palette{
	workspace.ThemeDark:   {Background: "#1e1e1e", Foreground: "#d4d4d4", Muted: "#6b6b6b", Accent: "#6b46ff", Danger: "#ff4d4d"},
	workspace.ThemeLight:  {Background: "#f5f5f5", Foreground: "#1f1f1f", Muted: "#a0a0a0", Accent: "#6b46ff", Danger: "#d62828"},
	workspace.ThemeMedium: {Background: "#7a7a7a", Foreground: "#f0f0f0", Muted: "#b5b5b5", Accent: "#facc15", Danger: "#ff4d4d"},
}

func paletteFor(t workspace.Theme) palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[workspace.ThemeDark]
}

type cell struct {
	r    rune
	fg   string
	bg   string
	bold bool
}

// frame is a fixed-size grid of cells. Writes outside the grid are dropped.
type frame struct {
	width  int
	height int
	cells  [][]cell
}

func newFrame(width, height int, p palette) *frame {
	width, height = max(width, 1), max(height, 1)
	cells := make([][]cell, height)
	for y := range cells {
		cells[y] = make([]cell, width)
		for x := range cells[y] {
			cells[y][x] = cell{r: ' ', fg: p.Foreground, bg: p.Background}
		}
	}
	return &frame{width: width, height: height, cells: cells}
}

func (f *frame) Width() int  { return f.width }
func (f *frame) Height() int { return f.height }

// Set writes one cell. An empty fg or bg keeps the existing color.
func (f *frame) Set(x, y int, r rune, fg, bg string) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	c := &f.cells[y][x]
	c.r = r
	if fg != "" {
		c.fg = fg
	}
	if bg != "" {
		c.bg = bg
	}
}

func (f *frame) Bold(x, y int) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y][x].bold = true
}

// Text writes s starting at (x, y), clipped to limit cells when limit > 0.
// Wide runes occupy two cells. It returns the number of cells written.
func (f *frame) Text(x, y int, s string, limit int, fg, bg string) int {
	n := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if limit > 0 && n+w > limit {
			break
		}
		f.Set(x+n, y, r, fg, bg)
		for i := 1; i < w; i++ {
			f.Set(x+n+i, y, 0, fg, bg)
		}
		n += w
	}
	return n
}

func (f *frame) Lines() []string {
	lines := make([]string, f.height)
	var b strings.Builder
	for y, row := range f.cells {
		b.Reset()
		for _, c := range row {
			if c.r != 0 {
				b.WriteRune(c.r)
			}
		}
		lines[y] = strings.TrimRight(b.String(), " ")
	}
	return lines
}

func (f *frame) String() string {
	var out strings.Builder
	var run strings.Builder
	for y, row := range f.cells {
		if y > 0 {
			out.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			run.Reset()
			for _, c := range row[start:x] {
				if c.r != 0 {
					run.WriteRune(c.r)
				}
			}
			out.WriteString(styleOf(row[start]).Render(run.String()))
			start = x
		}
	}
	return out.String()
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

func styleOf(c cell) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.fg)).
		Background(lipgloss.Color(c.bg)).
		Bold(c.bold)
}

const (
	resizeGlyph = '◢'
	editGlyph   = '✎'
)

type scene struct {
	Cards   []workspace.Card
	Offset  geometry.Point
	Theme   workspace.Theme
	Mode    workspace.Mode
	Focused string

	// Live geometry of a card under a gesture, in screen space.
	ActiveID   string
	ActiveRect geometry.Rect
}

func sceneOf(w *workspace.Workspace) scene {
	s := scene{
		Cards:   w.Cards(),
		Offset:  w.Offset(),
		Theme:   w.Theme(),
		Mode:    w.Mode(),
		Focused: w.EditingID(),
	}
	if id, r, ok := w.Proposed(); ok {
		s.ActiveID, s.ActiveRect = id, r
	}
	return s
}

// drawCanvas draws the scene into a width x height frame. The focused card and
// the card under a gesture are drawn last so they sit on top.
func drawCanvas(s scene, width, height int) *frame {
	p := paletteFor(s.Theme)
	f := newFrame(width, height, p)

	var top []workspace.Card
	for _, c := range s.Cards {
		if c.ID == s.Focused || c.ID == s.ActiveID {
			top = append(top, c)
			continue
		}
		drawCard(f, c, s.screenRect(c), s.cardStyle(c, p))
	}
	for _, c := range top {
		drawCard(f, c, s.screenRect(c), s.cardStyle(c, p))
	}
	return f
}

func (s scene) screenRect(c workspace.Card) geometry.Rect {
	if c.ID == s.ActiveID {
		return s.ActiveRect
	}
	return c.Rect().Translate(s.Offset)
}

type cardStyle struct {
	border  lipgloss.Border
	edge    string
	handle  bool
	trigger bool
}

func (s scene) cardStyle(c workspace.Card, p palette) cardStyle {
	st := cardStyle{border: borderFor(c), edge: c.TextColor}
	switch {
	case c.ID == s.Focused:
		st.border = lipgloss.ThickBorder()
		st.edge = p.Accent
		st.handle = true
	case s.Mode == workspace.ModeDelete:
		st.border = lipgloss.DoubleBorder()
		st.edge = p.Danger
	case s.Mode == workspace.ModeEdit:
		st.trigger = true
	}
	return st
}

// borderFor picks the rune set closest to the card's corner radius.
func borderFor(c workspace.Card) lipgloss.Border {
	if c.RadiusCells() < 0.5 {
		return lipgloss.NormalBorder()
	}
	return lipgloss.RoundedBorder()
}

func cellRect(r geometry.Rect) (x, y, w, h int) {
	return int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.W)), int(math.Round(r.H))
}

func drawCard(f *frame, c workspace.Card, r geometry.Rect, st cardStyle) {
	x0, y0, w, h := cellRect(r)
	if w < 2 || h < 2 {
		return
	}
	x1, y1 := x0+w-1, y0+h-1
	bg := c.BgColor

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			f.Set(x, y, ' ', c.TextColor, bg)
		}
	}

	b := st.border
	for x := x0 + 1; x < x1; x++ {
		f.Set(x, y0, first(b.Top), st.edge, bg)
		f.Set(x, y1, first(b.Bottom), st.edge, bg)
	}
	for y := y0 + 1; y < y1; y++ {
		f.Set(x0, y, first(b.Left), st.edge, bg)
		f.Set(x1, y, first(b.Right), st.edge, bg)
	}
	f.Set(x0, y0, first(b.TopLeft), st.edge, bg)
	f.Set(x1, y0, first(b.TopRight), st.edge, bg)
	f.Set(x0, y1, first(b.BottomLeft), st.edge, bg)
	f.Set(x1, y1, first(b.BottomRight), st.edge, bg)

	padX := workspace.PadX / 2
	padY := workspace.PadY / 2
	for i, line := range strings.Split(c.Text, "\n") {
		y := y0 + padY + i
		if y >= y1 {
			break
		}
		f.Text(x0+padX, y, line, w-2*padX, c.TextColor, bg)
	}

	if st.handle {
		f.Set(x1, y1, resizeGlyph, st.edge, bg)
		f.Bold(x1, y1)
	}
	if st.trigger {
		f.Set(x0, y0, editGlyph, st.edge, bg)
	}
}

func first(s string) rune {
	for _, r := range s {
		return r
	}
	return ' '
}
