package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pinboard/internal/gesture"
	"pinboard/internal/workspace"
)

type button struct {
	action workspace.Action
	label  string
}

var toolbarButtons = []button{
	{workspace.ActionAdd, "a add"},
	{workspace.ActionDelete, "d delete"},
	{workspace.ActionEdit, "e edit"},
	{workspace.ActionUndo, "u undo"},
	{workspace.ActionRedo, "U redo"},
	{workspace.ActionFirst, "f first"},
	{workspace.ActionPreview, "p preview"},
	{workspace.ActionSettings, "s theme"},
}

const previewBanner = " exit preview (esc) "

// buttonAt returns the toolbar button under column x. Buttons are drawn as
// " label " separated by one column.
func buttonAt(x int) (button, bool) {
	pos := 0
	for _, b := range toolbarButtons {
		w := runewidth.StringWidth(b.label) + 2
		if x >= pos && x < pos+w {
			return b, true
		}
		pos += w + 1
	}
	return button{}, false
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.help {
		return m.helpView()
	}

	f := drawCanvas(sceneOf(m.ws), m.width, m.canvasHeight())
	if m.picker {
		m.drawPicker(f)
	}

	var b strings.Builder
	b.WriteString(m.toolbarView())
	b.WriteByte('\n')
	b.WriteString(f.String())
	if !m.ws.Preview() {
		b.WriteByte('\n')
		b.WriteString(m.statusView())
	}
	return b.String()
}

func (m *Model) toolbarView() string {
	p := paletteFor(m.ws.Theme())
	base := lipgloss.NewStyle().Foreground(lipgloss.Color(p.Foreground)).Background(lipgloss.Color(p.Background))
	bar := base.Width(m.width).MaxWidth(m.width).MaxHeight(1)

	tb := m.ws.Toolbar()
	if tb.IsHidden {
		return bar.Render(base.Reverse(true).Render(previewBanner))
	}

	parts := make([]string, 0, len(toolbarButtons))
	for _, b := range toolbarButtons {
		st := base
		switch {
		case b.action == workspace.ActionUndo && !tb.CanUndo,
			b.action == workspace.ActionRedo && !tb.CanRedo:
			st = st.Foreground(lipgloss.Color(p.Muted))
		case b.action == workspace.ActionDelete && tb.Mode == workspace.ModeDelete:
			st = st.Background(lipgloss.Color(p.Danger)).Bold(true)
		case b.action == workspace.ActionEdit && tb.Mode == workspace.ModeEdit:
			st = st.Background(lipgloss.Color(p.Accent)).Bold(true)
		case b.action == workspace.ActionSettings && m.picker:
			st = st.Reverse(true)
		}
		parts = append(parts, st.Render(" "+b.label+" "))
	}
	return bar.Render(strings.Join(parts, base.Render(" ")))
}

func (m *Model) statusView() string {
	p := paletteFor(m.ws.Theme())
	st := lipgloss.NewStyle().
		Width(m.width).
		MaxWidth(m.width).
		MaxHeight(1).
		Foreground(lipgloss.Color(p.Background)).
		Background(lipgloss.Color(p.Foreground))

	tb := m.ws.Toolbar()
	status := fmt.Sprintf("Mode: %s | Cards: %d", strings.ToUpper(tb.Mode.String()), tb.ElementsCount)
	if s := m.ws.GestureState(); s != gesture.Idle {
		status += " | " + s.String()
	}
	if id := m.ws.EditingID(); id != "" {
		status += " | typing, esc=done ^b/^f=colors ^o=corners ^y/^v=copy/paste"
	}
	switch {
	case m.status != "" && m.statusErr:
		status += " | ERROR: " + m.status
	case m.status != "":
		status += " | " + m.status
	default:
		status += " | ? for help | q to quit"
	}
	return st.Render(status)
}

func (m *Model) drawPicker(f *frame) {
	p := paletteFor(m.ws.Theme())
	const width = 20
	height := len(workspace.Themes) + 2
	x0 := max((f.Width()-width)/2, 0)
	y0 := max((f.Height()-height)/2, 0)

	border := lipgloss.RoundedBorder()
	for y := y0; y < y0+height; y++ {
		for x := x0; x < x0+width; x++ {
			f.Set(x, y, ' ', p.Foreground, p.Background)
		}
	}
	f.Text(x0+2, y0, " Theme ", 0, p.Accent, "")
	for y := y0 + 1; y < y0+height-1; y++ {
		f.Set(x0, y, []rune(border.Left)[0], p.Accent, "")
		f.Set(x0+width-1, y, []rune(border.Right)[0], p.Accent, "")
	}
	for x := x0 + 1; x < x0+width-1; x++ {
		f.Set(x, y0+height-1, []rune(border.Bottom)[0], p.Accent, "")
	}
	f.Set(x0, y0, []rune(border.TopLeft)[0], p.Accent, "")
	f.Set(x0+width-1, y0, []rune(border.TopRight)[0], p.Accent, "")
	f.Set(x0, y0+height-1, []rune(border.BottomLeft)[0], p.Accent, "")
	f.Set(x0+width-1, y0+height-1, []rune(border.BottomRight)[0], p.Accent, "")

	for i, t := range workspace.Themes {
		marker := "  "
		if i == m.pickerIndex {
			marker = "> "
		}
		f.Text(x0+2, y0+1+i, marker+string(t), width-4, p.Foreground, "")
	}
}

var helpLines = []string{
	"pinboard help",
	"=============",
	"",
	"Mouse:",
	"  drag background     pan the canvas",
	"  drag card           move it (dropped back if it would overlap)",
	"  drag ◢ corner       resize the focused card",
	"  hold on a card      edit it (double-click works too)",
	"  click ✎             edit that card (edit mode)",
	"",
	"Keys:",
	"  a                   add a card",
	"  d / e               toggle delete / edit mode",
	"  u / U               undo / redo",
	"  f                   jump to the next card",
	"  p                   preview (esc to leave)",
	"  s                   choose a theme",
	"  h/j/k/l, arrows     pan (shift for faster)",
	"  x / X               export visible canvas as text / all cards as PNG",
	"  q / ctrl+c          quit",
	"",
	"While editing a card:",
	"  type                append text, enter for a new line",
	"  ctrl+b / ctrl+f     cycle background / text color",
	"  ctrl+o              cycle corner style",
	"  ctrl+y / ctrl+v     copy / paste text",
	"  esc                 finish editing",
	"",
	"Press any key to close.",
}

func (m *Model) helpView() string {
	lines := helpLines
	if len(lines) > m.height {
		lines = lines[:m.height]
	}
	return strings.Join(lines, "\n")
}
