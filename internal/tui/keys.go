package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/gesture"
	"pinboard/internal/workspace"
)

const panStep = 4

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if m.help {
		m.help = false
		return nil
	}
	if m.picker {
		m.handlePickerKey(msg)
		return nil
	}
	if id := m.ws.EditingID(); id != "" {
		return m.handleEditKey(id, msg)
	}

	key := msg.String()
	switch key {
	case "q":
		return tea.Quit
	case "?":
		m.help = true
	case "esc":
		m.escape()
	case "a":
		return m.dispatch(workspace.ActionAdd)
	case "d":
		return m.dispatch(workspace.ActionDelete)
	case "e":
		return m.dispatch(workspace.ActionEdit)
	case "u":
		return m.dispatch(workspace.ActionUndo)
	case "U", "ctrl+r":
		return m.dispatch(workspace.ActionRedo)
	case "f":
		return m.dispatch(workspace.ActionFirst)
	case "p":
		return m.dispatch(workspace.ActionPreview)
	case "s":
		return m.dispatch(workspace.ActionSettings)
	case "x":
		m.exportText()
	case "X":
		m.exportPNG()
	case "h", "left", "H", "shift+left",
		"l", "right", "L", "shift+right",
		"k", "up", "K", "shift+up",
		"j", "down", "J", "shift+down":
		m.handlePan(key, getMoveSpeed(key))
	}
	return nil
}

func (m *Model) escape() {
	switch {
	case m.ws.GestureState() != gesture.Idle:
		// A release outside the terminal never arrives.
		m.afterRelease(m.ws.PointerCancel())
	case m.ws.Preview():
		m.ws.ExitPreview()
	case m.ws.Mode() == workspace.ModeDelete:
		m.ws.ToggleDeleteMode()
	case m.ws.Mode() == workspace.ModeEdit:
		m.ws.ToggleEditMode()
	default:
		m.status = ""
	}
}

// handlePan moves the view. Looking left shifts the content right.
func (m *Model) handlePan(key string, speed int) {
	step := float64(speed * panStep)
	switch key {
	case "h", "left", "H", "shift+left":
		m.ws.Pan(step, 0)
	case "l", "right", "L", "shift+right":
		m.ws.Pan(-step, 0)
	case "k", "up", "K", "shift+up":
		m.ws.Pan(0, step)
	case "j", "down", "J", "shift+down":
		m.ws.Pan(0, -step)
	}
}

func getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 2
	default:
		return 1
	}
}

func (m *Model) handleEditKey(id string, msg tea.KeyMsg) tea.Cmd {
	c, ok := m.ws.Card(id)
	if !ok {
		return nil
	}

	switch msg.String() {
	case "esc":
		m.ws.EndEdit()
		return nil
	case "enter":
		m.setText(id, c.Text+"\n")
	case "backspace":
		if r := []rune(c.Text); len(r) > 0 {
			m.setText(id, string(r[:len(r)-1]))
		}
	case "ctrl+b":
		bg := workspace.NextPreset(workspace.BgPresets, c.BgColor)
		m.ws.UpdateCard(id, workspace.Patch{BgColor: &bg})
	case "ctrl+f":
		fg := workspace.NextPreset(workspace.TextPresets, c.TextColor)
		m.ws.UpdateCard(id, workspace.Patch{TextColor: &fg})
	case "ctrl+o":
		next := workspace.NextPreset(workspace.RadiusPresets, radiusPreset(c.BorderRadius))
		m.ws.UpdateCard(id, workspace.Patch{BorderRadius: &next.Percent})
		m.setStatus("corners: " + strings.ToLower(next.Label))
	case "ctrl+y":
		if err := m.clip.Write(c.Text); err != nil {
			m.setError(fmt.Errorf("copy: %w", err))
			return nil
		}
		m.setStatus("copied card text")
	case "ctrl+v":
		text, err := m.clip.Read()
		if err != nil {
			m.setError(fmt.Errorf("paste: %w", err))
			return nil
		}
		m.setText(id, c.Text+cleanClipboardText(text))
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.setText(id, c.Text+string(msg.Runes))
		case tea.KeySpace:
			m.setText(id, c.Text+" ")
		case tea.KeyTab:
			m.setText(id, c.Text+"    ")
		}
	}
	return nil
}

func (m *Model) setText(id, text string) {
	m.ws.UpdateCard(id, workspace.Patch{Text: &text})
}

// radiusPreset maps a stored radius to its preset, or a zero preset that
// NextPreset treats as unknown.
func radiusPreset(pct float64) workspace.RadiusPreset {
	for _, p := range workspace.RadiusPresets {
		if p.Percent == pct {
			return p
		}
	}
	return workspace.RadiusPreset{Percent: -1}
}

func (m *Model) openPicker() {
	m.picker = true
	m.pickerIndex = 0
	for i, t := range workspace.Themes {
		if t == m.ws.Theme() {
			m.pickerIndex = i
		}
	}
}

func (m *Model) handlePickerKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "q", "s":
		m.picker = false
	case "k", "up":
		m.pickerIndex = (m.pickerIndex + len(workspace.Themes) - 1) % len(workspace.Themes)
	case "j", "down":
		m.pickerIndex = (m.pickerIndex + 1) % len(workspace.Themes)
	case "enter", " ":
		t := workspace.Themes[m.pickerIndex]
		if err := m.ws.SetTheme(t); err != nil {
			m.setError(err)
		} else {
			m.setStatus("theme: " + string(t))
		}
		m.picker = false
	}
}
