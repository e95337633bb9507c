package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"pinboard/internal/geometry"
	"pinboard/internal/gesture"
	"pinboard/internal/workspace"
)

const wheelStep = 2

// canvasPoint converts a terminal position to a canvas screen point. The
// canvas starts below the toolbar row.
func (m *Model) canvasPoint(msg tea.MouseMsg) geometry.Point {
	return geometry.Point{X: float64(msg.X), Y: float64(msg.Y - 1)}
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	now := m.now()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.ws.Pan(0, wheelStep)
			return nil
		case tea.MouseButtonWheelDown:
			m.ws.Pan(0, -wheelStep)
			return nil
		case tea.MouseButtonWheelLeft:
			m.ws.Pan(wheelStep, 0)
			return nil
		case tea.MouseButtonWheelRight:
			m.ws.Pan(-wheelStep, 0)
			return nil
		case tea.MouseButtonLeft:
		default:
			return nil
		}

		if msg.Y == 0 {
			return m.clickBar(msg.X)
		}
		if msg.Y > m.canvasHeight() || m.help {
			return nil
		}
		if m.picker {
			m.picker = false
			return nil
		}

		p := m.canvasPoint(msg)
		m.pressID = ""
		if hit := m.ws.HitTest(p); hit.Kind == gesture.HitBody {
			m.pressID = hit.ID
		}
		if timer, armed := m.ws.PointerDown(p, now); armed {
			return longPressCmd(timer)
		}
		return nil

	case tea.MouseActionMotion:
		if m.ws.GestureState() == gesture.Idle {
			return nil
		}
		// A press held past its deadline counts even if the tick is late.
		m.ws.Expire(now)
		m.ws.PointerMove(m.canvasPoint(msg), now)
		return nil

	case tea.MouseActionRelease:
		if m.ws.GestureState() == gesture.Idle {
			return nil
		}
		m.ws.Expire(now)
		out := m.ws.PointerUp(m.canvasPoint(msg), now)
		m.afterRelease(out)
		return nil
	}
	return nil
}

func (m *Model) afterRelease(out gesture.Outcome) {
	id := m.pressID
	m.pressID = ""

	switch out {
	case gesture.OutcomeRolledBack:
		m.status = "card would overlap another card"
		m.statusErr = true
		m.lastClickID = ""
	case gesture.OutcomeCommitted:
		m.lastClickID = ""
	case gesture.OutcomeUnchanged:
		if id == "" {
			return
		}
		now := m.now()
		if id == m.lastClickID && now.Sub(m.lastClickAt) <= doubleClickWindow {
			m.ws.BeginEdit(id)
			m.lastClickID = ""
			return
		}
		m.lastClickID, m.lastClickAt = id, now
	}
}

func (m *Model) clickBar(x int) tea.Cmd {
	if m.ws.Preview() {
		m.ws.ExitPreview()
		return nil
	}
	b, ok := buttonAt(x)
	if !ok {
		return nil
	}
	return m.dispatch(b.action)
}

func (m *Model) dispatch(a workspace.Action) tea.Cmd {
	if m.ws.Preview() {
		return nil
	}
	if a == workspace.ActionSettings {
		m.openPicker()
		return nil
	}
	if err := m.ws.Dispatch(a); err != nil {
		m.setError(err)
	}
	return nil
}
