package workspace

import (
	"fmt"
	"math"

	"github.com/samber/lo"

	"pinboard/internal/geometry"
)

// AddCard places a new card near the centre of the viewport, styled like the
// last card the user styled, and focuses it for editing.
func (w *Workspace) AddCard() Card {
	width, height := float64(DefaultCardWidth), float64(DefaultCardHeight)
	preferred := geometry.Point{
		X: math.Floor(-w.offset.X + w.viewport.X/2 - width/2),
		Y: math.Floor(-w.offset.Y + w.viewport.Y/2 - height/2),
	}
	pos := w.placer.FindFreePosition(width, height, preferred, w.boxes(), "")

	card := Card{
		ID:           w.newID(),
		X:            pos.X,
		Y:            pos.Y,
		Width:        width,
		Height:       height,
		BgColor:      w.lastStyle.BgColor,
		TextColor:    w.lastStyle.TextColor,
		BorderRadius: w.lastStyle.BorderRadius,
	}
	w.cards = append(w.cards, card)
	w.commit()
	w.editingID = card.ID
	w.mode = ModeEdit
	w.persist()

	w.logger.Debug("card added", "id", card.ID, "x", card.X, "y", card.Y)
	return card
}

func (w *Workspace) DeleteCard(id string) {
	i := w.indexOf(id)
	if i < 0 {
		return
	}
	w.cards = append(w.cards[:i:i], w.cards[i+1:]...)
	if w.editingID == id {
		w.editingID = ""
		w.mode = ModeNormal
	}
	w.commit()
	w.persist()
	w.logger.Debug("card deleted", "id", id)
}

// UpdateCard merges p into the card. Style fields become the default for
// new cards. Text changes grow the card to fit, never shrinking it. History
// is not recorded; text edits are snapshotted when focus is lost.
func (w *Workspace) UpdateCard(id string, p Patch) {
	i := w.indexOf(id)
	if i < 0 {
		return
	}

	if p.BgColor != nil {
		w.lastStyle.BgColor = *p.BgColor
	}
	if p.TextColor != nil {
		w.lastStyle.TextColor = *p.TextColor
	}
	if p.BorderRadius != nil {
		w.lastStyle.BorderRadius = clampRadius(*p.BorderRadius)
	}

	card := p.apply(w.cards[i])
	minW, minH := w.minSizeFor(card.Text)
	card.Width = max(card.Width, minW)
	card.Height = max(card.Height, minH)
	w.cards[i] = card
	w.persist()
}

// CommitGeometry finishes a move or resize: the card takes r and the
// collection is recorded in history.
func (w *Workspace) CommitGeometry(id string, r geometry.Rect) {
	i := w.indexOf(id)
	if i < 0 {
		return
	}
	c := w.cards[i]
	c.X, c.Y, c.Width, c.Height = r.X, r.Y, r.W, r.H
	w.cards[i] = c
	w.commit()
	w.persist()
}

// Undo restores the previous snapshot. It is a no-op when CanUndo is false.
func (w *Workspace) Undo() bool {
	snap, ok := w.history.Undo()
	if !ok {
		return false
	}
	w.replace(snap)
	return true
}

func (w *Workspace) Redo() bool {
	snap, ok := w.history.Redo()
	if !ok {
		return false
	}
	w.replace(snap)
	return true
}

func (w *Workspace) replace(cards []Card) {
	w.cards = cards
	if w.editingID != "" && w.indexOf(w.editingID) < 0 {
		w.editingID = ""
		w.mode = ModeNormal
	}
	w.persist()
}

// FocusNext jumps the viewport to the next card in collection order and
// focuses it for editing.
func (w *Workspace) FocusNext() (Card, bool) {
	if len(w.cards) == 0 {
		return Card{}, false
	}
	w.focusIndex = (w.focusIndex + 1) % len(w.cards)
	target := w.cards[w.focusIndex]
	w.offset = geometry.Point{
		X: math.Floor(-target.X + w.viewport.X/2 - target.Width/2),
		Y: math.Floor(-target.Y + w.viewport.Y/2 - target.Height/2),
	}
	w.mode = ModeEdit
	w.editingID = target.ID
	w.persist()
	return target, true
}

func (w *Workspace) EnterPreview() {
	w.dropFocus()
	w.mode = ModeNormal
	w.preview = true
}

func (w *Workspace) ExitPreview() {
	w.preview = false
}

func (w *Workspace) ToggleDeleteMode() {
	w.dropFocus()
	if w.mode == ModeDelete {
		w.mode = ModeNormal
	} else {
		w.mode = ModeDelete
	}
}

func (w *Workspace) ToggleEditMode() {
	if w.mode == ModeEdit {
		w.dropFocus()
		w.mode = ModeNormal
		return
	}
	w.mode = ModeEdit
}

// BeginEdit focuses a card for text input and styling. Moving focus away
// from another card completes that card's edit.
func (w *Workspace) BeginEdit(id string) {
	if w.indexOf(id) < 0 {
		return
	}
	if w.editingID != "" && w.editingID != id {
		w.commit()
	}
	w.editingID = id
	w.mode = ModeEdit
}

// EndEdit drops edit focus, if any, and returns to normal mode from any
// mode. Losing focus completes the edit.
func (w *Workspace) EndEdit() {
	w.dropFocus()
	w.mode = ModeNormal
}

func (w *Workspace) dropFocus() {
	if w.editingID == "" {
		return
	}
	w.editingID = ""
	w.commit()
}

func (w *Workspace) SetTheme(t Theme) error {
	t, err := ParseTheme(string(t))
	if err != nil {
		return err
	}
	w.theme = t
	w.persist()
	return nil
}

// Pan translates the offset. Panning is never validated.
func (w *Workspace) Pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	w.offset = w.offset.Add(geometry.Point{X: dx, Y: dy})
	w.persist()
}

// Dispatch runs a toolbar intent. ActionSettings is handled by the UI.
func (w *Workspace) Dispatch(a Action) error {
	switch a {
	case ActionAdd:
		w.AddCard()
	case ActionDelete:
		w.ToggleDeleteMode()
	case ActionEdit:
		w.ToggleEditMode()
	case ActionUndo:
		w.Undo()
	case ActionRedo:
		w.Redo()
	case ActionFirst:
		w.FocusNext()
	case ActionPreview:
		w.EnterPreview()
	case ActionSettings:
	default:
		return fmt.Errorf("unknown action %q", a)
	}
	return nil
}

type ToolbarState struct {
	Theme         Theme
	Mode          Mode
	CanUndo       bool
	CanRedo       bool
	ElementsCount int
	IsHidden      bool
}

func (w *Workspace) Toolbar() ToolbarState {
	return ToolbarState{
		Theme:         w.theme,
		Mode:          w.mode,
		CanUndo:       w.history.CanUndo(),
		CanRedo:       w.history.CanRedo(),
		ElementsCount: len(w.cards),
		IsHidden:      w.preview,
	}
}

// ValidateDrop reports whether r (workspace space) is free of other cards.
func (w *Workspace) ValidateDrop(id string, r geometry.Rect) bool {
	return !geometry.Collides(r, w.boxes(), id)
}

func (w *Workspace) MinSize(id string) (float64, float64) {
	c, ok := w.Card(id)
	if !ok {
		return MinCardWidth, MinCardHeight
	}
	return w.minSizeFor(c.Text)
}

func (w *Workspace) minSizeFor(text string) (float64, float64) {
	tw, th := w.measurer.Measure(text)
	return max(MinCardWidth, tw+PadX), max(MinCardHeight, th+PadY)
}

func (w *Workspace) boxes() []geometry.Box {
	return lo.Map(w.cards, func(c Card, _ int) geometry.Box {
		return geometry.Box{ID: c.ID, Rect: c.Rect()}
	})
}
