package tui

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pinboard/internal/geometry"
	"pinboard/internal/workspace"
)

func testCard(id string, x, y, w, h float64, text string) workspace.Card {
	return workspace.Card{
		ID: id, X: x, Y: y, Width: w, Height: h, Text: text,
		BgColor: "#ffffff", TextColor: "#000000",
	}
}

func TestCanvasDrawsCardWithText(t *testing.T) {
	s := scene{
		Cards: []workspace.Card{testCard("a", 1, 1, 10, 3, "hi")},
		Theme: workspace.ThemeDark,
	}

	lines := drawCanvas(s, 20, 5).Lines()

	assert.Equal(t, "", lines[0])
	assert.Equal(t, " ┌────────┐", lines[1])
	assert.Equal(t, " │ hi     │", lines[2])
	assert.Equal(t, " └────────┘", lines[3])
}

func TestCanvasAppliesOffset(t *testing.T) {
	s := scene{
		Cards:  []workspace.Card{testCard("a", 10, 10, 8, 3, "")},
		Offset: geometry.Point{X: -9, Y: -10},
	}

	lines := drawCanvas(s, 12, 4).Lines()

	assert.True(t, strings.HasPrefix(lines[0], " ┌"), "got %q", lines[0])
}

func TestCanvasRoundedAndFocusedBorders(t *testing.T) {
	round := testCard("r", 0, 0, 8, 3, "")
	round.BorderRadius = 100
	focused := testCard("f", 10, 0, 8, 3, "")

	s := scene{Cards: []workspace.Card{round, focused}, Focused: "f"}
	lines := drawCanvas(s, 20, 3).Lines()

	assert.True(t, strings.HasPrefix(lines[0], "╭"), "got %q", lines[0])
	assert.Contains(t, lines[0], "┏")
	assert.True(t, strings.HasSuffix(lines[2], string(resizeGlyph)), "got %q", lines[2])
}

func TestCanvasEditTriggerAndDeleteBorder(t *testing.T) {
	s := scene{Cards: []workspace.Card{testCard("a", 0, 0, 8, 3, "")}, Mode: workspace.ModeEdit}
	assert.True(t, strings.HasPrefix(drawCanvas(s, 10, 3).Lines()[0], string(editGlyph)))

	s.Mode = workspace.ModeDelete
	assert.True(t, strings.HasPrefix(drawCanvas(s, 10, 3).Lines()[0], "╔"))
}

func TestCanvasUsesProposedRect(t *testing.T) {
	s := scene{
		Cards:      []workspace.Card{testCard("a", 0, 0, 8, 3, "")},
		ActiveID:   "a",
		ActiveRect: geometry.Rect{X: 4, Y: 1, W: 8, H: 3},
	}

	lines := drawCanvas(s, 14, 4).Lines()

	assert.Equal(t, "", lines[0])
	assert.Equal(t, "    ┌──────┐", lines[1])
}

func TestCanvasClipsText(t *testing.T) {
	s := scene{Cards: []workspace.Card{testCard("a", 0, 0, 8, 4, "abcdefghij\nline two\nthree")}}

	lines := drawCanvas(s, 10, 4).Lines()

	assert.Equal(t, "│ abcd │", lines[1])
	assert.Equal(t, "│ line │", lines[2])
	assert.Equal(t, "└──────┘", lines[3])
}

func TestBoundsAndFit(t *testing.T) {
	_, ok := bounds(nil)
	assert.False(t, ok)

	cards := []workspace.Card{testCard("a", -5, 2, 10, 3, ""), testCard("b", 20, 10, 8, 4, "")}
	b, ok := bounds(cards)
	require.True(t, ok)
	assert.Equal(t, geometry.Rect{X: -5, Y: 2, W: 33, H: 12}, b)

	s, w, h, err := fit(cards, workspace.ThemeLight)
	require.NoError(t, err)
	assert.Equal(t, 37, w)
	assert.Equal(t, 16, h)
	assert.Equal(t, geometry.Point{X: 7, Y: 0}, s.Offset)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	s, w, h, err := fit([]workspace.Card{testCard("a", 0, 0, 8, 3, "x")}, workspace.ThemeDark)
	require.NoError(t, err)

	require.NoError(t, writeText(&buf, drawCanvas(s, w, h)))

	assert.Contains(t, buf.String(), "│ x    │")
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	cards := []workspace.Card{testCard("a", 0, 0, 12, 3, "hello")}
	cards[0].BorderRadius = 60

	require.NoError(t, writePNG(&buf, cards, workspace.ThemeDark))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16*8, img.Bounds().Dx())
	assert.Equal(t, 7*16, img.Bounds().Dy())
}

func TestWritePNGEmpty(t *testing.T) {
	err := writePNG(&bytes.Buffer{}, nil, workspace.ThemeDark)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFrameStringKeepsText(t *testing.T) {
	f := newFrame(6, 1, paletteFor(workspace.ThemeLight))
	f.Text(0, 0, "abc", 0, "#ff0000", "")

	assert.Contains(t, f.String(), "abc")
}

func TestSaveText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	cards := []workspace.Card{testCard("a", 40, 20, 8, 3, "note")}

	require.NoError(t, SaveText(path, cards, workspace.ThemeDark))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\n")
	assert.Equal(t, "  ┌──────┐", lines[2])
	assert.Equal(t, "  │ note │", lines[3])

	assert.ErrorIs(t, SaveText(path, nil, workspace.ThemeDark), ErrEmpty)
}
