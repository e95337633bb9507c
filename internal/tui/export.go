package tui

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"pinboard/internal/geometry"
	"pinboard/internal/workspace"
)

func (m *Model) exportName(ext string) string {
	return fmt.Sprintf("pinboard-%s.%s", m.now().Format("20060102-150405"), ext)
}

// exportText writes the visible canvas as plain text.
func (m *Model) exportText() {
	path, err := m.exportPath(m.exportName("txt"))
	if err != nil {
		m.setError(err)
		return
	}
	vp := m.ws.Viewport()
	f := drawCanvas(sceneOf(m.ws), int(vp.X), int(vp.Y))
	if err := writeFile(path, f); err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("exported text", "path", path)
	m.setStatus("saved " + path)
}

func (m *Model) exportPNG() {
	path, err := m.exportPath(m.exportName("png"))
	if err != nil {
		m.setError(err)
		return
	}
	if err := SavePNG(path, m.ws.Cards(), m.ws.Theme()); err != nil {
		m.setError(err)
		return
	}
	m.logger.Info("exported png", "path", path)
	m.setStatus("saved " + path)
}

func writeFile(path string, f *frame) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return writeText(file, f)
}

// SaveText writes every card, framed to fit, to path as plain text.
func SaveText(path string, cards []workspace.Card, theme workspace.Theme) error {
	s, cols, rows, err := fit(cards, theme)
	if err != nil {
		return err
	}
	return writeFile(path, drawCanvas(s, cols, rows))
}

// Pixels per terminal cell in image exports.
const (
	charWidth  = 8.0
	charHeight = 16.0

	exportPadding = 2
)

var ErrEmpty = errors.New("nothing to export")

func bounds(cards []workspace.Card) (geometry.Rect, bool) {
	if len(cards) == 0 {
		return geometry.Rect{}, false
	}
	r := cards[0].Rect()
	minX, minY, maxX, maxY := r.X, r.Y, r.Right(), r.Bottom()
	for _, c := range cards[1:] {
		r := c.Rect()
		minX, minY = min(minX, r.X), min(minY, r.Y)
		maxX, maxY = max(maxX, r.Right()), max(maxY, r.Bottom())
	}
	return geometry.Rect{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}, true
}

// fit returns a scene framing all cards with a small margin, and the frame
// size needed to draw it.
func fit(cards []workspace.Card, theme workspace.Theme) (scene, int, int, error) {
	b, ok := bounds(cards)
	if !ok {
		return scene{}, 0, 0, ErrEmpty
	}
	s := scene{
		Cards:  cards,
		Theme:  theme,
		Offset: geometry.Point{X: exportPadding - b.X, Y: exportPadding - b.Y},
	}
	return s, int(b.W) + 2*exportPadding, int(b.H) + 2*exportPadding, nil
}

func writeText(w io.Writer, f *frame) error {
	for _, line := range f.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// writePNG draws every card as a filled rounded rectangle and encodes the
// image to w.
func writePNG(w io.Writer, cards []workspace.Card, theme workspace.Theme) error {
	s, cols, rows, err := fit(cards, theme)
	if err != nil {
		return err
	}

	dc := gg.NewContext(int(float64(cols)*charWidth), int(float64(rows)*charHeight))
	p := paletteFor(theme)
	dc.SetHexColor(p.Background)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}
	face := truetype.NewFace(ttfFont, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)

	for _, c := range cards {
		drawCardPNG(dc, c, s.Offset)
	}

	if err := png.Encode(w, dc.Image()); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func SavePNG(path string, cards []workspace.Card, theme workspace.Theme) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	return writePNG(f, cards, theme)
}

func drawCardPNG(dc *gg.Context, c workspace.Card, offset geometry.Point) {
	x := (c.X + offset.X) * charWidth
	y := (c.Y + offset.Y) * charHeight
	width := c.Width * charWidth
	height := c.Height * charHeight
	radius := c.BorderRadius / 100 * min(width, height) / 2

	dc.DrawRoundedRectangle(x, y, width, height, radius)
	dc.SetHexColor(c.BgColor)
	dc.FillPreserve()
	dc.SetHexColor(c.TextColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	textX := x + workspace.PadX/2*charWidth
	textY := y + (workspace.PadY/2+1)*charHeight - 4
	for i, line := range strings.Split(c.Text, "\n") {
		dc.DrawString(line, textX, textY+float64(i)*charHeight)
	}
}
