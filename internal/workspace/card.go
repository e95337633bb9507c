package workspace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"pinboard/internal/geometry"
)

// Card is a positioned, styled, resizable text box. Coordinates are in
// workspace space and independent of the pan offset.
type Card struct {
	ID           string  `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	Text         string  `json:"text"`
	BgColor      string  `json:"bgColor"`
	TextColor    string  `json:"textColor"`
	BorderRadius float64 `json:"borderRadius"` // percent of min(width, height)/2
}

func (c Card) Rect() geometry.Rect {
	return geometry.Rect{X: c.X, Y: c.Y, W: c.Width, H: c.Height}
}

func (c Card) RadiusCells() float64 {
	return c.BorderRadius / 100 * min(c.Width, c.Height) / 2
}

// UnmarshalJSON accepts borderRadius as a number (percent) or as a legacy
// CSS string such as "14px", "10" or "40%". Lengths are converted against
// the card's own size.
func (c *Card) UnmarshalJSON(data []byte) error {
	type plain Card
	var raw struct {
		plain
		BorderRadius json.RawMessage `json:"borderRadius"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Card(raw.plain)
	c.BorderRadius = 0

	r := bytes.TrimSpace(raw.BorderRadius)
	if len(r) == 0 || bytes.Equal(r, []byte("null")) {
		return nil
	}
	if r[0] == '"' {
		var css string
		if err := json.Unmarshal(r, &css); err != nil {
			return err
		}
		if pct, ok := strings.CutSuffix(strings.TrimSpace(css), "%"); ok {
			v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
			if err != nil {
				return fmt.Errorf("card %s: border radius %q: %w", c.ID, css, err)
			}
			c.BorderRadius = clampRadius(v)
			return nil
		}
		px, err := parseCSSLength(css)
		if err != nil {
			return fmt.Errorf("card %s: %w", c.ID, err)
		}
		c.BorderRadius = RadiusFromLength(px, c.Width, c.Height)
		return nil
	}
	var pct float64
	if err := json.Unmarshal(r, &pct); err != nil {
		return fmt.Errorf("card %s: border radius: %w", c.ID, err)
	}
	c.BorderRadius = clampRadius(pct)
	return nil
}

func parseCSSLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "px"))
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("border radius %q: %w", s, err)
	}
	return v, nil
}

// RadiusFromLength converts an absolute corner radius to the percentage
// stored on a Card of the given size.
func RadiusFromLength(length, width, height float64) float64 {
	half := min(width, height) / 2
	if half <= 0 {
		return 0
	}
	return clampRadius(length / half * 100)
}

func clampRadius(pct float64) float64 {
	return lo.Clamp(pct, 0, 100)
}

// Patch is a partial card update. Nil fields are left untouched.
type Patch struct {
	X            *float64
	Y            *float64
	Width        *float64
	Height       *float64
	Text         *string
	BgColor      *string
	TextColor    *string
	BorderRadius *float64
}

type Style struct {
	BgColor      string
	TextColor    string
	BorderRadius float64
}

func (p Patch) apply(c Card) Card {
	if p.X != nil {
		c.X = *p.X
	}
	if p.Y != nil {
		c.Y = *p.Y
	}
	if p.Width != nil {
		c.Width = *p.Width
	}
	if p.Height != nil {
		c.Height = *p.Height
	}
	if p.Text != nil {
		c.Text = *p.Text
	}
	if p.BgColor != nil {
		c.BgColor = *p.BgColor
	}
	if p.TextColor != nil {
		c.TextColor = *p.TextColor
	}
	if p.BorderRadius != nil {
		c.BorderRadius = clampRadius(*p.BorderRadius)
	}
	return c
}

// Presets offered by the style bubble.
var (
	BgPresets     = []string{"#ff4d4d", "#4ade80", "#3b82f6", "#ffffff", "#000000"}
	TextPresets   = []string{"#ffffff", "#000000", "#6b46ff", "#facc15", "#f87171"}
	RadiusPresets = []RadiusPreset{
		{Label: "Sharp", Percent: 0},
		{Label: "Soft", Percent: 25},
		{Label: "Round", Percent: 60},
		{Label: "Oval", Percent: 100},
	}
)

type RadiusPreset struct {
	Label   string
	Percent float64
}

// NextPreset returns the entry after current in presets, wrapping around.
// Values not in the list start from the first preset.
func NextPreset[T comparable](presets []T, current T) T {
	_, i, ok := lo.FindIndexOf(presets, func(p T) bool { return p == current })
	if !ok {
		return presets[0]
	}
	return presets[(i+1)%len(presets)]
}
