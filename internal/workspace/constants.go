package workspace

import "fmt"

type Mode int

const (
	ModeNormal Mode = iota
	ModeEdit
	ModeDelete
)

func (m Mode) String() string {
	switch m {
	case ModeEdit:
		return "edit"
	case ModeDelete:
		return "delete"
	default:
		return "normal"
	}
}

type Theme string

const (
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
	ThemeMedium Theme = "medium"
)

var Themes = []Theme{ThemeDark, ThemeLight, ThemeMedium}

func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case ThemeDark, ThemeLight, ThemeMedium:
		return t, nil
	}
	return ThemeDark, fmt.Errorf("unknown theme %q", s)
}

// DefaultStyle is the style of the first card created under theme t.
func DefaultStyle(t Theme) Style {
	if t == ThemeLight {
		return Style{BgColor: "#000000", TextColor: "#ffffff", BorderRadius: 60}
	}
	return Style{BgColor: "#ffffff", TextColor: "#000000", BorderRadius: 60}
}

type Action string

const (
	ActionAdd      Action = "add"
	ActionDelete   Action = "delete"
	ActionEdit     Action = "edit"
	ActionUndo     Action = "undo"
	ActionRedo     Action = "redo"
	ActionFirst    Action = "first"
	ActionPreview  Action = "preview"
	ActionSettings Action = "settings"
)

const (
	DefaultCardWidth  = 12
	DefaultCardHeight = 3

	// Cards never shrink below their text plus this padding, nor below the
	// minimum box size.
	PadX          = 4
	PadY          = 2
	MinCardWidth  = 8
	MinCardHeight = 3

	StateKey = "workspaceState"
)
