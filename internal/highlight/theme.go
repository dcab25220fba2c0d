package highlight

import (
	"github.com/lucasb-eyer/go-colorful"
	"gitlab.com/tozd/go/errors"
)

// Theme maps categories to foreground colors.
type Theme struct {
	Name   string
	Colors map[Category]colorful.Color
}

// DefaultTheme returns the built-in dark theme.
func DefaultTheme() *Theme {
	t, _ := NewTheme("default", map[string]string{
		"keyword":   "#FF6B6B",
		"string":    "#4ECDC4",
		"comment":   "#45B7D1",
		"number":    "#96CEB4",
		"type":      "#FFEAA7",
		"tag":       "#FF6B6B",
		"attribute": "#FFEAA7",
		"key":       "#FF6B6B",
		"boolean":   "#96CEB4",
		"header":    "#FF6B6B",
		"bold":      "#FFEAA7",
		"italic":    "#96CEB4",
		"code":      "#4ECDC4",
		"link":      "#45B7D1",
	})
	return t
}

// NewTheme builds a theme from category name → hex color.
func NewTheme(name string, colors map[string]string) (*Theme, error) {
	t := &Theme{Name: name, Colors: make(map[Category]colorful.Color, len(colors))}
	for catName, hex := range colors {
		cat, err := ParseCategory(catName)
		if err != nil {
			return nil, err
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return nil, errors.Errorf("theme %s: color for %s: %w", name, catName, err)
		}
		t.Colors[cat] = c
	}
	return t, nil
}

// Merge returns a copy of t with the colors of other layered on top.
func (t *Theme) Merge(other *Theme) *Theme {
	out := &Theme{Name: t.Name, Colors: make(map[Category]colorful.Color, len(t.Colors))}
	for k, v := range t.Colors {
		out.Colors[k] = v
	}
	if other != nil {
		for k, v := range other.Colors {
			out.Colors[k] = v
		}
	}
	return out
}

// Color returns the color for c.
func (t *Theme) Color(c Category) (colorful.Color, bool) {
	col, ok := t.Colors[c]
	return col, ok
}

// RGB returns the 8-bit components of the color for c.
func (t *Theme) RGB(c Category) (r, g, b uint8, ok bool) {
	col, ok := t.Colors[c]
	if !ok {
		return 0, 0, 0, false
	}
	r, g, b = col.RGB255()
	return r, g, b, true
}

// Hex returns the hex color for c, or "" if the theme has none.
func (t *Theme) Hex(c Category) string {
	col, ok := t.Colors[c]
	if !ok {
		return ""
	}
	return col.Hex()
}
