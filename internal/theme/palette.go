package theme

import (
	"errors"
	"regexp"
	"strings"
)

const (
	// StorageKey is the fixed key the selected accent is persisted under.
	StorageKey   = "accent-color"
	DefaultColor = "#10b981"
)

var ErrInvalidColor = errors.New("accent color must be a hex color such as #10b981")
var ErrNotInPalette = errors.New("accent color is not part of the palette")

type Swatch struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Palette is the fixed set of selectable accents; the first entry is the default.
var Palette = []Swatch{
	{Name: "Emerald", Value: "#10b981"},
	{Name: "Blue", Value: "#3b82f6"},
	{Name: "Violet", Value: "#8b5cf6"},
	{Name: "Rose", Value: "#f43f5e"},
	{Name: "Amber", Value: "#f59e0b"},
	{Name: "Cyan", Value: "#06b6d4"},
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-f]{3}|[0-9a-f]{6})$`)

// Normalize lower-cases c and expands #rgb to #rrggbb.
func Normalize(c string) (string, error) {
	c = strings.ToLower(strings.TrimSpace(c))
	if !hexColor.MatchString(c) {
		return "", ErrInvalidColor
	}
	if len(c) == 4 {
		c = string([]byte{'#', c[1], c[1], c[2], c[2], c[3], c[3]})
	}
	return c, nil
}

func InPalette(c string) bool {
	for _, s := range Palette {
		if s.Value == c {
			return true
		}
	}
	return false
}

func Lookup(c string) (Swatch, bool) {
	for _, s := range Palette {
		if s.Value == c {
			return s, true
		}
	}
	return Swatch{}, false
}
