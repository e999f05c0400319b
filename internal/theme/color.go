package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Accent is the current colour and the HSL triple the style variables use.
type Accent struct {
	Hex        string  `json:"hex"`
	Name       string  `json:"name,omitempty"`
	Hue        float64 `json:"hue"`
	Saturation float64 `json:"saturation"`
	Lightness  float64 `json:"lightness"`
}

// NewAccent derives the projection for a normalised hex value.
func NewAccent(hex string) (Accent, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Accent{}, fmt.Errorf("%w: %v", ErrInvalidColor, err)
	}
	h, s, l := c.Hsl()
	a := Accent{
		Hex:        hex,
		Hue:        round1(h),
		Saturation: round1(s * 100),
		Lightness:  round1(l * 100),
	}
	if sw, ok := Lookup(hex); ok {
		a.Name = sw.Name
	}
	return a, nil
}

// HSL renders the space separated form used inside hsl(var(--accent-hsl)).
func (a Accent) HSL() string {
	return fmt.Sprintf("%s %s%% %s%%", fmtNum(a.Hue), fmtNum(a.Saturation), fmtNum(a.Lightness))
}

// CSS renders the global style variables for the accent.
func (a Accent) CSS() string {
	hsl := a.HSL()
	var sb strings.Builder
	sb.WriteString(":root {\n")
	fmt.Fprintf(&sb, "  --accent: %s;\n", a.Hex)
	fmt.Fprintf(&sb, "  --accent-hsl: %s;\n", hsl)
	fmt.Fprintf(&sb, "  --primary: %s;\n", hsl)
	fmt.Fprintf(&sb, "  --ring: %s;\n", hsl)
	sb.WriteString("}\n")
	return sb.String()
}

func round1(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Round(v*10) / 10
}

func fmtNum(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
