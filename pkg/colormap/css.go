package colormap

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/grovetools/covview/errors"
)

var (
	hexPattern  = regexp.MustCompile(`^#([0-9a-fA-F]{3,8})$`)
	rgbPattern  = regexp.MustCompile(`^rgb\(\s*(\d{1,3}),\s*(\d{1,3}),\s*(\d{1,3})\s*\)$`)
	rgbaPattern = regexp.MustCompile(`^rgba\(\s*(\d{1,3}),\s*(\d{1,3}),\s*(\d{1,3}),\s*(\d+(?:\.\d+)?)\s*\)$`)
	hslPattern  = regexp.MustCompile(`^hsl\(\s*(\d{1,3}),\s*(\d{1,3})%,\s*(\d{1,3})%\s*\)$`)
	hslaPattern = regexp.MustCompile(`^hsla\(\s*(\d{1,3}),\s*(\d{1,3})%,\s*(\d{1,3})%,\s*(\d+(?:\.\d+)?)\s*\)$`)
)

// RGB is an 8-bit colour.
type RGB struct {
	R, G, B uint8
}

// Hex renders c as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Parse reads a CSS colour in hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb(),
// rgba(), hsl() or hsla() form. Any alpha component is discarded.
func Parse(color string) (RGB, error) {
	color = strings.TrimSpace(color)

	if m := hexPattern.FindStringSubmatch(color); m != nil {
		digits := m[1]
		switch len(digits) {
		case 4:
			digits = digits[:3]
		case 8:
			digits = digits[:6]
		case 3, 6:
		default:
			return RGB{}, errors.InvalidColor(color, "hex colours need 3, 4, 6 or 8 digits")
		}
		c, err := colorful.Hex("#" + digits)
		if err != nil {
			return RGB{}, errors.InvalidColor(color, err.Error())
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, nil
	}

	m := rgbPattern.FindStringSubmatch(color)
	if m == nil {
		m = rgbaPattern.FindStringSubmatch(color)
	}
	if m != nil {
		var channels [3]uint8
		for i := range channels {
			v, _ := strconv.Atoi(m[i+1])
			if v > 255 {
				return RGB{}, errors.InvalidColor(color, "channel out of range")
			}
			channels[i] = uint8(v)
		}
		return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
	}

	m = hslPattern.FindStringSubmatch(color)
	if m == nil {
		m = hslaPattern.FindStringSubmatch(color)
	}
	if m != nil {
		h, _ := strconv.Atoi(m[1])
		s, _ := strconv.Atoi(m[2])
		l, _ := strconv.Atoi(m[3])
		if h >= 360 || s > 100 || l > 100 {
			return RGB{}, errors.InvalidColor(color, "hsl component out of range")
		}
		c := colorful.Hsl(float64(h), float64(s)/100, float64(l)/100)
		// Channels truncate rather than round.
		return RGB{R: truncate(c.R), G: truncate(c.G), B: truncate(c.B)}, nil
	}

	return RGB{}, errors.InvalidColor(color, "unrecognised CSS colour format")
}

func truncate(v float64) uint8 {
	x := v * 255
	if x <= 0 {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}

// ToRGBA converts color to rgba(r, g, b, opacity). opacity must lie in [0, 1].
func ToRGBA(color string, opacity float64) (string, error) {
	if !(opacity >= 0 && opacity <= 1) {
		return "", errors.InvalidColor(color, fmt.Sprintf("opacity %g is outside [0, 1]", opacity))
	}
	c, err := Parse(color)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, strconv.FormatFloat(opacity, 'g', -1, 64)), nil
}

// featureColors maps GFF feature types to glyph colours (Plotly Light24).
var featureColors = map[string]string{
	"gene":            "#FD3216",
	"mRNA":            "#00FE35",
	"exon":            "#6A76FC",
	"CDS":             "#FED4C4",
	"start_codon":     "#FE00CE",
	"stop_codon":      "#0DF9FF",
	"five_prime_UTR":  "#F6F926",
	"5UTR":            "#F6F926",
	"5'UTR":           "#F6F926",
	"three_prime_UTR": "#FF9616",
	"3UTR":            "#FF9616",
	"3'UTR":           "#FF9616",
	"ncRNA":           "#479B55",
	"rRNA":            "#EEA6FB",
	"tRNA":            "#DC587D",
	"repeat_region":   "#D626FF",
}

// DefaultFeatureColor is used for feature types without an entry.
const DefaultFeatureColor = "#7CB9E8"

// FeatureColor returns the glyph colour for a GFF feature type.
func FeatureColor(featureType string) string {
	if c, ok := featureColors[featureType]; ok {
		return c
	}
	return DefaultFeatureColor
}
