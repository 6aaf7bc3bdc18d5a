package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/regionmap"
)

var hexColor = regexp.MustCompile(`^[0-9A-Fa-f]{6}$`)

// ParseColor parses exactly six hexadecimal digits, without a leading '#',
// into an RGB value.
func ParseColor(s string) (regionmap.RGB, error) {
	if !hexColor.MatchString(s) {
		return regionmap.RGB{}, fmt.Errorf("%w: '%s' isn't a valid 3-channel hexadecimal color value",
			regionmap.ErrInvalidInput, s)
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return regionmap.RGB{}, fmt.Errorf("%w: %v", regionmap.ErrInvalidInput, err)
	}
	r, g, b := c.RGB255()
	return regionmap.RGB{R: r, G: g, B: b}, nil
}

var capital = regexp.MustCompile(`([A-Z])`)

// DefaultMapName derives a display name from an editor ID by inserting a
// space before every capital letter: "WhiterunHold" becomes
// "Whiterun Hold".
func DefaultMapName(editorID string) string {
	return strings.TrimSpace(capital.ReplaceAllString(editorID, " $1"))
}
