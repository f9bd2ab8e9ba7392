package theme

import "strings"

// IconDefault is shown for names with no glyph.
const IconDefault = "•"

var icons = map[string]string{
	"gear":     "⚙",
	"general":  "⚙",
	"palette":  "◐",
	"keyboard": "⌨",
	"wrench":   "✎",
	"advanced": "✎",
	"info":     "ℹ",
	"warning":  "⚠",
	"star":     "★",
	"check":    "✓",
	"folder":   "▤",
	"user":     "☺",
}

// Icon returns the glyph registered for name, ignoring case.
func Icon(name string) (string, bool) {
	g, ok := icons[strings.ToLower(name)]
	return g, ok
}

// IconOr returns the glyph for name, or IconDefault.
func IconOr(name string) string {
	if g, ok := Icon(name); ok {
		return g
	}
	return IconDefault
}
