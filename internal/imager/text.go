package imager

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Caption returns the string drawn onto a width-by-height placeholder: the
// sanitized custom text when present, otherwise the canvas dimensions.
func Caption(text string, width, height int) string {
	if text != "" {
		return SanitizeCaption(text)
	}
	return fmt.Sprintf("%d x %d", width, height)
}

// SanitizeCaption normalizes caption text to NFC and strips control and
// zero-width characters, so arbitrary query input renders predictably.
func SanitizeCaption(s string) string {
	s = norm.NFC.String(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) {
			continue
		}
		switch r {
		case '\u200b', '\u200c', '\u200d', '\ufeff':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
