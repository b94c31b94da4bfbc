package components

import (
	"strings"

	"github.com/abhisek/recall/internal/ui/theme"
)

const heartGlyph = "♥"

// Hearts renders remaining lives out of max, with lost hearts dimmed.
func Hearts(remaining, max int) string {
	if remaining < 0 {
		remaining = 0
	}
	if remaining > max {
		remaining = max
	}
	var b strings.Builder
	for i := 0; i < max; i++ {
		if i > 0 {
			b.WriteString(" ")
		}
		if i < remaining {
			b.WriteString(theme.HeartFull.Render(heartGlyph))
		} else {
			b.WriteString(theme.HeartLost.Render(heartGlyph))
		}
	}
	return b.String()
}
