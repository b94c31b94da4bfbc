package clip

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as m:ss.
func FormatTime(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatDuration renders a clip length as whole seconds, e.g. "12s".
func FormatDuration(sec float64) string {
	if sec < 0 || math.IsNaN(sec) {
		sec = 0
	}
	return fmt.Sprintf("%ds", int(math.Round(sec)))
}
