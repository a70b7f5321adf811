package contract

import (
	"github.com/fatih/color"
	"github.com/recruitready/compscore/schema"
)

// Color variables for console output, ordered worst to best.
var (
	needsWorkColor   = color.New(color.FgRed, color.Bold)
	developingColor  = color.New(color.FgYellow)
	promisingColor   = color.New(color.FgCyan)
	competitiveColor = color.New(color.FgGreen, color.Bold)
)

// levelRank returns the position of a level within the threshold table, or -1
// when the level is unknown.
func levelRank(level string, thresholds []schema.Threshold) int {
	for i, t := range thresholds {
		if t.Level == level {
			return i
		}
	}
	return -1
}

// TruncateLabel truncates a table label to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at
// least one character of content.
func TruncateLabel(label string, maxWidth int) string {
	runes := []rune(label)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return label
}

// GetColorLevel returns a colored readiness label for console output. The
// color tracks the level's position in the threshold table, so renamed levels
// still color sensibly: bottom quarter red through top quarter green.
func GetColorLevel(level string, thresholds []schema.Threshold) string {
	rank := levelRank(level, thresholds)
	n := len(thresholds)
	if rank < 0 || n == 0 {
		return needsWorkColor.Sprint(level)
	}

	switch {
	case rank == n-1:
		return competitiveColor.Sprint(level)
	case rank == 0:
		return needsWorkColor.Sprint(level)
	case rank*2 >= n:
		return promisingColor.Sprint(level)
	default:
		return developingColor.Sprint(level)
	}
}
