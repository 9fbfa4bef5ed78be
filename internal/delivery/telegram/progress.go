package telegram

import (
	"fmt"
	"strings"

	"github.com/aliskhannn/loftfit-bot/internal/service"
)

const progressBarLength = 12

// buildProgressBar creates ASCII progress bar.
func buildProgressBar(current, total, length int) string {
	if total == 0 {
		return strings.Repeat("░", length)
	}

	filled := int(float64(current) / float64(total) * float64(length))
	if filled > length {
		filled = length
	}

	empty := length - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	return fmt.Sprintf("[%s]", bar)
}

// formatProgress renders the "Step N of M" header with its bar.
func formatProgress(p service.Progress) string {
	return fmt.Sprintf("%s\n%s",
		md(fmt.Sprintf("Step %d of %d", p.DisplayStep, p.TotalSteps)),
		md(buildProgressBar(p.DisplayStep, p.TotalSteps, progressBarLength)),
	)
}
