// package formatter renders catalog data for terminals and files (tables, CSV, Markdown)
package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/musicadm/internal/shared"
)

// FormatDuration renders whole seconds as m:ss, e.g. 125 → "2:05".
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}

// ParseDuration reads either whole seconds ("245") or m:ss ("4:05").
func ParseDuration(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty duration", shared.ErrInvalidInput)
	}

	minutes, seconds, found := strings.Cut(s, ":")
	if !found {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, fmt.Errorf("%w: duration %q", shared.ErrInvalidInput, s)
		}
		return n, nil
	}

	m, err := strconv.Atoi(minutes)
	if err != nil || m < 0 {
		return 0, fmt.Errorf("%w: duration %q", shared.ErrInvalidInput, s)
	}
	sec, err := strconv.Atoi(seconds)
	if err != nil || sec < 0 || sec > 59 || len(seconds) != 2 {
		return 0, fmt.Errorf("%w: duration %q", shared.ErrInvalidInput, s)
	}
	return m*60 + sec, nil
}

// FormatDate renders t as dd/mm/yyyy in local time, or "-" for the zero time.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("02/01/2006")
}
