package services

import (
	"fmt"
	"regexp"
	"strings"

	"fleetadmin/internal/domain"
)

var (
	emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	vinRegexp   = regexp.MustCompile(`^[A-HJ-NPR-Z0-9]{17}$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9 ()-]{7,20}$`)
)

// invalidInput wraps domain.ErrInvalidInput with a message the client can act on.
func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// formatCents renders an amount in cents as a decimal string, e.g. 123456 -> "1234.56".
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
