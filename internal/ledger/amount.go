package ledger

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Veraticus/dompet/internal/common"
)

var (
	amountPattern = regexp.MustCompile(`^(\d{1,3}([.,]\d{3})+|\d+)$`)
	amountPrinter = message.NewPrinter(language.Indonesian)
)

// ParseAmount reads a whole currency amount as typed by a user. Thousands may
// be grouped with dots or commas and an "Rp" prefix is allowed.
func ParseAmount(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 && strings.EqualFold(s[:2], "rp") {
		s = strings.TrimSpace(s[2:])
	}

	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("%w: %q is not a whole amount", common.ErrInvalidInput, raw)
	}

	digits := strings.NewReplacer(".", "", ",", "").Replace(s)
	amount, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is out of range", common.ErrInvalidInput, raw)
	}
	if amount <= 0 {
		return 0, fmt.Errorf("%w: amount must be positive", common.ErrInvalidInput)
	}
	return amount, nil
}

// FormatAmount renders an amount as Rupiah with dot grouping, e.g. "Rp 1.250.000".
func FormatAmount(amount int64) string {
	if amount < 0 {
		// Negated through uint64 so math.MinInt64 does not overflow.
		return amountPrinter.Sprintf("-Rp %d", uint64(-(amount+1))+1)
	}
	return amountPrinter.Sprintf("Rp %d", amount)
}
