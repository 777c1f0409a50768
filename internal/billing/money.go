package billing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMoney parses a user-entered amount like "1,234.56" or "125" into
// cents. Currency symbols and thousands separators are tolerated; precision
// beyond cents is rejected rather than silently rounded.
func ParseMoney(s string) (int64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "$")
	clean = strings.ReplaceAll(clean, ",", "")

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, fmt.Errorf("amount %q has more than two decimal places", s)
	}

	return cents.IntPart(), nil
}

// FormatMoney renders cents as a display string.
func FormatMoney(cents int64) string {
	return "$" + decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
