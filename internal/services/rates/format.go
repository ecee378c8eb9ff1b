package rates

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Send amounts keep up to 8 fractional digits; payout amounts are fixed to 2.
const (
	amountPrecision   = 8
	receivesPrecision = 2
)

var inputSanitizeRe = regexp.MustCompile(`[^\d.,-]`)

// ParseInputNumber normalizes a typed amount. Either `,` or `.` works as the
// decimal separator; anything that is not a digit, separator or sign is
// stripped; the value is truncated to 8 fractional digits. Unparseable input
// yields zero.
func ParseInputNumber(value string) decimal.Decimal {
	clean := inputSanitizeRe.ReplaceAllString(value, "")
	clean = strings.ReplaceAll(clean, ",", ".")

	// A second separator ends the number, like parseFloat would.
	if parts := strings.Split(clean, "."); len(parts) > 2 {
		clean = parts[0] + "." + parts[1]
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d.Truncate(amountPrecision)
}

// ParseReceives parses a locale-formatted payout amount ("1.234,50").
func ParseReceives(value string) decimal.Decimal {
	clean := strings.ReplaceAll(value, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// FormatWLD renders a send amount: at least 2 and at most 8 decimals, `,`
// separator, no thousands grouping.
func FormatWLD(value decimal.Decimal) string {
	s := value.Truncate(amountPrecision).String()

	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	for len(fracPart) < receivesPrecision {
		fracPart += "0"
	}
	return intPart + "," + fracPart
}

// FormatLocalCurrency renders a payout amount: thousands grouped with `.`,
// fixed 2 decimals behind `,`.
func FormatLocalCurrency(value decimal.Decimal) string {
	s := value.StringFixed(receivesPrecision)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	dot := strings.IndexByte(s, '.')
	intPart, fracPart := s[:dot], s[dot+1:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}
