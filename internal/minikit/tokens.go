package minikit

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TokenWLD is the only token the wizard sends.
const TokenWLD = "WLD"

// tokenDecimals maps token symbols to their on-chain decimal places.
var tokenDecimals = map[string]int32{
	TokenWLD: 18,
}

// TokenToDecimals converts a human-readable token amount to its minor-unit
// string representation.
func TokenToDecimals(amount decimal.Decimal, token string) (string, error) {
	places, ok := tokenDecimals[token]
	if !ok {
		return "", fmt.Errorf("unknown token %q", token)
	}
	return amount.Shift(places).Truncate(0).String(), nil
}
