package models

import (
	"regexp"
	"strings"
)

var walletAddressRe = regexp.MustCompile(`^0x[a-f0-9]{40}$`)

// NormalizeWalletAddress lower-cases an address candidate.
func NormalizeWalletAddress(addr string) string {
	return strings.ToLower(strings.TrimSpace(addr))
}

// IsWalletAddress reports whether addr is a normalized 0x-prefixed
// 40-hex-digit address.
func IsWalletAddress(addr string) bool {
	return walletAddressRe.MatchString(addr)
}
