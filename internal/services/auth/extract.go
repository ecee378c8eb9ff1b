package auth

import (
	"encoding/json"
	"regexp"

	"remesa/internal/minikit"
	"remesa/internal/models"
)

// Extracted is a wallet-address candidate pulled out of a signed auth
// result. Confident is set only when the address came from the structured
// credential subject; fallback scanning is best-effort.
type Extracted struct {
	Address   string
	Confident bool
}

var addressScanRe = regexp.MustCompile(`0x[a-fA-F0-9]{40}`)

// probeFields are the field names historically observed to carry an address
// in wallet SDK payloads, in probe order.
var probeFields = []string{
	"wallet_address",
	"walletAddress",
	"wallet",
	"address",
	"sub",
	"subject",
	"user",
	"userId",
	"id",
}

// ExtractWalletAddress pulls an address candidate from a signed auth result.
// The structured credential subject wins; otherwise the serialized result is
// scanned for a hex-address pattern, then plausible field names are probed.
// Every candidate is normalized and validated; a miss everywhere returns the
// zero Extracted.
func ExtractWalletAddress(result *minikit.AuthResult) Extracted {
	if result == nil {
		return Extracted{}
	}

	var payload map[string]json.RawMessage
	if len(result.FinalPayload) > 0 {
		_ = json.Unmarshal(result.FinalPayload, &payload)
	}

	if addr, ok := credentialSubject(payload); ok {
		return Extracted{Address: addr, Confident: true}
	}

	serialized := result.Raw
	if len(serialized) == 0 {
		serialized = result.FinalPayload
	}
	if match := addressScanRe.Find(serialized); match != nil {
		return Extracted{Address: models.NormalizeWalletAddress(string(match))}
	}

	for _, field := range probeFields {
		raw, ok := payload[field]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		addr := models.NormalizeWalletAddress(s)
		if models.IsWalletAddress(addr) {
			return Extracted{Address: addr}
		}
	}
	return Extracted{}
}

func credentialSubject(payload map[string]json.RawMessage) (string, bool) {
	raw, ok := payload["credential"]
	if !ok {
		return "", false
	}
	var credential struct {
		Sub string `json:"sub"`
	}
	if err := json.Unmarshal(raw, &credential); err != nil {
		return "", false
	}
	addr := models.NormalizeWalletAddress(credential.Sub)
	if !models.IsWalletAddress(addr) {
		return "", false
	}
	return addr, true
}
