package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the JWT claims issued after wallet authentication and
// required by every gated wizard endpoint.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID     string `json:"sid"`
	UserID        string `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
}
