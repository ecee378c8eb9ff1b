package minikit

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTokenToDecimals(t *testing.T) {
	tests := []struct {
		name    string
		amount  string
		token   string
		want    string
		wantErr bool
	}{
		{name: "whole WLD", amount: "1", token: TokenWLD, want: "1000000000000000000"},
		{name: "fractional WLD", amount: "1.5", token: TokenWLD, want: "1500000000000000000"},
		{name: "sub-decimal dust truncated", amount: "0.0000000000000000019", token: TokenWLD, want: "1"},
		{name: "zero", amount: "0", token: TokenWLD, want: "0"},
		{name: "unknown token", amount: "1", token: "BTC", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TokenToDecimals(decimal.RequireFromString(tt.amount), tt.token)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
