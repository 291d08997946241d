package probe

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo holds the claims of a login token. The signature is not checked.
type TokenInfo struct {
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// InspectToken looks for a string "token" field in body and decodes its
// claims. It returns nil, nil when the body carries no token.
func InspectToken(body json.RawMessage) (*TokenInfo, error) {
	var envelope struct {
		Token *string `json:"token"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		// arrays and scalars are valid bodies without a token
		return nil, nil
	}
	if envelope.Token == nil || *envelope.Token == "" {
		return nil, nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(*envelope.Token, &claims); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}

	info := &TokenInfo{Subject: claims.Subject}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}
	return info, nil
}
