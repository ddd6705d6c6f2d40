package service

import (
	"time"

	"cartridge-quiz/internal/config"
	"cartridge-quiz/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

// ShareClaims are the signed results embedded in a share link, so a shared
// summary can be rendered without the originating session.
type ShareClaims struct {
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	Tier     string `json:"tier"`
	Accuracy int    `json:"accuracy"`
	jwt.RegisteredClaims
}

// ShareTokenIssuer signs and verifies share tokens. With no secret
// configured, issuing is disabled and verification always fails.
type ShareTokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewShareTokenIssuer(cfg config.ShareConfig) *ShareTokenIssuer {
	return &ShareTokenIssuer{secret: []byte(cfg.Secret), ttl: cfg.TTL}
}

// Issue signs a share token for a finished session. Returns an empty token
// when share links are disabled.
func (i *ShareTokenIssuer) Issue(score, total, accuracy int, tier string) (string, error) {
	if len(i.secret) == 0 {
		return "", nil
	}
	now := time.Now()
	claims := ShareClaims{
		Score:    score,
		Total:    total,
		Tier:     tier,
		Accuracy: accuracy,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "cartridge-quiz",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses a share token and returns its claims.
func (i *ShareTokenIssuer) Verify(token string) (*ShareClaims, error) {
	if len(i.secret) == 0 {
		return nil, domain.NewInvalidShareTokenError(nil)
	}
	claims := &ShareClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, domain.NewInvalidShareTokenError(err)
	}
	if !parsed.Valid {
		return nil, domain.NewInvalidShareTokenError(nil)
	}
	return claims, nil
}
