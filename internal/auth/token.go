package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/prashantkoirala465/Appointment-Management-System/internal/config"
	"github.com/prashantkoirala465/Appointment-Management-System/internal/domain/identity"
)

// TokenClaims is the wire form of identity.Claims for API clients.
type TokenClaims struct {
	Username string   `json:"username"`
	FullName string   `json:"full_name"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenSigner mints and verifies signed bearer tokens. It is one of the
// two serializers over identity.Claims; the cookie session is the other.
type TokenSigner struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
}

func NewTokenSigner(cfg *config.Config) *TokenSigner {
	return &TokenSigner{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		ttl:      time.Duration(cfg.TokenTTLMin) * time.Minute,
	}
}

func (s *TokenSigner) Sign(claims *identity.Claims) (string, error) {
	now := time.Now()

	tc := TokenClaims{
		Username: claims.Username,
		FullName: claims.FullName,
		Roles:    claims.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(claims.UserID), 10),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tc)
	return token.SignedString(s.secret)
}

func (s *TokenSigner) Parse(raw string) (*identity.Claims, error) {
	var tc TokenClaims

	token, err := jwt.ParseWithClaims(
		raw,
		&tc,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return s.secret, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	userID, err := strconv.ParseUint(tc.Subject, 10, 64)
	if err != nil {
		return nil, jwt.ErrTokenInvalidClaims
	}

	return &identity.Claims{
		UserID:   uint(userID),
		Username: tc.Username,
		FullName: tc.FullName,
		Roles:    tc.Roles,
	}, nil
}
