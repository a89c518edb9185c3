package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/zaikahq/zaika/internal/domain"
)

type Claims struct {
	Role     domain.StaffRole `json:"role"`
	BranchID string           `json:"branch_id,omitempty"`
	RiderID  string           `json:"rider_id,omitempty"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
	issuer string
	expiry time.Duration
}

func NewAuthenticator(secret, issuer string, expiry time.Duration) *Authenticator {
	return &Authenticator{
		secret: []byte(secret),
		issuer: issuer,
		expiry: expiry,
	}
}

func (a *Authenticator) GenerateToken(staffID string, role domain.StaffRole, branchID, riderID string) (string, error) {
	now := time.Now()

	claims := Claims{
		Role:     role,
		BranchID: branchID,
		RiderID:  riderID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   staffID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func (a *Authenticator) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithIssuer(a.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
