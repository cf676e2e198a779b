// Package auth issues and verifies the HS256 tokens that carry a
// principal's identity and role between requests. The role claim is
// fixed at issue time; a role change requires a new login.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"fleet-service-backend/internal/model"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

// ErrInvalidToken is returned for expired, malformed or mis-typed
// tokens (e.g. a refresh token presented as an access token).
var ErrInvalidToken = errors.New("invalid token")

// Claims are the verified contents of an access or refresh token.
type Claims struct {
	UserID uint
	Role   model.Role
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Issuer mints and verifies token pairs with a shared HMAC secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewIssuer(secret string, accessTTL, refreshTTL time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// IssuePair signs an access/refresh token pair for the user.
func (i *Issuer) IssuePair(user *model.User) (TokenPair, error) {
	access, err := i.sign(user.ID, user.Role, tokenTypeAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(user.ID, user.Role, tokenTypeRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Access: access, Refresh: refresh}, nil
}

// Refresh verifies a refresh token and mints a fresh access token with
// the same identity and role.
func (i *Issuer) Refresh(refreshToken string) (string, error) {
	claims, err := i.verify(refreshToken, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	return i.sign(claims.UserID, claims.Role, tokenTypeAccess, i.accessTTL)
}

// VerifyAccess validates an access token and returns its claims.
func (i *Issuer) VerifyAccess(token string) (Claims, error) {
	return i.verify(token, tokenTypeAccess)
}

func (i *Issuer) sign(userID uint, role model.Role, typ string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub":  fmt.Sprintf("%d", userID),
		"role": string(role),
		"typ":  typ,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *Issuer) verify(raw, wantType string) (Claims, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidToken
	}
	if typ, _ := mapClaims["typ"].(string); typ != wantType {
		return Claims{}, ErrInvalidToken
	}

	sub, err := mapClaims.GetSubject()
	if err != nil {
		return Claims{}, ErrInvalidToken
	}
	var userID uint
	if _, err := fmt.Sscanf(sub, "%d", &userID); err != nil || userID == 0 {
		return Claims{}, ErrInvalidToken
	}

	role, _ := mapClaims["role"].(string)
	return Claims{UserID: userID, Role: model.Role(role)}, nil
}
