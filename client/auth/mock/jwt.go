package mock

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// createJWT creates a signed access token for subject bound to the current generation
func (m *PortalService) createJWT(subject string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss": m.Issuer,
		"sub": subject,
		"aud": m.ClientID,
		"exp": now.Add(expiry).Unix(),
		"iat": now.Unix(),
		"jti": uuid.NewString(),
		"gen": m.generation.Load(),
		"typ": "access_token",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(m.PrivateKey)
}

// verifyJWT returns the subject of a valid access token
func (m *PortalService) verifyJWT(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return &m.PrivateKey.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	gen, ok := claims["gen"].(float64)
	if !ok || int64(gen) != m.generation.Load() {
		return "", errors.New("token expired")
	}
	subject, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("invalid subject: %w", err)
	}
	return subject, nil
}

func (m *PortalService) newRefreshToken(subject string) string {
	token := uuid.NewString()
	m.mux.Lock()
	m.refreshTokens[token] = subject
	m.mux.Unlock()
	return token
}

// rotate consumes refreshToken and issues a new token pair
func (m *PortalService) rotate(refreshToken string) (accessToken, nextRefreshToken string, err error) {
	m.mux.Lock()
	subject, ok := m.refreshTokens[refreshToken]
	delete(m.refreshTokens, refreshToken)
	m.mux.Unlock()
	if !ok {
		return "", "", errors.New("invalid refresh token")
	}
	if accessToken, err = m.createJWT(subject, m.AccessTokenTTL); err != nil {
		return "", "", err
	}
	return accessToken, m.newRefreshToken(subject), nil
}
