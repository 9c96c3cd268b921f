package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"github.com/getzep/nerlog/config"
)

const JwtAlg = "HS256"

var ErrSecretNotSet = errors.New(
	"auth secret not set. Ensure NERLOG_AUTH_SECRET is set in your environment",
)

// GenerateJWT signs an API token with the configured secret. Tokens carry no expiry.
func GenerateJWT(cfg *config.Config, subject string) (string, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return "", ErrSecretNotSet
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:  subject,
		IssuedAt: jwt.NewNumericDate(time.Now()),
	})
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("error generating auth token: %w", err)
	}
	return tokenString, nil
}

// JWTVerifier returns middleware that reads a bearer token from the request. Pair it with
// jwtauth.Authenticator to reject requests without a valid token.
func JWTVerifier(cfg *config.Config) (func(http.Handler) http.Handler, error) {
	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		return nil, ErrSecretNotSet
	}
	tokenAuth := jwtauth.New(JwtAlg, secret, nil)
	return jwtauth.Verifier(tokenAuth), nil
}
