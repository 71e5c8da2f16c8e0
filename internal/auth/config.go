package auth

import (
	"os"
	"strings"
)

// Config holds auth configuration
type Config struct {
	Issuer   string
	JWKSURL  string
	Audience string
}

// DefaultIssuer is a local Keycloak realm
var DefaultIssuer = "http://localhost:8180/realms/clinic"

// LoadConfig reads AUTH_ISSUER, AUTH_JWKS_URL and AUTH_AUD.
// Without AUTH_JWKS_URL the keys are fetched from the issuer's certs endpoint.
func LoadConfig() Config {
	issuer := os.Getenv("AUTH_ISSUER")
	if issuer == "" {
		issuer = DefaultIssuer
	}
	jwks := os.Getenv("AUTH_JWKS_URL")
	if jwks == "" {
		jwks = strings.TrimRight(issuer, "/") + "/protocol/openid-connect/certs"
	}
	return Config{
		Issuer:   issuer,
		JWKSURL:  jwks,
		Audience: os.Getenv("AUTH_AUD"),
	}
}
