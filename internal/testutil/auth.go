package testutil

import (
	"crypto/rsa"
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/auth"
)

// CreateTestVerifier returns a verifier that trusts a freshly generated key,
// together with the private key to sign test tokens
func CreateTestVerifier(t *testing.T) (*auth.Verifier, *rsa.PrivateKey) {
	t.Helper()

	privateKey, publicKey := GenerateTestKeyPair(t)
	testJWKS := auth.NewTestJWKS(map[string]*rsa.PublicKey{TestKeyID: publicKey})

	verifier := auth.NewVerifier(auth.Config{Issuer: TestIssuer}, testJWKS)
	return verifier, privateKey
}
