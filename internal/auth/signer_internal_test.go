package auth

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigner_Sign_SigningError(t *testing.T) {
	t.Parallel()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)
	keyPEM := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	// ES384 refuses a P-256 key, which stands in for a key that passes the
	// format checks but cannot produce a signature.
	s := &Signer{method: jwt.SigningMethodES384}

	tok, err := s.Sign(NewIdentity("ABC1234567", "57246542-96fe-1a63-e053-0824d011072a", keyPEM), time.Now())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSigning)
	assert.NotErrorIs(t, err, ErrValidation)
	assert.Empty(t, tok.Value)

	var sErr *SigningError
	require.ErrorAs(t, err, &sErr)
	assert.Contains(t, sErr.Error(), "signing token")
}
