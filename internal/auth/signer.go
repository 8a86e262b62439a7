package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Audience is the fixed aud claim for App Store Connect tokens.
	Audience = "appstoreconnect-v1"

	// TokenValidity is the lifetime stamped into every token.
	TokenValidity = 20 * time.Minute
)

// Token is a signed bearer token and its validity window.
type Token struct {
	Value     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenSigner produces signed tokens for an identity at a given instant.
type TokenSigner interface {
	Sign(identity Identity, issuedAt time.Time) (Token, error)
}

// Signer implements TokenSigner with ES256 JWTs.
type Signer struct {
	method jwt.SigningMethod
}

// NewSigner creates a Signer.
func NewSigner() *Signer {
	return &Signer{method: jwt.SigningMethodES256}
}

// Sign validates identity and returns a token issued at issuedAt (truncated
// to whole seconds) expiring TokenValidity later. No token is returned on
// any error.
func (s *Signer) Sign(identity Identity, issuedAt time.Time) (Token, error) {
	if err := ValidateKeyID(identity.keyID); err != nil {
		return Token{}, err
	}
	if err := ValidateIssuerID(identity.issuerID); err != nil {
		return Token{}, err
	}
	key, err := parsePrivateKey(identity.privateKey)
	if err != nil {
		return Token{}, err
	}

	iat := issuedAt.Unix()
	exp := iat + int64(TokenValidity/time.Second)

	tok := jwt.NewWithClaims(s.method, jwt.MapClaims{
		"iss": identity.issuerID,
		"iat": iat,
		"exp": exp,
		"aud": Audience,
	})
	tok.Header["kid"] = identity.keyID
	tok.Header["typ"] = "JWT"

	signed, err := tok.SignedString(key)
	if err != nil {
		return Token{}, &SigningError{Err: err}
	}

	return Token{
		Value:     signed,
		IssuedAt:  time.Unix(iat, 0),
		ExpiresAt: time.Unix(exp, 0),
	}, nil
}
