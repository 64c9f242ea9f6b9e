package signing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/trebuchet-org/treb-relay/internal/domain"
)

// DefaultHeader carries the body signature on relay requests
const DefaultHeader = "X-Signature"

// prefix is accepted (and stripped) in front of the hex digest
const prefix = "sha256="

// Signer computes and checks HMAC-SHA256 signatures over raw request bodies
type Signer struct {
	secret []byte
}

// NewSigner creates a signer for the given shared secret
func NewSigner(secret string) *Signer {
	return &Signer{secret: []byte(secret)}
}

// Sign returns the hex encoded HMAC-SHA256 of body
func (s *Signer) Sign(body []byte) string {
	return hex.EncodeToString(s.mac(body))
}

// Verify checks a header value against body in constant time.
// Missing, malformed and mismatching signatures all yield domain.ErrInvalidSignature.
func (s *Signer) Verify(body []byte, provided string) error {
	provided = strings.TrimSpace(provided)
	provided = strings.TrimPrefix(provided, prefix)
	if provided == "" {
		return domain.ErrInvalidSignature
	}
	got, err := hex.DecodeString(provided)
	if err != nil {
		return domain.ErrInvalidSignature
	}
	if !hmac.Equal(got, s.mac(body)) {
		return domain.ErrInvalidSignature
	}
	return nil
}

func (s *Signer) mac(body []byte) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write(body)
	return h.Sum(nil)
}
