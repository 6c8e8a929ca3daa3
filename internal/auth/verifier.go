package auth

import "time"

// Verifier validates presented token strings. An absent token is the
// caller's concern (treated as "no identity"), never an error here.
type Verifier struct {
	codec *Codec
	now   func() time.Time
}

// NewVerifier builds a verifier over the shared codec.
func NewVerifier(codec *Codec) *Verifier {
	return &Verifier{codec: codec, now: time.Now}
}

// WithClock overrides the time source. Test hook.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

// Verify checks signature first, then expiry. Signature mismatch and
// structural problems collapse into ErrTokenInvalid; a well-signed token
// whose expiry is not strictly in the future fails with ErrTokenExpired.
// There is no skew grace window.
func (v *Verifier) Verify(tokenStr string) (*Claims, error) {
	claims, err := v.codec.Decode(tokenStr)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if !v.now().Before(claims.ExpiresAt.Time) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}

// VerifyRefresh is Verify plus a kind check, so an access token can never be
// replayed to mint new tokens.
func (v *Verifier) VerifyRefresh(tokenStr string) (*Claims, error) {
	claims, err := v.Verify(tokenStr)
	if err != nil {
		return nil, err
	}
	if claims.Kind != TokenKindRefresh {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
