package utils // package utils provides helper functions for token issuance and hashing

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole is the fixed role claim carried by every issued session token.
// There is a single shared administrator credential; the role claim exists
// so the middleware can keep a uniform authorization check.
const AdminRole = "ADMIN"

// SessionToken represents a signed JWT session token along with its
// expiry. The Token field contains the JWT string. Exp stores the
// expiration timestamp as a time.Time. Tokens are short-lived and sent
// in the Authorization header when calling administrative endpoints.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the administrator. It
// takes the signing secret and a TTL in minutes and returns a
// SessionToken containing the signed token and its expiration time. The
// JWT includes standard claims: subject (sub), role, expiration (exp)
// and issued at (iat).
func NewAdminToken(secret string, ttlMin int) (SessionToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":  "admin",
		"role": AdminRole,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}
