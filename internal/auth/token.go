package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"blogbackend/internal/models"
)

var (
	// ErrInvalidToken covers every verification failure: bad signature,
	// wrong issuer or audience, expiry, malformed input.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidSubject means the subject claim is absent or not a user id.
	ErrInvalidSubject = errors.New("invalid or missing subject claim")
)

// TokenConfig carries the deployment-level token parameters. Verification
// must use the exact values used at issuance or no token will verify.
type TokenConfig struct {
	Secret   []byte
	Issuer   string
	Audience string
	Duration time.Duration
}

// TokenManager mints and verifies stateless HS256 bearer tokens. There is
// no revocation: a token stays valid until its expiry.
type TokenManager struct {
	cfg TokenConfig
}

func NewTokenManager(cfg TokenConfig) *TokenManager {
	return &TokenManager{cfg: cfg}
}

// Issue signs a token for the given user carrying exactly three identity
// claims: subject (stringified user id), email, and role. It returns the
// token string and its expiry time.
func (tm *TokenManager) Issue(userID int64, email, role string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(tm.cfg.Duration)

	claims := &models.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    tm.cfg.Issuer,
			Audience:  jwt.ClaimStrings{tm.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(tm.cfg.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// Verify parses and validates tokenString: signing method, signature,
// issuer, audience, and lifetime. On success it returns the decoded claims;
// any failure yields an error wrapping ErrInvalidToken and no claims.
func (tm *TokenManager) Verify(tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return tm.cfg.Secret, nil
	},
		jwt.WithIssuer(tm.cfg.Issuer),
		jwt.WithAudience(tm.cfg.Audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// UserID extracts the subject claim as a user id. An absent or unparsable
// subject is an authentication failure, not a server error.
func UserID(claims *models.Claims) (int64, error) {
	if claims == nil || claims.Subject == "" {
		return 0, ErrInvalidSubject
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidSubject
	}
	return id, nil
}
