package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"blogbackend/internal/models"
)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		Secret:   []byte("test-secret-key-0123456789"),
		Issuer:   "blog-backend",
		Audience: "blog-clients",
		Duration: time.Hour,
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	tokenString, expiresAt, err := tm.Issue(42, "alice@example.com", models.RoleUser)
	require.NoError(t, err)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.Verify(tokenString)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, models.RoleUser, claims.Role)

	userID, err := UserID(claims)
	require.NoError(t, err)
	require.Equal(t, int64(42), userID)
}

func TestTokenManager_Expired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Duration = -time.Minute
	tm := NewTokenManager(cfg)

	tokenString, _, err := tm.Issue(1, "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
	require.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenManager_NotYetExpired(t *testing.T) {
	cfg := testTokenConfig()
	cfg.Duration = time.Minute
	tm := NewTokenManager(cfg)

	tokenString, _, err := tm.Issue(1, "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	_, err = tm.Verify(tokenString)
	require.NoError(t, err)
}

func TestTokenManager_WrongKey(t *testing.T) {
	issuerCfg := testTokenConfig()
	tm := NewTokenManager(issuerCfg)

	tokenString, _, err := tm.Issue(1, "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	otherCfg := issuerCfg
	otherCfg.Secret = []byte("another-secret-key-entirely")
	_, err = NewTokenManager(otherCfg).Verify(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_IssuerMismatch(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	tokenString, _, err := tm.Issue(1, "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	otherCfg := testTokenConfig()
	otherCfg.Issuer = "someone-else"
	_, err = NewTokenManager(otherCfg).Verify(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_AudienceMismatch(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	tokenString, _, err := tm.Issue(1, "alice@example.com", models.RoleUser)
	require.NoError(t, err)

	otherCfg := testTokenConfig()
	otherCfg.Audience = "other-clients"
	_, err = NewTokenManager(otherCfg).Verify(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	_, err := tm.Verify("not.a.jwt")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsUnsignedToken(t *testing.T) {
	cfg := testTokenConfig()
	tm := NewTokenManager(cfg)

	claims := &models.Claims{
		Email: "alice@example.com",
		Role:  models.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			Issuer:    cfg.Issuer,
			Audience:  jwt.ClaimStrings{cfg.Audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(tokenString)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserID(t *testing.T) {
	tests := []struct {
		name    string
		claims  *models.Claims
		want    int64
		wantErr bool
	}{
		{name: "valid", claims: &models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "7"}}, want: 7},
		{name: "nil claims", claims: nil, wantErr: true},
		{name: "empty subject", claims: &models.Claims{}, wantErr: true},
		{name: "non-numeric subject", claims: &models.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := UserID(tt.claims)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidSubject)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
