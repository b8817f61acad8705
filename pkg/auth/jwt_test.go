package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

func newTestJWTService(t *testing.T) *JWTService {
	t.Helper()
	svc, err := NewJWTService(JWTConfig{
		Secret:     "test-secret-key-for-unit-tests",
		Issuer:     "refinance-test",
		Expiration: 15 * time.Minute,
	})
	require.NoError(t, err)
	return svc
}

func generateKeyPair(t *testing.T) (privPEM, pubPEM string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	return string(pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)})),
		string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pub}))
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.GenerateToken("staff-17", "Siti", []string{RoleOperator})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-17", claims.Subject)
	assert.Equal(t, "Siti", claims.Name)
	assert.True(t, claims.HasRole(RoleOperator))
	assert.False(t, claims.HasRole(RoleAdmin))
	assert.True(t, claims.HasAnyRole(RoleAdmin, RoleOperator))
}

func TestValidateToken_Rejects(t *testing.T) {
	svc := newTestJWTService(t)

	other, err := NewJWTService(JWTConfig{Secret: "another-secret", Issuer: "refinance-test", Expiration: time.Minute})
	require.NoError(t, err)
	foreignSig, err := other.GenerateToken("x", "", nil)
	require.NoError(t, err)

	wrongIssuer, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "elsewhere", Expiration: time.Minute})
	require.NoError(t, err)
	foreignIss, err := wrongIssuer.GenerateToken("x", "", nil)
	require.NoError(t, err)

	expired, err := NewJWTService(JWTConfig{Secret: "test-secret-key-for-unit-tests", Issuer: "refinance-test", Expiration: -time.Minute})
	require.NoError(t, err)
	expiredTok, err := expired.GenerateToken("x", "", nil)
	require.NoError(t, err)

	noneTok, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-jwt",
		"wrong secret": foreignSig,
		"wrong issuer": foreignIss,
		"expired":      expiredTok,
		"alg none":     noneTok,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestJWTService_RSA(t *testing.T) {
	privPEM, pubPEM := generateKeyPair(t)

	issuer, err := NewJWTService(JWTConfig{PrivateKeyPEM: privPEM, Issuer: "refinance-test", Expiration: time.Minute})
	require.NoError(t, err)
	validator, err := NewJWTService(JWTConfig{PublicKeyPEM: pubPEM, Issuer: "refinance-test"})
	require.NoError(t, err)

	token, err := issuer.GenerateToken("svc-gateway", "", []string{RoleService})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, claims.HasRole(RoleService))

	_, err = validator.GenerateToken("x", "", nil)
	assert.ErrorContains(t, err, "validation-only")

	// An HMAC token must not pass an RSA validator.
	hmacTok, err := newTestJWTService(t).GenerateToken("x", "", nil)
	require.NoError(t, err)
	_, err = validator.ValidateToken(hmacTok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewJWTService_Errors(t *testing.T) {
	_, err := NewJWTService(JWTConfig{})
	assert.Error(t, err)

	_, err = NewJWTService(JWTConfig{PublicKeyPEM: "not pem"})
	assert.ErrorContains(t, err, "parse RSA public key")
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def", "abc.def", true},
		{"bearer abc", "abc", true},
		{"Basic abc", "", false},
		{"Bearer ", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := BearerToken(tt.header)
		assert.Equal(t, tt.want, got, tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
	}
}

func TestUnaryAuthInterceptor(t *testing.T) {
	svc := newTestJWTService(t)
	interceptor := UnaryAuthInterceptor(svc,
		[]string{"/grpc.health.v1.Health/Check"},
		map[string][]string{"/refinance.v1.RefinanceService/ListApplications": {RoleAdmin, RoleOperator}},
	)

	serviceTok, err := svc.GenerateToken("svc", "", []string{RoleService})
	require.NoError(t, err)
	adminTok, err := svc.GenerateToken("boss", "", []string{RoleAdmin})
	require.NoError(t, err)

	var seen *Claims
	handler := func(ctx context.Context, _ any) (any, error) {
		seen, _ = ClaimsFromContext(ctx)
		return "ok", nil
	}
	call := func(method, token string) error {
		ctx := context.Background()
		if token != "" {
			ctx = metadata.NewIncomingContext(ctx, metadata.Pairs("authorization", "Bearer "+token))
		}
		_, err := interceptor(ctx, nil, &grpc.UnaryServerInfo{FullMethod: method}, handler)
		return err
	}

	assert.NoError(t, call("/grpc.health.v1.Health/Check", ""))
	assert.Equal(t, codes.Unauthenticated, status.Code(call("/refinance.v1.RefinanceService/Evaluate", "")))
	assert.Equal(t, codes.Unauthenticated, status.Code(call("/refinance.v1.RefinanceService/Evaluate", "forged")))

	require.NoError(t, call("/refinance.v1.RefinanceService/Evaluate", serviceTok))
	require.NotNil(t, seen)
	assert.Equal(t, "svc", seen.Subject)

	assert.Equal(t, codes.PermissionDenied, status.Code(call("/refinance.v1.RefinanceService/ListApplications", serviceTok)))
	assert.NoError(t, call("/refinance.v1.RefinanceService/ListApplications", adminTok))
}
