package jwt

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Test Helpers
// ============================================================================

func newTestKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewTestService(newTestKey(t), "snu-idp", 15*time.Minute)
}

// rawToken signs arbitrary header and claims JSON so tests can build tokens
// Sign would refuse to produce
func rawToken(t *testing.T, key *rsa.PrivateKey, headerJSON, claimsJSON string) string {
	t.Helper()
	message := base64URLEncode([]byte(headerJSON)) + "." + base64URLEncode([]byte(claimsJSON))
	hash := sha256.Sum256([]byte(message))
	sig, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, hash[:])
	require.NoError(t, err)
	return message + "." + base64URLEncode(sig)
}

// ============================================================================
// Claims Tests
// ============================================================================

func TestClaims_Valid(t *testing.T) {
	t.Parallel()

	now := time.Now()
	tests := []struct {
		name   string
		claims Claims
		want   error
	}{
		{"no time claims", Claims{}, nil},
		{"not expired", Claims{ExpiresAt: now.Add(time.Hour).Unix()}, nil},
		{"expired", Claims{ExpiresAt: now.Add(-time.Hour).Unix()}, ErrTokenExpired},
		{"not yet valid", Claims{NotBefore: now.Add(time.Hour).Unix()}, ErrTokenNotYetValid},
		{"not before in past", Claims{NotBefore: now.Add(-time.Hour).Unix()}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.claims.Valid(), tt.want)
		})
	}
}

func TestClaims_ValidAt_Leeway(t *testing.T) {
	t.Parallel()

	now := time.Unix(1_800_000_000, 0)
	claims := Claims{ExpiresAt: now.Add(-10 * time.Second).Unix()}

	assert.ErrorIs(t, claims.validAt(now, 0), ErrTokenExpired)
	assert.NoError(t, claims.validAt(now, 30*time.Second))

	claims = Claims{NotBefore: now.Add(10 * time.Second).Unix()}
	assert.ErrorIs(t, claims.validAt(now, 0), ErrTokenNotYetValid)
	assert.NoError(t, claims.validAt(now, 30*time.Second))
}

func TestClaims_EmailDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		email string
		want  string
	}{
		{"ab123@snu.edu.in", "snu.edu.in"},
		{"AB123@SNU.EDU.IN", "snu.edu.in"},
		{"odd@name@snu.edu.in", "snu.edu.in"},
		{"no-at-sign", ""},
		{"", ""},
	}

	for _, tt := range tests {
		c := Claims{Email: tt.email}
		assert.Equal(t, tt.want, c.EmailDomain(), tt.email)
	}
}

// ============================================================================
// Sign / Validate Tests
// ============================================================================

func TestSignAndValidate_RoundTrip(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{
		Subject: "user:ab123",
		UserID:  "user:ab123",
		Email:   "ab123@snu.edu.in",
		JWTID:   "jti-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(token, "."))
	assert.NotContains(t, token, "=")

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user:ab123", claims.UserID)
	assert.Equal(t, "ab123@snu.edu.in", claims.Email)
	assert.Equal(t, "snu-idp", claims.Issuer)
	assert.Equal(t, "jti-1", claims.JWTID)
	assert.NotZero(t, claims.IssuedAt)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), claims.ExpiresAt, 5)
}

func TestSign_PreservesCustomExpiration(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	exp := time.Now().Add(2 * time.Hour).Unix()
	token, err := svc.Sign(Claims{UserID: "user:a", ExpiresAt: exp})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, exp, claims.ExpiresAt)
}

func TestSign_WithoutPrivateKey(t *testing.T) {
	t.Parallel()
	key := newTestKey(t)
	svc := &Service{publicKey: &key.PublicKey, issuer: "snu-idp"}

	_, err := svc.Sign(Claims{UserID: "user:a"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidate_SubjectFallback(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{Subject: "user:sub-only"})
	require.NoError(t, err)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user:sub-only", claims.UserID)
}

func TestValidate_MissingSubject(t *testing.T) {
	t.Parallel()
	svc := newTestService(t)

	token, err := svc.Sign(Claims{Email: "ab123@snu.edu.in"})
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrMissingSubject)
}

func TestValidate_Rejections(t *testing.T) {
	t.Parallel()

	key := newTestKey(t)
	svc := NewTestService(key, "snu-idp", 15*time.Minute)
	other := NewTestService(newTestKey(t), "snu-idp", 15*time.Minute)
	wrongIssuer := NewTestService(key, "someone-else", 15*time.Minute)

	good, err := svc.Sign(Claims{UserID: "user:a"})
	require.NoError(t, err)
	parts := strings.Split(good, ".")

	fromOtherKey, err := other.Sign(Claims{UserID: "user:a"})
	require.NoError(t, err)
	fromOtherIssuer, err := wrongIssuer.Sign(Claims{UserID: "user:a"})
	require.NoError(t, err)
	expired, err := svc.Sign(Claims{UserID: "user:a", ExpiresAt: time.Now().Add(-time.Hour).Unix()})
	require.NoError(t, err)

	tamperedClaims := base64URLEncode([]byte(`{"user_id":"user:mallory","iss":"snu-idp"}`))

	tests := []struct {
		name  string
		token string
		want  error
	}{
		{"empty", "", ErrInvalidToken},
		{"two parts", parts[0] + "." + parts[1], ErrInvalidToken},
		{"four parts", good + ".x", ErrInvalidToken},
		{"bad signature encoding", parts[0] + "." + parts[1] + ".!!!", ErrInvalidToken},
		{"wrong signature", parts[0] + "." + parts[1] + "." + base64URLEncode([]byte("nope")), ErrInvalidSignature},
		{"tampered claims", parts[0] + "." + tamperedClaims + "." + parts[2], ErrInvalidSignature},
		{"different key", fromOtherKey, ErrInvalidSignature},
		{"wrong issuer", fromOtherIssuer, ErrInvalidToken},
		{"expired", expired, ErrTokenExpired},
		{"alg none", rawToken(t, key, `{"alg":"none"}`, `{"user_id":"user:a","iss":"snu-idp"}`), ErrInvalidToken},
		{"HS256 header", rawToken(t, key, `{"alg":"HS256"}`, `{"user_id":"user:a","iss":"snu-idp"}`), ErrInvalidToken},
		{"claims not json", rawToken(t, key, `{"alg":"RS256"}`, `not json`), ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidate_NilPublicKey(t *testing.T) {
	t.Parallel()
	svc := &Service{issuer: "snu-idp"}

	_, err := svc.Validate("a.b.c")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestValidate_LeewayAcceptsSmallSkew(t *testing.T) {
	t.Parallel()
	key := newTestKey(t)
	svc := NewTestService(key, "snu-idp", time.Minute)
	svc.leeway = time.Minute

	token := rawToken(t, key, `{"alg":"RS256","typ":"JWT"}`,
		`{"user_id":"user:a","iss":"snu-idp","exp":`+strconv.FormatInt(time.Now().Add(-20*time.Second).Unix(), 10)+`}`)

	_, err := svc.Validate(token)
	assert.NoError(t, err)
}

// ============================================================================
// Key Loading Tests
// ============================================================================

func TestGenerateKeyPair_PublicKeyVerifiesPrivateKeyTokens(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	privPath := filepath.Join(dir, "private.pem")
	pubPath := filepath.Join(dir, "public.pem")
	require.NoError(t, GenerateKeyPair(privPath, pubPath))

	signer, err := NewService(Config{PrivateKeyPath: privPath, Issuer: "snu-idp", ExpirationMins: 5})
	require.NoError(t, err)
	verifier, err := NewService(Config{PublicKeyPath: pubPath, Issuer: "snu-idp"})
	require.NoError(t, err)

	token, err := signer.Sign(Claims{UserID: "user:a", Email: "a@snu.edu.in"})
	require.NoError(t, err)

	claims, err := verifier.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user:a", claims.UserID)

	_, err = verifier.Sign(Claims{UserID: "user:a"})
	assert.ErrorIs(t, err, ErrInvalidKey)

	assert.Equal(t, 5*time.Minute, signer.GetExpiration())
}

func TestNewService_NoKeys(t *testing.T) {
	t.Parallel()

	svc, err := NewService(Config{Issuer: "snu-idp"})
	require.NoError(t, err)

	_, err = svc.Validate("a.b.c")
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestNewService_KeyErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	garbage := filepath.Join(dir, "garbage.pem")
	require.NoError(t, os.WriteFile(garbage, []byte("not a pem file"), 0600))

	badBody := filepath.Join(dir, "bad-body.pem")
	require.NoError(t, os.WriteFile(badBody, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: []byte("junk")}), 0600))

	ecKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	ecDER, err := x509.MarshalPKIXPublicKey(&ecKey.PublicKey)
	require.NoError(t, err)
	ecPath := filepath.Join(dir, "ec.pem")
	require.NoError(t, os.WriteFile(ecPath, pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: ecDER}), 0600))

	tests := []struct {
		name string
		cfg  Config
	}{
		{"private key missing", Config{PrivateKeyPath: filepath.Join(dir, "nope.pem")}},
		{"public key missing", Config{PublicKeyPath: filepath.Join(dir, "nope.pem")}},
		{"private key not pem", Config{PrivateKeyPath: garbage}},
		{"public key not pem", Config{PublicKeyPath: garbage}},
		{"public key bad der", Config{PublicKeyPath: badBody}},
		{"public key not rsa", Config{PublicKeyPath: ecPath}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewService(tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestBase64URL_AcceptsPaddedInput(t *testing.T) {
	t.Parallel()

	enc := base64URLEncode([]byte("ab"))
	assert.Equal(t, "YWI", enc)

	dec, err := base64URLDecode("YWI=")
	require.NoError(t, err)
	assert.Equal(t, "ab", string(dec))
}
