package tokens

import (
	"context"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/scratchboard/dashboard/internal/config"
	"github.com/scratchboard/dashboard/internal/sessions"
)

const testSecret = "test-secret-32-bytes-should-be-long-enough"

func TestNew_SelectsMode(t *testing.T) {
	cfg := &config.Config{}
	cfg.Admin.AuthMode = config.AuthModeStatic
	cfg.Admin.Token = "tok"
	a, err := New(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &StaticAuthenticator{}, a)

	cfg.Admin.AuthMode = config.AuthModeJWT
	cfg.JWT.Secret = testSecret
	a, err = New(cfg, nil)
	require.NoError(t, err)
	require.IsType(t, &JWTAuthenticator{}, a)

	cfg.Admin.AuthMode = "ldap"
	_, err = New(cfg, nil)
	require.Error(t, err)
}

func TestStatic(t *testing.T) {
	ctx := context.Background()
	a := NewStatic("supersecretadmin")

	tok, err := a.Issue(ctx, "admin")
	require.NoError(t, err)
	require.Equal(t, "supersecretadmin", tok)
	require.NoError(t, a.Verify(ctx, tok))
	require.ErrorIs(t, a.Verify(ctx, "nope"), ErrInvalidToken)
	require.ErrorIs(t, a.Verify(ctx, ""), ErrInvalidToken)

	require.NoError(t, a.Revoke(ctx, tok))
	require.NoError(t, a.Verify(ctx, tok))
}

func TestJWT_IssueVerify(t *testing.T) {
	ctx := context.Background()
	a := NewJWT(testSecret, time.Minute, nil)

	tok, err := a.Issue(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, tok))

	parsed, err := jwt.Parse(tok, func(token *jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	require.Equal(t, "admin", claims["sub"])
}

func TestJWT_Expiry(t *testing.T) {
	ctx := context.Background()
	a := NewJWT(testSecret, time.Minute, nil)
	start := time.Now()
	a.now = func() time.Time { return start }

	tok, err := a.Issue(ctx, "admin")
	require.NoError(t, err)

	a.now = func() time.Time { return start.Add(2 * time.Minute) }
	require.ErrorIs(t, a.Verify(ctx, tok), ErrInvalidToken)
}

func TestJWT_WrongSecretFails(t *testing.T) {
	ctx := context.Background()
	tok, err := NewJWT(testSecret, time.Minute, nil).Issue(ctx, "admin")
	require.NoError(t, err)
	other := NewJWT("different-secret-xxxxxxxxxxxxxxxx", time.Minute, nil)
	require.ErrorIs(t, other.Verify(ctx, tok), ErrInvalidToken)
}

// Rejected when alg=none (unsigned token)
func TestJWT_AlgNoneRejected(t *testing.T) {
	headerEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"alg":"none"}`))
	payloadEnc := (&jwt.Token{}).EncodeSegment([]byte(`{"sub":"admin","exp":9999999999}`))
	tok := headerEnc + "." + payloadEnc + "."
	require.ErrorIs(t, NewJWT(testSecret, time.Minute, nil).Verify(context.Background(), tok), ErrInvalidToken)
}

// Tampering with payload must fail signature verification
func TestJWT_TamperedPayload(t *testing.T) {
	ctx := context.Background()
	a := NewJWT(testSecret, time.Minute, nil)
	tok, err := a.Issue(ctx, "admin")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	payload, err := jwt.NewParser().DecodeSegment(parts[1])
	require.NoError(t, err)
	parts[1] = (&jwt.Token{}).EncodeSegment([]byte(strings.Replace(string(payload), "admin", "attacker", 1)))
	require.ErrorIs(t, a.Verify(ctx, strings.Join(parts, ".")), ErrInvalidToken)
}

func TestJWT_Revoke(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	ctx := context.Background()
	bl := sessions.NewBlacklist(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	a := NewJWT(testSecret, time.Minute, bl)

	tok, err := a.Issue(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, tok))

	require.NoError(t, a.Revoke(ctx, tok))
	require.ErrorIs(t, a.Verify(ctx, tok), ErrInvalidToken)

	other, err := a.Issue(ctx, "admin")
	require.NoError(t, err)
	require.NoError(t, a.Verify(ctx, other))
}
