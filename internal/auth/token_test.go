package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/session-booking/pkg/util"
)

func TestGenerateToken_ValidatesWithinWindow(t *testing.T) {
	tm := NewTokenManager("test-secret", 3600)

	token, expiresAt, err := tm.GenerateToken("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestParseToken_ExpiredFails(t *testing.T) {
	tm := NewTokenManager("test-secret", 3600)
	tm.ttl = -time.Minute

	token, _, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = tm.ParseToken(token)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeInvalidToken))
}

func TestParseToken_TamperedSignatureFails(t *testing.T) {
	tm := NewTokenManager("test-secret", 3600)

	token, _, err := tm.GenerateToken("user-1")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	_, err = tm.ParseToken(tampered)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeInvalidToken))
}

func TestParseToken_WrongSecretFails(t *testing.T) {
	issuer := NewTokenManager("issuer-secret", 3600)
	verifier := NewTokenManager("other-secret", 3600)

	token, _, err := issuer.GenerateToken("user-1")
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
	assert.True(t, util.HasCode(err, util.CodeInvalidToken))
}

func TestParseToken_GarbageFails(t *testing.T) {
	tm := NewTokenManager("test-secret", 3600)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := tm.ParseToken(token)
		require.Error(t, err)
		assert.True(t, util.HasCode(err, util.CodeInvalidToken))
	}
}

func TestNewTokenManager_DefaultTTL(t *testing.T) {
	tm := NewTokenManager("test-secret", 0)
	assert.Equal(t, 24*time.Hour, tm.ttl)
}
