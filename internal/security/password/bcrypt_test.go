package password_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mernspace/auth-service/internal/security/password"
)

func TestHashAndVerify(t *testing.T) {
	h, err := password.Hash("password")
	require.NoError(t, err)

	require.True(t, password.Verify("password", h))
	require.False(t, password.Verify("wrong", h))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := password.Hash("password")
	require.NoError(t, err)
	h2, err := password.Hash("password")
	require.NoError(t, err)

	require.NotEqual(t, h1, h2, "same plaintext must produce different digests")
}

func TestDigestFormat(t *testing.T) {
	h, err := password.Hash("password")
	require.NoError(t, err)

	require.Len(t, h, 60)
	require.True(t, strings.HasPrefix(h, "$2"), "bcrypt prefix expected, got %q", h)
	require.NotEqual(t, "password", h)
}

func TestVerifyMalformedDigest(t *testing.T) {
	require.False(t, password.Verify("password", ""))
	require.False(t, password.Verify("password", "not-a-bcrypt-digest"))
	require.False(t, password.Verify("password", "$2a$10$short"))
}

func TestHashEmptyPassword(t *testing.T) {
	_, err := password.Hash("")
	require.Error(t, err)
}
