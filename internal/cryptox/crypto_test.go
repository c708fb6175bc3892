package cryptox

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveKey_Deterministic(t *testing.T) {
	salt := []byte("0123456789abcdef")
	k1 := DeriveKey([]byte("password"), salt)
	k2 := DeriveKey([]byte("password"), salt)
	require.Len(t, k1, 32)
	assert.Equal(t, k1, k2)
}

func TestDeriveKey_SaltChangesKey(t *testing.T) {
	k1 := DeriveKey([]byte("password"), []byte("salt-one--------"))
	k2 := DeriveKey([]byte("password"), []byte("salt-two--------"))
	assert.NotEqual(t, k1, k2)
}

func TestVerifyPassword(t *testing.T) {
	salt := []byte("0123456789abcdef")
	hash := DeriveKey([]byte("password"), salt)

	assert.True(t, VerifyPassword([]byte("password"), salt, hash))
	assert.False(t, VerifyPassword([]byte("wrong"), salt, hash))
}
