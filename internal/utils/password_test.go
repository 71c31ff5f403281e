package utils_test

import (
	"testing"

	"github.com/SscSPs/finance_flow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_SaltedAndVerifiable(t *testing.T) {
	h1, err := utils.HashPassword("pw123", bcrypt.MinCost)
	require.NoError(t, err)
	h2, err := utils.HashPassword("pw123", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "pw123", h1)
	assert.NotEqual(t, h1, h2, "fresh salt per hash")
	assert.True(t, utils.CheckPasswordHash("pw123", h1))
	assert.True(t, utils.CheckPasswordHash("pw123", h2))
	assert.False(t, utils.CheckPasswordHash("pw124", h1))
}

func TestCheckPasswordHash_GarbageHash(t *testing.T) {
	assert.False(t, utils.CheckPasswordHash("pw123", "not-a-bcrypt-hash"))
	assert.False(t, utils.CheckPasswordHash("pw123", ""))
}

func TestBurnPasswordCheck_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() { utils.BurnPasswordCheck("anything") })
}
