package crypto_test

import (
	"regexp"
	"testing"

	"github.com/RKmodz24/studio/pkg/crypto"
	"github.com/stretchr/testify/require"
)

func TestGenerateCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9A-Z]{6}$`)
	for i := 0; i < 100; i++ {
		require.Regexp(t, pattern, crypto.GenerateCode(6))
	}
}

func TestRandRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		v := crypto.RandRange(50, 250)
		require.GreaterOrEqual(t, v, 50)
		require.Less(t, v, 250)
	}
}

func TestGenerateRandomString(t *testing.T) {
	a, err := crypto.GenerateRandomString()
	require.NoError(t, err)
	b, err := crypto.GenerateRandomString()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
