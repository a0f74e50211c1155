package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateSecret(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		s, err := GenerateSecret(SecretSize)
		require.NoError(t, err)
		require.Len(t, s, 22)
		require.NotContains(t, seen, s)
		seen[s] = true
	}

	for _, size := range []int{0, -1} {
		s, err := GenerateSecret(size)
		require.Error(t, err)
		require.Empty(t, s)
	}

	require.Panics(t, func() { MustGenerateSecret(0) })
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("header.payload.sig")

	require.Len(t, fp, 43)
	require.Equal(t, fp, FingerprintToken("header.payload.sig"))
	require.NotEqual(t, fp, FingerprintToken("header.payload.sih"))
	require.NotContains(t, fp, "header")
}

func TestMatchesFingerprint(t *testing.T) {
	fp := FingerprintToken("token-a")

	require.True(t, MatchesFingerprint("token-a", fp))
	require.False(t, MatchesFingerprint("token-b", fp))
	require.False(t, MatchesFingerprint("token-a", ""))
	require.False(t, MatchesFingerprint("token-a", fp[:20]))
}
