package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/tasks/pkg/cryptox"
	"github.com/aussiebroadwan/tasks/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testIssuer = "tasks-test"

func newSigner(t *testing.T, kid string) *jwtx.EdDSASigner {
	t.Helper()
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	return signer
}

func TestEdDSASignAndVerify(t *testing.T) {
	signer := newSigner(t, "session-key")
	require.Equal(t, "EdDSA", signer.Alg())
	require.Equal(t, "session-key", signer.KID())

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims("user-456", "session-1", "alice", testIssuer, 5*time.Minute, now)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))
	require.True(t, keyset.IsReady())

	parsed, err := jwtx.NewVerifierEdDSA(keyset, testIssuer).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-456", parsed.Subject)
	require.Equal(t, "session-1", parsed.SID)
	require.Equal(t, "alice", parsed.Username)
	require.Equal(t, testIssuer, parsed.Issuer)
	require.NotEmpty(t, parsed.ID)
}

func TestEdDSAVerifyFailsForWrongIssuer(t *testing.T) {
	signer := newSigner(t, "k1")
	token, err := signer.Sign(jwtx.NewSessionClaims("u", "s", "", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	_, err = jwtx.NewVerifierEdDSA(keyset, "someone-else").Verify(token)
	require.ErrorIs(t, err, jwtx.ErrIssuer)
}

func TestEdDSAVerifyFailsForUnknownKey(t *testing.T) {
	signer1 := newSigner(t, "key1")
	signer2 := newSigner(t, "key2")

	token, err := signer1.Sign(jwtx.NewSessionClaims("u", "s", "", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer2))

	_, err = jwtx.NewVerifierEdDSA(keyset, testIssuer).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrNoKey)
}

func TestEdDSAVerifyFailsForForgedKeyWithSameKID(t *testing.T) {
	genuine := newSigner(t, "shared")
	forged := newSigner(t, "shared")

	token, err := forged.Sign(jwtx.NewSessionClaims("u", "s", "", testIssuer, time.Minute, time.Now()))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(genuine))

	_, err = jwtx.NewVerifierEdDSA(keyset, testIssuer).Verify(token)
	require.Error(t, err)
}

func TestEdDSAVerifyFailsForHS256Token(t *testing.T) {
	claims := jwtx.NewSessionClaims("u", "s", "", testIssuer, time.Minute, time.Now())
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["kid"] = "k1"
	token, err := tok.SignedString([]byte("shared-secret"))
	require.NoError(t, err)

	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(newSigner(t, "k1")))

	_, err = jwtx.NewVerifierEdDSA(keyset, testIssuer).Verify(token)
	require.Error(t, err)
}

func TestEdDSAVerifyExpiry(t *testing.T) {
	signer := newSigner(t, "k1")
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(signer))

	issued := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	token, err := signer.Sign(jwtx.NewSessionClaims("u", "s", "", testIssuer, time.Hour, issued))
	require.NoError(t, err)

	clock := issued.Add(30 * time.Minute)
	verifier := jwtx.NewVerifierEdDSA(keyset, testIssuer, jwtx.WithClock(func() time.Time { return clock }))

	_, err = verifier.Verify(token)
	require.NoError(t, err)

	clock = issued.Add(2 * time.Hour)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)

	clock = issued.Add(-time.Hour)
	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrNotYetValid)
}

func TestEdDSAVerifyRejectsGarbage(t *testing.T) {
	keyset := jwtx.NewKeySet()
	require.NoError(t, keyset.AddSigner(newSigner(t, "k1")))
	verifier := jwtx.NewVerifierEdDSA(keyset, testIssuer)

	for _, token := range []string{"", "abc", "a.b.c"} {
		_, err := verifier.Verify(token)
		require.Error(t, err, "token %q", token)
	}
	_, err := verifier.Verify("")
	require.ErrorIs(t, err, jwtx.ErrMalformed)
}

func TestEdDSASignerRejectsInvalidPEM(t *testing.T) {
	_, err := jwtx.NewSignerEdDSA("test", []byte("not-a-pem-key"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid PEM")
}

func TestEdDSASignerDerivesStableKID(t *testing.T) {
	pemKey, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)

	a, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)
	b, err := jwtx.NewSignerEdDSA("", pemKey)
	require.NoError(t, err)
	require.NotEmpty(t, a.KID())
	require.Equal(t, a.KID(), b.KID())

	other, err := cryptox.GenerateEd25519Key()
	require.NoError(t, err)
	c, err := jwtx.NewSignerEdDSA("", other)
	require.NoError(t, err)
	require.NotEqual(t, a.KID(), c.KID())
}
