package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashVerifyRoundTrip(t *testing.T) {
	h := NewHasher("pepper")

	digest, err := h.Hash("Sup3rSecret")
	require.NoError(t, err)
	require.NotEmpty(t, digest)
	require.NotContains(t, digest, "Sup3rSecret")

	require.True(t, h.Verify("Sup3rSecret", digest))
	require.False(t, h.Verify("sup3rsecret", digest))
	require.False(t, h.Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	h := NewHasher("pepper")

	d1, err := h.Hash("same-password")
	require.NoError(t, err)
	d2, err := h.Hash("same-password")
	require.NoError(t, err)

	require.NotEqual(t, d1, d2, "two hashes of one plaintext must differ")
	require.True(t, h.Verify("same-password", d1))
	require.True(t, h.Verify("same-password", d2))
}

func TestVerifyMalformedDigest(t *testing.T) {
	h := NewHasher("pepper")

	require.False(t, h.Verify("whatever", "not-an-argon2id-digest"))
	require.False(t, h.Verify("whatever", ""))
}

func TestPepperMatters(t *testing.T) {
	a := NewHasher("pepper-a")
	b := NewHasher("pepper-b")

	digest, err := a.Hash("pw")
	require.NoError(t, err)

	require.True(t, a.Verify("pw", digest))
	require.False(t, b.Verify("pw", digest))
}
