package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecSealOpen(t *testing.T) {
	c := NewCodec("a passphrase")

	sealed, err := c.Seal([]byte("hello journal"))
	require.NoError(t, err)
	assert.NotContains(t, string(sealed), "hello", "plaintext must not leak into the payload")

	plain, err := c.Open(sealed)
	require.NoError(t, err)
	assert.Equal(t, "hello journal", string(plain))
}

func TestCodecWrongPassphrase(t *testing.T) {
	sealed, err := NewCodec("right").Seal([]byte("secret"))
	require.NoError(t, err)

	_, err = NewCodec("wrong").Open(sealed)
	assert.ErrorIs(t, err, ErrBadPassphrase)
}

func TestCodecLocked(t *testing.T) {
	c := NewCodec("")
	_, err := c.Seal([]byte("x"))
	assert.ErrorIs(t, err, ErrLocked)
	_, err = c.Open([]byte("x"))
	assert.ErrorIs(t, err, ErrLocked)
}

func TestCodecRejectsGarbage(t *testing.T) {
	c := NewCodec("pw")

	cases := [][]byte{
		nil,
		[]byte("short"),
		[]byte("XXXX0123456789abcdef0123456789abcdef"),
	}
	for _, payload := range cases {
		_, err := c.Open(payload)
		assert.Error(t, err)
	}
}

func TestCodecTamperedCiphertext(t *testing.T) {
	c := NewCodec("pw")
	sealed, err := c.Seal([]byte("payload"))
	require.NoError(t, err)

	sealed[len(sealed)-1] ^= 0xff
	_, err = c.Open(sealed)
	assert.ErrorIs(t, err, ErrBadPassphrase)
}
