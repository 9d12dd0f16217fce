package store

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

// Payload framing: magic | version | salt | nonce | ciphertext.
// The key is derived per payload from the passphrase and the stored salt,
// so a wrong passphrase fails the GCM open rather than producing garbage.
var magic = []byte("AJRN")

const (
	codecVersion = 1
	saltSize     = 16
)

var (
	ErrLocked        = errors.New("store is locked: no passphrase configured")
	ErrCorruptBlob   = errors.New("payload is corrupt or truncated")
	ErrBadPassphrase = errors.New("decryption failed: wrong passphrase or corrupted data")
)

// Codec seals and opens journal payloads with a passphrase-derived AES-256-GCM key.
type Codec struct {
	passphrase string
}

func NewCodec(passphrase string) *Codec {
	return &Codec{passphrase: passphrase}
}

// Unlocked reports whether a passphrase has been configured.
func (c *Codec) Unlocked() bool {
	return c.passphrase != ""
}

func (c *Codec) deriveKey(salt []byte) ([]byte, error) {
	return scrypt.Key([]byte(c.passphrase), salt, 1<<15, 8, 1, 32)
}

// Seal encrypts plaintext into a framed payload.
func (c *Codec) Seal(plaintext []byte) ([]byte, error) {
	if !c.Unlocked() {
		return nil, ErrLocked
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}

	key, err := c.deriveKey(salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	// cipherText includes the auth tag
	cipherText := aesGCM.Seal(nil, nonce, plaintext, nil)

	out := make([]byte, 0, len(magic)+1+saltSize+len(nonce)+len(cipherText))
	out = append(out, magic...)
	out = append(out, codecVersion)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, cipherText...)
	return out, nil
}

// Open decrypts a framed payload produced by Seal.
func (c *Codec) Open(payload []byte) ([]byte, error) {
	if !c.Unlocked() {
		return nil, ErrLocked
	}

	header := len(magic) + 1
	if len(payload) < header+saltSize {
		return nil, ErrCorruptBlob
	}
	if string(payload[:len(magic)]) != string(magic) {
		return nil, ErrCorruptBlob
	}
	if payload[len(magic)] != codecVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorruptBlob, payload[len(magic)])
	}

	salt := payload[header : header+saltSize]
	key, err := c.deriveKey(salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	rest := payload[header+saltSize:]
	nonceSize := aesGCM.NonceSize()
	if len(rest) < nonceSize {
		return nil, ErrCorruptBlob
	}

	nonce := rest[:nonceSize]
	cipherText := rest[nonceSize:]

	plainText, err := aesGCM.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return nil, ErrBadPassphrase
	}
	return plainText, nil
}
