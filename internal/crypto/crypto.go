package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"
)

// Cipher encrypts field values with AES-256-GCM and produces HMAC-SHA256
// blind indexes so encrypted columns stay searchable by exact match.
type Cipher struct {
	encryptionKey []byte // 32 bytes, AES-256
	blindIndexKey []byte // 32 bytes, HMAC-SHA256
}

// NewCipher requires two independent 32-byte keys: one for encryption, one
// for blind indexing. Reusing one key for both would let an index leak
// information about the ciphertext key.
func NewCipher(encryptionKey, blindIndexKey []byte) (*Cipher, error) {
	if len(encryptionKey) != 32 {
		return nil, errors.New("encryption key must be 32 bytes")
	}
	if len(blindIndexKey) != 32 {
		return nil, errors.New("blind index key must be 32 bytes")
	}
	return &Cipher{encryptionKey: encryptionKey, blindIndexKey: blindIndexKey}, nil
}

// Encrypt returns base64(nonce || ciphertext) for the given plaintext.
// Empty input stays empty so optional columns round-trip as-is.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	block, err := aes.NewCipher(c.encryptionKey)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(c.encryptionKey)
	if err != nil {
		return "", err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	plaintext, err := gcm.Open(nil, data[:nonceSize], data[nonceSize:], nil)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// BlindIndex returns a deterministic HMAC of the plaintext, usable as an
// equality-searchable stand-in for an encrypted column.
func (c *Cipher) BlindIndex(plaintext string) string {
	if plaintext == "" {
		return ""
	}
	h := hmac.New(sha256.New, c.blindIndexKey)
	h.Write([]byte(plaintext))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// EncryptWithBlindIndex encrypts the plaintext and returns its blind index
// in one call, for columns stored in both forms.
func (c *Cipher) EncryptWithBlindIndex(plaintext string) (encrypted, blindIndex string, err error) {
	encrypted, err = c.Encrypt(plaintext)
	if err != nil {
		return "", "", err
	}
	return encrypted, c.BlindIndex(plaintext), nil
}
