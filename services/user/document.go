package user

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

const documentKeyInfo = "gochinamed travel document v1"

// DocumentCipher encrypts travel document numbers with AES-256-GCM. The
// output is base64 of the nonce followed by the ciphertext.
type DocumentCipher struct {
	aead cipher.AEAD
}

// NewDocumentCipher derives a 32-byte key from secret with HKDF-SHA256.
func NewDocumentCipher(secret string) (*DocumentCipher, error) {
	if secret == "" {
		return nil, errors.New("document key is empty")
	}
	key := make([]byte, 32)
	if _, err := io.ReadFull(hkdf.New(sha256.New, []byte(secret), nil, []byte(documentKeyInfo)), key); err != nil {
		return nil, fmt.Errorf("failed to derive document key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &DocumentCipher{aead: gcm}, nil
}

func (c *DocumentCipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c *DocumentCipher) Decrypt(encoded string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode document: %w", err)
	}
	n := c.aead.NonceSize()
	if len(data) < n {
		return "", errors.New("ciphertext too short")
	}
	plain, err := c.aead.Open(nil, data[:n], data[n:], nil)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt document: %w", err)
	}
	return string(plain), nil
}
