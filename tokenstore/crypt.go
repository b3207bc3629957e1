package tokenstore

import (
	"crypto/rand"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/crypto/chacha20poly1305"
)

// loadOrCreateKey reads the installation key, minting one on first use.
// Losing the key only costs the stored session, the user just logs in again.
func (r *FileRepo) loadOrCreateKey() ([]byte, error) {
	key, err := os.ReadFile(r.keyPath)
	if err == nil && len(key) == chacha20poly1305.KeySize {
		return key, nil
	}
	if err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "read key file")
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	if err := os.WriteFile(r.keyPath, key, 0o600); err != nil {
		return nil, errors.Wrap(err, "write key file")
	}
	return key, nil
}

// seal encrypts plaintext with XChaCha20-Poly1305, prefixing the random nonce.
func seal(key, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func open(key, sealed []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(sealed) < aead.NonceSize() {
		return nil, errors.New("sealed data too short")
	}
	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]
	return aead.Open(nil, nonce, ciphertext, nil)
}
