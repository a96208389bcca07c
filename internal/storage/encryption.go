package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	// encryptionMagicHeader identifies encrypted backup files.
	encryptionMagicHeader = "PKBNDENC"

	// Argon2id parameters (RFC 9106 recommendations)
	argon2Time    = 1
	argon2Memory  = 64 * 1024 // 64 MB
	argon2Threads = 4
	argon2KeyLen  = 32 // 256 bits for AES-256

	saltLength = 32
)

// deriveKey derives an encryption key from a passphrase using Argon2id.
func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argon2Time, argon2Memory, argon2Threads, argon2KeyLen)
}

// EncryptData encrypts data using AES-256-GCM with passphrase-based key
// derivation. Output layout: magic + salt + nonce + ciphertext.
func EncryptData(plaintext []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("encryption passphrase required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	out := make([]byte, 0, len(encryptionMagicHeader)+len(salt)+len(nonce)+len(plaintext)+gcm.Overhead())
	out = append(out, []byte(encryptionMagicHeader)...)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = gcm.Seal(out, nonce, plaintext, nil)

	return out, nil
}

// DecryptData reverses EncryptData. A wrong passphrase fails authentication.
func DecryptData(data []byte, passphrase string) ([]byte, error) {
	header := len(encryptionMagicHeader)
	if len(data) < header+saltLength {
		return nil, fmt.Errorf("encrypted data too short")
	}
	if string(data[:header]) != encryptionMagicHeader {
		return nil, fmt.Errorf("not an encrypted backup (missing magic header)")
	}

	salt := data[header : header+saltLength]
	key := deriveKey(passphrase, salt)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	rest := data[header+saltLength:]
	if len(rest) < gcm.NonceSize() {
		return nil, fmt.Errorf("encrypted data too short")
	}
	nonce := rest[:gcm.NonceSize()]
	ciphertext := rest[gcm.NonceSize():]

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt backup: %w", err)
	}

	return plaintext, nil
}

// IsEncrypted reports whether data carries the encrypted backup header.
func IsEncrypted(data []byte) bool {
	header := len(encryptionMagicHeader)
	return len(data) >= header && string(data[:header]) == encryptionMagicHeader
}
