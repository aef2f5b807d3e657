// Package token issues and redeems encrypted, time-boxed invitation tokens.
package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrDecode covers every redemption failure: malformed token, wrong
	// secret, tampered ciphertext, invalid payload JSON. Callers must not
	// distinguish these, to avoid oracle behavior.
	ErrDecode = errors.New("invalid invitation token")

	// ErrNoSecret means the process-wide secret is missing; issuing or
	// redeeming tokens without it is a fatal configuration error.
	ErrNoSecret = errors.New("invitation secret is not configured")
)

// Payload is the content of an invitation token
type Payload struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the invitation window has closed. The boundary
// instant itself is not expired.
func (p Payload) IsExpired() bool {
	return time.Now().After(p.ExpiresAt)
}

// Codec encrypts and decrypts invitation payloads with a shared secret.
// The AES-256 key is the SHA-256 digest of the secret.
type Codec struct {
	key [32]byte
}

// NewCodec derives the codec key from the shared secret.
// An empty secret is rejected so tokens are never minted with an empty key.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	return &Codec{key: sha256.Sum256([]byte(secret))}, nil
}

// Encode serializes the payload to JSON and encrypts it with AES-GCM under
// a fresh random nonce. The token is "nonce_hex:ciphertext_hex"; encrypting
// the same payload twice yields different tokens.
func (c *Codec) Encode(payload Payload) (string, error) {
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialize payload: %w", err)
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := aesgcm.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(nonce) + ":" + hex.EncodeToString(ciphertext), nil
}

// Decode splits, decrypts and parses a token. Any failure surfaces as
// ErrDecode; GCM authentication guarantees a tampered token or a wrong
// secret never yields a plausible payload.
func (c *Codec) Decode(tok string) (Payload, error) {
	nonceHex, ciphertextHex, found := strings.Cut(tok, ":")
	if !found {
		return Payload{}, ErrDecode
	}

	nonce, err := hex.DecodeString(nonceHex)
	if err != nil {
		return Payload{}, ErrDecode
	}
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return Payload{}, ErrDecode
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return Payload{}, ErrDecode
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return Payload{}, ErrDecode
	}
	if len(nonce) != aesgcm.NonceSize() {
		return Payload{}, ErrDecode
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return Payload{}, ErrDecode
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return Payload{}, ErrDecode
	}
	return payload, nil
}
