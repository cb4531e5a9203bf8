// Package export turns a planned route into an encrypted text artifact that
// can be downloaded and decrypted later with the same passphrase.
package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"deepspace-navigator/internal/geometry"
)

const (
	KeySize   = 32 // AES-256
	SaltSize  = 16
	NonceSize = 12
	TagSize   = 16

	// DefaultIterations is the PBKDF2 work factor
	DefaultIterations = 100000
)

var (
	ErrEmptyPassphrase  = errors.New("export passphrase is empty")
	ErrInvalidArtifact  = errors.New("invalid export artifact")
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Payload is the plaintext of an export
type Payload struct {
	Path            [][2]float64 `json:"path"`
	CalculationTime float64      `json:"calculation_time"`
}

// Points returns the payload path as points
func (p *Payload) Points() []geometry.Point {
	out := make([]geometry.Point, len(p.Path))
	for i, c := range p.Path {
		out[i] = geometry.Pt(c[0], c[1])
	}
	return out
}

// Exporter seals payloads with AES-256-GCM. Every artifact gets a fresh salt,
// so the key is derived per call.
type Exporter struct {
	passphrase []byte
	iterations int
}

// NewExporter returns an exporter for passphrase. iterations <= 0 selects
// DefaultIterations.
func NewExporter(passphrase string, iterations int) (*Exporter, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}
	return &Exporter{passphrase: []byte(passphrase), iterations: iterations}, nil
}

func (e *Exporter) gcm(salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key(e.passphrase, salt, e.iterations, KeySize, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return gcm, nil
}

// Export encrypts a route and its calculation time. The artifact is
// base64url text of salt, nonce and ciphertext concatenated.
func (e *Exporter) Export(path []geometry.Point, elapsed time.Duration) (string, error) {
	payload := Payload{
		Path:            make([][2]float64, len(path)),
		CalculationTime: elapsed.Seconds(),
	}
	for i, p := range path {
		payload.Path[i] = [2]float64{p.X, p.Y}
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode payload: %w", err)
	}

	buf := make([]byte, SaltSize+NonceSize)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	salt, nonce := buf[:SaltSize], buf[SaltSize:]

	gcm, err := e.gcm(salt)
	if err != nil {
		return "", err
	}
	sealed := gcm.Seal(buf, nonce, plaintext, nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// Decrypt opens an artifact produced by Export with the same passphrase
func (e *Exporter) Decrypt(artifact string) (*Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(artifact))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if len(raw) < SaltSize+NonceSize+TagSize {
		return nil, ErrInvalidArtifact
	}
	salt, nonce, ct := raw[:SaltSize], raw[SaltSize:SaltSize+NonceSize], raw[SaltSize+NonceSize:]

	gcm, err := e.gcm(salt)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	var payload Payload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	return &payload, nil
}

// Filename is the suggested download name for scenario n
func Filename(n int) string {
	return fmt.Sprintf("scenario%d.txt", n)
}
