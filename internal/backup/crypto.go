package backup

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	envelopeVersion = 1
	kdfName         = "argon2id"
	saltSize        = 16
	keySize         = 32
	argonTime       = 1
	argonMemoryKiB  = 64 * 1024
	argonThreads    = 4
)

type envelope struct {
	Encrypted bool   `json:"encrypted"`
	Version   int    `json:"version"`
	KDF       string `json:"kdf"`
	Salt      string `json:"salt"`
	Nonce     string `json:"nonce"`
	Data      string `json:"data"`
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemoryKiB, argonThreads, keySize)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func encrypt(payload []byte, passphrase string) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	gcm, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	wrapped := envelope{
		Encrypted: true,
		Version:   envelopeVersion,
		KDF:       kdfName,
		Salt:      base64.StdEncoding.EncodeToString(salt),
		Nonce:     base64.StdEncoding.EncodeToString(nonce),
		Data:      base64.StdEncoding.EncodeToString(gcm.Seal(nil, nonce, payload, nil)),
	}
	return json.MarshalIndent(wrapped, "", "  ")
}

func decrypt(data []byte, passphrase string) ([]byte, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if env.Version != envelopeVersion || env.KDF != kdfName {
		return nil, fmt.Errorf("%w: envelope %d/%s", ErrUnsupportedVersion, env.Version, env.KDF)
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: salt", ErrInvalidBackup)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: nonce", ErrInvalidBackup)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: data", ErrInvalidBackup)
	}
	gcm, err := newGCM(deriveKey(passphrase, salt))
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, fmt.Errorf("%w: nonce size", ErrInvalidBackup)
	}
	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrDecrypt
	}
	return plain, nil
}

// IsEncrypted reports whether data is an encrypted envelope.
func IsEncrypted(data []byte) bool {
	var probe struct {
		Encrypted bool `json:"encrypted"`
	}
	return json.Unmarshal(data, &probe) == nil && probe.Encrypted
}
