package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/scrypt"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
)

const (
	saltSize  = 32
	nonceSize = 12
)

// encrypt seals a plaintext under the given passphrase with AES-256-GCM.
// Salt and nonce are derived from the inputs, so sealing the same key under
// the same passphrase always yields the same blob. Stored account records
// rely on that for the duplicate-import check; a plaintext is only ever
// sealed once per passphrase, so nonce reuse cannot occur across distinct
// messages.
func encrypt(plainText, passphrase string, params ports.ScryptParams) (string, error) {
	if len(plainText) <= 0 {
		return "", ErrNullPlainText
	}
	if len(passphrase) <= 0 {
		return "", ErrNullPassphrase
	}

	salt := deriveSalt(plainText)
	key, err := deriveKey([]byte(passphrase), salt, params)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce := deriveNonce(key, salt)
	ciphertext := gcm.Seal(nonce, nonce, []byte(plainText), nil)
	ciphertext = append(ciphertext, salt...)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt unseals a blob produced by encrypt. A wrong passphrase fails the
// GCM tag check and surfaces as ErrWrongPassphrase.
func decrypt(cypherText, passphrase string, params ports.ScryptParams) (string, error) {
	if len(cypherText) <= 0 {
		return "", ErrNullCypherText
	}
	if len(passphrase) <= 0 {
		return "", ErrNullPassphrase
	}

	data, err := base64.StdEncoding.DecodeString(cypherText)
	if err != nil {
		return "", ErrInvalidCypherText
	}
	if len(data) <= saltSize+nonceSize {
		return "", ErrInvalidCypherText
	}
	salt, data := data[len(data)-saltSize:], data[:len(data)-saltSize]

	key, err := deriveKey([]byte(passphrase), salt, params)
	if err != nil {
		return "", err
	}

	gcm, err := newGCM(key)
	if err != nil {
		return "", err
	}

	nonce, text := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, text, nil)
	if err != nil {
		return "", ErrWrongPassphrase
	}
	return string(plaintext), nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	blockCipher, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCMWithNonceSize(blockCipher, nonceSize)
}

func deriveKey(passphrase, salt []byte, params ports.ScryptParams) ([]byte, error) {
	return scrypt.Key(passphrase, salt, params.N, params.R, params.P, 32)
}

func deriveSalt(plainText string) []byte {
	sum := sha256.Sum256([]byte("eurekalite/salt" + plainText))
	return sum[:saltSize]
}

func deriveNonce(key, salt []byte) []byte {
	buf := make([]byte, 0, len(key)+len(salt))
	buf = append(buf, key...)
	buf = append(buf, salt...)
	sum := sha256.Sum256(buf)
	return sum[:nonceSize]
}
