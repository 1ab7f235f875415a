package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eureka-network/eurekalite-daemon/internal/core/ports"
)

var testScryptParams = ports.ScryptParams{N: 256, R: 8, P: 1}

func TestEncryptDecrypt(t *testing.T) {
	plaintext := "cNJFgo1driFnPcBdBX8BrJrpxchBWXwXCvNH5SoSkdcF6JXXwHMm"
	passphrase := "supersecurekey"

	cyphertext, err := encrypt(plaintext, passphrase, testScryptParams)
	require.NoError(t, err)

	revealedtext, err := decrypt(cyphertext, passphrase, testScryptParams)
	require.NoError(t, err)
	assert.Equal(t, plaintext, revealedtext)
}

func TestEncryptIsDeterministic(t *testing.T) {
	plaintext := "cNJFgo1driFnPcBdBX8BrJrpxchBWXwXCvNH5SoSkdcF6JXXwHMm"
	passphrase := "supersecurekey"

	first, err := encrypt(plaintext, passphrase, testScryptParams)
	require.NoError(t, err)
	second, err := encrypt(plaintext, passphrase, testScryptParams)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// A different passphrase must not produce the same blob.
	other, err := encrypt(plaintext, "otherkey", testScryptParams)
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestDecryptWrongPassphrase(t *testing.T) {
	cyphertext, err := encrypt(
		"super secret message", "supersecurekey", testScryptParams,
	)
	require.NoError(t, err)

	_, err = decrypt(cyphertext, "wrongkey", testScryptParams)
	assert.Equal(t, ErrWrongPassphrase, err)
}

func TestFailingEncrypt(t *testing.T) {
	tests := []struct {
		plainText  string
		passphrase string
		err        error
	}{
		{
			plainText:  "",
			passphrase: "supersecurekey",
			err:        ErrNullPlainText,
		},
		{
			plainText:  "super secret message",
			passphrase: "",
			err:        ErrNullPassphrase,
		},
	}
	for _, tt := range tests {
		_, err := encrypt(tt.plainText, tt.passphrase, testScryptParams)
		assert.Equal(t, tt.err, err)
	}
}

func TestFailingDecrypt(t *testing.T) {
	tests := []struct {
		cypherText string
		passphrase string
		err        error
	}{
		{
			cypherText: "",
			passphrase: "supersecurekey",
			err:        ErrNullCypherText,
		},
		{
			cypherText: "not base64!!",
			passphrase: "supersecurekey",
			err:        ErrInvalidCypherText,
		},
		{
			// Valid base64, too short to hold nonce and salt.
			cypherText: "c3VwZXJzZWNyZXRtZXNzYWdl",
			passphrase: "supersecurekey",
			err:        ErrInvalidCypherText,
		},
		{
			cypherText: "c3VwZXJzZWNyZXRtZXNzYWdl",
			passphrase: "",
			err:        ErrNullPassphrase,
		},
	}
	for _, tt := range tests {
		_, err := decrypt(tt.cypherText, tt.passphrase, testScryptParams)
		assert.Equal(t, tt.err, err)
	}
}
