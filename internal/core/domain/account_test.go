package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccount(t *testing.T) {
	account, err := NewAccount("main", "encryptedblob", Mainnet)
	require.NoError(t, err)
	assert.Equal(t, "main", account.Name)
	assert.Equal(t, "encryptedblob", account.PrivateKeyHash)
	assert.Equal(t, Mainnet, account.Network)
}

func TestFailingNewAccount(t *testing.T) {
	tests := []struct {
		name           string
		privateKeyHash string
		network        string
		err            error
	}{
		{
			name:           "",
			privateKeyHash: "encryptedblob",
			network:        Mainnet,
			err:            ErrAccountInvalidName,
		},
		{
			name:           "main",
			privateKeyHash: "",
			network:        Mainnet,
			err:            ErrAccountInvalidPrivateKeyHash,
		},
		{
			name:           "main",
			privateKeyHash: "encryptedblob",
			network:        "",
			err:            ErrAccountInvalidNetwork,
		},
	}
	for _, tt := range tests {
		_, err := NewAccount(tt.name, tt.privateKeyHash, tt.network)
		assert.Equal(t, tt.err, err)
	}
}
