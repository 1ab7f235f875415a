package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateTxSize(t *testing.T) {
	tests := []struct {
		numInputs    int
		numOutputs   int
		expectedSize int
	}{
		{numInputs: 1, numOutputs: 1, expectedSize: 192},
		{numInputs: 1, numOutputs: 2, expectedSize: 226},
		{numInputs: 2, numOutputs: 2, expectedSize: 374},
		{numInputs: 5, numOutputs: 1, expectedSize: 784},
	}
	for _, tt := range tests {
		size := estimateTxSize(tt.numInputs, tt.numOutputs)
		assert.Equal(t, tt.expectedSize, size)
	}
}

func TestEstimateFee(t *testing.T) {
	// 226 bytes at 500 sat/byte.
	assert.Equal(t, int64(113000), estimateFee(1, 2, 500))
	// Fee scales linearly with the rate.
	assert.Equal(t, estimateFee(1, 2, 500)*2, estimateFee(1, 2, 1000))
}
