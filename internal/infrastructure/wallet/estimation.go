package wallet

// Serialized sizes for the legacy pay-to-pubkey-hash path, the only script
// type this wallet spends and creates.
const (
	txOverheadSize  = 10  // version + locktime + in/out counts
	p2pkhInputSize  = 148 // outpoint + scriptsig (sig + compressed pubkey) + sequence
	p2pkhOutputSize = 34  // value + scriptpubkey
)

// estimateTxSize returns the serialized size in bytes of a transaction
// spending numInputs p2pkh outputs into numOutputs p2pkh outputs.
func estimateTxSize(numInputs, numOutputs int) int {
	return txOverheadSize + numInputs*p2pkhInputSize + numOutputs*p2pkhOutputSize
}

// estimateFee returns the fee in satoshis at the given rate in sat/byte.
func estimateFee(numInputs, numOutputs, feeRate int) int64 {
	return int64(estimateTxSize(numInputs, numOutputs)) * int64(feeRate)
}
