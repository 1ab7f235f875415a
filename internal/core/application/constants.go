package application

import "github.com/eureka-network/eurekalite-daemon/internal/core/domain"

// TransactionSpeed is the coarse fee selector exposed to the UI.
type TransactionSpeed string

const (
	// SpeedSlow ...
	SpeedSlow TransactionSpeed = "slow"
	// SpeedNormal ...
	SpeedNormal TransactionSpeed = "normal"
	// SpeedFast ...
	SpeedFast TransactionSpeed = "fast"
)

// AccountChangeReason tags an inpage account broadcast so a page context can
// distinguish why it was notified.
type AccountChangeReason string

const (
	// ReasonLogin ...
	ReasonLogin AccountChangeReason = "login"
	// ReasonLogout ...
	ReasonLogout AccountChangeReason = "logout"
	// ReasonBalanceChange ...
	ReasonBalanceChange AccountChangeReason = "balanceChange"
	// ReasonDappConnection ...
	ReasonDappConnection AccountChangeReason = "dappConnection"
)

// feeRates maps each transaction speed to a fee rate in satoshi/byte.
// There is currently no congestion in the network, so all speeds share the
// same base rate; the table exists for future differentiation.
var feeRates = map[TransactionSpeed]int{
	SpeedFast:   500,
	SpeedNormal: 500,
	SpeedSlow:   500,
}

// maxSendEstimateAddress returns a valid address of the given network to
// estimate the maximum sendable amount against. The estimate only depends on
// the output type, not on the specific address.
func maxSendEstimateAddress(networkName string) string {
	if networkName == domain.Mainnet {
		return "QN8HYBmMxVyf7MQaDvBNtneBN8np5dZwoW"
	}
	return "qLJsx41F8Uv1KFF3RbrZfdLnyWQzvPdeF9"
}
