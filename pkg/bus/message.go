package bus

import "encoding/json"

// MessageType tags every message exchanged between the daemon, the popup UI
// and the injected page contexts. The enumeration is closed: a message with
// an unknown type is dropped by the dispatcher.
type MessageType string

const (
	// UI -> background.
	Login                  MessageType = "LOGIN"
	Logout                 MessageType = "LOGOUT"
	ImportMnemonic         MessageType = "IMPORT_MNEMONIC"
	ImportPrivateKey       MessageType = "IMPORT_PRIVATE_KEY"
	AccountLogin           MessageType = "ACCOUNT_LOGIN"
	SendTokens             MessageType = "SEND_TOKENS"
	HasAccounts            MessageType = "HAS_ACCOUNTS"
	GetAccounts            MessageType = "GET_ACCOUNTS"
	GetLoggedInAccount     MessageType = "GET_LOGGED_IN_ACCOUNT"
	GetLoggedInAccountName MessageType = "GET_LOGGED_IN_ACCOUNT_NAME"
	GetWalletInfo          MessageType = "GET_WALLET_INFO"
	GetEurekaCoinUSD       MessageType = "GET_EUREKACOIN_USD"
	ValidateWalletName     MessageType = "VALIDATE_WALLET_NAME"
	GetMaxEurekaCoinSend   MessageType = "GET_MAX_EUREKACOIN_SEND"
	ChangeNetwork          MessageType = "CHANGE_NETWORK"
	GetNetworks            MessageType = "GET_NETWORKS"
	GetNetworkIndex        MessageType = "GET_NETWORK_INDEX"
	GetNetworkExplorerURL  MessageType = "GET_NETWORK_EXPLORER_URL"
	StartTxPolling         MessageType = "START_TX_POLLING"
	StopTxPolling          MessageType = "STOP_TX_POLLING"
	GetMoreTxs             MessageType = "GET_MORE_TXS"

	// Background -> UI.
	LoginFailure               MessageType = "LOGIN_FAILURE"
	LoginSuccessNoAccounts     MessageType = "LOGIN_SUCCESS_NO_ACCOUNTS"
	LoginSuccessWithAccounts   MessageType = "LOGIN_SUCCESS_WITH_ACCOUNTS"
	AccountLoginSuccess        MessageType = "ACCOUNT_LOGIN_SUCCESS"
	ImportMnemonicPrKeyFailure MessageType = "IMPORT_MNEMONIC_PRKEY_FAILURE"
	SendTokensSuccess          MessageType = "SEND_TOKENS_SUCCESS"
	SendTokensFailure          MessageType = "SEND_TOKENS_FAILURE"
	GetWalletInfoReturn        MessageType = "GET_WALLET_INFO_RETURN"
	GetEurekaCoinUSDReturn     MessageType = "GET_EUREKACOIN_USD_RETURN"
	GetMaxEurekaCoinSendReturn MessageType = "GET_MAX_EUREKACOIN_SEND_RETURN"
	ChangeNetworkSuccess       MessageType = "CHANGE_NETWORK_SUCCESS"
	GetTxsReturn               MessageType = "GET_TXS_RETURN"
	UnexpectedError            MessageType = "UNEXPECTED_ERROR"

	// Background <-> page contexts, over long-lived ports.
	GetInpageAccountValues  MessageType = "GET_INPAGE_EUREKALITE_ACCOUNT_VALUES"
	SendInpageAccountValues MessageType = "SEND_INPAGE_EUREKALITE_ACCOUNT_VALUES"
	InstalledOrUpdated      MessageType = "EUREKALITE_INSTALLED_OR_UPDATED"
)

// Message is the unit exchanged over the bus. ID correlates a response with
// its request and is empty on broadcasts.
type Message struct {
	Type    MessageType     `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewMessage builds a message of the given type, marshalling the payload.
// A nil payload yields an empty body.
func NewMessage(mtype MessageType, payload interface{}) (Message, error) {
	msg := Message{Type: mtype}
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return Message{}, err
		}
		msg.Payload = buf
	}
	return msg, nil
}

// MustNewMessage is like NewMessage but panics on marshalling errors. It is
// meant for payload types owned by this module, which are known to marshal.
func MustNewMessage(mtype MessageType, payload interface{}) Message {
	msg, err := NewMessage(mtype, payload)
	if err != nil {
		panic(err)
	}
	return msg
}
