package cmn

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

type MessageType string

const (
	MT_PersonalSign  MessageType = "personal_sign"
	MT_TypedDataSign MessageType = "eth_signTypedData"
	MT_LegacySign    MessageType = "eth_sign"
)

const SIGNER_LEDGER = "ledger"

type MsgParams struct {
	Data    string         `json:"data"` // hex string, or JSON for typed data
	From    common.Address `json:"from"`
	Origin  string         `json:"origin"`
	Version string         `json:"version,omitempty"` // typed data version: V1, V3, V4
}

// SignatureRequest is owned by the request queue; screens only read it.
type SignatureRequest struct {
	ID        int64       `json:"id"`
	Type      MessageType `json:"type"`
	MsgParams MsgParams   `json:"msgParams"`
	Time      time.Time   `json:"time"`
}

type Account struct {
	Address common.Address `json:"address"`
	Balance string         `json:"balance"` // hex wei, may be empty
	Name    string         `json:"name"`
	Signer  string         `json:"signer"`
}

type SubjectMetadata struct {
	Origin  string `json:"origin"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl"`
}

type Row struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

type Provider struct {
	Nickname string `json:"nickname"`
	Ticker   string `json:"ticker"`
	ChainID  int    `json:"chainId"`
}

// UIEvent is handed to sign/cancel callbacks by the control that fired them.
type UIEvent struct {
	Control string
	At      time.Time
}

func NewUIEvent(control string) UIEvent {
	return UIEvent{Control: control, At: time.Now()}
}
