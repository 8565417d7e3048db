package bus

import "github.com/ethereum/go-ethereum/common"

// ---------- ui ----------

// string // notify, notify-error

type B_Popup struct { // popup
	Title    string
	Template string
	OnOk     func()
	OnCancel func()
}

// ---------- queue ----------
type B_QueueAdded struct { // added
	ID     int64
	Type   string
	Origin string
	Count  int
}

type B_QueueRemoved struct { // removed
	ID       int64
	Approved bool
	Count    int
}

// ---------- state ----------

// nil // changed

// ---------- sound ----------

// string // play, file name or "" for the configured sound

// ---------- signer ----------
type B_SignerSign struct { // sign
	Type string // personal_sign, eth_signTypedData, eth_sign
	From common.Address
	Data []byte // raw message, or typed data JSON
}

// []byte // sign_response, 65 byte signature with V in 27/28
