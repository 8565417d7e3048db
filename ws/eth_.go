package ws

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

var ErrBadParams = errors.New("invalid params")

func chainID(st *cmn.State) string {
	return fmt.Sprintf("0x%x", st.Provider.ChainID)
}

func accounts(st *cmn.State) []string {
	list := make([]string, 0, len(st.Accounts))
	for _, a := range st.Accounts {
		list = append(list, a.Address.Hex())
	}
	return list
}

// parseSignRequest follows the parameter order each method uses on the wire:
// personal_sign and eth_signTypedData put the payload first, eth_sign and
// eth_signTypedData_v3/v4 put the address first.
func parseSignRequest(req RPCRequest) (cmn.SignatureRequest, error) {
	sr := cmn.SignatureRequest{}

	if len(req.Params) < 2 {
		return sr, fmt.Errorf("%w: expected 2 params, got %d", ErrBadParams, len(req.Params))
	}

	var dataRaw, fromRaw json.RawMessage

	switch req.Method {
	case "personal_sign":
		sr.Type = cmn.MT_PersonalSign
		dataRaw, fromRaw = req.Params[0], req.Params[1]
	case "eth_sign":
		sr.Type = cmn.MT_LegacySign
		fromRaw, dataRaw = req.Params[0], req.Params[1]
	case "eth_signTypedData":
		sr.Type = cmn.MT_TypedDataSign
		sr.MsgParams.Version = "V1"
		dataRaw, fromRaw = req.Params[0], req.Params[1]
	case "eth_signTypedData_v3":
		sr.Type = cmn.MT_TypedDataSign
		sr.MsgParams.Version = "V3"
		fromRaw, dataRaw = req.Params[0], req.Params[1]
	case "eth_signTypedData_v4":
		sr.Type = cmn.MT_TypedDataSign
		sr.MsgParams.Version = "V4"
		fromRaw, dataRaw = req.Params[0], req.Params[1]
	default:
		return sr, fmt.Errorf("%w: %s is not a signing method", ErrBadParams, req.Method)
	}

	var from string
	if err := json.Unmarshal(fromRaw, &from); err != nil || !common.IsHexAddress(from) {
		return sr, fmt.Errorf("%w: bad address %s", ErrBadParams, string(fromRaw))
	}
	sr.MsgParams.From = common.HexToAddress(from)

	data, err := payloadText(dataRaw, sr.Type == cmn.MT_TypedDataSign)
	if err != nil {
		return sr, err
	}
	sr.MsgParams.Data = data

	if sr.MsgParams.Version == "V3" || sr.MsgParams.Version == "V4" {
		var td apitypes.TypedData
		if err := json.Unmarshal([]byte(data), &td); err != nil {
			return sr, fmt.Errorf("%w: typed data: %v", ErrBadParams, err)
		}
	}

	return sr, nil
}

// typed data comes either as a JSON string or inline
func payloadText(raw json.RawMessage, typed bool) (string, error) {
	raw = bytes.TrimSpace(raw)

	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("%w: %v", ErrBadParams, err)
		}
		return s, nil
	}

	if typed && len(raw) > 0 && (raw[0] == '{' || raw[0] == '[') {
		return string(raw), nil
	}

	return "", fmt.Errorf("%w: unexpected payload %s", ErrBadParams, string(raw))
}
