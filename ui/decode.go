package ui

import (
	"strings"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// MsgHexToText decodes a hex message for display. Anything that is not valid
// hex or valid UTF-8, and any 32-byte payload (most likely a hash), is shown
// as the original string.
func MsgHexToText(hex string) string {
	stripped := strings.TrimPrefix(strings.TrimPrefix(hex, "0x"), "0X")

	b, err := hexutil.Decode("0x" + stripped)
	if err != nil {
		return hex
	}

	if len(b) == 32 || !utf8.Valid(b) {
		return hex
	}

	return string(b)
}
