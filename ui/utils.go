package ui

import (
	"fmt"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/ethereum/go-ethereum/common"
)

// AddressShortLink is a template link that copies the full address.
func AddressShortLink(a common.Address, tip string) string {
	return fmt.Sprintf("<l text:%s action:\"copy %s\" tip:\"%s\">", cmn.ShortAddress(a), a.Hex(), tip)
}
