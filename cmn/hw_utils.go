package cmn

const VID_Ledger = 0x2c97

const (
	LedgerBlue   = 0x0000
	LedgerNanoS  = 0x0001
	LedgerNanoX  = 0x0004
	LedgerNanoSP = 0x0005
	LedgerStax   = 0x0006
)

var LEDGER_PRODUCTS = map[uint16]string{
	LedgerBlue:   "Ledger Blue",
	LedgerNanoS:  "Ledger Nano S",
	LedgerNanoX:  "Ledger Nano X",
	LedgerNanoSP: "Ledger Nano S Plus",
	LedgerStax:   "Ledger Stax",
}

func IsLedger(vid uint16) bool {
	return vid == VID_Ledger
}

func LedgerProductName(pid uint16) string {
	// newer firmware puts the model in the top nibble
	if n, ok := LEDGER_PRODUCTS[pid]; ok {
		return n
	}
	if n, ok := LEDGER_PRODUCTS[pid>>12]; ok {
		return n
	}
	return "Ledger"
}
