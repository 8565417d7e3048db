package cmn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerIDs(t *testing.T) {
	assert.True(t, IsLedger(0x2c97))
	assert.False(t, IsLedger(0x1209))

	assert.Equal(t, "Ledger Nano X", LedgerProductName(0x0004))
	assert.Equal(t, "Ledger Nano S Plus", LedgerProductName(0x5011))
	assert.Equal(t, "Ledger", LedgerProductName(0x7777))
}
