package usb

import (
	"errors"
	"testing"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	bus.Init()
	store := cmn.NewStore(cmn.State{})
	p := NewLedgerProbe(store, 0)

	p.list = func() ([]Device, error) {
		return []Device{{Vendor: 0x046d, Product: 0xc52b}, {Vendor: cmn.VID_Ledger, Product: 0x4011}}, nil
	}
	assert.True(t, p.Check())
	assert.True(t, store.Snapshot().LedgerConnected)

	p.list = func() ([]Device, error) { return []Device{{Vendor: 0x046d}}, nil }
	assert.False(t, p.Check())
	assert.False(t, store.Snapshot().LedgerConnected)

	p.list = func() ([]Device, error) { return nil, errors.New("libusb: busy") }
	assert.False(t, p.Check())
}
