package usb

import (
	"context"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/google/gousb"
	"github.com/google/gousb/usbid"
	"github.com/rs/zerolog/log"
)

type Device struct {
	Vendor  uint16
	Product uint16
}

// LedgerProbe watches the usb bus for a Ledger device and mirrors its
// presence into the store.
type LedgerProbe struct {
	store     *cmn.Store
	period    time.Duration
	list      func() ([]Device, error)
	connected bool
}

func NewLedgerProbe(store *cmn.Store, period time.Duration) *LedgerProbe {
	if period <= 0 {
		period = 3 * time.Second
	}
	return &LedgerProbe{store: store, period: period}
}

// Check enumerates once. An enumeration error counts as not connected.
func (p *LedgerProbe) Check() bool {
	devices, err := p.list()
	if err != nil {
		log.Error().Err(err).Msg("usb: enumeration failed")
	}

	var found *Device
	for i := range devices {
		if cmn.IsLedger(devices[i].Vendor) {
			found = &devices[i]
			break
		}
	}

	connected := found != nil
	if connected != p.connected {
		if connected {
			log.Info().Msgf("usb: %s connected", cmn.LedgerProductName(found.Product))
		} else {
			log.Info().Msg("usb: ledger disconnected")
		}
		p.connected = connected
	}

	p.store.SetLedgerConnected(connected)
	return connected
}

func (p *LedgerProbe) Run(ctx context.Context) {
	if p.list == nil {
		uctx := gousb.NewContext()
		defer uctx.Close()
		p.list = func() ([]Device, error) { return listDevices(uctx) }
	}

	ticker := time.NewTicker(p.period)
	defer ticker.Stop()

	p.Check()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Check()
		}
	}
}

func listDevices(uctx *gousb.Context) ([]Device, error) {
	devices := []Device{}
	_, err := uctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		if len(desc.Path) == 0 {
			return false // skip root hubs
		}
		log.Trace().Msgf("usb: %s at %v", usbid.Describe(desc), desc.Path)
		devices = append(devices, Device{Vendor: uint16(desc.Vendor), Product: uint16(desc.Product)})
		return false
	})
	return devices, err
}
