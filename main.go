package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/eth"
	"github.com/AlexNa-Holdings/sigconfirm/locale"
	"github.com/AlexNa-Holdings/sigconfirm/queue"
	"github.com/AlexNa-Holdings/sigconfirm/signer"
	"github.com/AlexNa-Holdings/sigconfirm/sound"
	"github.com/AlexNa-Holdings/sigconfirm/ui"
	"github.com/AlexNa-Holdings/sigconfirm/usb"
	"github.com/AlexNa-Holdings/sigconfirm/ws"
	"github.com/rs/zerolog/log"
)

func main() {
	cmn.InitConfig()
	locale.SetLanguage(cmn.Config.Language)
	bus.Init()

	store := cmn.NewStore(cmn.StateFromConfig(cmn.Config))
	q := queue.New()

	var s signer.Signer
	if clef, err := signer.NewClef(cmn.Config.ClefEndpoint); err != nil {
		log.Error().Err(err).Msg("signing is unavailable")
	} else {
		s = clef
	}
	signer.Init(s)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cmn.Config.RPCUrl != "" {
		if client, err := eth.Dial(cmn.Config.RPCUrl); err == nil {
			defer client.Close()
			go eth.NewBalancePoller(client, store, cmn.Config.BalancePollPeriod).Run(ctx)
		}
	}

	if hasLedgerAccount(store.Snapshot()) {
		go usb.NewLedgerProbe(store, cmn.Config.LedgerPollPeriod).Run(ctx)
	}

	if cmn.Config.SoundOn {
		sound.Init(cmn.Config.SoundFile)
	}

	var srv *ws.Server
	if cmn.Config.WSEnabled {
		srv = ws.NewServer(q, store, cmn.Config.WSPort)
		srv.Start()
	}

	if err := ui.Init(q, store); err != nil {
		fmt.Fprintf(os.Stderr, "cannot open terminal: %v\n", err)
		os.Exit(1)
	}

	ui.Gui.MainLoop()
	ui.Gui.Screen.Fini()

	shutdown(srv, q)

	if err := cmn.SaveConfig(); err != nil {
		log.Error().Err(err).Msg("error saving config")
	}

	log.Trace().Msg("Finished")
}

func hasLedgerAccount(st *cmn.State) bool {
	for _, a := range st.Accounts {
		if a.Signer == cmn.SIGNER_LEDGER {
			return true
		}
	}
	return false
}

// shutdown answers the dApps still waiting before the server goes away.
func shutdown(srv *ws.Server, q *queue.Queue) {
	if err := q.RejectAll(); err != nil {
		log.Error().Err(err).Msg("error rejecting pending requests")
	}

	if srv == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("error stopping ws server")
	}
}
