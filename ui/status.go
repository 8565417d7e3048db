package ui

import (
	"fmt"
	"strings"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
)

type StatusPane struct {
	requests RequestSource
	store    StateSource
	env      Env
}

func (p *StatusPane) Template() string {
	st := p.store.Snapshot()

	var sb strings.Builder
	fmt.Fprintf(&sb, " <b>%s</b> v%s │ %s", cmn.AppName, cmn.VERSION, Escape(sigreq.StateQueries{}.NetworkName(st)))

	for _, a := range st.Accounts {
		if a.Signer == cmn.SIGNER_LEDGER {
			if st.LedgerConnected {
				sb.WriteString(" │ Ledger <color fg:g.HelpFgColor>●</color>")
			} else {
				sb.WriteString(" │ Ledger <color fg:g.ErrorFgColor>○</color>")
			}
			break
		}
	}

	if n := p.requests.Count(); n > 0 {
		fmt.Fprintf(&sb, " │ <b>%s</b>", p.env.T("pendingRequests", n))
	}

	return sb.String()
}
