package ui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/AlexNa-Holdings/sigconfirm/analytics"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
	"github.com/rs/zerolog/log"
)

const (
	B_CANCEL = "cancel"
	B_SIGN   = "sign"
)

const INSPECTOR_EXPAND_LEVEL = 1

// Env is what the pane needs from the host application.
type Env struct {
	T               func(key string, args ...any) string
	Track           func(e analytics.Event)
	OpenURL         func(url string)
	CopyToClipboard func(text string) error
	Notify          func(text string)
	NotifyError     func(err error)
	Refresh         func()
	HelpURL         string
}

type SignRequestPane struct {
	mu    sync.Mutex
	props *sigreq.Props
	env   Env

	// fromAccount is copied from the props the pane was created with and is
	// never refreshed: balance changes after mount do not reach the header.
	fromAccount cmn.Account

	pending    map[string]bool
	inspectors []*Inspector

	spawn func(func())
}

func NewSignRequestPane(props *sigreq.Props, env Env) *SignRequestPane {
	p := &SignRequestPane{
		props:       props,
		env:         env,
		fromAccount: props.FromAccount,
		pending:     make(map[string]bool),
		spawn:       defaultSpawn,
	}

	if td := props.TypedData; td != nil {
		if td.Domain != nil {
			p.inspectors = append(p.inspectors, NewInspector("domain", td.Domain, INSPECTOR_EXPAND_LEVEL))
		}
		if td.Message != nil {
			p.inspectors = append(p.inspectors, NewInspector("message", td.Message, INSPECTOR_EXPAND_LEVEL))
		}
	}

	return p
}

// SetProps replaces everything but the account snapshot.
func (p *SignRequestPane) SetProps(props *sigreq.Props) {
	p.mu.Lock()
	p.props = props
	p.mu.Unlock()

	p.refresh()
}

func (p *SignRequestPane) Props() *sigreq.Props {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.props
}

func (p *SignRequestPane) FromAccount() cmn.Account {
	return p.fromAccount
}

func (p *SignRequestPane) IsPending(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pending[id]
}

func (p *SignRequestPane) refresh() {
	if p.env.Refresh != nil {
		p.env.Refresh()
	}
}

func (p *SignRequestPane) OnClick(value string) {
	switch value {
	case "button " + B_CANCEL:
		p.Cancel(cmn.NewUIEvent(B_CANCEL))
		return
	case "button " + B_SIGN:
		p.Sign(cmn.NewUIEvent(B_SIGN))
		return
	case "reject-all":
		p.RejectAll()
		return
	case "learn-more":
		p.env.OpenURL(p.env.HelpURL)
		return
	}

	command, param, found := strings.Cut(value, " ")
	if !found {
		return
	}

	switch command {
	case "copy":
		if err := p.env.CopyToClipboard(param); err != nil {
			log.Error().Err(err).Msg("SignRequestPane: copy to clipboard")
			p.env.NotifyError(err)
			return
		}
		p.env.Notify(p.env.T("copiedAddress", param))
	case "toggle":
		p.toggle(param)
	}
}

func (p *SignRequestPane) toggle(path string) {
	root, _, _ := strings.Cut(path, ".")

	p.mu.Lock()
	for _, in := range p.inspectors {
		if in.Name == root {
			in.Toggle(path)
		}
	}
	p.mu.Unlock()

	p.refresh()
}

func (p *SignRequestPane) Cancel(ev cmn.UIEvent) {
	p.decide(B_CANCEL, "Cancel", ev)
}

func (p *SignRequestPane) Sign(ev cmn.UIEvent) {
	p.decide(B_SIGN, "Confirm", ev)
}

// decide runs the cancel or sign callback once. Only when it succeeds is the
// event tracked, the confirmation cleared and the overview page opened.
func (p *SignRequestPane) decide(id, event string, ev cmn.UIEvent) {
	p.mu.Lock()
	props := p.props
	if p.pending[id] || (id == B_SIGN && props.HardwareWalletRequiresConnection) {
		p.mu.Unlock()
		return
	}
	p.pending[id] = true
	p.mu.Unlock()

	p.refresh()

	action := props.Cancel
	if id == B_SIGN {
		action = props.Sign
	}

	p.spawn(func() {
		if err := action(ev); err != nil {
			log.Error().Err(err).Msgf("SignRequestPane: %s request %d", id, props.TxData.ID)

			p.mu.Lock()
			delete(p.pending, id)
			p.mu.Unlock()

			p.env.NotifyError(err)
			p.refresh()
			return
		}

		p.env.Track(analytics.Event{
			Category: analytics.CATEGORY_TRANSACTIONS,
			Event:    event,
			Properties: map[string]any{
				"action":       "Sign Request",
				"legacy_event": true,
				"type":         string(props.TxData.Type),
			},
		})
		props.ClearConfirmTransaction()
		props.History.Push(props.MostRecentOverviewPage)
	})
}

func (p *SignRequestPane) RejectAll() {
	props := p.Props()
	if props.MessagesCount <= 1 {
		return
	}

	props.ShowRejectTransactionsConfirmationModal(sigreq.RejectModalParams{
		UnapprovedTxCount: props.MessagesCount,
		OnSubmit: func() {
			p.spawn(func() {
				if err := props.CancelAll(); err != nil {
					log.Error().Err(err).Msg("SignRequestPane: cancel all")
					p.env.NotifyError(err)
					return
				}
				props.ClearConfirmTransaction()
				props.History.Push(props.MostRecentOverviewPage)
			})
		},
	})
}

func (p *SignRequestPane) Template() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder

	p.writeHeader(&sb)
	p.writeBody(&sb)

	if p.props.IsLedgerWallet {
		sb.WriteString(LedgerInstructionTemplate(p.env.T, true, p.props.HardwareWalletRequiresConnection))
		sb.WriteString("\n")
	}

	p.writeFooter(&sb)

	return sb.String()
}

func (p *SignRequestPane) writeHeader(sb *strings.Builder) {
	t := p.env.T
	a := p.fromAccount

	balance, err := cmn.FormatBalance(a.Balance, p.props.ConversionRate)
	if err != nil {
		log.Warn().Err(err).Msgf("SignRequestPane: balance of %s", a.Address.Hex())
		balance = "0"
	}

	name := a.Name
	if name == "" {
		name = cmn.ShortAddress(a.Address)
	}

	if p.props.CurrentNetwork != "" {
		fmt.Fprintf(sb, "<c><dim>%s</dim></c>\n", Escape(p.props.CurrentNetwork))
	}
	fmt.Fprintf(sb, " %s: <b>%s</b> %s\n", t("account"), Escape(name), AddressShortLink(a.Address, t("copyAddress")))
	fmt.Fprintf(sb, " %s: <b>%s</b> %s\n", t("balance"), balance, Escape(p.props.NativeCurrency))
	sb.WriteString("<line>\n")
}

func (p *SignRequestPane) writeBody(sb *strings.Builder) {
	t := p.env.T
	req := p.props.TxData

	sb.WriteString("<c>" + p.siteOrigin() + "\n")
	sb.WriteString("<b>" + t("sigRequest") + "</b></c>\n")
	sb.WriteString("<w>")

	var rows []cmn.Row

	switch p.props.Kind.(type) {
	case sigreq.PersonalSign:
		sb.WriteString(" " + t("youSign") + ":\n")
		rows = []cmn.Row{{Name: t("message"), Value: MsgHexToText(req.MsgParams.Data)}}
	case sigreq.TypedDataSign:
		sb.WriteString(" " + t("youSign") + ":\n")
		if p.props.TypedData != nil {
			rows = p.props.TypedData.Rows
		}
	case sigreq.LegacySign:
		fmt.Fprintf(sb, "<color fg:g.WarnFgColor> %s</color> <l text:\"%s\" action:learn-more tip:\"open in browser\">\n",
			Escape(t("signNotice")), t("learnMoreUpperCase"))
		rows = []cmn.Row{{Name: t("message"), Value: req.MsgParams.Data}}
	}

	for _, r := range rows {
		value := r.Value
		if b, ok := value.(bool); ok {
			value = fmt.Sprint(b)
		}

		fmt.Fprintf(sb, " <b>%s:</b>\n", Escape(r.Name))
		for _, l := range strings.Split(scalarText(value), "\n") {
			sb.WriteString("   " + Escape(l) + "\n")
		}
	}

	for _, in := range p.inspectors {
		fmt.Fprintf(sb, " <b>%s</b>\n", t(in.Name))
		sb.WriteString(in.Template())
	}

	sb.WriteString("</w>\n")
}

// siteOrigin is the requesting site chip: the hostname initial, then the
// origin itself.
func (p *SignRequestPane) siteOrigin() string {
	origin := p.props.TxData.MsgParams.Origin

	md, ok := p.props.SubjectMetadata[origin]
	if origin == "" || !ok {
		return "<color fg:g.EmFgColor>" + Escape(origin) + "</color>"
	}

	iconName := cmn.GetHostName(md.Origin)
	if iconName == "" {
		iconName = md.Origin
	}

	initial := "?"
	if r := []rune(iconName); len(r) > 0 {
		initial = strings.ToUpper(string(r[0]))
	}

	return "<r> " + Escape(initial) + " </r> <color fg:g.EmFgColor>" + Escape(origin) + "</color>"
}

func (p *SignRequestPane) writeFooter(sb *strings.Builder) {
	t := p.env.T

	cancelDisabled := p.pending[B_CANCEL]
	signDisabled := p.pending[B_SIGN] || p.props.HardwareWalletRequiresConnection

	if p.pending[B_SIGN] {
		sb.WriteString("<c><blink>" + t("waitingForSigner") + "</blink></c>\n")
	}

	fmt.Fprintf(sb, "<c><button text:\"%s\" id:%s bgcolor:g.ErrorFgColor tip:\"reject the request\" disabled:%t>  ",
		t("cancel"), B_CANCEL, cancelDisabled)
	fmt.Fprintf(sb, "<button text:\"%s\" id:%s bgcolor:g.HelpBgColor color:g.HelpFgColor tip:\"sign the message\" disabled:%t></c>\n",
		t("sign"), B_SIGN, signDisabled)

	if p.props.MessagesCount > 1 {
		fmt.Fprintf(sb, "<c><l text:\"%s\" action:reject-all tip:\"%s\"></c>\n",
			t("rejectTxsN", p.props.MessagesCount), t("rejectAll"))
	}
}
