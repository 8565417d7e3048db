package ui

import (
	"sync"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

const POPUP_WIDTH = 60

type GuiType struct {
	Screen   tcell.Screen
	Router   *Router
	Confirm  *ConfirmPage
	Overview *OverviewPage
	Status   *StatusPane

	requests RequestSource
	env      Env

	popup       *Popup
	popupCanvas *Canvas
	popupX      int
	popupY      int
	pageCanvas  *Canvas
	focus       string
	tip         string
	scroll      int
	lastButtons tcell.ButtonMask

	post     func(func())
	quit     chan struct{}
	quitOnce sync.Once
}

var Gui *GuiType

// Init opens the terminal and starts the bus loop.
func Init(requests RequestSource, store StateSource) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err = screen.Init(); err != nil {
		return err
	}
	screen.EnableMouse()

	SetTheme(cmn.Config.Theme)

	Gui = NewGui(screen, requests, store, DefaultEnv())
	go Loop()

	return nil
}

func NewGui(screen tcell.Screen, requests RequestSource, store StateSource, env Env) *GuiType {
	g := &GuiType{
		Screen:   screen,
		Router:   NewRouter(),
		requests: requests,
		quit:     make(chan struct{}),
	}
	g.post = func(f func()) {
		if err := screen.PostEvent(tcell.NewEventInterrupt(f)); err != nil {
			log.Error().Err(err).Msg("UpdateAsync: event queue is full")
		}
	}

	env.Refresh = g.Redraw
	g.env = env

	g.Confirm = NewConfirmPage(requests, store, g.Router, env, showRejectAllModal(env))
	g.Overview = &OverviewPage{requests: requests, env: env, open: g.openRequest}
	g.Status = &StatusPane{requests: requests, store: store, env: env}

	g.Router.Register(ROUTE_OVERVIEW, g.Overview)
	g.Router.Register(ROUTE_CONFIRM_SIGNATURE, g.Confirm)
	g.Router.OnChange = func(route string) {
		g.UpdateAsync(func() { g.onRoute(route) })
	}

	return g
}

func showRejectAllModal(env Env) func(sigreq.RejectModalParams) {
	return func(p sigreq.RejectModalParams) {
		bus.Send("ui", "popup", &bus.B_Popup{
			Title:    env.T("rejectAll"),
			Template: Escape(env.T("rejectTxsDescription", p.UnapprovedTxCount)),
			OnOk:     p.OnSubmit,
		})
	}
}

// UpdateAsync runs f on the screen goroutine.
func (g *GuiType) UpdateAsync(f func()) {
	g.post(f)
}

func (g *GuiType) Redraw() {
	g.UpdateAsync(func() {})
}

func (g *GuiType) Quit() {
	g.quitOnce.Do(func() { close(g.quit) })
}

func (g *GuiType) MainLoop() {
	g.draw()

	for {
		ev := g.Screen.PollEvent()
		if ev == nil {
			return
		}

		g.handleEvent(ev)

		select {
		case <-g.quit:
			return
		default:
		}

		g.draw()
	}
}

func Loop() {
	ch := bus.Subscribe("ui", "queue", "state")
	defer bus.Unsubscribe(ch)

	for msg := range ch {
		m := msg
		Gui.UpdateAsync(func() { Gui.process(m) })
	}
}

func (g *GuiType) process(msg *bus.Message) {
	switch msg.Topic {
	case "ui":
		switch msg.Type {
		case "notify":
			if text, ok := msg.Data.(string); ok {
				Notification.Show(text)
			}
		case "notify-error":
			if text, ok := msg.Data.(string); ok {
				Notification.ShowError(text)
			}
		case "popup":
			if p, ok := msg.Data.(*bus.B_Popup); ok {
				g.ShowPopup(popupFrom(g.env, p))
			} else {
				log.Error().Msgf("ui.process: invalid popup data: %v", msg.Data)
			}
		}
	case "queue":
		switch msg.Type {
		case "added":
			if route, _ := g.Router.Current(); route == ROUTE_OVERVIEW {
				g.openNext()
			} else {
				g.Confirm.Refresh() // pending count
			}
		case "removed":
			if r, ok := msg.Data.(*bus.B_QueueRemoved); ok && r.ID == g.Confirm.CurrentID() {
				// settled outside this screen
				g.Confirm.Clear()
				g.Router.Push(ROUTE_OVERVIEW)
			} else {
				g.Confirm.Refresh()
			}
		}
	case "state":
		if msg.Type == "changed" {
			g.Confirm.Refresh()
		}
	}
}

func popupFrom(env Env, b *bus.B_Popup) *Popup {
	decided := false
	p := DlgConfirm(b.Title, b.Template, env.T("ok"), env.T("cancel"), func() {
		decided = true
		if b.OnOk != nil {
			b.OnOk()
		}
	})
	p.OnClose = func() {
		if !decided && b.OnCancel != nil {
			b.OnCancel()
		}
	}
	return p
}

func (g *GuiType) onRoute(route string) {
	g.focus = ""
	g.scroll = 0

	if route == ROUTE_OVERVIEW {
		g.openNext()
	}
}

func (g *GuiType) openNext() {
	pending := g.requests.Pending()
	for _, req := range pending {
		if err := g.Confirm.Open(req); err == nil {
			g.Router.Push(ROUTE_CONFIRM_SIGNATURE)
			return
		}
	}
}

func (g *GuiType) openRequest(id int64) {
	for _, req := range g.requests.Pending() {
		if req.ID == id {
			if err := g.Confirm.Open(req); err == nil {
				g.Router.Push(ROUTE_CONFIRM_SIGNATURE)
			}
			return
		}
	}
}

func (g *GuiType) ShowPopup(p *Popup) {
	if g.popup != nil {
		g.HidePopup()
	}
	g.popup = p
	g.popupCanvas = nil
	g.focus = ""
}

func (g *GuiType) HidePopup() {
	p := g.popup
	g.popup = nil
	g.popupCanvas = nil
	g.focus = ""

	if p != nil && p.OnClose != nil {
		p.OnClose()
	}
}

func (g *GuiType) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventInterrupt:
		if f, ok := ev.Data().(func()); ok {
			f()
		}
	case *tcell.EventResize:
		g.Screen.Sync()
	case *tcell.EventKey:
		g.handleKey(ev)
	case *tcell.EventMouse:
		g.handleMouse(ev)
	}
}

func (g *GuiType) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		g.Quit()
	case tcell.KeyTab:
		g.moveFocus(1)
	case tcell.KeyBacktab:
		g.moveFocus(-1)
	case tcell.KeyEnter:
		if hs := g.focused(); hs != nil {
			g.click(hs.Value)
		}
	case tcell.KeyEsc:
		if g.popup != nil {
			g.HidePopup()
		}
	case tcell.KeyUp:
		g.scroll--
	case tcell.KeyDown:
		g.scroll++
	case tcell.KeyPgUp:
		g.scroll -= 10
	case tcell.KeyPgDn:
		g.scroll += 10
	}
}

func (g *GuiType) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && g.lastButtons&tcell.Button1 == 0
	g.lastButtons = buttons

	if buttons&tcell.WheelUp != 0 {
		g.scroll--
	}
	if buttons&tcell.WheelDown != 0 {
		g.scroll++
	}

	hs := g.hotspotAt(x, y)

	g.tip = ""
	if hs != nil {
		g.tip = hs.Tip
	}

	if pressed && hs != nil && !hs.Disabled {
		g.focus = hs.Value
		g.click(hs.Value)
	}
}

func (g *GuiType) click(value string) {
	if g.popup != nil {
		if g.popup.OnClickHotspot != nil {
			g.popup.OnClickHotspot(value)
		}
		return
	}

	if _, page := g.Router.Current(); page != nil {
		page.OnClick(value)
	}
}

func (g *GuiType) activeCanvas() *Canvas {
	if g.popup != nil {
		return g.popupCanvas
	}
	return g.pageCanvas
}

func (g *GuiType) hotspotAt(x, y int) *Hotspot {
	if g.popup != nil {
		if g.popupCanvas == nil {
			return nil
		}
		return g.popupCanvas.HotspotAt(x-g.popupX, y-g.popupY)
	}

	if g.pageCanvas == nil {
		return nil
	}
	return g.pageCanvas.HotspotAt(x, y-1+g.scroll)
}

func (g *GuiType) focused() *Hotspot {
	c := g.activeCanvas()
	if c == nil || g.focus == "" {
		return nil
	}
	hs := c.HotspotByValue(g.focus)
	if hs == nil || hs.Disabled {
		return nil
	}
	return hs
}

func (g *GuiType) moveFocus(d int) {
	c := g.activeCanvas()
	if c == nil {
		return
	}

	list := c.Focusable()
	if len(list) == 0 {
		g.focus = ""
		return
	}

	i := -1
	for j, hs := range list {
		if hs.Value == g.focus {
			i = j
			break
		}
	}

	switch {
	case i == -1 && d > 0:
		i = 0
	case i == -1:
		i = len(list) - 1
	default:
		i = (i + d + len(list)) % len(list)
	}

	g.focus = list[i].Value
	g.tip = list[i].Tip
}
