package ui

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQueue struct {
	mu       sync.Mutex
	reqs     []cmn.SignatureRequest
	rejected []int64
	rec      *recorder
}

func (q *fakeQueue) Pending() []cmn.SignatureRequest {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]cmn.SignatureRequest(nil), q.reqs...)
}

func (q *fakeQueue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.reqs)
}

func (q *fakeQueue) remove(id int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.reqs {
		if r.ID == id {
			q.reqs = append(q.reqs[:i], q.reqs[i+1:]...)
			return
		}
	}
}

func (q *fakeQueue) ScreenCallbacks(req cmn.SignatureRequest) sigreq.Callbacks {
	act := func(name string) sigreq.Action {
		return func(cmn.UIEvent) error {
			q.rec.add("%s %d", name, req.ID)
			q.remove(req.ID)
			return nil
		}
	}
	return sigreq.Callbacks{
		SignPersonalMessage:   act("sign"),
		CancelPersonalMessage: act("cancel"),
		SignTypedMessage:      act("sign"),
		CancelTypedMessage:    act("cancel"),
		SignMessage:           act("sign"),
		CancelMessage:         act("cancel"),
	}
}

func (q *fakeQueue) Reject(id int64) error {
	q.mu.Lock()
	q.rejected = append(q.rejected, id)
	q.mu.Unlock()
	q.remove(id)
	return nil
}

func (q *fakeQueue) RejectAll() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.reqs = nil
	return nil
}

type fakeStore struct {
	mu sync.Mutex
	st *cmn.State
}

func (s *fakeStore) Snapshot() *cmn.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.Clone()
}

func newTestGui(t *testing.T, reqs ...cmn.SignatureRequest) (*GuiType, *fakeQueue, *fakeStore, *fixture) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(100, 40)
	t.Cleanup(screen.Fini)

	spawn := defaultSpawn
	defaultSpawn = func(f func()) { f() }
	t.Cleanup(func() { defaultSpawn = spawn })

	f := newFixture()
	q := &fakeQueue{reqs: reqs, rec: f.rec}
	store := &fakeStore{st: testState()}

	g := NewGui(screen, q, store, f.env())
	g.post = func(fn func()) { fn() }
	Gui = g

	return g, q, store, f
}

func screenText(s tcell.SimulationScreen) string {
	cells, w, h := s.GetContents()
	var sb strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r := cells[y*w+x].Runes; len(r) > 0 {
				sb.WriteRune(r[0])
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func request(id int64, typ cmn.MessageType, data string) cmn.SignatureRequest {
	r := testRequest(typ, data)
	r.ID = id
	return r
}

func TestOverviewOpensNextRequest(t *testing.T) {
	g, _, _, _ := newTestGui(t, request(5, cmn.MT_PersonalSign, "0x6869"))

	g.onRoute(ROUTE_OVERVIEW)

	route, _ := g.Router.Current()
	assert.Equal(t, ROUTE_CONFIRM_SIGNATURE, route)
	assert.Equal(t, int64(5), g.Confirm.CurrentID())

	g.draw()
	text := screenText(g.Screen.(tcell.SimulationScreen))
	assert.Contains(t, text, "Signature Request")
	assert.Contains(t, text, "hi")
	assert.Contains(t, text, "Pending requests: 1")
}

func TestOverviewWithoutRequests(t *testing.T) {
	g, _, _, _ := newTestGui(t)

	g.onRoute(ROUTE_OVERVIEW)
	g.draw()

	route, _ := g.Router.Current()
	assert.Equal(t, ROUTE_OVERVIEW, route)
	assert.Contains(t, screenText(g.Screen.(tcell.SimulationScreen)), "Nothing to confirm")
}

func TestUnresolvableRequestIsRejected(t *testing.T) {
	stranger := request(7, cmn.MT_PersonalSign, "0x00")
	stranger.MsgParams.From = common.HexToAddress("0x3333333333333333333333333333333333333333")

	g, q, _, f := newTestGui(t, stranger, request(8, cmn.MT_PersonalSign, "0x00"))

	g.onRoute(ROUTE_OVERVIEW)

	assert.Equal(t, []int64{7}, q.rejected)
	assert.Equal(t, int64(8), g.Confirm.CurrentID())
	require.NotEmpty(t, f.rec.list())
	assert.True(t, strings.HasPrefix(f.rec.list()[0], "error Request could not be shown: account not found"))
}

func TestMouseSignReturnsToOverview(t *testing.T) {
	g, q, _, f := newTestGui(t, request(1, cmn.MT_PersonalSign, "0x6869"))
	g.onRoute(ROUTE_OVERVIEW)
	g.draw()

	hs := g.pageCanvas.HotspotByValue("button sign")
	require.NotNil(t, hs)

	g.handleEvent(tcell.NewEventMouse(hs.X+1, hs.Y+1, tcell.Button1, 0))
	g.handleEvent(tcell.NewEventMouse(hs.X+1, hs.Y+1, tcell.ButtonNone, 0))

	assert.Equal(t, []string{"sign 1", "track Confirm personal_sign true"}, f.rec.list())
	assert.Equal(t, 0, q.Count())

	route, _ := g.Router.Current()
	assert.Equal(t, ROUTE_OVERVIEW, route)
	assert.Equal(t, int64(0), g.Confirm.CurrentID())
}

func TestKeyboardCancelOpensNext(t *testing.T) {
	g, _, _, f := newTestGui(t,
		request(1, cmn.MT_PersonalSign, "0x00"),
		request(2, cmn.MT_LegacySign, "0x00"),
	)
	g.onRoute(ROUTE_OVERVIEW)
	g.draw()

	g.handleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)) // copy address
	g.handleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone)) // cancel
	assert.Equal(t, "button cancel", g.focus)

	g.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.Equal(t, []string{"cancel 1", "track Cancel personal_sign true"}, f.rec.list())
	assert.Equal(t, int64(2), g.Confirm.CurrentID())

	route, _ := g.Router.Current()
	assert.Equal(t, ROUTE_CONFIRM_SIGNATURE, route)
}

func TestPopupFromBus(t *testing.T) {
	g, _, _, _ := newTestGui(t)

	ok, cancelled := false, false
	g.process(&bus.Message{Topic: "ui", Type: "popup", Data: &bus.B_Popup{
		Title:    "Reject all",
		Template: "sure?",
		OnOk:     func() { ok = true },
		OnCancel: func() { cancelled = true },
	}})
	require.NotNil(t, g.popup)

	g.draw()
	assert.Contains(t, screenText(g.Screen.(tcell.SimulationScreen)), "Reject all")

	g.handleEvent(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	g.handleEvent(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	assert.True(t, ok)
	assert.False(t, cancelled)
	assert.Nil(t, g.popup)
}

func TestPopupEscCancels(t *testing.T) {
	g, _, _, _ := newTestGui(t)

	ok, cancelled := false, false
	g.process(&bus.Message{Topic: "ui", Type: "popup", Data: &bus.B_Popup{
		Template: "sure?",
		OnOk:     func() { ok = true },
		OnCancel: func() { cancelled = true },
	}})

	g.handleEvent(tcell.NewEventKey(tcell.KeyEsc, 0, tcell.ModNone))

	assert.False(t, ok)
	assert.True(t, cancelled)
	assert.Nil(t, g.popup)
}

func TestRejectAllModalGoesThroughBus(t *testing.T) {
	bus.Init()
	ch := bus.Subscribe("ui")
	defer bus.Unsubscribe(ch)

	f := newFixture()
	submitted := false
	showRejectAllModal(f.env())(sigreq.RejectModalParams{
		UnapprovedTxCount: 3,
		OnSubmit:          func() { submitted = true },
	})

	select {
	case msg := <-ch:
		assert.Equal(t, "popup", msg.Type)
		p, ok := msg.Data.(*bus.B_Popup)
		require.True(t, ok)
		assert.Equal(t, "Reject all", p.Title)
		assert.Equal(t, "You are about to batch reject 3 requests.", p.Template)
		p.OnOk()
		assert.True(t, submitted)
	case <-time.After(5 * time.Second):
		t.Fatal("no popup message")
	}
}

func TestStateChangeKeepsAccountSnapshot(t *testing.T) {
	g, _, store, _ := newTestGui(t, request(1, cmn.MT_PersonalSign, "0x00"))
	g.onRoute(ROUTE_OVERVIEW)

	store.mu.Lock()
	store.st.Accounts[0].Balance = "0xde0b6b3a7640000"
	store.mu.Unlock()

	g.process(&bus.Message{Topic: "state", Type: "changed"})

	pane := g.Confirm.Pane()
	require.NotNil(t, pane)
	assert.Equal(t, "0x2540be400", pane.FromAccount().Balance)
	assert.Equal(t, "0xde0b6b3a7640000", pane.Props().FromAccount.Balance)
}

func TestRemovedElsewhereReturnsToOverview(t *testing.T) {
	g, q, _, _ := newTestGui(t, request(1, cmn.MT_PersonalSign, "0x00"))
	g.onRoute(ROUTE_OVERVIEW)
	require.Equal(t, int64(1), g.Confirm.CurrentID())

	q.remove(1)
	g.process(&bus.Message{Topic: "queue", Type: "removed", Data: &bus.B_QueueRemoved{ID: 1}})

	route, _ := g.Router.Current()
	assert.Equal(t, ROUTE_OVERVIEW, route)
	assert.Equal(t, int64(0), g.Confirm.CurrentID())
}

func TestQueueAddedOnOverview(t *testing.T) {
	g, q, _, _ := newTestGui(t)
	g.onRoute(ROUTE_OVERVIEW)

	q.mu.Lock()
	q.reqs = append(q.reqs, request(9, cmn.MT_LegacySign, "0x00"))
	q.mu.Unlock()

	g.process(&bus.Message{Topic: "queue", Type: "added", Data: &bus.B_QueueAdded{ID: 9}})
	assert.Equal(t, int64(9), g.Confirm.CurrentID())
}

func TestPendingCountFollowsQueue(t *testing.T) {
	g, q, _, _ := newTestGui(t, request(1, cmn.MT_PersonalSign, "0x00"))
	g.onRoute(ROUTE_OVERVIEW)
	require.Equal(t, int64(1), g.Confirm.CurrentID())
	assert.Equal(t, 1, g.Confirm.Pane().Props().MessagesCount)

	q.mu.Lock()
	q.reqs = append(q.reqs, request(2, cmn.MT_PersonalSign, "0x01"), request(3, cmn.MT_LegacySign, "0x02"))
	q.mu.Unlock()

	g.process(&bus.Message{Topic: "queue", Type: "added", Data: &bus.B_QueueAdded{ID: 3, Count: 3}})
	assert.Equal(t, int64(1), g.Confirm.CurrentID())
	assert.Equal(t, 3, g.Confirm.Pane().Props().MessagesCount)
	assert.Contains(t, g.Confirm.Template(), "reject-all")

	q.remove(2)
	q.remove(3)
	g.process(&bus.Message{Topic: "queue", Type: "removed", Data: &bus.B_QueueRemoved{ID: 3, Count: 1}})
	assert.Equal(t, int64(1), g.Confirm.CurrentID())
	assert.Equal(t, 1, g.Confirm.Pane().Props().MessagesCount)
	assert.NotContains(t, g.Confirm.Template(), "reject-all")
}
