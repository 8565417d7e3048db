package ui

import (
	"errors"
	"sync"

	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
	"github.com/rs/zerolog/log"
)

// RequestSource is the pending request queue as seen by the screens.
type RequestSource interface {
	Pending() []cmn.SignatureRequest
	Count() int
	ScreenCallbacks(req cmn.SignatureRequest) sigreq.Callbacks
	Reject(id int64) error
	RejectAll() error
}

type StateSource interface {
	Snapshot() *cmn.State
}

// ConfirmPage owns the request being confirmed and its pane.
type ConfirmPage struct {
	mu       sync.Mutex
	requests RequestSource
	store    StateSource
	queries  sigreq.Queries
	history  sigreq.History
	env      Env
	modal    func(sigreq.RejectModalParams)

	req  *cmn.SignatureRequest
	pane *SignRequestPane
}

func NewConfirmPage(requests RequestSource, store StateSource, history sigreq.History,
	env Env, modal func(sigreq.RejectModalParams)) *ConfirmPage {
	return &ConfirmPage{
		requests: requests,
		store:    store,
		queries:  sigreq.StateQueries{},
		history:  history,
		env:      env,
		modal:    modal,
	}
}

func (c *ConfirmPage) resolve(req cmn.SignatureRequest) (*sigreq.Props, error) {
	cb := c.requests.ScreenCallbacks(req)
	cb.CancelAll = c.requests.RejectAll
	cb.ClearConfirmTransaction = c.Clear
	cb.History = c.history
	cb.MostRecentOverviewPage = ROUTE_OVERVIEW
	cb.ShowRejectTransactionsConfirmationModal = c.modal
	cb.MessagesCount = c.requests.Count()

	return sigreq.Resolve(c.store.Snapshot(), c.queries, cb, req)
}

// Open shows req. A request that cannot be resolved is rejected so the
// queue does not stall on it.
func (c *ConfirmPage) Open(req cmn.SignatureRequest) error {
	c.mu.Lock()
	if c.req != nil && c.req.ID == req.ID && c.pane != nil {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	props, err := c.resolve(req)
	if err != nil {
		log.Error().Err(err).Msgf("ConfirmPage: request %d", req.ID)
		c.env.NotifyError(errors.New(c.env.T("requestCouldNotBeShown", err)))
		if rerr := c.requests.Reject(req.ID); rerr != nil {
			log.Error().Err(rerr).Msgf("ConfirmPage: reject %d", req.ID)
		}
		return err
	}

	pane := NewSignRequestPane(props, c.env)

	c.mu.Lock()
	c.req = &req
	c.pane = pane
	c.mu.Unlock()

	return nil
}

// Refresh re-resolves the open request against the current state.
func (c *ConfirmPage) Refresh() {
	c.mu.Lock()
	req, pane := c.req, c.pane
	c.mu.Unlock()

	if pane == nil {
		return
	}

	props, err := c.resolve(*req)
	if err != nil {
		log.Warn().Err(err).Msgf("ConfirmPage: refresh %d", req.ID)
		return
	}
	pane.SetProps(props)
}

func (c *ConfirmPage) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.req = nil
	c.pane = nil
}

// CurrentID returns the id of the open request, or 0.
func (c *ConfirmPage) CurrentID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.req == nil {
		return 0
	}
	return c.req.ID
}

func (c *ConfirmPage) Pane() *SignRequestPane {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pane
}

func (c *ConfirmPage) Template() string {
	if p := c.Pane(); p != nil {
		return p.Template()
	}
	return "<c>" + c.env.T("nothingToConfirm")
}

func (c *ConfirmPage) OnClick(value string) {
	if p := c.Pane(); p != nil {
		p.OnClick(value)
	}
}
