package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/sigreq"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/rs/zerolog/log"
)

var ErrNotFound = errors.New("request not found")
var ErrRejected = errors.New("User rejected the request.")
var ErrBusy = errors.New("request is being signed")

// Result is delivered exactly once per request.
type Result struct {
	Signature string // 0x prefixed
	Err       error
}

type entry struct {
	req     cmn.SignatureRequest
	done    chan Result
	signing bool
}

type Queue struct {
	mu     sync.Mutex
	nextID int64
	items  []*entry
}

func New() *Queue {
	return &Queue{}
}

// Add assigns the request an id and the arrival time.
func (q *Queue) Add(req cmn.SignatureRequest) (cmn.SignatureRequest, <-chan Result) {
	q.mu.Lock()
	q.nextID++
	req.ID = q.nextID
	if req.Time.IsZero() {
		req.Time = time.Now()
	}
	e := &entry{req: req, done: make(chan Result, 1)}
	q.items = append(q.items, e)
	n := len(q.items)
	q.mu.Unlock()

	log.Debug().Msgf("queue: added %d %s from %s", req.ID, req.Type, req.MsgParams.Origin)

	bus.Send("queue", "added", &bus.B_QueueAdded{
		ID:     req.ID,
		Type:   string(req.Type),
		Origin: req.MsgParams.Origin,
		Count:  n,
	})

	return req, e.done
}

func (q *Queue) Get(id int64) (cmn.SignatureRequest, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if i := q.index(id); i >= 0 {
		return q.items[i].req, true
	}
	return cmn.SignatureRequest{}, false
}

// Pending lists requests oldest first.
func (q *Queue) Pending() []cmn.SignatureRequest {
	q.mu.Lock()
	defer q.mu.Unlock()

	list := make([]cmn.SignatureRequest, 0, len(q.items))
	for _, e := range q.items {
		list = append(list, e.req)
	}
	return list
}

func (q *Queue) Count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Approve asks the signer for the signature. A failed attempt leaves the
// request pending so it can be retried or rejected.
func (q *Queue) Approve(ctx context.Context, id int64) (string, error) {
	q.mu.Lock()
	i := q.index(id)
	if i < 0 {
		q.mu.Unlock()
		return "", ErrNotFound
	}
	e := q.items[i]
	if e.signing {
		q.mu.Unlock()
		return "", ErrBusy
	}
	e.signing = true
	q.mu.Unlock()

	sig, err := fetchSignature(ctx, e.req)

	q.mu.Lock()
	e.signing = false
	if err != nil {
		q.mu.Unlock()
		return "", err
	}
	if !q.remove(e) {
		q.mu.Unlock()
		return "", ErrNotFound
	}
	n := len(q.items)
	q.mu.Unlock()

	e.done <- Result{Signature: sig}
	bus.Send("queue", "removed", &bus.B_QueueRemoved{ID: id, Approved: true, Count: n})
	return sig, nil
}

func (q *Queue) Reject(id int64) error {
	q.mu.Lock()
	i := q.index(id)
	if i < 0 {
		q.mu.Unlock()
		return ErrNotFound
	}
	e := q.items[i]
	q.remove(e)
	n := len(q.items)
	q.mu.Unlock()

	log.Debug().Msgf("queue: rejected %d", id)

	e.done <- Result{Err: ErrRejected}
	bus.Send("queue", "removed", &bus.B_QueueRemoved{ID: id, Count: n})
	return nil
}

func (q *Queue) RejectAll() error {
	for _, r := range q.Pending() {
		if err := q.Reject(r.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
	}
	return nil
}

// ScreenCallbacks binds the per-type sign and cancel actions to req.
func (q *Queue) ScreenCallbacks(req cmn.SignatureRequest) sigreq.Callbacks {
	sign := func(ev cmn.UIEvent) error {
		log.Trace().Msgf("queue: sign %d from %s", req.ID, ev.Control)
		_, err := q.Approve(context.Background(), req.ID)
		return err
	}
	cancel := func(ev cmn.UIEvent) error {
		log.Trace().Msgf("queue: cancel %d from %s", req.ID, ev.Control)
		return q.Reject(req.ID)
	}

	return sigreq.Callbacks{
		SignPersonalMessage:   sign,
		CancelPersonalMessage: cancel,
		SignTypedMessage:      sign,
		CancelTypedMessage:    cancel,
		SignMessage:           sign,
		CancelMessage:         cancel,
	}
}

func (q *Queue) index(id int64) int {
	for i, e := range q.items {
		if e.req.ID == id {
			return i
		}
	}
	return -1
}

func (q *Queue) remove(e *entry) bool {
	for i, x := range q.items {
		if x == e {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

func fetchSignature(ctx context.Context, req cmn.SignatureRequest) (string, error) {
	data, err := Payload(req)
	if err != nil {
		return "", err
	}

	msg := bus.Fetch(ctx, "signer", "sign", &bus.B_SignerSign{
		Type: string(req.Type),
		From: req.MsgParams.From,
		Data: data,
	})
	if msg.Error != nil {
		return "", msg.Error
	}

	sig, ok := msg.Data.([]byte)
	if !ok {
		return "", bus.ErrInvalidMessageData
	}
	return hexutil.Encode(sig), nil
}

// Payload is what the signer receives for req: the decoded bytes for
// personal and legacy messages, the JSON text for typed data.
func Payload(req cmn.SignatureRequest) ([]byte, error) {
	switch req.Type {
	case cmn.MT_TypedDataSign:
		return []byte(req.MsgParams.Data), nil
	case cmn.MT_PersonalSign:
		b, err := hexutil.Decode(req.MsgParams.Data)
		if err != nil {
			return []byte(req.MsgParams.Data), nil // some dapps send plain text
		}
		return b, nil
	case cmn.MT_LegacySign:
		b, err := hexutil.Decode(req.MsgParams.Data)
		if err != nil {
			return nil, fmt.Errorf("eth_sign data: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: %q", sigreq.ErrUnknownMessageType, req.Type)
}
