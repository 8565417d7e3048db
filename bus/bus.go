package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

// common bus package

type Message struct {
	ID    int
	Topic string
	Type  string
	Data  interface{}

	Error     error
	RespondTo int
}

var ErrInvalidMessageData = errors.New("invalid message data")

type Bus struct {
	Subscribers map[string][]chan *Message //topic -> subscribers
	M           sync.Mutex
	In          chan *Message
	NextID      int
}

var cb *Bus = &Bus{
	Subscribers: make(map[string][]chan *Message),
	In:          make(chan *Message, 1000),
	NextID:      0,
}

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		go ProcessMessages()
	})
}

func ProcessMessages() {
	for msg := range cb.In {
		cb.M.Lock()
		subs, ok := cb.Subscribers[msg.Topic]
		if ok {
			for _, subscriber := range subs {
				subscriber <- msg
			}
		}
		cb.M.Unlock()
	}
}

func Subscribe(topic ...string) chan *Message {
	log.Trace().Msgf("bus.Subscribing to %v", topic)

	cb.M.Lock()
	defer cb.M.Unlock()

	ch := make(chan *Message, 1000)

	added := make(map[string]bool)

	for _, t := range topic {

		if _, ok := added[t]; ok { // prevent duplicate subscriptions
			continue
		}
		added[t] = true

		cb.Subscribers[t] = append(cb.Subscribers[t], ch)
	}

	return ch
}

func Unsubscribe(ch chan *Message) {
	log.Trace().Msg("bus.Unsubscribing")

	cb.M.Lock()
	defer cb.M.Unlock()

	for t, subs := range cb.Subscribers {
		for i, subscriber := range subs {
			if subscriber == ch {
				subs = append(subs[:i], subs[i+1:]...)
				cb.Subscribers[t] = subs
				break
			}
		}
	}

	close(ch)
}

func SendEx(topic, t string, data interface{}, respond_to int, err error) int {
	if respond_to != 0 {
		log.Trace().Msgf("   %04d->%s: %s respond to: %d, error: %v", cb.NextID, topic, t, respond_to, err)
	} else {
		log.Trace().Msgf("   %04d->%s: %s", cb.NextID, topic, t)
	}

	cb.M.Lock()
	cb.NextID++
	id := cb.NextID
	cb.M.Unlock()

	cb.In <- &Message{
		ID:        id,
		Topic:     topic,
		Type:      t,
		Data:      data,
		Error:     err,
		RespondTo: respond_to}

	return id
}

func Send(topic, t string, data interface{}) int {
	return SendEx(topic, t, data, 0, nil)
}

func (m *Message) Respond(data interface{}, err error) int {
	return SendEx(m.Topic, m.Type+"_response", data, m.ID, err)
}

// Fetch sends a request and waits for its response. There is no timeout:
// the wait ends only with the response or ctx.
func Fetch(ctx context.Context, topic, t string, data interface{}) *Message {
	ch := Subscribe(topic)
	defer Unsubscribe(ch)

	id := Send(topic, t, data)

	log.Trace().Msgf("   FETCH %04d->%s: %s", id, topic, t)

	for {
		select {
		case <-ctx.Done():
			return &Message{Error: ctx.Err()}
		case msg := <-ch:
			if msg.RespondTo == id {
				return msg
			}
		}
	}
}
