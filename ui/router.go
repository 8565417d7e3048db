package ui

import (
	"sync"

	"github.com/rs/zerolog/log"
)

const (
	ROUTE_OVERVIEW          = "/"
	ROUTE_CONFIRM_SIGNATURE = "/confirm-signature"
)

type Page interface {
	Template() string
	OnClick(value string)
}

// Router keeps the current page. Push is safe to call from any goroutine;
// OnChange runs on the caller's goroutine.
type Router struct {
	mu       sync.Mutex
	pages    map[string]Page
	current  string
	OnChange func(route string)
}

func NewRouter() *Router {
	return &Router{
		pages:   make(map[string]Page),
		current: ROUTE_OVERVIEW,
	}
}

func (r *Router) Register(route string, p Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pages[route] = p
}

func (r *Router) Push(route string) {
	r.mu.Lock()
	if _, ok := r.pages[route]; !ok {
		r.mu.Unlock()
		log.Error().Msgf("Router: unknown route %s", route)
		return
	}
	r.current = route
	onChange := r.OnChange
	r.mu.Unlock()

	log.Trace().Msgf("Router: %s", route)

	if onChange != nil {
		onChange(route)
	}
}

func (r *Router) Current() (string, Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.pages[r.current]
}
