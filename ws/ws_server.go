package ws

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/AlexNa-Holdings/sigconfirm/analytics"
	"github.com/AlexNa-Holdings/sigconfirm/bus"
	"github.com/AlexNa-Holdings/sigconfirm/cmn"
	"github.com/AlexNa-Holdings/sigconfirm/queue"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	ERR_USER_REJECTED    = 4001
	ERR_UNAUTHORIZED     = 4100
	ERR_INVALID_PARAMS   = -32602
	ERR_METHOD_NOT_FOUND = -32601
	ERR_INTERNAL         = -32603
)

// Intake is where dApp requests are queued for the user.
type Intake interface {
	Add(req cmn.SignatureRequest) (cmn.SignatureRequest, <-chan queue.Result)
	Reject(id int64) error
}

type StateSource interface {
	Snapshot() *cmn.State
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      int64             `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type RPCResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      int64     `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *RPCError `json:"error,omitempty"`
}

type ConContext struct {
	Agent  string
	Origin string
	conn   *websocket.Conn
	wmu    sync.Mutex
	ctx    context.Context
}

type Server struct {
	intake Intake
	store  StateSource
	port   int

	mu    sync.Mutex
	conns []*ConContext
	srv   *http.Server
}

func NewServer(intake Intake, store StateSource, port int) *Server {
	return &Server{intake: intake, store: store, port: port}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.web3Handler)
	mux.Handle("/metrics", analytics.Handler())
	return mux
}

// Start listens in the background, retrying while the port is taken.
func (s *Server) Start() {
	s.srv = &http.Server{
		Addr:              "127.0.0.1:" + strconv.Itoa(s.port),
		Handler:           s.Handler(),
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       2 * time.Hour,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Trace().Msgf("ws server starting on port %d", s.port)
		for {
			err := s.srv.ListenAndServe()
			if err == http.ErrServerClosed {
				return
			}
			log.Error().Err(err).Msgf("WS server failed to start on port %d", s.port)
			bus.Send("ui", "notify-error", "Failed to start WS server")
			time.Sleep(10 * time.Second)
		}
	}()
}

// Shutdown also drops the websocket connections, which the http server
// no longer tracks once they are hijacked.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, c := range s.conns {
		c.conn.Close()
	}
	s.mu.Unlock()

	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

func (s *Server) addConnection(c *ConContext) {
	s.mu.Lock()
	s.conns = append(s.conns, c)
	s.mu.Unlock()
}

func (s *Server) removeConnection(c *ConContext) {
	s.mu.Lock()
	for i, x := range s.conns {
		if x == c {
			s.conns = append(s.conns[:i], s.conns[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		log.Debug().Msgf("CheckOrigin: %s", r.Header.Get("Origin"))
		return true // the origin is shown to the user with every request
	},
}

func (s *Server) web3Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("ws: upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cc := &ConContext{
		Agent:  r.Header.Get("User-Agent"),
		Origin: r.Header.Get("Origin"),
		conn:   conn,
		ctx:    ctx,
	}
	s.addConnection(cc)
	defer s.removeConnection(cc)

	log.Debug().Msgf("ws: connected %s (%s)", cc.Origin, cc.Agent)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			log.Debug().Msgf("ws: read: %v", err)
			break
		}

		if msgType != websocket.TextMessage {
			log.Trace().Msgf("Received non-text message: %d", msgType)
			break
		}

		log.Debug().Msgf("ws-> %v", string(msg))

		var req RPCRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			log.Error().Err(err).Msg("ws: JSON parse error")
			continue
		}

		s.dispatch(req, cc)
	}
}

func (s *Server) dispatch(req RPCRequest, cc *ConContext) {
	res := &RPCResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "eth_chainId":
		res.Result = chainID(s.store.Snapshot())
	case "eth_accounts", "eth_requestAccounts":
		res.Result = accounts(s.store.Snapshot())
	case "personal_sign", "eth_sign", "eth_signTypedData", "eth_signTypedData_v3", "eth_signTypedData_v4":
		sr, err := parseSignRequest(req)
		if err != nil {
			res.Error = &RPCError{Code: ERR_INVALID_PARAMS, Message: err.Error()}
			break
		}
		if s.store.Snapshot().GetAccount(sr.MsgParams.From) == nil {
			res.Error = &RPCError{Code: ERR_UNAUTHORIZED, Message: "The requested account has not been authorized by the user."}
			break
		}
		sr.MsgParams.Origin = cc.Origin
		go s.await(req.ID, sr, cc)
		return
	default:
		log.Error().Msgf("ws: method not found: %s", req.Method)
		res.Error = &RPCError{Code: ERR_METHOD_NOT_FOUND, Message: "Method not found"}
	}

	cc.send(res)
}

// await holds the reply until the user decides. A dropped connection
// rejects whatever it left pending.
func (s *Server) await(id int64, sr cmn.SignatureRequest, cc *ConContext) {
	queued, done := s.intake.Add(sr)

	res := &RPCResponse{JSONRPC: "2.0", ID: id}

	select {
	case <-cc.ctx.Done():
		if err := s.intake.Reject(queued.ID); err != nil {
			log.Debug().Err(err).Msgf("ws: reject %d after disconnect", queued.ID)
		}
		return
	case r := <-done:
		switch {
		case r.Err == nil:
			res.Result = r.Signature
		case errors.Is(r.Err, queue.ErrRejected):
			res.Error = &RPCError{Code: ERR_USER_REJECTED, Message: queue.ErrRejected.Error()}
		default:
			res.Error = &RPCError{Code: ERR_INTERNAL, Message: r.Err.Error()}
		}
	}

	cc.send(res)
}

func (cc *ConContext) send(data any) {
	b, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("ws: JSON marshal error")
		return
	}

	log.Debug().Msgf("ws<- %v", string(b))

	cc.wmu.Lock()
	defer cc.wmu.Unlock()

	if err := cc.conn.WriteMessage(websocket.TextMessage, b); err != nil {
		log.Error().Err(err).Msg("ws: write error")
	}
}
