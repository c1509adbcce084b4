// Package bridge exposes environments to external trainers over a
// websocket: one connection drives one environment, one message per tick.
package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/maxogod/AI-Donkey-Kong/internal/core"
	"github.com/maxogod/AI-Donkey-Kong/internal/env"
)

const (
	handshakeTimeout = 5 * time.Second
	idleTimeout      = 60 * time.Second
	writeTimeout     = 5 * time.Second
	maxMessageSize   = 4 * 1024
)

// Factory creates the environment for a new session.
type Factory func() (*env.Env, error)

// Server accepts trainer sessions.
type Server struct {
	factory   Factory
	log       *log.Logger
	onEpisode func(sessionID string, sum env.Summary)

	upgrader websocket.Upgrader
}

// Option configures a Server.
type Option func(*Server)

// WithEpisodeHook is called, from the session goroutine, whenever an
// episode finishes.
func WithEpisodeHook(fn func(sessionID string, sum env.Summary)) Option {
	return func(s *Server) {
		s.onEpisode = fn
	}
}

// NewServer creates a server. A nil logger logs to stderr.
func NewServer(factory Factory, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "bridge"})
	}
	s := &Server{
		factory: factory,
		log:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  16 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the websocket endpoint.
func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			s.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.Close()
		conn.SetReadLimit(maxMessageSize)

		e, err := s.factory()
		if err != nil {
			s.log.Error("cannot create environment", "error", err)
			closeWith(conn, websocket.CloseInternalServerErr, "environment unavailable")
			return
		}

		sess := &session{id: uuid.NewString(), conn: conn, env: e, server: s}
		if err := sess.handshake(); err != nil {
			s.log.Warn("handshake rejected", "remote", r.RemoteAddr, "error", err)
			closeWith(conn, websocket.ClosePolicyViolation, err.Error())
			return
		}

		start := time.Now()
		s.log.Info("session start", "session", sess.id, "remote", r.RemoteAddr)
		sess.serve()
		s.log.Info("session end", "session", sess.id, "steps", sess.steps, "duration", time.Since(start).Round(time.Millisecond))
	}
}

type session struct {
	id      string
	conn    *websocket.Conn
	env     *env.Env
	server  *Server
	started bool
	steps   int
}

func (c *session) handshake() error {
	_ = c.conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return err
	}
	req, err := decodeRequest(msg)
	if err != nil {
		return err
	}
	if req.Type != TypeHello {
		return fmt.Errorf("%w: expected hello, got %q", ErrProtocol, req.Type)
	}
	if req.ProtocolVersion != ProtocolVersion {
		return fmt.Errorf("%w: unsupported protocol_version %q", ErrProtocol, req.ProtocolVersion)
	}

	return c.write(Welcome{
		Type:            TypeWelcome,
		ProtocolVersion: ProtocolVersion,
		SessionID:       c.id,
		ObservationSize: c.env.ObservationSize(),
		Schema:          c.env.Schema(),
		Branches:        []int{core.HorizontalBranchSize, core.VerticalBranchSize},
	})
}

func (c *session) serve() {
	for {
		_ = c.conn.SetReadDeadline(time.Now().Add(idleTimeout))
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.server.log.Debug("read failed", "session", c.id, "error", err)
			}
			return
		}

		reply, err := c.handle(msg)
		if err != nil {
			reply = Error{Type: TypeError, Error: err.Error()}
		}
		if err := c.write(reply); err != nil {
			c.server.log.Debug("write failed", "session", c.id, "error", err)
			return
		}
	}
}

func (c *session) handle(msg []byte) (any, error) {
	req, err := decodeRequest(msg)
	if err != nil {
		return nil, err
	}

	switch req.Type {
	case TypeReset:
		obs := c.env.Reset()
		c.started = true
		return Obs{
			Type:        TypeObs,
			EpisodeID:   c.env.EpisodeID(),
			Observation: obs,
		}, nil

	case TypeStep:
		if !c.started {
			return nil, fmt.Errorf("%w: step before reset", ErrProtocol)
		}
		if len(req.Action) != 2 {
			return nil, fmt.Errorf("%w: action must have 2 branches, got %d", ErrProtocol, len(req.Action))
		}
		wasDone := c.env.Done()
		res := c.env.Step(core.Act(req.Action[0], req.Action[1]))
		c.steps++
		if res.Terminal && !wasDone && c.server.onEpisode != nil {
			c.server.onEpisode(c.id, c.env.Summary())
		}

		out := Obs{
			Type:        TypeObs,
			EpisodeID:   res.EpisodeID,
			Tick:        res.Tick,
			Observation: res.Observation,
			Reward:      res.Reward,
			Done:        res.Terminal,
		}
		if res.Terminal {
			out.Outcome = res.Outcome.String()
			out.Cause = res.Cause
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: unknown message type %q", ErrProtocol, req.Type)
	}
}

func (c *session) write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, b)
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}
