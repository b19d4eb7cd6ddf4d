// Package live serves interactive simulation sessions over WebSocket.
//
// A client connects, receives a session greeting, and then submits
// simulate messages. Each request is resolved against the server's
// default configuration, run through the shared runner, and answered
// with a result or error message echoing the client's request_id.
package live

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"tokenomics-lab/internal/api/models"
	"tokenomics-lab/internal/domain"
	"tokenomics-lab/internal/observability"
	"tokenomics-lab/internal/reporting"
	"tokenomics-lab/internal/simulation"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// maxMessageBytes caps inbound frames. Simulate requests stay far below it.
const maxMessageBytes = 1 << 20

// SessionConfig holds the timing knobs for live sessions.
type SessionConfig struct {
	PingInterval time.Duration // server ping cadence
	ReadTimeout  time.Duration // read deadline, refreshed on any traffic
	WriteTimeout time.Duration // per-write deadline
	MaxSessions  int           // concurrent session cap, 0 means unlimited
}

// DefaultSessionConfig returns production defaults for live sessions.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		PingInterval: 30 * time.Second,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		MaxSessions:  64,
	}
}

// Server upgrades HTTP requests into live simulation sessions. It
// implements http.Handler so the router can mount it directly.
type Server struct {
	runner   *simulation.Runner
	defaults domain.SimulationConfig
	config   SessionConfig
	upgrader websocket.Upgrader
	log      *log.Logger

	mu       sync.Mutex
	sessions map[string]*session
}

// ServerOptions configures a live session server.
type ServerOptions struct {
	Runner   *simulation.Runner
	Defaults domain.SimulationConfig
	Config   *SessionConfig
	Logger   *log.Logger
}

// NewServer creates a live session server.
func NewServer(opts ServerOptions) *Server {
	cfg := DefaultSessionConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stdout, "[live] ", log.LstdFlags|log.Lshortfile)
	}
	return &Server{
		runner:   opts.Runner,
		defaults: opts.Defaults,
		config:   cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Cross-origin policy is enforced by the HTTP layer.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		log:      logger,
		sessions: make(map[string]*session),
	}
}

// session is one connected client. Writes are serialized through
// writeMu; gorilla connections allow a single concurrent writer.
type session struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
	done    chan struct{}
}

// ServeHTTP upgrades the request and runs the session until the client
// disconnects, the read deadline lapses, or the server shuts down.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written its own error response.
		s.log.Printf("websocket upgrade failed: %v", err)
		return
	}

	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
		done: make(chan struct{}),
	}

	if !s.register(sess) {
		msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session limit reached")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.config.WriteTimeout))
		_ = conn.Close()
		return
	}
	defer s.unregister(sess)

	observability.SessionOpened()
	defer observability.SessionClosed()

	s.log.Printf("session %s opened from %s", sess.id, r.RemoteAddr)
	s.serve(r.Context(), sess)
	s.log.Printf("session %s closed", sess.id)
}

// serve greets the client, starts the ping loop, and reads until the
// connection dies.
func (s *Server) serve(ctx context.Context, sess *session) {
	defer sess.conn.Close()

	if err := s.write(sess, serverMessage{Type: MessageTypeSession, SessionID: sess.id}); err != nil {
		s.log.Printf("session %s greeting failed: %v", sess.id, err)
		return
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.pingLoop(sess)
	}()

	s.readLoop(ctx, sess)

	close(sess.done)
	wg.Wait()
}

// readLoop consumes client frames and dispatches them until the
// connection errors out.
func (s *Server) readLoop(ctx context.Context, sess *session) {
	sess.conn.SetReadLimit(maxMessageBytes)
	s.resetReadDeadline(sess)
	sess.conn.SetPongHandler(func(string) error {
		s.resetReadDeadline(sess)
		return nil
	})

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Printf("session %s read error: %v", sess.id, err)
			}
			return
		}
		s.resetReadDeadline(sess)
		s.handleMessage(ctx, sess, data)
	}
}

// handleMessage parses one client frame and routes it by type.
func (s *Server) handleMessage(ctx context.Context, sess *session, data []byte) {
	var msg clientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		observability.RecordLiveMessage("invalid")
		s.writeError(sess, "", "INVALID_MESSAGE", fmt.Sprintf("malformed message: %v", err))
		return
	}

	switch msg.Type {
	case MessageTypeSimulate:
		observability.RecordLiveMessage(MessageTypeSimulate)
		s.handleSimulate(ctx, sess, msg)
	case MessageTypePing:
		observability.RecordLiveMessage(MessageTypePing)
		_ = s.write(sess, serverMessage{Type: MessageTypePong, RequestID: msg.RequestID})
	default:
		// Client-chosen types never become label values.
		observability.RecordLiveMessage("unknown")
		s.writeError(sess, msg.RequestID, "UNKNOWN_TYPE", fmt.Sprintf("unknown message type %q", msg.Type))
	}
}

// handleSimulate resolves the request against the server defaults, runs
// it, and replies with the registered run. Results always carry the
// chart series; live clients exist to redraw charts on every reply.
func (s *Server) handleSimulate(ctx context.Context, sess *session, msg clientMessage) {
	var req models.SimulationRequest
	if msg.Simulate != nil {
		req = *msg.Simulate
	}

	cfg, err := req.ApplyTo(s.defaults)
	if err != nil {
		s.writeError(sess, msg.RequestID, "INVALID_CONFIG", err.Error())
		return
	}

	run, err := s.runner.Run(ctx, cfg, domain.TriggerWS)
	if err != nil {
		code := "SIMULATION_ERROR"
		if errors.Is(err, domain.ErrInvalidConfig) {
			code = "INVALID_CONFIG"
		}
		s.writeError(sess, msg.RequestID, code, err.Error())
		return
	}

	resp := models.NewRunResponse(run, req.Options.IncludeRecords)
	series := models.NewSeriesResponse(run.RunID, reporting.BuildSeries(run.Records))
	resp.Series = &series
	if err := s.write(sess, serverMessage{
		Type:      MessageTypeResult,
		RequestID: msg.RequestID,
		Result:    &resp,
	}); err != nil {
		s.log.Printf("session %s result write failed: %v", sess.id, err)
	}
}

// pingLoop sends periodic pings so dead peers trip the read deadline.
func (s *Server) pingLoop(sess *session) {
	ticker := time.NewTicker(s.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			sess.writeMu.Lock()
			err := sess.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
			if err == nil {
				err = sess.conn.WriteMessage(websocket.PingMessage, nil)
			}
			sess.writeMu.Unlock()
			if err != nil {
				s.log.Printf("session %s ping failed: %v", sess.id, err)
				return
			}
		}
	}
}

// write sends msg under the session write lock with a fresh deadline.
func (s *Server) write(sess *session, msg serverMessage) error {
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()

	if err := sess.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout)); err != nil {
		return err
	}
	if err := sess.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to write %s message: %w", msg.Type, err)
	}
	observability.RecordLiveMessage(msg.Type)
	return nil
}

func (s *Server) writeError(sess *session, requestID, code, message string) {
	_ = s.write(sess, serverMessage{
		Type:      MessageTypeError,
		RequestID: requestID,
		Error:     &models.ErrorDetail{Code: code, Message: message},
	})
}

func (s *Server) resetReadDeadline(sess *session) {
	_ = sess.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
}

// register adds the session, enforcing the configured cap.
func (s *Server) register(sess *session) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.MaxSessions > 0 && len(s.sessions) >= s.config.MaxSessions {
		return false
	}
	s.sessions[sess.id] = sess
	return true
}

func (s *Server) unregister(sess *session) {
	s.mu.Lock()
	delete(s.sessions, sess.id)
	s.mu.Unlock()
}

// SessionCount reports the number of open sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// CloseAll tells every client the server is going away and closes the
// connections. Read loops unwind on their own after that.
func (s *Server) CloseAll() {
	s.mu.Lock()
	sessions := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, sess := range sessions {
		_ = sess.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(s.config.WriteTimeout))
		_ = sess.conn.Close()
	}
}

// Live protocol messages.

// Client message types.
const (
	MessageTypeSimulate = "simulate"
	MessageTypePing     = "ping"
)

// Server message types.
const (
	MessageTypeSession = "session"
	MessageTypeResult  = "result"
	MessageTypeError   = "error"
	MessageTypePong    = "pong"
)

// clientMessage is the envelope for everything a client sends.
type clientMessage struct {
	Type      string                    `json:"type"`
	RequestID string                    `json:"request_id,omitempty"`
	Simulate  *models.SimulationRequest `json:"simulate,omitempty"`
}

// serverMessage is the envelope for everything the server sends.
type serverMessage struct {
	Type      string                     `json:"type"`
	RequestID string                     `json:"request_id,omitempty"`
	SessionID string                     `json:"session_id,omitempty"`
	Result    *models.SimulationResponse `json:"result,omitempty"`
	Error     *models.ErrorDetail        `json:"error,omitempty"`
}
