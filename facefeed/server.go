// Package facefeed receives face landmark frames over WebSocket, typically
// from a browser running a face landmarker, and exposes the newest one as a
// pigface.FaceSource.
package facefeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/phanxgames/pigface"
)

// ErrBadFrame is returned for a message that is not a usable frame.
var ErrBadFrame = errors.New("facefeed: bad frame")

// Point is a normalized image coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Blink carries per-eye blink scores in [0, 1].
type Blink struct {
	Left  float64 `json:"left"`
	Right float64 `json:"right"`
}

// Message is one frame on the wire. Timestamp is in milliseconds on the
// sender's clock and must increase for new frames.
type Message struct {
	Timestamp float64 `json:"timestamp"`
	Detected  bool    `json:"detected"`
	Landmark  *Point  `json:"landmark,omitempty"`
	Blink     *Blink  `json:"blink,omitempty"`
}

// Decode parses and validates one message.
func Decode(data []byte) (pigface.FaceFrame, error) {
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return pigface.FaceFrame{}, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if m.Timestamp < 0 {
		return pigface.FaceFrame{}, fmt.Errorf("%w: negative timestamp", ErrBadFrame)
	}
	if m.Detected && m.Landmark == nil {
		return pigface.FaceFrame{}, fmt.Errorf("%w: detected face without landmark", ErrBadFrame)
	}

	f := pigface.FaceFrame{
		Timestamp: time.Duration(m.Timestamp * float64(time.Millisecond)),
		Detected:  m.Detected,
	}
	if m.Landmark != nil {
		f.Landmark = pigface.Vec2{X: m.Landmark.X, Y: m.Landmark.Y}
	}
	if m.Blink != nil {
		f.HasBlink = true
		f.BlinkLeft = m.Blink.Left
		f.BlinkRight = m.Blink.Right
	}
	return f, nil
}

// Status is served as JSON on /status.
type Status struct {
	Sessions int     `json:"sessions"`
	Frames   uint64  `json:"frames"`
	Dropped  uint64  `json:"dropped"`
	Last     float64 `json:"lastTimestamp"`
}

// Server accepts any number of senders; the newest frame from any of them
// wins. Latest is safe to call from the render goroutine.
type Server struct {
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	latest   pigface.FaceFrame
	have     bool
	frames   uint64
	dropped  uint64
	sessions map[uuid.UUID]*websocket.Conn
}

// NewServer creates a server. Origins are not checked: the feed is meant for
// localhost.
func NewServer(log zerolog.Logger) *Server {
	return &Server{
		log: log.With().Str("component", "facefeed").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		sessions: make(map[uuid.UUID]*websocket.Conn),
	}
}

// Latest implements pigface.FaceSource.
func (s *Server) Latest() (pigface.FaceFrame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest, s.have
}

// Status returns a snapshot of the counters.
func (s *Server) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Sessions: len(s.sessions),
		Frames:   s.frames,
		Dropped:  s.dropped,
		Last:     float64(s.latest.Timestamp) / float64(time.Millisecond),
	}
}

// Handler returns the mux serving the feed on path and the status page.
func (s *Server) Handler(path string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(path, s.handleFeed)
	mux.HandleFunc("/status", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(s.Status())
	})
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr, path string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("facefeed: listen: %w", err)
	}
	return s.Serve(ctx, ln, path)
}

// Serve serves on ln until ctx is cancelled, then closes every session.
func (s *Server) Serve(ctx context.Context, ln net.Listener, path string) error {
	srv := &http.Server{
		Handler:           s.Handler(path),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info().Str("addr", ln.Addr().String()).Str("path", path).Msg("face feed listening")

	select {
	case err := <-errc:
		return fmt.Errorf("facefeed: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeSessions()
	if err != nil {
		return fmt.Errorf("facefeed: shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Str("remote", r.RemoteAddr).Msg("upgrade failed")
		return
	}
	id := uuid.New()
	log := s.log.With().Str("session", id.String()).Logger()

	s.mu.Lock()
	s.sessions[id] = conn
	n := len(s.sessions)
	s.mu.Unlock()
	log.Info().Str("remote", r.RemoteAddr).Int("sessions", n).Msg("sender connected")

	defer func() {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		conn.Close()
		log.Info().Msg("sender disconnected")
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("read failed")
			}
			return
		}
		frame, err := Decode(data)
		if err != nil {
			s.mu.Lock()
			s.dropped++
			s.mu.Unlock()
			log.Debug().Err(err).Msg("frame dropped")
			continue
		}
		s.store(frame)
	}
}

func (s *Server) store(f pigface.FaceFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = f
	s.have = true
	s.frames++
}

func (s *Server) closeSessions() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.sessions {
		_ = c.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
			time.Now().Add(time.Second))
		c.Close()
		delete(s.sessions, id)
	}
}
