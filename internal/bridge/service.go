// Package bridge implements the tracker-bridge service: it follows the
// vendor eye tracking runtime's local gaze stream and answers the shim's
// session, identity and sample queries.
package bridge

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/moeilijk/gaze-shim/pkg/tracker"
)

const (
	defaultEndpoint = "ws://127.0.0.1:5777/gaze"
	reconnectDelay  = time.Second

	// Samples older than this are reported as "no data": the runtime
	// streams at a few hundred Hz, so a silent stream means tracking loss.
	staleCutoff = 100 * time.Millisecond
)

// frame mirrors one message on the runtime's gaze stream.
type frame struct {
	Timestamp float64 `json:"timestamp"`
	Left      vec     `json:"left"`
	Right     vec     `json:"right"`
}

type vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Service caches the latest gaze frame and implements tracker.Service.
type Service struct {
	endpoint string
	started  time.Time

	mu          sync.RWMutex
	conn        *websocket.Conn
	last        frame
	lastAt      time.Time
	haveData    bool
	sessions    map[tracker.SessionID]struct{}
	nextSession tracker.SessionID
}

// StartService initializes the vendor runtime bridge.
func StartService() *Service {
	endpoint := os.Getenv("TRACKER_ENDPOINT")
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return &Service{
		endpoint: endpoint,
		started:  time.Now(),
		sessions: make(map[tracker.SessionID]struct{}),
	}
}

// Recv pulls the next gaze frame from the runtime stream, dialing first if
// needed. On error the connection is dropped and redialed after a short
// delay, so callers can drive this in a bare loop.
func (s *Service) Recv() error {
	conn, err := s.connection()
	if err != nil {
		time.Sleep(reconnectDelay)
		return fmt.Errorf("dial runtime stream: %w", err)
	}

	_, message, err := conn.ReadMessage()
	if err != nil {
		s.dropConnection(conn)
		time.Sleep(reconnectDelay)
		return fmt.Errorf("read runtime stream: %w", err)
	}

	if err := s.handleFrame(message); err != nil {
		return err
	}
	return nil
}

func (s *Service) connection() (*websocket.Conn, error) {
	s.mu.RLock()
	conn := s.conn
	s.mu.RUnlock()
	if conn != nil {
		return conn, nil
	}

	// Dial with the lock released: a stalled endpoint must not park the
	// query methods behind a pending write lock for the whole handshake
	// timeout.
	conn, _, err := websocket.DefaultDialer.Dial(s.endpoint, nil)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if existing := s.conn; existing != nil {
		s.mu.Unlock()
		conn.Close()
		return existing, nil
	}
	s.conn = conn
	s.mu.Unlock()
	return conn, nil
}

func (s *Service) dropConnection(conn *websocket.Conn) {
	conn.Close()
	s.mu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.mu.Unlock()
}

func (s *Service) handleFrame(message []byte) error {
	var f frame
	if err := json.Unmarshal(message, &f); err != nil {
		return fmt.Errorf("decode gaze frame: %w", err)
	}

	s.mu.Lock()
	s.last = f
	s.lastAt = time.Now()
	s.haveData = true
	s.mu.Unlock()

	return nil
}

// CreateSession opens a sub-session on the bridge.
func (s *Service) CreateSession() (tracker.SessionID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSession++
	id := s.nextSession
	s.sessions[id] = struct{}{}
	return id, nil
}

// DestroySession releases a sub-session. Unknown ids are an error.
func (s *Service) DestroySession(id tracker.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %d not found", id)
	}
	delete(s.sessions, id)
	return nil
}

// HmdInfo reports the attached headset's identity for a session.
func (s *Service) HmdInfo(id tracker.SessionID) (tracker.HmdInfo, error) {
	if err := s.checkSession(id); err != nil {
		return tracker.HmdInfo{}, err
	}
	return headsetInfo()
}

// TimeSeconds is the bridge's monotonic time base.
func (s *Service) TimeSeconds() (float64, error) {
	return time.Since(s.started).Seconds(), nil
}

// EyeTrackingInfo returns the cached sample for the requested cycle. When no
// fresh frame exists the timestamp is zero, which callers treat as "no valid
// data".
func (s *Service) EyeTrackingInfo(id tracker.SessionID, atSeconds float64) (tracker.EyeInfo, error) {
	if err := s.checkSession(id); err != nil {
		return tracker.EyeInfo{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.haveData || time.Since(s.lastAt) > staleCutoff {
		return tracker.EyeInfo{}, nil
	}
	return tracker.EyeInfo{
		TimeSeconds: s.last.Timestamp,
		GazeTan: [2]tracker.Vec2{
			{X: s.last.Left.X, Y: s.last.Left.Y},
			{X: s.last.Right.X, Y: s.last.Right.Y},
		},
	}, nil
}

func (s *Service) checkSession(id tracker.SessionID) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("session %d not found", id)
	}
	return nil
}
