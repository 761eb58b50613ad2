package sim

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// StateServer streams manager snapshots to WebSocket clients and serves
// one-shot snapshots over plain HTTP.
type StateServer struct {
	manager  *Manager
	world    *World
	interval time.Duration
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewStateServer creates a server pushing a frame every interval.
func NewStateServer(manager *Manager, world *World, interval time.Duration, logger *zap.Logger) *StateServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StateServer{
		manager:  manager,
		world:    world,
		interval: interval,
		log:      logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

type stateFrame struct {
	Time   time.Time    `json:"time"`
	Agents []AgentState `json:"agents"`
	World  [][]Tile     `json:"world,omitempty"`
}

// Handler returns the HTTP routes of the server.
func (s *StateServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

func (s *StateServer) handleState(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	frame := stateFrame{Time: time.Now(), Agents: s.manager.Snapshot(), World: s.world.Snapshot()}
	if err := json.NewEncoder(w).Encode(frame); err != nil {
		s.log.Warn("state encode failed", zap.Error(err))
	}
}

func (s *StateServer) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer func() { _ = conn.Close() }()
	s.log.Info("telemetry client connected", zap.String("remote", conn.RemoteAddr().String()))

	// Drain the read side so close frames are processed.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var lastDigest uint64
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			payload, err := json.Marshal(s.manager.Snapshot())
			if err != nil {
				s.log.Warn("snapshot encode failed", zap.Error(err))
				continue
			}
			// Skip frames whose content did not change since the last push.
			digest := xxhash.Sum64(payload)
			if digest == lastDigest {
				continue
			}
			lastDigest = digest
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				s.log.Info("telemetry client gone", zap.Error(err))
				return
			}
		}
	}
}
