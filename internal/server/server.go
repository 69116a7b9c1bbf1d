package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/simforge/simforge/internal/core/config"
	"github.com/simforge/simforge/internal/core/observability/log"
	"github.com/simforge/simforge/internal/core/world"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// broadcastInterval paces viewer frames; the simulation ticks faster.
const broadcastInterval = 50 * time.Millisecond

// payload is one broadcast message: the replayable render frame plus the
// manager's statistics snapshot.
type payload struct {
	Frame *Frame      `json:"frame"`
	Stats world.Stats `json:"stats"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// DebugServer streams render frames and statistics to websocket viewers.
// It reads the world only between ticks, on the broadcast goroutine, via
// the step callback supplied by the runner.
type DebugServer struct {
	log log.Log
	cfg config.ServerConfig

	mu      sync.Mutex
	clients map[*client]struct{}

	// snapshot produces a frame+stats pair; the runner synchronizes it
	// with the tick loop.
	snapshot func(*Frame) world.Stats
}

func New(cfg config.ServerConfig, snapshot func(*Frame) world.Stats, l log.Log) *DebugServer {
	if l == nil {
		l = log.Nop()
	}
	return &DebugServer{
		log:      l,
		cfg:      cfg,
		clients:  make(map[*client]struct{}),
		snapshot: snapshot,
	}
}

// Run serves the websocket endpoint and broadcasts until ctx is done.
func (s *DebugServer) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/stats", s.handleStats)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("debug server listening", log.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.broadcastLoop(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (s *DebugServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", log.Error(err))
		return
	}
	c := &client{conn: conn, send: make(chan []byte, 64)}
	s.addClient(c)
	defer func() {
		s.removeClient(c)
		_ = conn.Close()
	}()

	// Drain reads so control frames are processed; viewers only listen.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for msg := range c.send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

func (s *DebugServer) handleStats(w http.ResponseWriter, _ *http.Request) {
	var frame Frame
	stats := s.snapshot(&frame)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(stats); err != nil {
		s.log.Warn("stats encode failed", log.Error(err))
	}
}

func (s *DebugServer) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(broadcastInterval)
	defer ticker.Stop()

	var frame Frame
	for {
		select {
		case <-ticker.C:
			if s.clientCount() == 0 {
				continue
			}
			frame.Reset()
			stats := s.snapshot(&frame)
			msg, err := json.Marshal(payload{Frame: &frame, Stats: stats})
			if err != nil {
				s.log.Warn("frame encode failed", log.Error(err))
				continue
			}
			s.broadcast(msg)
		case <-ctx.Done():
			s.closeClients()
			return
		}
	}
}

func (s *DebugServer) addClient(c *client) {
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.log.Debug("viewer connected", log.String("addr", c.conn.RemoteAddr().String()))
}

func (s *DebugServer) removeClient(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
}

func (s *DebugServer) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *DebugServer) broadcast(msg []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- msg:
		default:
			// Slow consumer: drop the frame rather than stall the loop.
		}
	}
}

func (s *DebugServer) closeClients() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		delete(s.clients, c)
		close(c.send)
	}
}
