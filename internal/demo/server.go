// Package demo serves the sample page, a data document, and a WebSocket
// reload channel for exercising the bar against live data.
package demo

import (
	"context"
	"embed"
	"errors"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/artpar/lumebar/internal/feed"
	"github.com/artpar/lumebar/internal/icons"
	"github.com/artpar/lumebar/internal/logging"
)

//go:embed assets
var assets embed.FS

// reloadMessage is broadcast to every connected client when any client
// sends a message or the data file changes on disk.
var reloadMessage = map[string]string{"action": "reload"}

// Server hosts the demo: an index page, /data.json, and /ws.
type Server struct {
	addr     string
	dataFile string

	httpServer *http.Server
	upgrader   websocket.Upgrader
	watcher    *feed.Watcher
	icons      icons.Resolver

	mu      sync.Mutex
	clients map[string]*websocket.Conn
}

// NewServer creates a demo server. When dataFile is non-empty it is served
// at /data.json instead of the embedded sample, and changes to it trigger a
// reload broadcast.
func NewServer(addr, dataFile string) *Server {
	return &Server{
		addr:     addr,
		dataFile: dataFile,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The demo is a local development tool.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[string]*websocket.Conn),
		icons:   icons.NewMemo(icons.NewCDN("")),
	}
}

// Handler returns the route table, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/data.json", s.handleData)
	mux.HandleFunc("/icons/", s.handleIcon)
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Start serves until the context is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	if s.dataFile != "" {
		watcher, err := feed.Watch(s.dataFile)
		if err != nil {
			logging.Error(err)
		} else {
			s.watcher = watcher
			go s.watchLoop()
		}
	}

	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.Stop()
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Stop shuts the server down and closes all WebSocket clients.
func (s *Server) Stop() error {
	if s.watcher != nil {
		s.watcher.Close()
	}

	s.mu.Lock()
	for id, conn := range s.clients {
		conn.Close()
		delete(s.clients, id)
	}
	s.mu.Unlock()

	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) watchLoop() {
	for range s.watcher.Changes() {
		logging.Infof("data file changed, broadcasting reload")
		s.Broadcast(reloadMessage)
	}
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	page, err := assets.ReadFile("assets/index.html")
	if err != nil {
		http.Error(w, "missing index", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	var raw []byte
	var err error
	if s.dataFile != "" {
		raw, err = os.ReadFile(s.dataFile)
	} else {
		raw, err = assets.ReadFile("assets/data.json")
	}
	if err != nil {
		logging.Error(err)
		http.Error(w, "data document unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Write(raw)
}

// handleIcon proxies Phosphor icons through the memoized resolver, so the
// demo page can inline them without talking to the CDN itself.
func (s *Server) handleIcon(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/icons/")
	if name == "" {
		http.NotFound(w, r)
		return
	}
	markup, err := s.icons.Resolve(r.Context(), name)
	if err != nil {
		if !errors.Is(err, icons.ErrNotFound) {
			logging.Error(err)
		}
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(markup))
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error(err)
		return
	}

	id := uuid.New().String()
	s.mu.Lock()
	s.clients[id] = conn
	s.mu.Unlock()
	logging.Infof("ws client %s connected", id)

	go s.readLoop(id, conn)
}

// readLoop turns every inbound message into a reload broadcast. The bar's
// action channel also lands here in the demo, so activations are logged.
func (s *Server) readLoop(id string, conn *websocket.Conn) {
	defer func() {
		s.mu.Lock()
		delete(s.clients, id)
		s.mu.Unlock()
		conn.Close()
		logging.Infof("ws client %s disconnected", id)
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		logging.Infof("ws client %s sent: %s", id, payload)
		s.Broadcast(reloadMessage)
	}
}

// Broadcast sends a JSON payload to every connected client. Clients that
// fail to receive are dropped.
func (s *Server) Broadcast(payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, conn := range s.clients {
		conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
		if err := conn.WriteJSON(payload); err != nil {
			logging.Error(err)
			conn.Close()
			delete(s.clients, id)
		}
	}
}

// ClientCount returns the number of connected WebSocket clients.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}
