package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/df07/go-scene-tracer/pkg/renderer"
	"github.com/df07/go-scene-tracer/pkg/scene"
)

const writeWait = 200 * time.Millisecond

// Server streams progressive frames of one scene over websockets and applies
// live edits between frames
type Server struct {
	// mu serializes frames with edits, so an edit never lands mid-frame
	mu       sync.Mutex
	renderer *renderer.Progressive
	scene    *scene.Scene
	fps      int
	logger   zerolog.Logger

	startTime time.Time
	lastFrame []byte // encoded FrameMessage of the newest frame

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool

	upgrader websocket.Upgrader
}

// FrameMessage is broadcast to /ws clients after every frame
type FrameMessage struct {
	FrameIndex int    `json:"frame_index"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Image      string `json:"image"` // Base64 encoded PNG
	Samples    int    `json:"samples"`
	ElapsedMs  int64  `json:"elapsed_ms"`
}

// NewServer creates a server around a progressive renderer. fps caps the frame
// rate of Run; zero renders as fast as possible.
func NewServer(r *renderer.Progressive, fps int, logger zerolog.Logger) *Server {
	return &Server{
		renderer:  r,
		scene:     r.Scene(),
		fps:       fps,
		logger:    logger,
		startTime: time.Now(),
		clients:   map[*websocket.Conn]bool{},
		upgrader:  websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
	}
}

// Handler returns the HTTP routes of the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleFrames)
	mux.HandleFunc("/control", s.handleControl)
	mux.HandleFunc("/inspect", s.handleInspect)
	mux.HandleFunc("/scenes", s.handleScenes)
	mux.HandleFunc("/health", s.handleHealth)
	return mux
}

// Step renders one frame and broadcasts it to every connected client
func (s *Server) Step(ctx context.Context) error {
	s.mu.Lock()
	img, stats, err := s.renderer.RenderFrame(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	data, err := imageToBase64PNG(img)
	if err != nil {
		return err
	}
	b, err := json.Marshal(FrameMessage{
		FrameIndex: stats.FrameIndex,
		Width:      img.Bounds().Dx(),
		Height:     img.Bounds().Dy(),
		Image:      data,
		Samples:    stats.SamplesPerPixel,
		ElapsedMs:  stats.Duration.Milliseconds(),
	})
	if err != nil {
		return err
	}

	s.clientsMu.Lock()
	s.lastFrame = b
	s.clientsMu.Unlock()

	s.broadcast(b)
	return nil
}

// Run renders frames until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	var tick <-chan time.Time
	if s.fps > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(s.fps))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}

		if err := s.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
	}
}

// ListenAndServe serves the routes on addr and runs the render loop until ctx
// is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler()}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		err := s.Run(ctx)
		// Stop serving once frames stop
		cancel()
		loopErr <- err
	}()

	go func() {
		<-ctx.Done()
		shutdown, done := context.WithTimeout(context.Background(), time.Second)
		defer done()
		_ = srv.Shutdown(shutdown)
	}()

	s.logger.Info().Str("addr", addr).Msg("preview server listening")
	err := srv.ListenAndServe()
	cancel()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}

	if runErr := <-loopErr; err == nil && !errors.Is(runErr, context.Canceled) {
		err = runErr
	}
	return err
}

// ClientCount returns the number of connected frame clients
func (s *Server) ClientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}

func (s *Server) handleFrames(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug().Err(err).Msg("upgrade /ws")
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	last := s.lastFrame
	if last != nil {
		// New clients start from the newest frame
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		_ = conn.WriteMessage(websocket.TextMessage, last)
	}
	s.clientsMu.Unlock()

	s.logger.Debug().Str("remote", r.RemoteAddr).Msg("frame client connected")

	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// broadcast sends b to every client and drops clients whose write fails
func (s *Server) broadcast(b []byte) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for c := range s.clients {
		c.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			s.logger.Debug().Err(err).Msg("write frame, dropping client")
			delete(s.clients, c)
			c.Close()
		}
	}
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status     string  `json:"status"`
	FrameIndex int     `json:"frame_index"`
	Shapes     int     `json:"shapes"`
	Accumulate bool    `json:"accumulate"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Clients    int     `json:"clients"`
	UptimeS    float64 `json:"uptime_s"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	width, height := s.renderer.Size()
	resp := HealthResponse{
		Status:     "ok",
		FrameIndex: s.scene.FrameIndex,
		Shapes:     s.scene.GetPrimitiveCount(),
		Accumulate: s.scene.Accumulate,
		Width:      width,
		Height:     height,
	}
	s.mu.Unlock()

	resp.Clients = s.ClientCount()
	resp.UptimeS = time.Since(s.startTime).Seconds()
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scene.List())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// imageToBase64PNG converts an image to base64-encoded PNG
func imageToBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
