package demoserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/raysh454/reqs/internal/demoserver/docs" // registers the swagger doc
	"github.com/raysh454/reqs/internal/logging"
)

// EchoRecord is what the echo endpoints return and what /ws/requests streams.
type EchoRecord struct {
	Method     string            `json:"method"`
	URL        string            `json:"url"`
	Path       string            `json:"path"`
	Headers    map[string]string `json:"headers"`
	Args       map[string]string `json:"args"`
	Data       string            `json:"data"`
	JSON       any               `json:"json"`
	ReceivedAt time.Time         `json:"received_at"`
}

// DemoServer is an httpbin-style JSON echo server used to exercise reqs.
type DemoServer struct {
	cfg      Config
	router   chi.Router
	upgrader websocket.Upgrader
	feed     *feed
	logger   logging.Logger
}

// NewDemoServer creates a new demo server instance.
func NewDemoServer(cfg Config, logger logging.Logger) *DemoServer {
	if logger == nil {
		logger = logging.NewStderrLogger("demoserver")
	}
	s := &DemoServer{
		cfg:    cfg,
		router: chi.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// local demo tool; any origin may watch the feed
				return true
			},
		},
		feed:   newFeed(cfg.FeedBuffer),
		logger: logger,
	}
	s.routes()
	return s
}

// Handler returns the router, for httptest.NewServer and embedding.
func (s *DemoServer) Handler() http.Handler {
	return s.router
}

func (s *DemoServer) routes() {
	r := s.router

	r.Get("/get", s.handleEcho)
	r.Post("/post", s.handleEcho)
	r.Put("/put", s.handleEcho)
	r.Patch("/patch", s.handleEcho)
	r.Delete("/delete", s.handleEcho)
	r.HandleFunc("/anything", s.handleEcho)
	r.HandleFunc("/anything/*", s.handleEcho)

	r.HandleFunc("/status/{code}", s.handleStatus)
	r.HandleFunc("/delay/{ms}", s.handleDelay)
	r.Get("/text", s.handleText)

	r.Get("/ws/requests", s.handleRequestFeedWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// Start listens on cfg.Port until ctx is done, then shuts down gracefully.
func (s *DemoServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("demo server listening", logging.Field{Key: "addr", Value: srv.Addr})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("demo server shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// handleEcho godoc
// @Summary Echo the request back as JSON
// @Produce json
// @Success 200 {object} EchoRecord
// @Router /anything [get]
func (s *DemoServer) handleEcho(w http.ResponseWriter, r *http.Request) {
	rec, err := s.record(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	s.feed.publish(rec)
	writeJSON(w, http.StatusOK, rec)
}

func (s *DemoServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	code, err := strconv.Atoi(chi.URLParam(r, "code"))
	if err != nil || code < 200 || code > 599 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid status code"})
		return
	}
	writeJSON(w, code, map[string]any{"status": code, "text": http.StatusText(code)})
}

func (s *DemoServer) handleDelay(w http.ResponseWriter, r *http.Request) {
	ms, err := strconv.Atoi(chi.URLParam(r, "ms"))
	if err != nil || ms < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid delay"})
		return
	}
	d := time.Duration(ms) * time.Millisecond
	if s.cfg.MaxDelay > 0 && d > s.cfg.MaxDelay {
		d = s.cfg.MaxDelay
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-r.Context().Done():
		return
	case <-timer.C:
	}
	s.handleEcho(w, r)
}

func (s *DemoServer) handleText(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "this is not json\n")
}

func (s *DemoServer) handleRequestFeedWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrading to websocket", logging.Field{Key: "error", Value: err.Error()})
		return
	}
	defer conn.Close()

	sub := s.feed.subscribe()
	defer s.feed.unsubscribe(sub)

	// The reader only exists to notice the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return
		case rec, ok := <-sub:
			if !ok {
				return
			}
			if err := conn.WriteJSON(rec); err != nil {
				return
			}
		}
	}
}

func (s *DemoServer) record(r *http.Request) (EchoRecord, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return EchoRecord{}, fmt.Errorf("read body: %w", err)
	}

	headers := make(map[string]string, len(r.Header)+1)
	for k, vs := range r.Header {
		headers[k] = strings.Join(vs, ", ")
	}
	if r.Host != "" {
		headers["Host"] = r.Host
	}

	q := r.URL.Query()
	args := make(map[string]string, len(q))
	for k, vs := range q {
		args[k] = strings.Join(vs, ",")
	}

	rec := EchoRecord{
		Method:     r.Method,
		URL:        requestURL(r),
		Path:       r.URL.Path,
		Headers:    headers,
		Args:       args,
		Data:       string(body),
		ReceivedAt: time.Now().UTC(),
	}
	var parsed any
	if len(body) > 0 && json.Unmarshal(body, &parsed) == nil {
		rec.JSON = parsed
	}
	return rec, nil
}

func requestURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + r.URL.RequestURI()
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
