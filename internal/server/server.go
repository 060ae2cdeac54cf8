package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/raysh454/secrglue/internal/logging"
	_ "github.com/raysh454/secrglue/internal/server/docs"
	"github.com/raysh454/secrglue/internal/store"
)

// Server is the secretariat HTTP + WebSocket surface the page glue talks to.
type Server struct {
	cfg      Config
	store    *store.Store
	router   chi.Router
	upgrader websocket.Upgrader
	hub      *Hub
	pages    *pageRenderer
	logger   logging.Logger
}

// NewServer opens the store named by cfg and builds the router.
func NewServer(cfg Config) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewStdoutLogger("server")
	}
	if cfg.DBPath == "" {
		cfg.DBPath = ":memory:"
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 20
	}

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	if cfg.Seed {
		if err := st.Seed(context.Background(), store.DemoData()); err != nil {
			st.Close()
			return nil, fmt.Errorf("seeding store: %w", err)
		}
	}

	pages, err := newPageRenderer()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		store:  st,
		router: chi.NewRouter(),
		hub:    NewHub(logger),
		pages:  pages,
		logger: logger,
	}
	s.upgrader = websocket.Upgrader{CheckOrigin: s.checkOrigin}
	s.routes()
	return s, nil
}

// Store returns the underlying store for tests and tooling.
func (s *Server) Store() *store.Store { return s.store }

// Hub returns the slide event hub.
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) routes() {
	r := s.router

	r.Use(s.csrfMiddleware)

	r.Get("/secr/areas/", s.handleAreasPage)
	r.Get("/secr/groups/add/", s.handleGroupAddPage)
	r.Get("/secr/proceedings/", s.handleProceedingsPage)
	r.Get("/secr/proceedings/upload/", s.handleUploadPage)

	r.Get("/secr/areas/getpeople/", s.handleGetPeople)
	r.Get("/secr/areas/getemails/", s.handleGetEmails)
	r.Get("/secr/groups/get_ads/", s.handleGetADs)
	r.Post("/secr/proceedings/ajax/order-slide/", s.handleOrderSlide)

	r.Get("/secr/ws/slides", s.handleSlidesWS)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	fields := []logging.Field{
		{Key: "method", Value: r.Method},
		{Key: "path", Value: r.URL.Path},
	}

	if q := r.URL.Query(); len(q) > 0 {
		fields = append(fields, logging.Field{Key: "query", Value: q})
	}

	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch) {
		if bodyBytes, err := io.ReadAll(r.Body); err == nil {
			fields = append(fields, logging.Field{Key: "body", Value: string(bodyBytes)})
			r.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		}
	}

	s.logger.Info("http_request", fields...)

	s.router.ServeHTTP(w, r)
}

// Close disconnects websocket subscribers and closes the store.
func (s *Server) Close() {
	s.hub.Close()
	if s.store != nil {
		s.store.Close()
	}
}

// HTTPServer creates an *http.Server ready to ListenAndServe.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         s.cfg.ListenAddr,
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket feed
	}
}

// checkOrigin accepts websocket upgrades from pages on this host.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return sameHost(origin, r.Host)
}

// --- JSON helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
