package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/alnah/marrow"
	"github.com/alnah/marrow/internal/process"
)

// Options configures a Server.
type Options struct {
	Viewer    *marrow.Viewer
	Document  string         // opened by GET /, empty for the welcome page
	Log       *slog.Logger   // defaults to a discarding logger
	Opener    process.Opener // external links, defaults to process.SystemOpener
	Clipboard Clipboard      // defaults to SystemClipboard
	Quit      func()         // called on quit_app, may be nil
}

// Server is the HTTP display shell of a Viewer.
type Server struct {
	router   chi.Router
	viewer   *marrow.Viewer
	document string
	log      *slog.Logger
	opener   process.Opener
	clip     Clipboard
	quit     func()
	views    *registry
	upgrader websocket.Upgrader
}

// New creates and configures the HTTP server.
func New(opts Options) *Server {
	s := &Server{
		viewer:   opts.Viewer,
		document: opts.Document,
		log:      opts.Log,
		opener:   opts.Opener,
		clip:     opts.Clipboard,
		quit:     opts.Quit,
		views:    newRegistry(),
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.opener == nil {
		s.opener = process.SystemOpener{}
	}
	if s.clip == nil {
		s.clip = SystemClipboard{}
	}
	if s.quit == nil {
		s.quit = func() {}
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Views returns the number of open views.
func (s *Server) Views() int {
	return s.views.len()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/view/{viewID}", s.handleView)
	r.Get("/ws", s.handleSocket)
	r.Get("/open", s.handleOpen)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// handleIndex opens the initial document in a new view.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := s.viewer.Open(s.document)
	if view.Err != nil {
		s.log.Warn("document failed to load", "path", s.document, "error", view.Err)
	}
	s.writePage(w, s.views.add(view), view)
}

// handleView re-serves an open view. Unknown ids go back to the start page.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "viewID")
	view, ok := s.views.get(id)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	s.writePage(w, id, view)
}

func (s *Server) writePage(w http.ResponseWriter, id string, view *marrow.View) {
	page, err := s.viewer.BuildPage(view, s.viewer.Settings().For(view.Ext), socketPath(id))
	if err != nil {
		s.log.Error("building page", "view", id, "error", err)
		jsonError(w, "failed to build page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(page)
}

func socketPath(id string) string {
	return "/ws?view=" + id
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
