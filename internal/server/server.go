package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/yuin/goldmark"

	"github.com/TobiSchelling/ReelIQ/internal/benchmark"
	"github.com/TobiSchelling/ReelIQ/internal/database"
	"github.com/TobiSchelling/ReelIQ/internal/diagnostic"
	"github.com/TobiSchelling/ReelIQ/internal/llm"
	"github.com/TobiSchelling/ReelIQ/internal/output"
	"github.com/TobiSchelling/ReelIQ/internal/reel"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

var md = goldmark.New()

// Options configure a Server.
type Options struct {
	UserID   string
	Email    string
	Provider llm.Provider
	Workers  int
}

// Server serves the reel API and the HTML report pages for one user.
type Server struct {
	db    *database.DB
	opts  Options
	pages map[string]*template.Template
	mux   *http.ServeMux
	now   func() time.Time
}

// New creates a new Server.
func New(db *database.DB, opts Options) (*Server, error) {
	funcMap := template.FuncMap{
		"markdown": renderMarkdown,
		"pct":      func(v float64, places int) string { return strconv.FormatFloat(v*100, 'f', places, 64) + "%" },
		"tag":      output.TagFor,
		"created": func(raw *string) string {
			if t, ok := reel.ParseTime(raw); ok {
				return t.Format("2006-01-02")
			}
			return "unknown"
		},
		"deref": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
	}

	// Parse base template first
	base, err := template.New("base.html").Funcs(funcMap).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("parsing base template: %w", err)
	}

	// For each page template, clone the base and parse the page into the clone.
	// This gives each page its own {{define "content"}} and {{define "title"}}.
	pageNames := []string{"index.html", "reel.html"}
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("cloning base for %s: %w", name, err)
		}
		_, err = clone.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = clone
	}

	s := &Server{db: db, opts: opts, pages: pages, mux: http.NewServeMux(), now: time.Now}
	s.routes()
	return s, nil
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	// Static files
	staticSub, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticSub))))

	// Pages
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /reel/{id}", s.handleReelPage)

	// API
	s.mux.HandleFunc("GET /api/reels", s.handleListReels)
	s.mux.HandleFunc("POST /api/reels", s.handleAddReel)
	s.mux.HandleFunc("GET /api/reels/{id}", s.handleGetReel)
	s.mux.HandleFunc("DELETE /api/reels/{id}", s.handleDeleteReel)
	s.mux.HandleFunc("POST /api/import", s.handleImport)
	s.mux.HandleFunc("POST /api/score", s.handleScore)
	s.mux.HandleFunc("POST /api/prescore", s.handlePreScore)
	s.mux.HandleFunc("POST /api/brief", s.handleBrief)
	s.mux.HandleFunc("GET /api/patterns", s.handlePatterns)
	s.mux.HandleFunc("GET /api/monthly", s.handleMonthly)
	s.mux.HandleFunc("GET /api/digest", s.handleDigest)
	s.mux.HandleFunc("GET /api/benchmark", s.handleBenchmark)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	reels, err := s.db.GetUserReels(s.opts.UserID)
	if err != nil {
		log.Printf("Error loading reels: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	s.render(w, "index.html", map[string]any{
		"Reels":     reels,
		"Benchmark": benchmark.ComputeReport(reels),
	})
}

func (s *Server) handleReelPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	rl, err := s.db.GetReel(s.opts.UserID, id)
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if rl == nil {
		http.NotFound(w, r)
		return
	}

	s.render(w, "reel.html", map[string]any{
		"Reel":       rl,
		"Diagnostic": diagnostic.Run(diagnostic.InputFromReel(*rl)),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	tmpl, ok := s.pages[name]
	if !ok {
		log.Printf("Template %s not found", name)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base.html", data); err != nil {
		log.Printf("Error rendering template %s: %v", name, err)
	}
}

func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String()) //nolint: gosec
}

// Serve starts the HTTP server on the given port.
func Serve(db *database.DB, opts Options, port int) error {
	srv, err := New(db, opts)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	log.Printf("Server listening on http://%s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}
