package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
)

// Handler serves the static client bundle.
type Handler struct {
	dir   string
	files http.Handler
}

// NewHandler creates a handler serving files from dir. A missing directory
// is logged; requests then get 404 instead of failing startup.
func NewHandler(dir string) *Handler {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		log.Printf("Warning: client directory %q not found, static files will not be served", dir)
	}
	return &Handler{
		dir:   dir,
		files: http.FileServer(http.Dir(dir)),
	}
}

// RegisterRoutes mounts the bundle at the root. Register it after the API
// routes so it only catches what they don't.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.PathPrefix("/").Handler(h).Methods(http.MethodGet, http.MethodHead)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.files.ServeHTTP(w, r)
}
