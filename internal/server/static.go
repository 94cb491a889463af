package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var mimeTypes = map[string]string{
	".html": "text/html",
	".js":   "text/javascript",
	".css":  "text/css",
}

// StaticHandler serves the browser client from a directory on disk.
type StaticHandler struct {
	root string
	log  *slog.Logger
}

// NewStaticHandler serves files under root. "/" maps to index.html.
func NewStaticHandler(root string, logger *slog.Logger) *StaticHandler {
	abs, err := filepath.Abs(root)
	if err != nil {
		logger.Warn("Cannot resolve public directory; using it as given", "dir", root, "error", err)
		abs = filepath.Clean(root)
	}
	return &StaticHandler{root: abs, log: logger}
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rel := r.URL.Path
	if rel == "" || rel == "/" {
		rel = "/index.html"
	}

	path := filepath.Join(h.root, filepath.FromSlash(rel))
	if !h.contains(path) {
		h.log.Warn("Rejected path outside public directory", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	if info, err := os.Stat(path); err == nil && info.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		h.log.Error("Error reading static file", "path", path, "error", err)
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType(path, content))
	if _, err := w.Write(content); err != nil {
		h.log.Debug("Error writing static file", "path", path, "error", err)
	}
}

func (h *StaticHandler) contains(path string) bool {
	return path == h.root || strings.HasPrefix(path, h.root+string(filepath.Separator))
}

// contentType maps the known client extensions directly and sniffs the rest.
func contentType(path string, content []byte) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	detected := mimetype.Detect(content)
	if detected.Is("application/octet-stream") {
		return "text/plain"
	}
	return detected.String()
}
