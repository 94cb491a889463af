// Package server wires HTTP handlers into a ServeMux for the presence
// server via routing helpers.
package server

import (
	"log/slog"
	"net/http"
)

// SetupRoutes configures and returns an HTTP ServeMux with all application routes.
// WebSocket upgrades are accepted on /ws and on / (the browser client dials
// its page's own origin); other requests to / are served from the public
// directory.
func SetupRoutes(hub *Hub, cfg Config, logger *slog.Logger) *http.ServeMux {
	ws := NewWebSocketHandler(hub, cfg, logger)
	static := NewStaticHandler(cfg.PublicDir, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", HealthHandler(hub))
	mux.Handle("/ws", ws)
	mux.Handle("/", upgradeOr(ws, static))
	return mux
}
