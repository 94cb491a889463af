// Package server exposes HTTP handlers, including WebSocket upgrades and
// health checks.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
)

// NewWebSocketHandler returns a handler that upgrades GET requests to
// WebSocket connections and hands each one to hub as a new participant.
func NewWebSocketHandler(hub *Hub, cfg Config, logger *slog.Logger) http.HandlerFunc {
	origins := newOriginPolicy(cfg.AllowedOrigins, cfg.AllowMissingOrigin, logger)
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     origins.check,
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed. WebSocket endpoint only accepts GET requests.", http.StatusMethodNotAllowed)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("WebSocket upgrade failed", "remote_addr", r.RemoteAddr, "error", err)
			return
		}

		client := NewClient(conn, hub, r.RemoteAddr, cfg)

		// The hub assigns the identity and launches the pump goroutines.
		if !hub.Connect(client) {
			logger.Info("Hub stopped; refusing connection", "remote_addr", r.RemoteAddr)
			client.closeConnection()
		}
	}
}

type healthResponse struct {
	Status string `json:"status"`
	Online int    `json:"online"`
}

// HealthHandler reports that the server is running and how many
// participants are online.
func HealthHandler(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok", Online: hub.Count()})
	}
}

// upgradeOr routes WebSocket upgrade requests to ws and everything else to next.
func upgradeOr(ws, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if websocket.IsWebSocketUpgrade(r) {
			ws.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}
