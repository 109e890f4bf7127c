// main.go
// Wires everything together: load config from the environment, upgrade
// HTTP to WebSocket, register each connection with the manager and spin
// up the per-connection goroutines.
// Keep CheckOrigin permissive only for local use; in production lock it down.

package main

import (
	"log/slog"
	"net/http"
	"os"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, validate the origin here.
	},
}

func (m *Manager) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "upgrade failed", http.StatusBadRequest)
		return
	}

	client := &Client{
		id:      uuid.NewString(),
		socket:  conn,
		send:    make(chan []byte, m.sendBuf),
		manager: m,
	}
	m.register <- client

	go client.read()
	go client.write()
}

func main() {
	_ = godotenv.Load()

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.LogLevel),
	}))
	slog.SetDefault(logger)

	manager := newManager(cfg, logger)
	go manager.run()

	router := mux.NewRouter()
	router.HandleFunc("/ws", manager.serveWS)
	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	logger.Info("listening", "addr", cfg.Addr())
	if err := http.ListenAndServe(cfg.Addr(), router); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func logLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
