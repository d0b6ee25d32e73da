package main

import (
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"ai-pokerbattle/server/state"
)

// embed the /web directory so the viewer ships in the binary
//
//go:embed web/*
var webFS embed.FS

func Router(st *state.Store) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	sub, _ := fs.Sub(webFS, "web")
	r.Handle("/web/*", http.StripPrefix("/web/", http.FileServer(http.FS(sub))))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/web/index.html", http.StatusFound)
	})

	r.Get("/api/health", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{"ok": true})
	})

	// Full viewer bundle: the state snapshot plus the most recent log and
	// thought lines.
	r.Get("/api/state", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, map[string]any{
			"game_state": st.Snapshot(),
			"logs":       st.Logs(20),
			"thoughts":   st.Thoughts(5),
		})
	})

	r.Get("/api/start", func(w http.ResponseWriter, req *http.Request) {
		st.SetPlaying(true)
		st.RequestCountdown()
		st.AddLog("🎮 Game started!")
		writeJSON(w, map[string]any{"status": "started"})
	})

	r.Get("/api/stop", func(w http.ResponseWriter, req *http.Request) {
		st.SetPlaying(false)
		st.AddLog("⏸️ Game paused")
		writeJSON(w, map[string]any{"status": "stopped"})
	})

	return r
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
