package server

import (
	"net/http"

	"github.com/ternarybob/lectio/internal/handlers"
)

// setupRoutes builds the route table
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	chatHandler := handlers.NewChatHandler(
		s.app.Router,
		s.app.Extraction,
		s.app.Search,
		s.app.Files,
		s.app.Storage.HistoryStorage(),
		s.app.Logger,
	)
	uploadHandler := handlers.NewUploadHandler(s.app.Files, s.app.Logger)
	statusHandler := handlers.NewStatusHandler(s.app.Config, s.app.Storage, s.app.Logger)
	debugHandler := handlers.NewDebugHandler(chatHandler)

	mux.HandleFunc("/api/chat", chatHandler.HandleChat)
	mux.HandleFunc("/api/upload", uploadHandler.HandleUpload)
	mux.HandleFunc("/api/health", statusHandler.HandleHealth)
	mux.HandleFunc("/api/stats", statusHandler.HandleStats)
	mux.HandleFunc("/api/debug/last-doctags", debugHandler.HandleLastDocTags)

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		statusHandler.HandleHealth(w, r)
	})

	return mux
}
