// -----------------------------------------------------------------------
// Status handlers - health check and system statistics
// -----------------------------------------------------------------------

package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
)

// StatusHandler serves health and statistics endpoints
type StatusHandler struct {
	cfg     *common.Config
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewStatusHandler creates a status handler
func NewStatusHandler(cfg *common.Config, storage interfaces.StorageManager, logger arbor.ILogger) *StatusHandler {
	return &StatusHandler{cfg: cfg, storage: storage, logger: logger}
}

// HandleHealth reports service liveness
func (h *StatusHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"version": common.Version,
	})
}

// HandleStats reports storage counters and active configuration
func (h *StatusHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	history := h.storage.HistoryStorage()

	entries, err := history.CountEntries()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count chat entries")
	}
	sessions, err := history.CountSessions()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count sessions")
	}
	uploads, err := h.storage.FileStorage().CountFiles()
	if err != nil {
		h.logger.Warn().Err(err).Msg("Failed to count uploads")
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":        true,
		"total_messages": entries,
		"sessions":       sessions,
		"uploads":        uploads,
		"provider":       h.cfg.Generation.Provider,
		"document_model": h.cfg.Generation.DocumentModel,
		"router_model":   h.cfg.Generation.RouterModel,
	})
}
