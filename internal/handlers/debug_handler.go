// -----------------------------------------------------------------------
// Debug handler - exposes the raw model output of the last extraction
// -----------------------------------------------------------------------

package handlers

import (
	"net/http"
)

// DebugHandler serves diagnostic endpoints
type DebugHandler struct {
	chat *ChatHandler
}

// NewDebugHandler creates a debug handler
func NewDebugHandler(chat *ChatHandler) *DebugHandler {
	return &DebugHandler{chat: chat}
}

// HandleLastDocTags returns the unprocessed model output of the most recent
// document extraction. Useful when the rendered response looks wrong and the
// question is whether the model or the pipeline is at fault.
func (h *DebugHandler) HandleLastDocTags(w http.ResponseWriter, r *http.Request) {
	raw := h.chat.LastRawOutput()
	if raw == "" {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"raw":     "",
			"note":    "no document has been processed yet",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"raw":     raw,
		"length":  len(raw),
	})
}
