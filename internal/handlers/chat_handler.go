// -----------------------------------------------------------------------
// Chat handler - routes each message to an agent and records the exchange
// -----------------------------------------------------------------------

package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/interfaces"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/files"
	"github.com/yuin/goldmark"
)

// sessionHistoryCap is the number of exchanges kept per session
const sessionHistoryCap = 10

// ChatHandler handles chat requests
type ChatHandler struct {
	router     interfaces.RouterService
	extraction interfaces.ExtractionService
	search     interfaces.SearchService
	files      *files.Service
	history    interfaces.HistoryStorage
	markdown   goldmark.Markdown
	logger     arbor.ILogger

	mu            sync.Mutex
	lastRawOutput string
}

// NewChatHandler creates a chat handler
func NewChatHandler(
	router interfaces.RouterService,
	extraction interfaces.ExtractionService,
	search interfaces.SearchService,
	fileService *files.Service,
	history interfaces.HistoryStorage,
	logger arbor.ILogger,
) *ChatHandler {
	return &ChatHandler{
		router:     router,
		extraction: extraction,
		search:     search,
		files:      fileService,
		history:    history,
		markdown:   goldmark.New(),
		logger:     logger,
	}
}

// HandleChat processes a chat message end to end
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" && req.FileID == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.SessionID == "" {
		req.SessionID = common.NewSessionID()
	}

	start := time.Now()
	decision := h.router.RouteMessage(req.Message, req.FileID != "")

	h.logger.Info().
		Str("session_id", req.SessionID).
		Str("agent", decision.Agent).
		Str("action", decision.Action).
		Str("reason", decision.Reason).
		Msg("Message routed")

	response, err := h.dispatch(r, &req, decision)
	if err != nil {
		h.logger.Error().Err(err).Str("agent", decision.Agent).Msg("Agent failed")
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	elapsed := math.Round(time.Since(start).Seconds()*100) / 100

	h.saveExchange(&req, decision, response, elapsed)

	// html is an optional convenience for browser clients; the canonical
	// response stays markdown
	var html string
	if r.URL.Query().Get("format") == "html" {
		var buf bytes.Buffer
		if err := h.markdown.Convert([]byte(response), &buf); err == nil {
			html = buf.String()
		}
	}

	payload := map[string]interface{}{
		"success":         true,
		"response":        response,
		"agent_used":      decision.Agent,
		"processing_time": elapsed,
		"session_id":      req.SessionID,
	}
	if html != "" {
		payload["html"] = html
	}
	writeJSON(w, http.StatusOK, payload)
}

// dispatch runs the routed action
func (h *ChatHandler) dispatch(r *http.Request, req *models.ChatRequest, decision *models.RoutingDecision) (string, error) {
	ctx := r.Context()

	switch decision.Action {
	case "process_document":
		if req.FileID == "" {
			return "Please upload a document first, then ask me to analyze it.", nil
		}
		file, err := h.files.Resolve(req.FileID)
		if err != nil {
			return "", fmt.Errorf("uploaded file not found: %w", err)
		}
		result, err := h.extraction.ProcessDocument(ctx, file.Path, req.Message)
		if err != nil {
			return "", err
		}
		h.mu.Lock()
		h.lastRawOutput = result.RawOutput
		h.mu.Unlock()
		return result.Response, nil

	case "search_web":
		return h.search.SearchWeb(ctx, req.Message, req.Message)

	case "explain_capabilities":
		return h.router.ExplainCapabilities(), nil

	default:
		return h.router.GeneralChat(ctx, req.SessionID, req.Message)
	}
}

// saveExchange persists the exchange and trims the session to its cap.
// Storage failures are logged, never surfaced to the client.
func (h *ChatHandler) saveExchange(req *models.ChatRequest, decision *models.RoutingDecision, response string, elapsed float64) {
	entry := &models.ChatEntry{
		ID:             common.NewEntryID(),
		SessionID:      req.SessionID,
		UserMessage:    req.Message,
		Assistant:      response,
		AgentUsed:      decision.Agent,
		ProcessingTime: elapsed,
		CreatedAt:      time.Now(),
	}
	if err := h.history.SaveEntry(entry); err != nil {
		h.logger.Warn().Err(err).Str("session_id", req.SessionID).Msg("Failed to save chat entry")
		return
	}
	if err := h.history.TrimSession(req.SessionID, sessionHistoryCap); err != nil {
		h.logger.Warn().Err(err).Str("session_id", req.SessionID).Msg("Failed to trim session history")
	}
}

// LastRawOutput returns the raw model output of the most recent document
// extraction, for the debug endpoint
func (h *ChatHandler) LastRawOutput() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastRawOutput
}
