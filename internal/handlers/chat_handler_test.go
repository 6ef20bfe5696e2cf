package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/lectio/internal/common"
	"github.com/ternarybob/lectio/internal/models"
	"github.com/ternarybob/lectio/internal/services/files"
)

// fakeRouter routes everything by a fixed decision
type fakeRouter struct {
	decision *models.RoutingDecision
}

func (f *fakeRouter) RouteMessage(message string, hasFile bool) *models.RoutingDecision {
	if hasFile {
		return &models.RoutingDecision{Agent: "document", Action: "process_document", Reason: "file"}
	}
	return f.decision
}

func (f *fakeRouter) GeneralChat(ctx context.Context, sessionID, message string) (string, error) {
	return "general reply", nil
}

func (f *fakeRouter) ExplainCapabilities() string { return "I have a Document Agent" }

// fakeExtraction returns a canned result
type fakeExtraction struct {
	result *models.ExtractionResult
}

func (f *fakeExtraction) ExtractStructured(rawMarkup string) *models.DocumentModel {
	return &models.DocumentModel{}
}

func (f *fakeExtraction) ProcessDocument(ctx context.Context, filePath, userMessage string) (*models.ExtractionResult, error) {
	return f.result, nil
}

// fakeSearch echoes the query
type fakeSearch struct{}

func (fakeSearch) SearchWeb(ctx context.Context, query, userMessage string) (string, error) {
	return "search answer for " + query, nil
}

// memoryHistory implements HistoryStorage in memory
type memoryHistory struct {
	entries []*models.ChatEntry
}

func (m *memoryHistory) SaveEntry(entry *models.ChatEntry) error {
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryHistory) RecentBySession(sessionID string, limit int) ([]*models.ChatEntry, error) {
	return m.entries, nil
}

func (m *memoryHistory) TrimSession(sessionID string, keep int) error { return nil }
func (m *memoryHistory) CountEntries() (int, error)                   { return len(m.entries), nil }
func (m *memoryHistory) CountSessions() (int, error)                  { return 1, nil }

// memoryFiles implements FileStorage in memory
type memoryFiles struct {
	byID map[string]*models.UploadedFile
}

func newMemoryFiles() *memoryFiles {
	return &memoryFiles{byID: make(map[string]*models.UploadedFile)}
}

func (m *memoryFiles) SaveFile(file *models.UploadedFile) error {
	m.byID[file.ID] = file
	return nil
}

func (m *memoryFiles) GetFile(id string) (*models.UploadedFile, error) {
	file, ok := m.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return file, nil
}

func (m *memoryFiles) ListOlderThan(cutoff time.Time) ([]*models.UploadedFile, error) {
	return nil, nil
}

func (m *memoryFiles) DeleteFile(id string) error { return nil }
func (m *memoryFiles) CountFiles() (int, error)   { return len(m.byID), nil }

func newTestChatHandler(t *testing.T, router *fakeRouter, extraction *fakeExtraction) (*ChatHandler, *files.Service, *memoryHistory) {
	t.Helper()
	fileService, err := files.NewService(&common.UploadsConfig{Dir: t.TempDir()}, newMemoryFiles(), common.GetLogger())
	require.NoError(t, err)
	history := &memoryHistory{}
	handler := NewChatHandler(router, extraction, fakeSearch{}, fileService, history, common.GetLogger())
	return handler, fileService, history
}

func postChat(t *testing.T, handler *ChatHandler, target string, req models.ChatRequest) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.HandleChat(rec, httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body)))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return rec, payload
}

func TestHandleChatGeneral(t *testing.T) {
	router := &fakeRouter{decision: &models.RoutingDecision{Agent: "router", Action: "general_chat", Reason: "default"}}
	handler, _, history := newTestChatHandler(t, router, &fakeExtraction{})

	rec, payload := postChat(t, handler, "/api/chat", models.ChatRequest{Message: "hi"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "general reply", payload["response"])
	assert.Equal(t, "router", payload["agent_used"])
	assert.NotEmpty(t, payload["session_id"])

	// The exchange is persisted
	require.Len(t, history.entries, 1)
	assert.Equal(t, "hi", history.entries[0].UserMessage)
	assert.Equal(t, "general reply", history.entries[0].Assistant)
}

func TestHandleChatCapabilities(t *testing.T) {
	router := &fakeRouter{decision: &models.RoutingDecision{Agent: "router", Action: "explain_capabilities", Reason: "asked"}}
	handler, _, _ := newTestChatHandler(t, router, &fakeExtraction{})

	_, payload := postChat(t, handler, "/api/chat", models.ChatRequest{Message: "what can you do"})
	assert.Contains(t, payload["response"], "Document Agent")
}

func TestHandleChatSearch(t *testing.T) {
	router := &fakeRouter{decision: &models.RoutingDecision{Agent: "web_search", Action: "search_web", Reason: "keywords"}}
	handler, _, _ := newTestChatHandler(t, router, &fakeExtraction{})

	_, payload := postChat(t, handler, "/api/chat", models.ChatRequest{Message: "latest news"})
	assert.Equal(t, "search answer for latest news", payload["response"])
}

func TestHandleChatDocumentFlow(t *testing.T) {
	extraction := &fakeExtraction{result: &models.ExtractionResult{
		Response:  "rendered document",
		Method:    "DocTags Parsing (m)",
		RawOutput: "<title>raw</title>",
	}}
	handler, fileService, _ := newTestChatHandler(t, &fakeRouter{}, extraction)

	file, err := fileService.Save("doc.jpg", "image/jpeg", []byte("img"))
	require.NoError(t, err)

	_, payload := postChat(t, handler, "/api/chat", models.ChatRequest{Message: "analyze", FileID: file.ID})
	assert.Equal(t, "rendered document", payload["response"])
	assert.Equal(t, "document", payload["agent_used"])

	// The raw side channel feeds the debug endpoint
	assert.Equal(t, "<title>raw</title>", handler.LastRawOutput())
}

func TestHandleChatValidation(t *testing.T) {
	handler, _, _ := newTestChatHandler(t, &fakeRouter{decision: &models.RoutingDecision{Action: "general_chat"}}, &fakeExtraction{})

	t.Run("empty message", func(t *testing.T) {
		rec, payload := postChat(t, handler, "/api/chat", models.ChatRequest{Message: "   "})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, payload["success"])
	})

	t.Run("wrong method", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.HandleChat(rec, httptest.NewRequest(http.MethodGet, "/api/chat", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	})
}

func TestHandleChatHTMLOption(t *testing.T) {
	router := &fakeRouter{decision: &models.RoutingDecision{Agent: "router", Action: "explain_capabilities", Reason: "asked"}}
	handler, _, _ := newTestChatHandler(t, router, &fakeExtraction{})

	_, payload := postChat(t, handler, "/api/chat?format=html", models.ChatRequest{Message: "help"})
	html, ok := payload["html"].(string)
	require.True(t, ok, "html field expected when format=html")
	assert.Contains(t, html, "<p>")
}

func TestHandleUpload(t *testing.T) {
	fileService, err := files.NewService(&common.UploadsConfig{Dir: t.TempDir()}, newMemoryFiles(), common.GetLogger())
	require.NoError(t, err)
	handler := NewUploadHandler(fileService, common.GetLogger())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "scan.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, req)

	// CreateFormFile sends application/octet-stream, which is not an accepted
	// document type
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unsupported file type")
}

func TestHandleUploadAcceptedType(t *testing.T) {
	fileService, err := files.NewService(&common.UploadsConfig{Dir: t.TempDir()}, newMemoryFiles(), common.GetLogger())
	require.NoError(t, err)
	handler := NewUploadHandler(fileService, common.GetLogger())

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", `form-data; name="file"; filename="scan.jpg"`)
	partHeader.Set("Content-Type", "image/jpeg")
	part, err := writer.CreatePart(partHeader)
	require.NoError(t, err)
	_, err = part.Write([]byte("image bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	rec := httptest.NewRecorder()
	handler.HandleUpload(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["success"])
	assert.True(t, strings.HasPrefix(payload["file_id"].(string), "file_"))
}
