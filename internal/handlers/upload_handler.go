// -----------------------------------------------------------------------
// Upload handler - accepts multipart document uploads
// -----------------------------------------------------------------------

package handlers

import (
	"io"
	"net/http"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/lectio/internal/services/files"
)

// maxUploadBytes caps upload size at 20MB
const maxUploadBytes = 20 << 20

// UploadHandler handles document uploads
type UploadHandler struct {
	files  *files.Service
	logger arbor.ILogger
}

// NewUploadHandler creates an upload handler
func NewUploadHandler(fileService *files.Service, logger arbor.ILogger) *UploadHandler {
	return &UploadHandler{files: fileService, logger: logger}
}

// HandleUpload stores a multipart upload and returns its file ID
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer part.Close()

	data, err := io.ReadAll(part)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read upload")
		return
	}

	contentType := header.Header.Get("Content-Type")
	file, err := h.files.Save(header.Filename, contentType, data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"file_id":      file.ID,
		"filename":     file.Filename,
		"size":         file.Size,
		"content_type": file.ContentType,
	})
}
