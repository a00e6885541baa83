package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/task-extract-api/internal/api/shared"
	"github.com/phrazzld/task-extract-api/internal/domain"
	"github.com/phrazzld/task-extract-api/internal/output"
	"github.com/phrazzld/task-extract-api/internal/platform/logger"
	"github.com/phrazzld/task-extract-api/internal/service"
)

// UploadField is the multipart form field that carries the document.
const UploadField = "file"

// XLSXFilename is the attachment name of the spreadsheet export.
const XLSXFilename = "tasks.xlsx"

// WelcomeMessage is returned by the root endpoint.
const WelcomeMessage = "Welcome to the PDF Task Extraction API!"

// MessageResponse is a plain informational response.
type MessageResponse struct {
	Message string `json:"message"`
}

// ExtractionHandler handles document upload requests
type ExtractionHandler struct {
	extractionService service.ExtractionService
	logger            *slog.Logger
}

// NewExtractionHandler creates a new ExtractionHandler
func NewExtractionHandler(extractionService service.ExtractionService, logger *slog.Logger) *ExtractionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractionHandler{
		extractionService: extractionService,
		logger:            logger.With("component", "extraction_handler"),
	}
}

// Root handles GET / requests
func (h *ExtractionHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// ExtractTasks handles POST /extract-tasks/ requests and responds with the
// {"tasks": [...]} envelope.
func (h *ExtractionHandler) ExtractTasks(w http.ResponseWriter, r *http.Request) {
	result, ok := h.extract(w, r)
	if !ok {
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ExtractTasksXLSX handles POST /extract-tasks/xlsx requests and responds
// with the same tasks as a spreadsheet attachment.
func (h *ExtractionHandler) ExtractTasksXLSX(w http.ResponseWriter, r *http.Request) {
	result, ok := h.extract(w, r)
	if !ok {
		return
	}

	body, err := output.WriteXLSX(result)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgProcessing, err)
		return
	}
	shared.RespondWithAttachment(w, r, output.XLSXContentType, XLSXFilename, body)
}

// extract runs the upload through the extraction service. On failure the
// error response has already been written and ok is false.
func (h *ExtractionHandler) extract(w http.ResponseWriter, r *http.Request) (*domain.ExtractionResult, bool) {
	log := logger.FromContext(r.Context(), h.logger)

	part, err := shared.FilePart(r, UploadField)
	if err != nil {
		h.respondWithError(w, r, err)
		return nil, false
	}
	defer func() { _ = part.Close() }()

	log.Debug("upload received", "filename", part.FileName())

	result, err := h.extractionService.ExtractUpload(r.Context(), part.FileName(), part)
	if err != nil {
		h.respondWithError(w, r, err)
		return nil, false
	}
	return result, true
}

func (h *ExtractionHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
