package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"booklingo/internal/contextutil"
	"booklingo/internal/service"
)

// multipartOverhead is allowed on top of the file size limit for form fields and boundaries.
const multipartOverhead = 1 << 20

// UploadHandler handles book uploads.
type UploadHandler struct {
	bookService    service.BookService
	maxUploadBytes int64
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(bookService service.BookService, maxUploadBytes int64) *UploadHandler {
	return &UploadHandler{
		bookService:    bookService,
		maxUploadBytes: maxUploadBytes,
	}
}

// UploadResponse is returned once a book is queued.
//
// swagger:model UploadResponse
type UploadResponse struct {
	BookID  string `json:"book_id"`
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// ServeHTTP handles multipart book uploads.
//
// swagger:route POST /api/books/upload uploadBook
//
// # Upload a PDF or EPUB book
//
// Form fields: file, title, level (A1-C2), should_adapt, target_language, user_id.
//
// responses:
//
//	'202':
//	  description: Book queued for processing
//	'400':
//	  description: Invalid form or unsupported format
//	'413':
//	  description: File too large
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if r.Method != http.MethodPost {
		logger.WarnContext(ctx, "method not allowed", "method", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", "")
		return
	}

	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	}
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large", "invalid_input")
			return
		}
		logger.WarnContext(ctx, "invalid multipart form", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid multipart form", "invalid_input")
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file", "invalid_input")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	shouldAdapt := true
	if v := strings.TrimSpace(r.FormValue("should_adapt")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "should_adapt must be a boolean", "invalid_input")
			return
		}
		shouldAdapt = b
	}

	res, err := h.bookService.Upload(ctx, service.UploadRequest{
		UserID:         r.FormValue("user_id"),
		Title:          r.FormValue("title"),
		Level:          r.FormValue("level"),
		TargetLanguage: r.FormValue("target_language"),
		ShouldAdapt:    shouldAdapt,
		FileName:       header.Filename,
		File:           file,
	})
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to upload book")
		return
	}

	writeJSON(w, ctx, http.StatusAccepted, UploadResponse{
		BookID:  res.BookID,
		JobID:   res.JobID,
		Status:  string(res.Status),
		Message: "Book uploaded successfully and queued for processing",
	})
}
