package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"booklingo/internal/contextutil"
	"booklingo/internal/service"
)

// StatusHandler serves the job status surface polled by clients.
type StatusHandler struct {
	bookService service.BookService
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(bookService service.BookService) *StatusHandler {
	return &StatusHandler{bookService: bookService}
}

// ServeHTTP handles GET /api/books/{id}/status.
//
// swagger:route GET /api/books/{id}/status bookStatus
//
// # Processing status of a book
//
// Returns status, current_chapter, total_chapters and progress (0-100).
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	report, err := h.bookService.Status(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to get book status")
		return
	}
	writeJSON(w, ctx, http.StatusOK, report)
}

// ChapterResponse is one chapter of a book.
//
// swagger:model ChapterResponse
type ChapterResponse struct {
	ID        string `json:"id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
	IsAdapted bool   `json:"is_adapted"`
	Reasoning string `json:"reasoning,omitempty"`
}

// ChaptersResponse lists a book's chapters in order.
//
// swagger:model ChaptersResponse
type ChaptersResponse struct {
	BookID   string            `json:"book_id"`
	Chapters []ChapterResponse `json:"chapters"`
}

// ChaptersHandler lists chapters.
type ChaptersHandler struct {
	bookService service.BookService
}

// NewChaptersHandler creates a new ChaptersHandler.
func NewChaptersHandler(bookService service.BookService) *ChaptersHandler {
	return &ChaptersHandler{bookService: bookService}
}

// ServeHTTP handles GET /api/books/{id}/chapters.
func (h *ChaptersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	bookID := chi.URLParam(r, "id")

	chapters, err := h.bookService.Chapters(ctx, bookID)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list chapters")
		return
	}

	resp := ChaptersResponse{BookID: bookID, Chapters: make([]ChapterResponse, 0, len(chapters))}
	for _, ch := range chapters {
		resp.Chapters = append(resp.Chapters, ChapterResponse{
			ID:        ch.ID,
			Number:    ch.Number,
			Title:     ch.Title,
			Content:   ch.Content,
			WordCount: ch.WordCount,
			IsAdapted: ch.IsAdapted,
			Reasoning: ch.Reasoning,
		})
	}
	writeJSON(w, ctx, http.StatusOK, resp)
}

// CancelResponse reports the outcome of a cancel request.
//
// swagger:model CancelResponse
type CancelResponse struct {
	BookID  string `json:"book_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// CancelHandler cancels processing of a book.
type CancelHandler struct {
	bookService service.BookService
}

// NewCancelHandler creates a new CancelHandler.
func NewCancelHandler(bookService service.BookService) *CancelHandler {
	return &CancelHandler{bookService: bookService}
}

// ServeHTTP handles POST /api/books/{id}/cancel.
// A running adaptation stops before its next chapter, so the response may
// still report processing.
func (h *CancelHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	res, err := h.bookService.Cancel(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to cancel processing")
		return
	}

	msg := "Processing is not running"
	code := http.StatusConflict
	if res.Accepted {
		msg = "Cancellation requested"
		code = http.StatusAccepted
	}
	writeJSON(w, ctx, code, CancelResponse{
		BookID:  res.BookID,
		Status:  string(res.Status),
		Message: msg,
	})
}

// AdaptChapterRequest is the optional body of an adapt request.
//
// swagger:model AdaptChapterRequest
type AdaptChapterRequest struct {
	// Level overrides the book's CEFR level.
	Level string `json:"level,omitempty"`
}

// AdaptChapterResponse identifies the queued job.
//
// swagger:model AdaptChapterResponse
type AdaptChapterResponse struct {
	BookID        string `json:"book_id"`
	ChapterNumber int    `json:"chapter_number"`
	JobID         string `json:"job_id"`
	Status        string `json:"status"`
}

// AdaptChapterHandler queues re-adaptation of one chapter.
type AdaptChapterHandler struct {
	bookService service.BookService
}

// NewAdaptChapterHandler creates a new AdaptChapterHandler.
func NewAdaptChapterHandler(bookService service.BookService) *AdaptChapterHandler {
	return &AdaptChapterHandler{bookService: bookService}
}

// ServeHTTP handles POST /api/books/{id}/chapters/{number}/adapt.
func (h *AdaptChapterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	bookID := chi.URLParam(r, "id")
	number, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Chapter number must be an integer", "invalid_input")
		return
	}

	var req AdaptChapterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", "invalid_input")
		return
	}

	jobID, err := h.bookService.AdaptChapter(ctx, bookID, number, req.Level)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to queue chapter adaptation")
		return
	}
	writeJSON(w, ctx, http.StatusAccepted, AdaptChapterResponse{
		BookID:        bookID,
		ChapterNumber: number,
		JobID:         jobID,
		Status:        "queued",
	})
}
