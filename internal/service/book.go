package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_book_store.go -package=mocks booklingo/internal/service BookStore,JobQueue,StatusReader
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_book_service.go -package=mocks -mock_names=BookService=MockBookService booklingo/internal/service BookService

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"booklingo/internal/apperr"
	"booklingo/internal/contextutil"
	"booklingo/internal/document"
	"booklingo/internal/ingest"
	"booklingo/internal/status"
	"booklingo/internal/storage"
)

// Levels are the accepted CEFR levels.
var Levels = []string{"A1", "A2", "B1", "B2", "C1", "C2"}

// BookStore is the book persistence the service needs.
type BookStore interface {
	Create(ctx context.Context, book *storage.Book) error
	Get(ctx context.Context, id string) (*storage.Book, error)
	SetStatus(ctx context.Context, id string, status storage.BookStatus, errMsg, errKind string) error
	RequestCancel(ctx context.Context, id string) error
	ClearCancel(ctx context.Context, id string) error
	ListChapters(ctx context.Context, bookID string) ([]storage.Chapter, error)
	GetChapter(ctx context.Context, bookID string, number int) (*storage.Chapter, error)
}

// JobQueue accepts background jobs.
type JobQueue interface {
	Enqueue(ctx context.Context, job *storage.Job) error
	CancelQueuedForBook(ctx context.Context, bookID string) (int64, error)
}

// StatusReader reports a book's processing status.
type StatusReader interface {
	Status(ctx context.Context, bookID string) (*status.Report, error)
}

// UploadRequest is a book upload in the domain layer.
type UploadRequest struct {
	UserID         string
	Title          string
	Level          string
	TargetLanguage string
	ShouldAdapt    bool
	FileName       string
	File           io.Reader
}

// UploadResult identifies the queued book.
type UploadResult struct {
	BookID string
	JobID  string
	Status status.Status
}

// CancelResult is the book status after a cancel request.
type CancelResult struct {
	BookID string
	Status status.Status
	// Accepted is false when the book was not queued or processing.
	Accepted bool
}

// BookService provides book ingestion operations.
type BookService interface {
	// Upload stores the file, creates the book and queues it for processing.
	Upload(ctx context.Context, req UploadRequest) (*UploadResult, error)
	// Status returns the book's job status report.
	Status(ctx context.Context, bookID string) (*status.Report, error)
	// Chapters lists the book's chapters in order.
	Chapters(ctx context.Context, bookID string) ([]storage.Chapter, error)
	// Cancel stops a queued or running book.
	Cancel(ctx context.Context, bookID string) (*CancelResult, error)
	// AdaptChapter queues re-adaptation of one chapter. An empty level keeps the book's level.
	AdaptChapter(ctx context.Context, bookID string, number int, level string) (string, error)
}

// Options configures the book service.
type Options struct {
	UploadDir       string
	MaxUploadBytes  int64
	DefaultLanguage string
}

type bookService struct {
	books  BookStore
	jobs   JobQueue
	status StatusReader
	opts   Options
	logger *slog.Logger
}

// NewBookService creates a new BookService.
func NewBookService(books BookStore, jobs JobQueue, statusReader StatusReader, opts Options) BookService {
	return &bookService{
		books:  books,
		jobs:   jobs,
		status: statusReader,
		opts:   opts,
		logger: slog.Default(),
	}
}

// Upload validates the request, writes the file to the upload dir and queues a
// process_book job.
func (s *bookService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	logger := contextutil.LoggerOr(ctx, s.logger)

	level, err := normalizeLevel(req.Level)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, &ValidationError{Field: "user_id", Message: "cannot be empty"}
	}
	if req.File == nil || req.FileName == "" {
		return nil, &ValidationError{Field: "file", Message: "is required"}
	}
	if !document.IsSupported(req.FileName) {
		return nil, apperr.Errorf(apperr.KindUnsupportedFormat, "service.Upload",
			"only PDF and EPUB files are supported, got %q", filepath.Base(req.FileName))
	}

	path, err := s.saveUpload(req.FileName, req.File)
	if err != nil {
		return nil, err
	}

	language := strings.TrimSpace(req.TargetLanguage)
	if language == "" {
		language = s.opts.DefaultLanguage
	}
	book := &storage.Book{
		UserID:         req.UserID,
		Title:          strings.TrimSpace(req.Title),
		Level:          level,
		TargetLanguage: language,
		FilePath:       path,
		ShouldAdapt:    req.ShouldAdapt,
		Status:         storage.BookQueued,
	}
	if err := s.books.Create(ctx, book); err != nil {
		_ = os.Remove(path)
		return nil, apperr.New(apperr.KindStoreUnavailable, "service.Upload", err)
	}

	job := &storage.Job{BookID: book.ID, Type: storage.JobProcessBook}
	if err := s.jobs.Enqueue(ctx, job); err != nil {
		_ = os.Remove(path)
		// Without a job the book would stay queued forever.
		if serr := s.books.SetStatus(context.WithoutCancel(ctx), book.ID, storage.BookError,
			"failed to queue processing job", string(apperr.KindStoreUnavailable)); serr != nil {
			logger.Error("failed to mark unqueued book", "book_id", book.ID, "error", serr)
		}
		return nil, apperr.New(apperr.KindStoreUnavailable, "service.Upload", err)
	}

	logger.Info("book queued",
		"book_id", book.ID,
		"job_id", job.ID,
		"level", level,
		"should_adapt", req.ShouldAdapt,
	)
	return &UploadResult{BookID: book.ID, JobID: job.ID, Status: status.StatusQueued}, nil
}

// saveUpload copies r to UPLOAD_DIR/<uuid><ext>, enforcing the size limit.
func (s *bookService) saveUpload(name string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	path := filepath.Join(s.opts.UploadDir, uuid.New().String()+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", WrapError(err, "failed to create upload file")
	}

	src := r
	if s.opts.MaxUploadBytes > 0 {
		src = io.LimitReader(r, s.opts.MaxUploadBytes+1)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", WrapError(err, "failed to write upload file")
	}
	if s.opts.MaxUploadBytes > 0 && n > s.opts.MaxUploadBytes {
		_ = os.Remove(path)
		return "", fmt.Errorf("%w: limit is %d bytes", ErrFileTooLarge, s.opts.MaxUploadBytes)
	}
	if n == 0 {
		_ = os.Remove(path)
		return "", &ValidationError{Field: "file", Message: "is empty"}
	}
	return path, nil
}

// Status returns the book's job status report.
func (s *bookService) Status(ctx context.Context, bookID string) (*status.Report, error) {
	return s.status.Status(ctx, bookID)
}

// Chapters lists the book's chapters.
func (s *bookService) Chapters(ctx context.Context, bookID string) ([]storage.Chapter, error) {
	if _, err := s.getBook(ctx, "service.Chapters", bookID); err != nil {
		return nil, err
	}
	chapters, err := s.books.ListChapters(ctx, bookID)
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, "service.Chapters", err)
	}
	return chapters, nil
}

// Cancel flags the book for cancellation. Queued jobs are cancelled at once; a
// running adaptation stops before its next chapter.
func (s *bookService) Cancel(ctx context.Context, bookID string) (*CancelResult, error) {
	const op = "service.Cancel"
	logger := contextutil.LoggerOr(ctx, s.logger)

	report, err := s.status.Status(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if report.Status != status.StatusQueued && report.Status != status.StatusProcessing {
		return &CancelResult{BookID: bookID, Status: report.Status}, nil
	}

	if err := s.books.RequestCancel(ctx, bookID); err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}
	n, err := s.jobs.CancelQueuedForBook(ctx, bookID)
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	result := &CancelResult{BookID: bookID, Status: status.StatusProcessing, Accepted: true}
	// Nothing is running when the job was still waiting in the queue.
	if n > 0 && report.Status == status.StatusQueued {
		book, err := s.getBook(ctx, op, bookID)
		if err != nil {
			return nil, err
		}
		// A cancelled single-chapter job leaves a finished book as it was.
		if book.Status == storage.BookQueued || book.Status == storage.BookProcessing {
			if err := s.books.SetStatus(ctx, bookID, storage.BookCancelled, "", ""); err != nil {
				return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
			}
			result.Status = status.StatusCancelled
		} else {
			result.Status = bookStatus(book.Status)
		}
	}

	logger.Info("cancel requested", "book_id", bookID, "queued_jobs_cancelled", n)
	return result, nil
}

// AdaptChapter queues an adapt_chapter job and returns its ID.
func (s *bookService) AdaptChapter(ctx context.Context, bookID string, number int, level string) (string, error) {
	const op = "service.AdaptChapter"

	if number < 1 {
		return "", &ValidationError{Field: "number", Message: "must be a positive chapter number"}
	}
	if level != "" {
		var err error
		if level, err = normalizeLevel(level); err != nil {
			return "", err
		}
	}
	report, err := s.status.Status(ctx, bookID)
	if err != nil {
		return "", err
	}
	if _, err := s.books.GetChapter(ctx, bookID, number); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", apperr.Errorf(apperr.KindNotFound, op, "chapter %d of book %s not found", number, bookID)
		}
		return "", apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	payload, err := json.Marshal(ingest.AdaptChapterPayload{ChapterNumber: number, Level: level})
	if err != nil {
		return "", apperr.New(apperr.KindInternal, op, err)
	}
	// A cancel flag left over from an earlier run would stop the new job at once.
	// While a job is still queued or running the flag belongs to it and stays set.
	if report.Status != status.StatusQueued && report.Status != status.StatusProcessing {
		if err := s.books.ClearCancel(ctx, bookID); err != nil {
			return "", apperr.New(apperr.KindStoreUnavailable, op, err)
		}
	}
	job := &storage.Job{BookID: bookID, Type: storage.JobAdaptChapter, Payload: payload}
	if err := s.jobs.Enqueue(ctx, job); err != nil {
		return "", apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	contextutil.LoggerOr(ctx, s.logger).Info("chapter adaptation queued",
		"book_id", bookID,
		"chapter", number,
		"job_id", job.ID,
	)
	return job.ID, nil
}

func (s *bookService) getBook(ctx context.Context, op, bookID string) (*storage.Book, error) {
	book, err := s.books.Get(ctx, bookID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.Errorf(apperr.KindNotFound, op, "book %s not found", bookID)
	}
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}
	return book, nil
}

func normalizeLevel(level string) (string, error) {
	l := strings.ToUpper(strings.TrimSpace(level))
	for _, v := range Levels {
		if l == v {
			return l, nil
		}
	}
	return "", &ValidationError{Field: "level", Message: "must be one of " + strings.Join(Levels, ", ")}
}

func bookStatus(s storage.BookStatus) status.Status {
	return status.Project(&storage.Book{Status: s}, nil).Status
}
