// Package status projects a book's processing state and its latest job into the
// progress report polled by clients.
package status

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_status.go -package=mocks booklingo/internal/status BookReader,JobReader

import (
	"context"
	"errors"

	"booklingo/internal/apperr"
	"booklingo/internal/storage"
)

// Status is the state reported to pollers.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
	StatusCancelled  Status = "cancelled"
)

// BookReader loads books.
type BookReader interface {
	Get(ctx context.Context, id string) (*storage.Book, error)
}

// JobReader loads the latest job of a book.
type JobReader interface {
	LatestForBook(ctx context.Context, bookID string) (*storage.Job, error)
}

// JobReport describes the most recent job of a book.
type JobReport struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Status    string `json:"status"`
	Attempts  int    `json:"attempts"`
	Error     string `json:"error,omitempty"`
	ErrorKind string `json:"error_kind,omitempty"`
}

// Report is the job status surface of a book.
type Report struct {
	BookID         string     `json:"book_id"`
	Status         Status     `json:"status"`
	CurrentChapter *int       `json:"current_chapter"`
	TotalChapters  *int       `json:"total_chapters"`
	Progress       float64    `json:"progress"`
	FailedChapter  *int       `json:"failed_chapter,omitempty"`
	Error          string     `json:"error,omitempty"`
	ErrorKind      string     `json:"error_kind,omitempty"`
	Message        string     `json:"message"`
	LastJob        *JobReport `json:"last_job,omitempty"`
}

// Tracker builds status reports. It only reads.
type Tracker struct {
	books BookReader
	jobs  JobReader
}

// NewTracker creates a new status tracker.
func NewTracker(books BookReader, jobs JobReader) *Tracker {
	return &Tracker{books: books, jobs: jobs}
}

// Status returns the report for a book.
func (t *Tracker) Status(ctx context.Context, bookID string) (*Report, error) {
	const op = "status.Status"

	book, err := t.books.Get(ctx, bookID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.Errorf(apperr.KindNotFound, op, "book %s not found", bookID)
	}
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	job, err := t.jobs.LatestForBook(ctx, bookID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	return Project(book, job), nil
}

// Project computes the report from a book and its latest job, which may be nil.
// A queued or running job takes precedence over the stored book status.
func Project(book *storage.Book, job *storage.Job) *Report {
	r := &Report{
		BookID:         book.ID,
		Status:         bookStatus(book.Status),
		CurrentChapter: book.CurrentProcessingChapter,
		FailedChapter:  book.FailedChapter,
	}
	if book.TotalChapters > 0 {
		total := book.TotalChapters
		r.TotalChapters = &total
	}

	if job != nil {
		switch job.Status {
		case storage.JobQueued:
			r.Status = StatusQueued
		case storage.JobRunning:
			r.Status = StatusProcessing
		}
		r.LastJob = &JobReport{
			ID:        job.ID,
			Type:      string(job.Type),
			Status:    string(job.Status),
			Attempts:  job.Attempts,
			Error:     job.Error,
			ErrorKind: job.ErrorKind,
		}
	}

	if r.Status == StatusError {
		r.Error = book.Error
		r.ErrorKind = book.ErrorKind
	}

	r.Progress = progress(r)
	r.Message = message(r)
	return r
}

func bookStatus(s storage.BookStatus) Status {
	switch s {
	case storage.BookProcessing:
		return StatusProcessing
	case storage.BookSuccess:
		return StatusSuccess
	case storage.BookError:
		return StatusError
	case storage.BookCancelled:
		return StatusCancelled
	default:
		return StatusQueued
	}
}

// progress is current/total*100 while both are known. A finished book reports
// 100; anything else without a cursor reports 0.
func progress(r *Report) float64 {
	if r.Status == StatusSuccess {
		return 100
	}
	if r.CurrentChapter == nil || r.TotalChapters == nil || *r.TotalChapters == 0 {
		return 0
	}
	p := float64(*r.CurrentChapter) / float64(*r.TotalChapters) * 100
	if p > 100 {
		p = 100
	}
	return p
}

func message(r *Report) string {
	switch r.Status {
	case StatusQueued:
		return "Waiting to be processed"
	case StatusProcessing:
		return "Processing in progress"
	case StatusSuccess:
		return "Processing complete"
	case StatusCancelled:
		return "Processing cancelled"
	default:
		return "Processing failed"
	}
}
