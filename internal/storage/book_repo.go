package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

const bookColumns = `id, user_id, title, author, level, target_language, file_path, should_adapt,
	status, total_chapters, current_processing_chapter, failed_chapter, error, error_kind,
	page_count, cancel_requested, created_at, updated_at`

// BookRepo provides methods for books and their chapters.
type BookRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewBookRepo creates a new BookRepo.
func NewBookRepo(db *sql.DB) *BookRepo {
	return &BookRepo{db: db, now: time.Now}
}

// Ping verifies the database is reachable.
func (r *BookRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Create inserts a new book. A UUID is generated when book.ID is empty.
func (r *BookRepo) Create(ctx context.Context, book *Book) error {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	if book.Status == "" {
		book.Status = BookQueued
	}
	now := r.now()
	book.CreatedAt, book.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO books (id, user_id, title, author, level, target_language, file_path,
			should_adapt, status, page_count, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID, book.UserID, book.Title, book.Author, book.Level, book.TargetLanguage, book.FilePath,
		book.ShouldAdapt, string(book.Status), book.PageCount, millis(now), millis(now),
	)
	if err != nil {
		return fmt.Errorf("failed to insert book: %w", err)
	}
	return nil
}

// Get gets a book by ID.
// Returns nil and ErrNotFound if not found.
func (r *BookRepo) Get(ctx context.Context, id string) (*Book, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+bookColumns+" FROM books WHERE id = ?", id)

	var (
		b                  Book
		status             string
		current, failed    sql.NullInt64
		createdAt, updated int64
	)
	err := row.Scan(&b.ID, &b.UserID, &b.Title, &b.Author, &b.Level, &b.TargetLanguage, &b.FilePath,
		&b.ShouldAdapt, &status, &b.TotalChapters, &current, &failed, &b.Error, &b.ErrorKind,
		&b.PageCount, &b.CancelRequested, &createdAt, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query book: %w", err)
	}

	b.Status = BookStatus(status)
	b.CurrentProcessingChapter = intPtr(current)
	b.FailedChapter = intPtr(failed)
	b.CreatedAt = fromMillis(createdAt)
	b.UpdatedAt = fromMillis(updated)
	return &b, nil
}

// UpdateMetadata stores what conversion found. The title is only filled in when the
// uploader did not provide one.
func (r *BookRepo) UpdateMetadata(ctx context.Context, id string, meta BookMetadata) error {
	return r.exec(ctx, "update book metadata",
		`UPDATE books SET
			title = CASE WHEN title = '' THEN ? ELSE title END,
			author = ?, page_count = ?, updated_at = ?
		 WHERE id = ?`,
		meta.Title, meta.Author, meta.PageCount, millis(r.now()), id,
	)
}

// SetStatus sets the book status together with the failure reason and kind.
// Both are cleared when errMsg is empty.
func (r *BookRepo) SetStatus(ctx context.Context, id string, status BookStatus, errMsg, errKind string) error {
	return r.exec(ctx, "update book status",
		`UPDATE books SET status = ?, error = ?, error_kind = ?, updated_at = ? WHERE id = ?`,
		string(status), errMsg, errKind, millis(r.now()), id,
	)
}

// SetCurrentChapter records the 1-based chapter being adapted.
func (r *BookRepo) SetCurrentChapter(ctx context.Context, id string, number int) error {
	return r.exec(ctx, "set current chapter",
		`UPDATE books SET current_processing_chapter = ?, failed_chapter = NULL, updated_at = ? WHERE id = ?`,
		number, millis(r.now()), id,
	)
}

// ClearCurrentChapter resets the progress cursor after a run ends.
func (r *BookRepo) ClearCurrentChapter(ctx context.Context, id string) error {
	return r.exec(ctx, "clear current chapter",
		`UPDATE books SET current_processing_chapter = NULL, updated_at = ? WHERE id = ?`,
		millis(r.now()), id,
	)
}

// FreezeAtChapter clears the progress cursor and records where the run stopped.
func (r *BookRepo) FreezeAtChapter(ctx context.Context, id string, number int) error {
	return r.exec(ctx, "freeze chapter progress",
		`UPDATE books SET current_processing_chapter = NULL, failed_chapter = ?, updated_at = ? WHERE id = ?`,
		number, millis(r.now()), id,
	)
}

// RequestCancel flags the book so a running adaptation stops at the next chapter.
func (r *BookRepo) RequestCancel(ctx context.Context, id string) error {
	return r.exec(ctx, "request cancel",
		`UPDATE books SET cancel_requested = 1, updated_at = ? WHERE id = ?`,
		millis(r.now()), id,
	)
}

// ClearCancel resets the cancel flag before new work is queued for the book.
func (r *BookRepo) ClearCancel(ctx context.Context, id string) error {
	return r.exec(ctx, "clear cancel",
		`UPDATE books SET cancel_requested = 0, updated_at = ? WHERE id = ?`,
		millis(r.now()), id,
	)
}

// CancelRequested reports whether cancellation was requested for the book.
func (r *BookRepo) CancelRequested(ctx context.Context, id string) (bool, error) {
	var requested bool
	err := r.db.QueryRowContext(ctx, `SELECT cancel_requested FROM books WHERE id = ?`, id).Scan(&requested)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to query cancel flag: %w", err)
	}
	return requested, nil
}

// exec runs a single-row update and maps zero affected rows to ErrNotFound.
func (r *BookRepo) exec(ctx context.Context, what, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}
