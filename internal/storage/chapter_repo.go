package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const chapterColumns = `id, book_id, number, title, content, original_content, word_count, is_adapted, reasoning, updated_at`

// ReplaceChapters swaps the book's chapter set for the given one in a single
// transaction and resets the processing state. Chapters are numbered by position.
func (r *BookRepo) ReplaceChapters(ctx context.Context, bookID string, chapters []Chapter) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := millis(r.now())
	res, err := tx.ExecContext(ctx,
		`UPDATE books SET total_chapters = ?, current_processing_chapter = NULL, failed_chapter = NULL,
			updated_at = ? WHERE id = ?`,
		len(chapters), now, bookID,
	)
	if err != nil {
		return fmt.Errorf("failed to update chapter count: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM chapters WHERE book_id = ?`, bookID); err != nil {
		return fmt.Errorf("failed to delete chapters: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO chapters (`+chapterColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare chapter insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	for i := range chapters {
		ch := &chapters[i]
		if ch.ID == "" {
			ch.ID = uuid.New().String()
		}
		ch.BookID = bookID
		ch.Number = i + 1
		if ch.OriginalContent == "" {
			ch.OriginalContent = ch.Content
		}
		ch.UpdatedAt = fromMillis(now)
		if _, err := stmt.ExecContext(ctx, ch.ID, bookID, ch.Number, ch.Title, ch.Content,
			ch.OriginalContent, ch.WordCount, ch.IsAdapted, ch.Reasoning, now); err != nil {
			return fmt.Errorf("failed to insert chapter %d: %w", ch.Number, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit chapters: %w", err)
	}
	return nil
}

// ListChapters returns the book's chapters ordered by number.
func (r *BookRepo) ListChapters(ctx context.Context, bookID string) ([]Chapter, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE book_id = ? ORDER BY number", bookID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chapters: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var chapters []Chapter
	for rows.Next() {
		ch, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, *ch)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate chapters: %w", err)
	}
	return chapters, nil
}

// GetChapter gets a chapter by its 1-based number.
// Returns nil and ErrNotFound if not found.
func (r *BookRepo) GetChapter(ctx context.Context, bookID string, number int) (*Chapter, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+chapterColumns+" FROM chapters WHERE book_id = ? AND number = ?", bookID, number)
	ch, err := scanChapter(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return ch, err
}

// MarkChapterAdapted replaces one chapter's content with its adaptation. Each
// chapter is its own row, so this write never touches sibling chapters.
func (r *BookRepo) MarkChapterAdapted(ctx context.Context, bookID string, number int, content, reasoning string) error {
	return r.exec(ctx, "mark chapter adapted",
		`UPDATE chapters SET content = ?, reasoning = ?, is_adapted = 1, updated_at = ?
		 WHERE book_id = ? AND number = ?`,
		content, reasoning, millis(r.now()), bookID, number,
	)
}

// CountAdapted returns how many of the book's chapters are adapted.
func (r *BookRepo) CountAdapted(ctx context.Context, bookID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chapters WHERE book_id = ? AND is_adapted = 1`, bookID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count adapted chapters: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChapter(row rowScanner) (*Chapter, error) {
	var (
		ch      Chapter
		updated int64
	)
	err := row.Scan(&ch.ID, &ch.BookID, &ch.Number, &ch.Title, &ch.Content, &ch.OriginalContent,
		&ch.WordCount, &ch.IsAdapted, &ch.Reasoning, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan chapter: %w", err)
	}
	ch.UpdatedAt = fromMillis(updated)
	return &ch, nil
}
