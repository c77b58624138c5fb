// Package ingest implements the background jobs that turn an uploaded book into
// adapted chapters.
package ingest

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_ingest.go -package=mocks booklingo/internal/ingest Converter,Adapter,BookStore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"booklingo/internal/apperr"
	"booklingo/internal/chunking"
	"booklingo/internal/contextutil"
	"booklingo/internal/document"
	"booklingo/internal/orchestrator"
	"booklingo/internal/storage"
)

// Converter extracts text from a stored upload.
type Converter interface {
	Convert(ctx context.Context, path string) (*document.RawDocument, error)
}

// Adapter runs adaptations through the orchestrator.
type Adapter interface {
	AdaptBook(ctx context.Context, req orchestrator.Request) (orchestrator.State, error)
	AdaptChapter(ctx context.Context, bookID string, number int, content, level, targetLanguage string) (orchestrator.State, error)
}

// BookStore is the part of the book repository the jobs use.
type BookStore interface {
	Get(ctx context.Context, id string) (*storage.Book, error)
	UpdateMetadata(ctx context.Context, id string, meta storage.BookMetadata) error
	SetStatus(ctx context.Context, id string, status storage.BookStatus, errMsg, errKind string) error
	ReplaceChapters(ctx context.Context, bookID string, chapters []storage.Chapter) error
	ListChapters(ctx context.Context, bookID string) ([]storage.Chapter, error)
	GetChapter(ctx context.Context, bookID string, number int) (*storage.Chapter, error)
}

// AdaptChapterPayload is the JSON payload of an adapt_chapter job.
type AdaptChapterPayload struct {
	ChapterNumber int    `json:"chapter_number"`
	Level         string `json:"level,omitempty"`
}

// Processor runs process_book and adapt_chapter jobs.
type Processor struct {
	converter       Converter
	assembler       *chunking.Assembler
	adapter         Adapter
	books           BookStore
	defaultLanguage string
}

// NewProcessor creates a new job processor. defaultLanguage is used for books
// stored without a target language.
func NewProcessor(converter Converter, assembler *chunking.Assembler, adapter Adapter, books BookStore, defaultLanguage string) *Processor {
	return &Processor{
		converter:       converter,
		assembler:       assembler,
		adapter:         adapter,
		books:           books,
		defaultLanguage: defaultLanguage,
	}
}

// ProcessBook converts the book's file, stores one chapter per chunk and, when
// the book asks for it, adapts every chapter. The book ends in status success,
// error or cancelled. A run interrupted by ctx leaves the status untouched so a
// retry can resume after the last adapted chapter.
func (p *Processor) ProcessBook(ctx context.Context, job *storage.Job) error {
	const op = "ingest.ProcessBook"
	logger := contextutil.LoggerFromContext(ctx)

	book, err := p.loadBook(ctx, op, job.BookID)
	if err != nil {
		return err
	}
	if book.CancelRequested {
		return p.finish(ctx, book.ID, apperr.Errorf(apperr.KindCancelled, op, "cancelled before processing started"))
	}

	if err := p.books.SetStatus(ctx, book.ID, storage.BookProcessing, "", ""); err != nil {
		return apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	chunks, err := p.extract(ctx, op, book)
	if err != nil {
		return p.finish(ctx, book.ID, err)
	}

	start, err := p.storeChapters(ctx, book.ID, chunks)
	if err != nil {
		return p.finish(ctx, book.ID, apperr.New(apperr.KindStoreUnavailable, op, err))
	}
	logger.Info("chapters stored", "chapters", len(chunks), "resume_at", start)

	if !book.ShouldAdapt {
		return p.finish(ctx, book.ID, nil)
	}

	_, err = p.adapter.AdaptBook(ctx, orchestrator.Request{
		BookID:         book.ID,
		Chunks:         chunks,
		Level:          book.Level,
		TargetLanguage: p.language(book),
		StartAt:        start,
	})
	return p.finish(ctx, book.ID, err)
}

// AdaptChapter re-adapts one chapter from its original text. The book status is
// not changed; the outcome is recorded on the job.
func (p *Processor) AdaptChapter(ctx context.Context, job *storage.Job) error {
	const op = "ingest.AdaptChapter"

	var payload AdaptChapterPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return apperr.New(apperr.KindInvalidInput, op, fmt.Errorf("failed to decode payload: %w", err))
	}

	book, err := p.loadBook(ctx, op, job.BookID)
	if err != nil {
		return err
	}
	chapter, err := p.books.GetChapter(ctx, book.ID, payload.ChapterNumber)
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.Errorf(apperr.KindNotFound, op, "chapter %d of book %s not found", payload.ChapterNumber, book.ID)
	}
	if err != nil {
		return apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	level := payload.Level
	if level == "" {
		level = book.Level
	}
	_, err = p.adapter.AdaptChapter(ctx, book.ID, chapter.Number, chapter.OriginalContent, level, p.language(book))
	return err
}

func (p *Processor) loadBook(ctx context.Context, op, id string) (*storage.Book, error) {
	book, err := p.books.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, apperr.Errorf(apperr.KindNotFound, op, "book %s not found", id)
	}
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}
	return book, nil
}

// extract converts the book and splits it into chunks.
func (p *Processor) extract(ctx context.Context, op string, book *storage.Book) ([]chunking.Chunk, error) {
	doc, err := p.converter.Convert(ctx, book.FilePath)
	if err != nil {
		return nil, err
	}
	if doc.IsImageOnly {
		return nil, apperr.Errorf(apperr.KindConversion, op, "document has no extractable text (image-only)")
	}

	err = p.books.UpdateMetadata(ctx, book.ID, storage.BookMetadata{
		Title:     doc.Metadata.Title,
		Author:    doc.Metadata.Author,
		PageCount: doc.Metadata.PageCount,
	})
	if err != nil {
		return nil, apperr.New(apperr.KindStoreUnavailable, op, err)
	}

	chunks := p.assembler.Assemble(doc.Text)
	if len(chunks) == 0 {
		return nil, apperr.Errorf(apperr.KindConversion, op, "document contains no text")
	}
	return chunks, nil
}

// storeChapters persists chunks as the book's chapters and returns the index to
// resume adaptation from. When the stored chapters already hold exactly these
// chunks, adapted ones are kept and adaptation resumes after them.
func (p *Processor) storeChapters(ctx context.Context, bookID string, chunks []chunking.Chunk) (int, error) {
	existing, err := p.books.ListChapters(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if sameChunks(existing, chunks) {
		start := 0
		for start < len(existing) && existing[start].IsAdapted {
			start++
		}
		return start, nil
	}

	chapters := make([]storage.Chapter, len(chunks))
	for i, c := range chunks {
		chapters[i] = storage.Chapter{
			Title:     c.Title,
			Content:   c.Content,
			WordCount: c.WordCount,
		}
	}
	return 0, p.books.ReplaceChapters(ctx, bookID, chapters)
}

func sameChunks(chapters []storage.Chapter, chunks []chunking.Chunk) bool {
	if len(chapters) == 0 || len(chapters) != len(chunks) {
		return false
	}
	for i := range chunks {
		if chapters[i].Title != chunks[i].Title || chapters[i].OriginalContent != chunks[i].Content {
			return false
		}
	}
	return true
}

// finish records the terminal book status for err. Errors caused by ctx ending
// are returned without touching the status.
func (p *Processor) finish(ctx context.Context, bookID string, err error) error {
	if err != nil && ctx.Err() != nil {
		return err
	}
	logger := contextutil.LoggerFromContext(ctx)
	write := context.WithoutCancel(ctx)

	var serr error
	switch {
	case err == nil:
		serr = p.books.SetStatus(write, bookID, storage.BookSuccess, "", "")
	case apperr.KindOf(err) == apperr.KindCancelled:
		serr = p.books.SetStatus(write, bookID, storage.BookCancelled, "", "")
	default:
		serr = p.books.SetStatus(write, bookID, storage.BookError, err.Error(), string(apperr.KindOf(err)))
	}
	if serr != nil {
		logger.Error("failed to record book status", "error", serr)
		return errors.Join(err, apperr.New(apperr.KindStoreUnavailable, "ingest.finish", serr))
	}
	return err
}

func (p *Processor) language(book *storage.Book) string {
	if book.TargetLanguage != "" {
		return book.TargetLanguage
	}
	return p.defaultLanguage
}
