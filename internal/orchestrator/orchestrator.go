// Package orchestrator adapts a book's chunks one at a time through the LLM
// oracle, keeping the book's progress cursor truthful while it runs.
package orchestrator

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_orchestrator.go -package=mocks booklingo/internal/orchestrator Oracle,Store

import (
	"context"
	"errors"
	"log/slog"

	"booklingo/internal/apperr"
	"booklingo/internal/chunking"
	"booklingo/internal/contextutil"
	"booklingo/internal/llm"
)

// Oracle adapts text to a proficiency level.
type Oracle interface {
	Adapt(ctx context.Context, text, level, targetLanguage string) (llm.Adaptation, error)
}

// Store persists chapter contents and the book's processing state.
// Chapter numbers are 1-based.
type Store interface {
	SetCurrentChapter(ctx context.Context, bookID string, number int) error
	ClearCurrentChapter(ctx context.Context, bookID string) error
	FreezeAtChapter(ctx context.Context, bookID string, number int) error
	MarkChapterAdapted(ctx context.Context, bookID string, number int, content, reasoning string) error
	CancelRequested(ctx context.Context, bookID string) (bool, error)
}

// Request describes one adaptation run over a book.
type Request struct {
	BookID         string
	Chunks         []chunking.Chunk // chunk i is chapter i+1
	Level          string
	TargetLanguage string
	// StartAt skips chunks already adapted by an earlier, interrupted run.
	StartAt int
}

// Orchestrator runs adaptations strictly sequentially. Callers must ensure at
// most one run per book is in flight.
type Orchestrator struct {
	oracle Oracle
	store  Store
	logger *slog.Logger
}

// New creates a new orchestrator.
func New(oracle Oracle, store Store, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{oracle: oracle, store: store, logger: logger}
}

type item struct {
	number  int
	content string
}

// AdaptBook adapts every chunk in order. The returned error is nil only when the
// final state is Succeeded; chapters adapted before a failure stay adapted.
func (o *Orchestrator) AdaptBook(ctx context.Context, req Request) (State, error) {
	const op = "orchestrator.AdaptBook"
	if len(req.Chunks) == 0 {
		return State{Phase: PhasePending}, apperr.Errorf(apperr.KindInvalidInput, op, "book %s has no chunks to adapt", req.BookID)
	}
	if req.StartAt < 0 || req.StartAt > len(req.Chunks) {
		return State{Phase: PhasePending}, apperr.Errorf(apperr.KindInvalidInput, op, "start %d out of range [0, %d]", req.StartAt, len(req.Chunks))
	}

	if req.StartAt == len(req.Chunks) {
		if err := o.store.ClearCurrentChapter(ctx, req.BookID); err != nil {
			return State{Phase: PhasePending}, apperr.New(apperr.KindStoreUnavailable, op, err)
		}
		return State{Phase: PhaseSucceeded}, nil
	}

	items := make([]item, len(req.Chunks))
	for i, c := range req.Chunks {
		items[i] = item{number: i + 1, content: c.Content}
	}
	return o.run(ctx, op, req.BookID, items, req.StartAt, req.Level, req.TargetLanguage)
}

// AdaptChapter adapts a single chapter with the same progress and failure handling.
func (o *Orchestrator) AdaptChapter(ctx context.Context, bookID string, number int, content, level, targetLanguage string) (State, error) {
	const op = "orchestrator.AdaptChapter"
	if number < 1 {
		return State{Phase: PhasePending}, apperr.Errorf(apperr.KindInvalidInput, op, "invalid chapter number %d", number)
	}
	return o.run(ctx, op, bookID, []item{{number: number, content: content}}, 0, level, targetLanguage)
}

// run holds the per-run context shared by the loop and its terminal steps.
type run struct {
	o       *Orchestrator
	op      string
	bookID  string
	logger  *slog.Logger
	m       *machine
	cleanup context.Context
}

func (o *Orchestrator) run(ctx context.Context, op, bookID string, items []item, start int, level, targetLanguage string) (State, error) {
	logger := contextutil.LoggerOr(ctx, o.logger)
	r := &run{
		o:      o,
		op:     op,
		bookID: bookID,
		logger: logger.With("book_id", bookID),
		m:      newMachine(start, len(items)),
		// Terminal bookkeeping must land even when ctx was cancelled mid-run.
		cleanup: context.WithoutCancel(ctx),
	}

	for i := start; i < len(items); i++ {
		it := items[i]

		if err := r.m.to(State{Phase: PhaseProcessing, Index: i}); err != nil {
			return r.m.state, apperr.New(apperr.KindInternal, op, err)
		}

		cancelled, err := o.cancelled(ctx, bookID)
		if err != nil {
			return r.fail(i, it.number, apperr.New(apperr.KindStoreUnavailable, op, err))
		}
		if cancelled {
			return r.cancel(i)
		}

		if err := o.store.SetCurrentChapter(ctx, bookID, it.number); err != nil {
			if ctx.Err() != nil {
				return r.cancel(i)
			}
			return r.fail(i, it.number, apperr.New(apperr.KindStoreUnavailable, op, err))
		}
		r.logger.Debug("adapting chapter", "chapter", it.number, "total", len(items))

		adaptation, err := o.oracle.Adapt(ctx, it.content, level, targetLanguage)
		if err != nil {
			if ctx.Err() != nil {
				return r.cancel(i)
			}
			if apperr.KindOf(err) == apperr.KindInternal {
				err = apperr.New(apperr.KindOracle, op, err)
			}
			return r.fail(i, it.number, err)
		}

		if err := o.store.MarkChapterAdapted(ctx, bookID, it.number, adaptation.Content, adaptation.Reasoning); err != nil {
			if ctx.Err() != nil {
				return r.cancel(i)
			}
			return r.fail(i, it.number, apperr.New(apperr.KindStoreUnavailable, op, err))
		}
		r.logger.Debug("chapter adapted", "chapter", it.number)
	}

	if err := r.m.to(State{Phase: PhaseSucceeded}); err != nil {
		return r.m.state, apperr.New(apperr.KindInternal, op, err)
	}
	if err := o.store.ClearCurrentChapter(r.cleanup, bookID); err != nil {
		return r.m.state, apperr.New(apperr.KindStoreUnavailable, op, err)
	}
	r.logger.Info("adaptation succeeded", "chapters", len(items)-start)
	return r.m.state, nil
}

func (o *Orchestrator) cancelled(ctx context.Context, bookID string) (bool, error) {
	if ctx.Err() != nil {
		return true, nil
	}
	requested, err := o.store.CancelRequested(ctx, bookID)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		return false, err
	}
	return requested, nil
}

// fail moves to Failed(index), clears the cursor and records the failed chapter.
func (r *run) fail(index, number int, cause error) (State, error) {
	next := State{Phase: PhaseFailed, Index: index, Reason: cause.Error(), Kind: apperr.KindOf(cause)}
	if err := r.m.to(next); err != nil {
		return r.m.state, apperr.New(apperr.KindInternal, r.op, err)
	}

	if err := r.o.store.FreezeAtChapter(r.cleanup, r.bookID, number); err != nil {
		r.logger.Error("failed to freeze progress", "chapter", number, "error", err.Error())
		cause = errors.Join(cause, apperr.New(apperr.KindStoreUnavailable, r.op, err))
	}
	r.logger.Error("adaptation failed",
		"chapter", number,
		"kind", string(next.Kind),
		"error", next.Reason,
	)
	return r.m.state, cause
}

// cancel moves to Cancelled(index) and clears the cursor.
func (r *run) cancel(index int) (State, error) {
	if err := r.m.to(State{Phase: PhaseCancelled, Index: index, Kind: apperr.KindCancelled}); err != nil {
		return r.m.state, apperr.New(apperr.KindInternal, r.op, err)
	}
	cause := apperr.Errorf(apperr.KindCancelled, r.op, "cancelled before chunk %d was adapted", index)
	if err := r.o.store.ClearCurrentChapter(r.cleanup, r.bookID); err != nil {
		cause = errors.Join(cause, apperr.New(apperr.KindStoreUnavailable, r.op, err))
	}
	r.logger.Info("adaptation cancelled", "index", index)
	return r.m.state, cause
}
