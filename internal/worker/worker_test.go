package worker_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"booklingo/internal/apperr"
	"booklingo/internal/lock"
	"booklingo/internal/storage"
	"booklingo/internal/worker"
	"booklingo/internal/worker/mocks"

	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testJob() *storage.Job {
	return &storage.Job{ID: "job-1", BookID: "book-1", Type: storage.JobProcessBook, Attempts: 1}
}

func TestRunOnce_EmptyQueue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueue(ctrl)
	queue.EXPECT().ClaimNext(gomock.Any()).Return(nil, storage.ErrNotFound)

	p := worker.New(queue, lock.NewMemory(), worker.Options{}, discardLogger())
	ran, err := p.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
	if ran {
		t.Error("RunOnce() ran = true on empty queue")
	}
}

func TestRunOnce_ClaimError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueue(ctrl)
	queue.EXPECT().ClaimNext(gomock.Any()).Return(nil, errors.New("database is locked"))

	p := worker.New(queue, lock.NewMemory(), worker.Options{}, discardLogger())
	if _, err := p.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce() expected error, got nil")
	}
}

func TestRunOnce_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		handler   worker.HandlerFunc
		register  bool
		mockSetup func(q *mocks.MockQueue)
	}{
		{
			name:     "success completes job",
			register: true,
			handler:  func(context.Context, *storage.Job) error { return nil },
			mockSetup: func(q *mocks.MockQueue) {
				q.EXPECT().Complete(gomock.Any(), "job-1").Return(nil)
			},
		},
		{
			name:     "cancelled kind cancels job",
			register: true,
			handler: func(context.Context, *storage.Job) error {
				return apperr.Errorf(apperr.KindCancelled, "test", "user cancelled")
			},
			mockSetup: func(q *mocks.MockQueue) {
				q.EXPECT().Cancel(gomock.Any(), "job-1").Return(nil)
			},
		},
		{
			name:     "error fails job with kind",
			register: true,
			handler: func(context.Context, *storage.Job) error {
				return apperr.Errorf(apperr.KindOracle, "test", "model down")
			},
			mockSetup: func(q *mocks.MockQueue) {
				q.EXPECT().Fail(gomock.Any(), "job-1", gomock.Any(), string(apperr.KindOracle)).Return(nil)
			},
		},
		{
			name:     "panic fails job as internal",
			register: true,
			handler:  func(context.Context, *storage.Job) error { panic("boom") },
			mockSetup: func(q *mocks.MockQueue) {
				q.EXPECT().Fail(gomock.Any(), "job-1", gomock.Any(), string(apperr.KindInternal)).Return(nil)
			},
		},
		{
			name:     "missing handler fails job",
			register: false,
			mockSetup: func(q *mocks.MockQueue) {
				q.EXPECT().Fail(gomock.Any(), "job-1", gomock.Any(), string(apperr.KindInternal)).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			queue := mocks.NewMockQueue(ctrl)
			queue.EXPECT().ClaimNext(gomock.Any()).Return(testJob(), nil)
			tt.mockSetup(queue)

			p := worker.New(queue, lock.NewMemory(), worker.Options{}, discardLogger())
			if tt.register {
				p.Register(storage.JobProcessBook, tt.handler)
			}
			ran, err := p.RunOnce(context.Background())
			if err != nil {
				t.Fatalf("RunOnce() error = %v", err)
			}
			if !ran {
				t.Error("RunOnce() ran = false")
			}
		})
	}
}

func TestRunOnce_LockedBookRequeues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locker := lock.NewMemory()
	held, err := locker.TryAcquire(context.Background(), lock.BookKey("book-1"))
	if err != nil {
		t.Fatalf("TryAcquire() error = %v", err)
	}
	defer func() { _ = held.Release(context.Background()) }()

	queue := mocks.NewMockQueue(ctrl)
	queue.EXPECT().ClaimNext(gomock.Any()).Return(testJob(), nil)
	queue.EXPECT().Requeue(gomock.Any(), "job-1", 50*time.Millisecond).Return(nil)

	p := worker.New(queue, locker, worker.Options{PollInterval: 50 * time.Millisecond}, discardLogger())
	p.Register(storage.JobProcessBook, worker.HandlerFunc(func(context.Context, *storage.Job) error {
		t.Error("handler ran while the book was locked")
		return nil
	}))
	if _, err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
}

func TestRunOnce_ShutdownRequeues(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := mocks.NewMockQueue(ctrl)
	queue.EXPECT().ClaimNext(gomock.Any()).Return(testJob(), nil)
	queue.EXPECT().Requeue(gomock.Any(), "job-1", time.Duration(0)).Return(nil)

	p := worker.New(queue, lock.NewMemory(), worker.Options{}, discardLogger())
	p.Register(storage.JobProcessBook, worker.HandlerFunc(func(ctx context.Context, _ *storage.Job) error {
		cancel()
		return apperr.New(apperr.KindCancelled, "test", ctx.Err())
	}))
	if _, err := p.RunOnce(ctx); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}
}

func TestRunOnce_ReleasesLock(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	queue := mocks.NewMockQueue(ctrl)
	queue.EXPECT().ClaimNext(gomock.Any()).Return(testJob(), nil)
	queue.EXPECT().Fail(gomock.Any(), "job-1", gomock.Any(), gomock.Any()).Return(nil)

	locker := lock.NewMemory()
	p := worker.New(queue, locker, worker.Options{}, discardLogger())
	p.Register(storage.JobProcessBook, worker.HandlerFunc(func(context.Context, *storage.Job) error {
		return errors.New("boom")
	}))
	if _, err := p.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce() error = %v", err)
	}

	held, err := locker.TryAcquire(context.Background(), lock.BookKey("book-1"))
	if err != nil {
		t.Fatalf("book lock still held after job: %v", err)
	}
	_ = held.Release(context.Background())
}

func TestRun_DrainsQueueOneJobPerBook(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}
	books := storage.NewBookRepo(db)
	jobs := storage.NewJobRepo(db)

	ctx := context.Background()
	var bookIDs []string
	for i := 0; i < 2; i++ {
		b := &storage.Book{UserID: "u1", Level: "B1", TargetLanguage: "German", FilePath: "x.epub"}
		if err := books.Create(ctx, b); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		bookIDs = append(bookIDs, b.ID)
	}
	const perBook = 3
	var jobIDs []string
	for _, id := range bookIDs {
		for j := 0; j < perBook; j++ {
			job := &storage.Job{BookID: id, Type: storage.JobAdaptChapter}
			if err := jobs.Enqueue(ctx, job); err != nil {
				t.Fatalf("Enqueue() error = %v", err)
			}
			jobIDs = append(jobIDs, job.ID)
		}
	}

	var (
		mu       sync.Mutex
		inFlight = map[string]int{}
		done     atomic.Int32
	)
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := worker.New(jobs, lock.NewMemory(), worker.Options{Concurrency: 4, PollInterval: 10 * time.Millisecond}, discardLogger())
	p.Register(storage.JobAdaptChapter, worker.HandlerFunc(func(_ context.Context, job *storage.Job) error {
		mu.Lock()
		inFlight[job.BookID]++
		if inFlight[job.BookID] > 1 {
			t.Errorf("book %s has %d jobs in flight", job.BookID, inFlight[job.BookID])
		}
		mu.Unlock()

		time.Sleep(5 * time.Millisecond)

		mu.Lock()
		inFlight[job.BookID]--
		mu.Unlock()
		if done.Add(1) == int32(len(jobIDs)) {
			cancel()
		}
		return nil
	}))

	errCh := make(chan error, 1)
	go func() { errCh <- p.Run(runCtx) }()

	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Run() did not drain the queue in time")
	}

	for _, id := range jobIDs {
		job, err := jobs.Get(ctx, id)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if job.Status != storage.JobSucceeded {
			t.Errorf("job %s status = %s, want %s", id, job.Status, storage.JobSucceeded)
		}
	}
}
