package status_test

import (
	"context"
	"errors"
	"testing"

	"booklingo/internal/apperr"
	"booklingo/internal/status"
	"booklingo/internal/status/mocks"
	"booklingo/internal/storage"

	"go.uber.org/mock/gomock"
)

func intp(n int) *int { return &n }

func TestProject(t *testing.T) {
	tests := []struct {
		name         string
		book         storage.Book
		job          *storage.Job
		wantStatus   status.Status
		wantProgress float64
		wantKind     string
		wantTotal    *int
	}{
		{
			name:       "queued book without chapters",
			book:       storage.Book{ID: "b1", Status: storage.BookQueued},
			job:        &storage.Job{ID: "j1", Type: storage.JobProcessBook, Status: storage.JobQueued},
			wantStatus: status.StatusQueued,
		},
		{
			name: "adapting chapter 3 of 4",
			book: storage.Book{
				ID: "b1", Status: storage.BookProcessing, TotalChapters: 4,
				CurrentProcessingChapter: intp(3),
			},
			job:          &storage.Job{ID: "j1", Type: storage.JobProcessBook, Status: storage.JobRunning},
			wantStatus:   status.StatusProcessing,
			wantProgress: 75,
			wantTotal:    intp(4),
		},
		{
			name:       "requeued job reports queued",
			book:       storage.Book{ID: "b1", Status: storage.BookProcessing, TotalChapters: 4},
			job:        &storage.Job{ID: "j1", Type: storage.JobProcessBook, Status: storage.JobQueued},
			wantStatus: status.StatusQueued,
			wantTotal:  intp(4),
		},
		{
			name:         "success",
			book:         storage.Book{ID: "b1", Status: storage.BookSuccess, TotalChapters: 2},
			job:          &storage.Job{ID: "j1", Type: storage.JobProcessBook, Status: storage.JobSucceeded},
			wantStatus:   status.StatusSuccess,
			wantProgress: 100,
			wantTotal:    intp(2),
		},
		{
			name: "error keeps kind and frozen chapter",
			book: storage.Book{
				ID: "b1", Status: storage.BookError, TotalChapters: 3,
				FailedChapter: intp(3), Error: "oracle: model down", ErrorKind: "oracle",
			},
			job:        &storage.Job{ID: "j1", Type: storage.JobProcessBook, Status: storage.JobFailed},
			wantStatus: status.StatusError,
			wantKind:   "oracle",
			wantTotal:  intp(3),
		},
		{
			name:       "cancelled",
			book:       storage.Book{ID: "b1", Status: storage.BookCancelled, TotalChapters: 3},
			wantStatus: status.StatusCancelled,
			wantTotal:  intp(3),
		},
		{
			name: "single chapter re-adaptation",
			book: storage.Book{
				ID: "b1", Status: storage.BookSuccess, TotalChapters: 5,
				CurrentProcessingChapter: intp(1),
			},
			job:          &storage.Job{ID: "j2", Type: storage.JobAdaptChapter, Status: storage.JobRunning},
			wantStatus:   status.StatusProcessing,
			wantProgress: 20,
			wantTotal:    intp(5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := status.Project(&tt.book, tt.job)
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %s, want %s", got.Status, tt.wantStatus)
			}
			if got.Progress != tt.wantProgress {
				t.Errorf("Progress = %v, want %v", got.Progress, tt.wantProgress)
			}
			if got.ErrorKind != tt.wantKind {
				t.Errorf("ErrorKind = %q, want %q", got.ErrorKind, tt.wantKind)
			}
			if (got.TotalChapters == nil) != (tt.wantTotal == nil) ||
				(got.TotalChapters != nil && *got.TotalChapters != *tt.wantTotal) {
				t.Errorf("TotalChapters = %v, want %v", got.TotalChapters, tt.wantTotal)
			}
			if tt.job != nil && (got.LastJob == nil || got.LastJob.ID != tt.job.ID) {
				t.Errorf("LastJob = %+v, want job %s", got.LastJob, tt.job.ID)
			}
			if got.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestTracker_Status(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(b *mocks.MockBookReader, j *mocks.MockJobReader)
		wantKind  apperr.Kind
		wantErr   bool
	}{
		{
			name: "book without jobs",
			mockSetup: func(b *mocks.MockBookReader, j *mocks.MockJobReader) {
				b.EXPECT().Get(gomock.Any(), "b1").Return(&storage.Book{ID: "b1", Status: storage.BookQueued}, nil)
				j.EXPECT().LatestForBook(gomock.Any(), "b1").Return(nil, storage.ErrNotFound)
			},
		},
		{
			name: "unknown book",
			mockSetup: func(b *mocks.MockBookReader, j *mocks.MockJobReader) {
				b.EXPECT().Get(gomock.Any(), "b1").Return(nil, storage.ErrNotFound)
			},
			wantErr:  true,
			wantKind: apperr.KindNotFound,
		},
		{
			name: "store down",
			mockSetup: func(b *mocks.MockBookReader, j *mocks.MockJobReader) {
				b.EXPECT().Get(gomock.Any(), "b1").Return(&storage.Book{ID: "b1"}, nil)
				j.EXPECT().LatestForBook(gomock.Any(), "b1").Return(nil, errors.New("database is locked"))
			},
			wantErr:  true,
			wantKind: apperr.KindStoreUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			books := mocks.NewMockBookReader(ctrl)
			jobs := mocks.NewMockJobReader(ctrl)
			tt.mockSetup(books, jobs)

			got, err := status.NewTracker(books, jobs).Status(context.Background(), "b1")
			if (err != nil) != tt.wantErr {
				t.Fatalf("Status() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if apperr.KindOf(err) != tt.wantKind {
					t.Errorf("Status() kind = %s, want %s", apperr.KindOf(err), tt.wantKind)
				}
				return
			}
			if got.BookID != "b1" || got.Status != status.StatusQueued || got.LastJob != nil {
				t.Errorf("Status() = %+v", got)
			}
		})
	}
}
