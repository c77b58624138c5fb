package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const jobColumns = `id, book_id, job_type, payload, status, attempts, error, error_kind, available_at, created_at, updated_at`

// JobRepo is a SQLite-backed job queue. A queued job becomes claimable once its
// available_at time has passed; claiming is a single atomic UPDATE.
type JobRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewJobRepo creates a new JobRepo.
func NewJobRepo(db *sql.DB) *JobRepo {
	return &JobRepo{db: db, now: time.Now}
}

// Enqueue inserts a job that is immediately claimable.
func (r *JobRepo) Enqueue(ctx context.Context, job *Job) error {
	if job.ID == "" {
		job.ID = uuid.New().String()
	}
	now := r.now()
	job.Status = JobQueued
	job.AvailableAt, job.CreatedAt, job.UpdatedAt = now, now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO jobs (`+jobColumns+`) VALUES (?, ?, ?, ?, ?, 0, '', '', ?, ?, ?)`,
		job.ID, job.BookID, string(job.Type), job.Payload, string(JobQueued),
		millis(now), millis(now), millis(now),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue job: %w", err)
	}
	return nil
}

// ClaimNext marks the oldest available queued job as running and returns it.
// Returns nil and ErrNotFound when nothing is claimable.
func (r *JobRepo) ClaimNext(ctx context.Context) (*Job, error) {
	now := millis(r.now())
	row := r.db.QueryRowContext(ctx,
		`UPDATE jobs SET status = ?, attempts = attempts + 1, updated_at = ?
		 WHERE id = (
			SELECT id FROM jobs
			WHERE status = ? AND available_at <= ?
			ORDER BY available_at, created_at
			LIMIT 1
		 ) AND status = ?
		 RETURNING `+jobColumns,
		string(JobRunning), now, string(JobQueued), now, string(JobQueued),
	)
	job, err := scanJob(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

// Get gets a job by ID.
// Returns nil and ErrNotFound if not found.
func (r *JobRepo) Get(ctx context.Context, id string) (*Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx, "SELECT "+jobColumns+" FROM jobs WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

// LatestForBook returns the most recently created job of the book.
// Returns nil and ErrNotFound if the book has no jobs.
func (r *JobRepo) LatestForBook(ctx context.Context, bookID string) (*Job, error) {
	job, err := scanJob(r.db.QueryRowContext(ctx,
		"SELECT "+jobColumns+" FROM jobs WHERE book_id = ? ORDER BY created_at DESC, rowid DESC LIMIT 1", bookID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return job, err
}

// Complete marks a running job as succeeded.
func (r *JobRepo) Complete(ctx context.Context, id string) error {
	return r.finish(ctx, id, JobSucceeded, "", "")
}

// Fail marks a running job as failed with a reason and error kind.
func (r *JobRepo) Fail(ctx context.Context, id, reason, kind string) error {
	return r.finish(ctx, id, JobFailed, reason, kind)
}

// Cancel marks a running job as cancelled.
func (r *JobRepo) Cancel(ctx context.Context, id string) error {
	return r.finish(ctx, id, JobCancelled, "", "")
}

// Requeue returns a running job to the queue, claimable again after delay.
func (r *JobRepo) Requeue(ctx context.Context, id string, delay time.Duration) error {
	now := r.now()
	return r.update(ctx, "requeue job",
		`UPDATE jobs SET status = ?, available_at = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(JobQueued), millis(now.Add(delay)), millis(now), id, string(JobRunning),
	)
}

// CancelQueuedForBook cancels every job of the book that has not started yet.
func (r *JobRepo) CancelQueuedForBook(ctx context.Context, bookID string) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, updated_at = ? WHERE book_id = ? AND status = ?`,
		string(JobCancelled), millis(r.now()), bookID, string(JobQueued),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel queued jobs: %w", err)
	}
	return res.RowsAffected()
}

// RequeueRunning puts jobs left running by a previous process back into the queue.
func (r *JobRepo) RequeueRunning(ctx context.Context) (int64, error) {
	now := millis(r.now())
	res, err := r.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, available_at = ?, updated_at = ? WHERE status = ?`,
		string(JobQueued), now, now, string(JobRunning),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to requeue running jobs: %w", err)
	}
	return res.RowsAffected()
}

func (r *JobRepo) finish(ctx context.Context, id string, status JobStatus, reason, kind string) error {
	return r.update(ctx, "finish job",
		`UPDATE jobs SET status = ?, error = ?, error_kind = ?, updated_at = ? WHERE id = ?`,
		string(status), reason, kind, millis(r.now()), id,
	)
}

func (r *JobRepo) update(ctx context.Context, what, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to %s: %w", what, err)
	} else if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanJob(row rowScanner) (*Job, error) {
	var (
		j                             Job
		jobType, status               string
		availableAt, created, updated int64
	)
	err := row.Scan(&j.ID, &j.BookID, &jobType, &j.Payload, &status, &j.Attempts, &j.Error, &j.ErrorKind,
		&availableAt, &created, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan job: %w", err)
	}
	j.Type = JobType(jobType)
	j.Status = JobStatus(status)
	j.AvailableAt = fromMillis(availableAt)
	j.CreatedAt = fromMillis(created)
	j.UpdatedAt = fromMillis(updated)
	return &j, nil
}
