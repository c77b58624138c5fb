package storage

import "time"

// BookStatus is the lifecycle state of a book upload.
type BookStatus string

const (
	BookQueued     BookStatus = "queued"
	BookProcessing BookStatus = "processing"
	BookSuccess    BookStatus = "success"
	BookError      BookStatus = "error"
	BookCancelled  BookStatus = "cancelled"
)

// Book is the aggregate that owns the chapters and the processing state.
type Book struct {
	ID             string
	UserID         string
	Title          string
	Author         string
	Level          string // CEFR level, A1..C2
	TargetLanguage string
	FilePath       string
	ShouldAdapt    bool
	Status         BookStatus
	TotalChapters  int
	// CurrentProcessingChapter is 1-based and non-nil only while adaptation is in flight.
	CurrentProcessingChapter *int
	// FailedChapter is the 1-based chapter at which the last run stopped with an error.
	FailedChapter   *int
	Error           string
	ErrorKind       string
	PageCount       int
	CancelRequested bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookMetadata is what document conversion learns about a book.
type BookMetadata struct {
	Title     string
	Author    string
	PageCount int
}

// Chapter is one persisted chunk of a book.
type Chapter struct {
	ID              string
	BookID          string
	Number          int // 1-based, document order
	Title           string
	Content         string
	OriginalContent string
	WordCount       int
	IsAdapted       bool
	Reasoning       string
	UpdatedAt       time.Time
}

// JobType names a background job handler.
type JobType string

const (
	JobProcessBook  JobType = "process_book"
	JobAdaptChapter JobType = "adapt_chapter"
)

// JobStatus is the state of a queued job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// Job is a unit of background work for one book.
type Job struct {
	ID          string
	BookID      string
	Type        JobType
	Payload     []byte // JSON, handler specific
	Status      JobStatus
	Attempts    int
	Error       string
	ErrorKind   string
	AvailableAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms)
}
