package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"filearray/internal/cleanup"
	"filearray/internal/metrics"
	"filearray/internal/model"
	"filearray/internal/repository"
	"filearray/internal/storage"
	"filearray/internal/upload"
)

var (
	ErrIDRequired = errors.New("id is required")
	ErrNotFound   = errors.New("record not found")
	// ErrCleanupDispatch is returned together with the committed record when the old
	// files could not be handed to the cleanup queue.
	ErrCleanupDispatch = errors.New("cleanup dispatch failed")
)

// Sanitizer maps a proposed storage path to a free, ASCII-safe one.
type Sanitizer interface {
	Sanitize(ctx context.Context, proposed string) (string, error)
}

// SaveInput is one save of a record's array field.
type SaveInput struct {
	// RecordID selects the record to update; empty creates a new record.
	RecordID string
	// Batch is the validated upload batch. Empty leaves the array untouched.
	Batch upload.Batch
	// Commit persists the record before returning. When false the files are staged and
	// the caller persists the record later with Persist. The admin handlers always commit.
	Commit bool
}

// RecordListResult is the service-level DTO for paginated records.
type RecordListResult struct {
	Items []model.Record `json:"data"`
	Total int            `json:"total"`
}

// ArrayService defines the use cases of one record kind and its array of uploaded files.
type ArrayService interface {
	// Field returns the array field the service is bound to.
	Field() model.ArrayField

	// Save stages the batch into storage, replaces the array and schedules deletion of the
	// files it referenced before. Files already written are not removed when a later step
	// fails.
	Save(ctx context.Context, in SaveInput) (*model.Record, error)

	// Persist writes a record returned by an uncommitted Save. It is meant for library
	// callers that stage files first and store the record in a later step of their own;
	// the admin handlers never call it.
	Persist(ctx context.Context, rec *model.Record) (*model.Record, error)

	// Get returns a single record by its ID.
	Get(ctx context.Context, id string) (*model.Record, error)

	// List returns records using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*RecordListResult, error)

	// Delete removes every referenced file, then the record.
	Delete(ctx context.Context, id string) error
}

type arrayService struct {
	field      model.ArrayField
	store      storage.Storage
	repo       repository.RecordRepository
	sanitizer  Sanitizer
	dispatcher cleanup.Dispatcher
	metrics    *metrics.Metrics
	log        *zap.Logger
	now        func() time.Time
}

// Deps groups the collaborators of an ArrayService.
type Deps struct {
	Store      storage.Storage
	Repo       repository.RecordRepository
	Sanitizer  Sanitizer
	Dispatcher cleanup.Dispatcher
	Metrics    *metrics.Metrics
	Log        *zap.Logger
}

// NewArrayService constructs an ArrayService bound to field.
func NewArrayService(field model.ArrayField, d Deps) ArrayService {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if field.UploadTo == nil {
		field.UploadTo = model.PrefixUploadTo("")
	}
	return &arrayService{
		field:      field,
		store:      d.Store,
		repo:       d.Repo,
		sanitizer:  d.Sanitizer,
		dispatcher: d.Dispatcher,
		metrics:    d.Metrics,
		log:        d.Log.With(zap.String("component", "array_service"), zap.String("kind", string(field.Kind))),
		now:        time.Now,
	}
}

func (s *arrayService) Field() model.ArrayField { return s.field }

func (s *arrayService) Save(ctx context.Context, in SaveInput) (*model.Record, error) {
	rec, isNew, err := s.load(ctx, in.RecordID)
	if err != nil {
		return nil, err
	}

	var snapshot []string
	staged := len(in.Batch) > 0
	if staged {
		snapshot = rec.Paths
		rec.Paths = make([]string, 0, len(in.Batch))
		for _, f := range in.Batch {
			key, err := s.stage(ctx, rec, f)
			if err != nil {
				return nil, err
			}
			rec.Paths = append(rec.Paths, key)
		}
		s.metrics.FilesStaged.WithLabelValues(string(s.field.Kind)).Add(float64(len(in.Batch)))
	}

	if in.Commit {
		if isNew {
			rec, err = s.repo.Create(ctx, rec)
		} else {
			rec, err = s.persistPaths(ctx, rec)
		}
		if err != nil {
			return nil, fmt.Errorf("db save failed: %w", err)
		}
	}

	if staged && len(snapshot) > 0 {
		if err := s.dispatcher.Enqueue(ctx, snapshot); err != nil {
			s.log.Error("cleanup_enqueue_failed",
				zap.String("record_id", rec.ID),
				zap.Strings("paths", snapshot),
				zap.Error(err),
			)
			return rec, fmt.Errorf("%w: %v", ErrCleanupDispatch, err)
		}
		s.metrics.CleanupEnqueued.WithLabelValues(string(s.field.Kind)).Inc()
		s.log.Info("cleanup_enqueued", zap.String("record_id", rec.ID), zap.Int("paths", len(snapshot)))
	}
	return rec, nil
}

// load returns the stored record, or a fresh unsaved one when id is empty.
func (s *arrayService) load(ctx context.Context, id string) (*model.Record, bool, error) {
	if id == "" {
		now := s.now().UTC()
		return &model.Record{
			ID:        uuid.NewString(),
			Kind:      s.field.Kind,
			Paths:     []string{},
			CreatedAt: now,
			UpdatedAt: now,
		}, true, nil
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, ErrNotFound
		}
		return nil, false, err
	}
	return rec, false, nil
}

func (s *arrayService) stage(ctx context.Context, rec *model.Record, f *upload.File) (string, error) {
	target, err := s.sanitizer.Sanitize(ctx, s.field.UploadTo(rec, f.Name))
	if err != nil {
		return "", fmt.Errorf("sanitize %q: %w", f.Name, err)
	}
	info, err := s.store.Put(ctx, target, f, storage.PutObjectOptions{
		Size:        f.Size,
		ContentType: f.ContentType,
		Metadata: map[string]string{
			"original-filename": f.Name,
		},
	})
	if err != nil {
		return "", fmt.Errorf("upload to storage: %w", err)
	}
	return info.Key, nil
}

func (s *arrayService) persistPaths(ctx context.Context, rec *model.Record) (*model.Record, error) {
	rec.UpdatedAt = s.now().UTC()
	out, err := s.repo.UpdatePaths(ctx, rec)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return out, err
}

func (s *arrayService) Persist(ctx context.Context, rec *model.Record) (*model.Record, error) {
	if rec == nil || rec.ID == "" {
		return nil, ErrIDRequired
	}
	_, err := s.repo.FindByID(ctx, rec.ID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return s.repo.Create(ctx, rec)
	case err != nil:
		return nil, err
	}
	return s.persistPaths(ctx, rec)
}

func (s *arrayService) Get(ctx context.Context, id string) (*model.Record, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

func (s *arrayService) List(ctx context.Context, limit, offset int) (*RecordListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &RecordListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *arrayService) Delete(ctx context.Context, id string) error {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := DestroyFiles(ctx, s.store, rec); err != nil {
		s.metrics.DeleteFailures.WithLabelValues("destroy").Inc()
		return err
	}
	s.metrics.FilesDeleted.WithLabelValues("destroy").Add(float64(len(rec.Paths)))
	return s.repo.Delete(ctx, id)
}
