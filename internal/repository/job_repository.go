package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/store"
)

const collectionJobs = "jobs"

type JobRepository struct {
	store *store.Store
}

func NewJobRepository(s *store.Store) *JobRepository {
	return &JobRepository{store: s}
}

func (r *JobRepository) Get(ctx context.Context, id string) (*model.Job, error) {
	record, err := r.store.Get(ctx, collectionJobs, id)
	if err != nil {
		return nil, err
	}
	return decodeJob(record.Data)
}

func (r *JobRepository) Put(ctx context.Context, job *model.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, collectionJobs, job.ID, data)
}

func (r *JobRepository) PutTx(ctx context.Context, tx *sql.Tx, job *model.Job) error {
	data, err := encodeJob(job)
	if err != nil {
		return err
	}
	return r.store.PutTx(ctx, tx, collectionJobs, job.ID, data)
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, collectionJobs, id)
}

// All returns every job, newest first.
func (r *JobRepository) All(ctx context.Context) ([]model.Job, error) {
	records, err := r.store.All(ctx, collectionJobs)
	if err != nil {
		return nil, err
	}

	jobs := make([]model.Job, 0, len(records))
	for _, record := range records {
		job, decodeErr := decodeJob(record.Data)
		if decodeErr != nil {
			return nil, decodeErr
		}
		jobs = append(jobs, *job)
	}
	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs, nil
}

func encodeJob(job *model.Job) ([]byte, error) {
	now := time.Now().UTC()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = now
	}
	job.UpdatedAt = now

	data, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("encode job: %w", err)
	}
	return data, nil
}

func decodeJob(data []byte) (*model.Job, error) {
	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("decode job: %w", err)
	}
	return &job, nil
}
