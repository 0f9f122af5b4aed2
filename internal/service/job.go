package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
)

type JobService struct {
	jobs *repository.JobRepository
}

func NewJobService(jobs *repository.JobRepository) *JobService {
	return &JobService{jobs: jobs}
}

type JobInput struct {
	Title             string
	Description       string
	ClientID          string
	Status            string
	ScheduledDate     string
	ScheduledTime     string
	EstimatedDuration int
	EstimatedPrice    float64
}

// Create saves the job and reports any schedule conflicts with existing jobs.
// Conflicts are surfaced, not enforced: the caller decides whether to
// reschedule.
func (s *JobService) Create(ctx context.Context, input JobInput) (*model.Job, []model.Job, *apperrors.APIError) {
	job := &model.Job{ID: uuid.NewString(), Status: model.JobStatusScheduled}
	if apiErr := applyJobInput(job, input); apiErr != nil {
		return nil, nil, apiErr
	}
	return s.save(ctx, job)
}

func (s *JobService) Update(ctx context.Context, id string, input JobInput) (*model.Job, []model.Job, *apperrors.APIError) {
	job, apiErr := s.Get(ctx, id)
	if apiErr != nil {
		return nil, nil, apiErr
	}
	if apiErr := applyJobInput(job, input); apiErr != nil {
		return nil, nil, apiErr
	}
	return s.save(ctx, job)
}

func (s *JobService) Get(ctx context.Context, id string) (*model.Job, *apperrors.APIError) {
	job, err := s.jobs.Get(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("job_not_found", "job not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read job")
	}
	return job, nil
}

func (s *JobService) List(ctx context.Context) ([]model.Job, *apperrors.APIError) {
	jobs, err := s.jobs.All(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to list jobs")
	}
	return jobs, nil
}

// Delete removes the job record. Time entries referencing it stay behind;
// reports tolerate the dangling jobId.
func (s *JobService) Delete(ctx context.Context, id string) *apperrors.APIError {
	if _, apiErr := s.Get(ctx, id); apiErr != nil {
		return apiErr
	}
	if err := s.jobs.Delete(ctx, id); err != nil {
		return apperrors.Persistence("failed to delete job")
	}
	return nil
}

// ConflictsOn returns every job on the date that overlaps at least one other.
func (s *JobService) ConflictsOn(ctx context.Context, date string) ([]model.Job, *apperrors.APIError) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, apperrors.BadRequest("invalid_date", "date must be YYYY-MM-DD")
	}
	jobs, err := s.jobs.All(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to list jobs")
	}
	return ConflictsOnDate(jobs, date), nil
}

func (s *JobService) save(ctx context.Context, job *model.Job) (*model.Job, []model.Job, *apperrors.APIError) {
	existing, err := s.jobs.All(ctx)
	if err != nil {
		return nil, nil, apperrors.Persistence("failed to list jobs")
	}
	conflicts := DetectConflicts(existing, *job)

	if err := s.jobs.Put(ctx, job); err != nil {
		return nil, nil, apperrors.Persistence("failed to save job")
	}
	return job, conflicts, nil
}

func applyJobInput(job *model.Job, input JobInput) *apperrors.APIError {
	if input.Title == "" {
		return apperrors.BadRequest("invalid_title", "title is required")
	}
	if input.Status != "" && !validJobStatus(input.Status) {
		return apperrors.BadRequest("invalid_status", "status must be one of scheduled, in_progress, completed, cancelled")
	}
	if input.ScheduledDate != "" {
		if _, err := time.Parse(dateLayout, input.ScheduledDate); err != nil {
			return apperrors.BadRequest("invalid_date", "scheduledDate must be YYYY-MM-DD")
		}
	}
	if input.ScheduledTime != "" {
		if _, err := ParseClock(input.ScheduledTime); err != nil {
			return apperrors.BadRequest("invalid_time", "scheduledTime must be HH:mm")
		}
	}
	if input.EstimatedDuration < 0 {
		return apperrors.BadRequest("invalid_duration", "estimatedDuration must be positive minutes")
	}

	job.Title = input.Title
	job.Description = input.Description
	job.ClientID = input.ClientID
	if input.Status != "" {
		job.Status = input.Status
	}
	job.ScheduledDate = input.ScheduledDate
	job.ScheduledTime = input.ScheduledTime
	job.EstimatedDuration = input.EstimatedDuration
	job.EstimatedPrice = input.EstimatedPrice
	return nil
}

func validJobStatus(status string) bool {
	switch status {
	case model.JobStatusScheduled, model.JobStatusInProgress, model.JobStatusCompleted, model.JobStatusCancelled:
		return true
	}
	return false
}
