package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
)

type EstimateService struct {
	estimates      *repository.EstimateRepository
	jobs           *repository.JobRepository
	defaultTaxRate float64
	now            func() time.Time
}

func NewEstimateService(
	estimates *repository.EstimateRepository,
	jobs *repository.JobRepository,
	defaultTaxRate float64,
	now func() time.Time,
) *EstimateService {
	if defaultTaxRate <= 0 {
		defaultTaxRate = DefaultTaxRate
	}
	if now == nil {
		now = time.Now
	}
	return &EstimateService{
		estimates:      estimates,
		jobs:           jobs,
		defaultTaxRate: defaultTaxRate,
		now:            now,
	}
}

type EstimateInput struct {
	Title       string
	Description string
	ClientID    string
	Status      string
	Items       []model.EstimateItem
	TaxRate     float64
	Total       float64
	DueDate     string
}

func (s *EstimateService) Create(ctx context.Context, input EstimateInput) (*model.Estimate, *apperrors.APIError) {
	estimate := &model.Estimate{ID: uuid.NewString(), Status: model.EstimateStatusDraft}
	if apiErr := s.apply(estimate, input); apiErr != nil {
		return nil, apiErr
	}

	if err := s.estimates.Put(ctx, estimate); err != nil {
		return nil, apperrors.Persistence("failed to save estimate")
	}
	return estimate, nil
}

func (s *EstimateService) Update(ctx context.Context, id string, input EstimateInput) (*model.Estimate, *apperrors.APIError) {
	estimate, apiErr := s.Get(ctx, id)
	if apiErr != nil {
		return nil, apiErr
	}

	if apiErr := s.apply(estimate, input); apiErr != nil {
		return nil, apiErr
	}

	if err := s.estimates.Put(ctx, estimate); err != nil {
		return nil, apperrors.Persistence("failed to save estimate")
	}
	return estimate, nil
}

func (s *EstimateService) Get(ctx context.Context, id string) (*model.Estimate, *apperrors.APIError) {
	estimate, err := s.estimates.Get(ctx, id)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("estimate_not_found", "estimate not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read estimate")
	}
	return estimate, nil
}

func (s *EstimateService) List(ctx context.Context, status string) ([]model.Estimate, *apperrors.APIError) {
	var estimates []model.Estimate
	var err error
	if status != "" {
		estimates, err = s.estimates.ListByStatus(ctx, status)
	} else {
		estimates, err = s.estimates.All(ctx)
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to list estimates")
	}
	return estimates, nil
}

func (s *EstimateService) Delete(ctx context.Context, id string) *apperrors.APIError {
	if _, apiErr := s.Get(ctx, id); apiErr != nil {
		return apiErr
	}
	if err := s.estimates.Delete(ctx, id); err != nil {
		return apperrors.Persistence("failed to delete estimate")
	}
	return nil
}

// ConvertToJob turns an accepted quote into a scheduled job. The job insert
// and the estimate update commit together. Converting an estimate that
// already has a job is rejected; the original allowed it and produced
// duplicate jobs on double clicks.
func (s *EstimateService) ConvertToJob(ctx context.Context, estimateID string) (*model.Job, *apperrors.APIError) {
	now := s.now().UTC()
	tx, err := s.estimates.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to start transaction")
	}
	defer tx.Rollback()

	estimate, err := s.estimates.GetTx(ctx, tx, estimateID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("estimate_not_found", "estimate not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read estimate")
	}

	if estimate.JobID != "" {
		return nil, apperrors.Conflict("already_converted", "estimate already converted to a job", map[string]interface{}{
			"jobId": estimate.JobID,
		})
	}

	title := estimate.Title
	if title == "" {
		title = fmt.Sprintf("Job from quote #%s", estimate.ID)
	}
	scheduledDate := estimate.DueDate
	if scheduledDate == "" {
		scheduledDate = now.Format(dateLayout)
	}

	job := &model.Job{
		ID:             uuid.NewString(),
		Title:          title,
		Description:    estimate.Description,
		ClientID:       estimate.ClientID,
		Status:         model.JobStatusScheduled,
		ScheduledDate:  scheduledDate,
		EstimatedPrice: estimate.Total,
		EstimateID:     estimate.ID,
	}

	if err := s.jobs.PutTx(ctx, tx, job); err != nil {
		return nil, apperrors.Persistence("failed to save job")
	}

	estimate.Status = model.EstimateStatusAccepted
	estimate.JobID = job.ID
	estimate.ConvertedAt = &now

	if err := s.estimates.PutTx(ctx, tx, estimate); err != nil {
		return nil, apperrors.Persistence("failed to update estimate")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Persistence("failed to commit transaction")
	}

	return job, nil
}

func (s *EstimateService) apply(estimate *model.Estimate, input EstimateInput) *apperrors.APIError {
	if input.Status != "" && !validEstimateStatus(input.Status) {
		return apperrors.BadRequest("invalid_status", "status must be one of draft, sent, accepted, rejected")
	}
	if input.DueDate != "" {
		if _, err := time.Parse(dateLayout, input.DueDate); err != nil {
			return apperrors.BadRequest("invalid_date", "dueDate must be YYYY-MM-DD")
		}
	}

	taxRate := input.TaxRate
	if taxRate <= 0 {
		taxRate = s.defaultTaxRate
	}

	estimate.Title = input.Title
	estimate.Description = input.Description
	estimate.ClientID = input.ClientID
	estimate.DueDate = input.DueDate
	estimate.Items = input.Items
	if input.Status != "" {
		estimate.Status = input.Status
	}

	// Totals come from the line items when present; otherwise a caller
	// supplying only a gross figure gets the reverse calculation.
	var totals model.Totals
	switch {
	case len(input.Items) > 0:
		totals = TotalsFromItems(input.Items, taxRate)
	case input.Total > 0:
		totals = TotalsFromGross(input.Total, taxRate)
	default:
		totals = model.Totals{TaxRate: taxRate}
	}
	estimate.Subtotal = totals.Subtotal
	estimate.Tax = totals.Tax
	estimate.Total = totals.Total
	estimate.TaxRate = totals.TaxRate

	return nil
}

func validEstimateStatus(status string) bool {
	switch status {
	case model.EstimateStatusDraft, model.EstimateStatusSent, model.EstimateStatusAccepted, model.EstimateStatusRejected:
		return true
	}
	return false
}
