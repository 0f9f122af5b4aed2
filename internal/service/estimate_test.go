package service_test

import (
	"context"
	"testing"

	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
	"fachowiec/backend/internal/service"
)

func newEstimateService(t *testing.T) (*service.EstimateService, *repository.JobRepository) {
	t.Helper()
	s := newTestStore(t)
	jobs := repository.NewJobRepository(s)
	estimates := repository.NewEstimateRepository(s)
	return service.NewEstimateService(estimates, jobs, 23, newFakeClock().Now), jobs
}

func TestEstimateCreateComputesTotals(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	estimate, apiErr := svc.Create(ctx, service.EstimateInput{
		Title: "Bathroom renovation",
		Items: []model.EstimateItem{
			{Description: "Tiling", Quantity: 2, Rate: 100},
			{Description: "Plumbing", Quantity: 1, Rate: 50},
		},
	})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	if estimate.Subtotal != 250 {
		t.Fatalf("subtotal = %v, want 250", estimate.Subtotal)
	}
	if estimate.Tax != 57.5 {
		t.Fatalf("tax = %v, want 57.5", estimate.Tax)
	}
	if estimate.Total != 307.5 {
		t.Fatalf("total = %v, want 307.5", estimate.Total)
	}
	if estimate.TaxRate != 23 {
		t.Fatalf("taxRate = %v, want 23", estimate.TaxRate)
	}
	if estimate.Status != model.EstimateStatusDraft {
		t.Fatalf("status = %s, want draft", estimate.Status)
	}
}

func TestEstimateUpdateFromGrossTotal(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	created, apiErr := svc.Create(ctx, service.EstimateInput{Title: "Fence repair"})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	updated, apiErr := svc.Update(ctx, created.ID, service.EstimateInput{
		Title: "Fence repair",
		Total: 123,
	})
	if apiErr != nil {
		t.Fatalf("update: %v", apiErr)
	}
	if updated.Subtotal != 100 {
		t.Fatalf("subtotal = %v, want 100", updated.Subtotal)
	}
	if updated.Tax != 23 {
		t.Fatalf("tax = %v, want 23", updated.Tax)
	}
	if updated.Total != 123 {
		t.Fatalf("total = %v, want 123", updated.Total)
	}
}

func TestEstimateInvalidInput(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	_, apiErr := svc.Create(ctx, service.EstimateInput{Title: "x", Status: "pending"})
	if apiErr == nil || apiErr.Code != "invalid_status" {
		t.Fatalf("expected invalid_status, got %v", apiErr)
	}

	_, apiErr = svc.Create(ctx, service.EstimateInput{Title: "x", DueDate: "12/03/2025"})
	if apiErr == nil || apiErr.Code != "invalid_date" {
		t.Fatalf("expected invalid_date, got %v", apiErr)
	}
}

func TestEstimateListByStatus(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	if _, apiErr := svc.Create(ctx, service.EstimateInput{Title: "a"}); apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}
	if _, apiErr := svc.Create(ctx, service.EstimateInput{Title: "b", Status: model.EstimateStatusSent}); apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	sent, apiErr := svc.List(ctx, model.EstimateStatusSent)
	if apiErr != nil {
		t.Fatalf("list: %v", apiErr)
	}
	if len(sent) != 1 || sent[0].Title != "b" {
		t.Fatalf("expected one sent estimate, got %v", sent)
	}

	all, apiErr := svc.List(ctx, "")
	if apiErr != nil {
		t.Fatalf("list all: %v", apiErr)
	}
	if len(all) != 2 {
		t.Fatalf("expected two estimates, got %d", len(all))
	}
}

func TestConvertToJob(t *testing.T) {
	svc, jobs := newEstimateService(t)
	ctx := context.Background()

	estimate, apiErr := svc.Create(ctx, service.EstimateInput{
		Title:    "Roof inspection",
		ClientID: "client-7",
		DueDate:  "2025-04-01",
		Items:    []model.EstimateItem{{Description: "Inspection", Quantity: 1, Rate: 200}},
	})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	job, apiErr := svc.ConvertToJob(ctx, estimate.ID)
	if apiErr != nil {
		t.Fatalf("convert: %v", apiErr)
	}
	if job.Title != "Roof inspection" {
		t.Fatalf("job title = %q", job.Title)
	}
	if job.ClientID != "client-7" {
		t.Fatalf("job clientId = %q", job.ClientID)
	}
	if job.Status != model.JobStatusScheduled {
		t.Fatalf("job status = %s, want scheduled", job.Status)
	}
	if job.ScheduledDate != "2025-04-01" {
		t.Fatalf("job scheduledDate = %s, want 2025-04-01", job.ScheduledDate)
	}
	if job.EstimatedPrice != 246 {
		t.Fatalf("job estimatedPrice = %v, want 246", job.EstimatedPrice)
	}
	if job.EstimateID != estimate.ID {
		t.Fatalf("job estimateId = %s, want %s", job.EstimateID, estimate.ID)
	}

	saved, err := jobs.Get(ctx, job.ID)
	if err != nil {
		t.Fatalf("job not persisted: %v", err)
	}
	if saved.Title != job.Title {
		t.Fatalf("persisted job title = %q", saved.Title)
	}

	converted, apiErr := svc.Get(ctx, estimate.ID)
	if apiErr != nil {
		t.Fatalf("get estimate: %v", apiErr)
	}
	if converted.Status != model.EstimateStatusAccepted {
		t.Fatalf("estimate status = %s, want accepted", converted.Status)
	}
	if converted.JobID != job.ID {
		t.Fatalf("estimate jobId = %s, want %s", converted.JobID, job.ID)
	}
	if converted.ConvertedAt == nil {
		t.Fatal("expected convertedAt to be set")
	}
}

func TestConvertToJobDefaults(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	// No title, no due date: the job falls back to a generated title and today.
	estimate, apiErr := svc.Create(ctx, service.EstimateInput{Total: 500})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	job, apiErr := svc.ConvertToJob(ctx, estimate.ID)
	if apiErr != nil {
		t.Fatalf("convert: %v", apiErr)
	}
	if job.Title != "Job from quote #"+estimate.ID {
		t.Fatalf("job title = %q", job.Title)
	}
	if job.ScheduledDate != "2025-03-12" {
		t.Fatalf("job scheduledDate = %s, want 2025-03-12", job.ScheduledDate)
	}
}

func TestConvertToJobIdempotencyGuard(t *testing.T) {
	svc, _ := newEstimateService(t)
	ctx := context.Background()

	estimate, apiErr := svc.Create(ctx, service.EstimateInput{Title: "Gutter cleaning", Total: 120})
	if apiErr != nil {
		t.Fatalf("create: %v", apiErr)
	}

	job, apiErr := svc.ConvertToJob(ctx, estimate.ID)
	if apiErr != nil {
		t.Fatalf("first convert: %v", apiErr)
	}

	_, apiErr = svc.ConvertToJob(ctx, estimate.ID)
	if apiErr == nil {
		t.Fatal("expected second conversion to fail")
	}
	if apiErr.Code != "already_converted" {
		t.Fatalf("expected already_converted, got %s", apiErr.Code)
	}
	details, ok := apiErr.Details.(map[string]interface{})
	if !ok {
		t.Fatalf("expected details map, got %T", apiErr.Details)
	}
	if details["jobId"] != job.ID {
		t.Fatalf("details jobId = %v, want %s", details["jobId"], job.ID)
	}
}

func TestConvertToJobNotFound(t *testing.T) {
	svc, _ := newEstimateService(t)

	_, apiErr := svc.ConvertToJob(context.Background(), "missing")
	if apiErr == nil || apiErr.Code != "estimate_not_found" {
		t.Fatalf("expected estimate_not_found, got %v", apiErr)
	}
}
