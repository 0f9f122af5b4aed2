package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
	"fachowiec/backend/internal/service"
)

// seedEntry writes a finalized entry that started at the given instant.
func seedEntry(t *testing.T, repo *repository.TimeEntryRepository, jobID string, start time.Time, seconds int) {
	t.Helper()
	end := start.Add(time.Duration(seconds) * time.Second)
	entry := &model.TimeEntry{
		ID:        fmt.Sprintf("entry-%s-%s", jobID, start.Format(time.RFC3339)),
		JobID:     jobID,
		StartTime: start,
		EndTime:   &end,
		Duration:  seconds,
	}
	if err := repo.Put(context.Background(), entry); err != nil {
		t.Fatalf("seed entry: %v", err)
	}
}

func TestReportWeeklyBounds(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)
	ctx := context.Background()

	// Wednesday 2025-03-12; the week runs Mon 2025-03-10 through Sun 2025-03-16.
	ref := time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC)

	seedEntry(t, repo, "job-1", time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), 3600)
	seedEntry(t, repo, "job-1", time.Date(2025, time.March, 16, 23, 30, 0, 0, time.UTC), 1800)
	seedEntry(t, repo, "job-2", time.Date(2025, time.March, 9, 23, 59, 0, 0, time.UTC), 600)
	seedEntry(t, repo, "job-2", time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC), 600)

	report, apiErr := reports.Generate(ctx, model.ReportWeekly, ref)
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}

	if report.StartDate != "2025-03-10" || report.EndDate != "2025-03-16" {
		t.Fatalf("bounds = %s..%s, want 2025-03-10..2025-03-16", report.StartDate, report.EndDate)
	}
	if report.EntryCount != 2 {
		t.Fatalf("entryCount = %d, want 2", report.EntryCount)
	}
	if report.TotalSeconds != 5400 {
		t.Fatalf("totalSeconds = %d, want 5400", report.TotalSeconds)
	}
	if report.TotalHours != 1.5 {
		t.Fatalf("totalHours = %v, want 1.5", report.TotalHours)
	}
	if report.JobCount != 1 {
		t.Fatalf("jobCount = %d, want 1", report.JobCount)
	}

	if got := report.Breakdown["2025-03-10"].Seconds; got != 3600 {
		t.Fatalf("monday bucket = %d, want 3600", got)
	}
	if got := report.Breakdown["2025-03-16"].Seconds; got != 1800 {
		t.Fatalf("sunday bucket = %d, want 1800", got)
	}
}

func TestReportWeeklySundayReference(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)

	// A Sunday reference belongs to the week that started the previous Monday.
	ref := time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC)
	report, apiErr := reports.Generate(context.Background(), model.ReportWeekly, ref)
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.StartDate != "2025-03-10" || report.EndDate != "2025-03-16" {
		t.Fatalf("bounds = %s..%s, want 2025-03-10..2025-03-16", report.StartDate, report.EndDate)
	}
}

func TestReportDaily(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)
	ctx := context.Background()

	day := time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC)
	seedEntry(t, repo, "job-1", day.Add(8*time.Hour), 1200)
	seedEntry(t, repo, "job-1", day.Add(15*time.Hour), 1800)
	seedEntry(t, repo, "job-1", day.AddDate(0, 0, 1), 900)

	report, apiErr := reports.Generate(ctx, model.ReportDaily, day.Add(10*time.Hour))
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.StartDate != "2025-03-12" || report.EndDate != "2025-03-12" {
		t.Fatalf("bounds = %s..%s, want 2025-03-12..2025-03-12", report.StartDate, report.EndDate)
	}
	if report.TotalSeconds != 3000 {
		t.Fatalf("totalSeconds = %d, want 3000", report.TotalSeconds)
	}
	if report.Breakdown != nil {
		t.Fatal("daily reports have no breakdown")
	}
}

func TestReportMonthlyWeekBuckets(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)
	ctx := context.Background()

	// Two entries in the week of Mon 2025-03-10, one in the week of Mon 2025-03-24.
	seedEntry(t, repo, "job-1", time.Date(2025, time.March, 11, 9, 0, 0, 0, time.UTC), 600)
	seedEntry(t, repo, "job-1", time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC), 600)
	seedEntry(t, repo, "job-1", time.Date(2025, time.March, 26, 9, 0, 0, 0, time.UTC), 300)

	report, apiErr := reports.Generate(ctx, model.ReportMonthly, time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC))
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.StartDate != "2025-03-01" || report.EndDate != "2025-03-31" {
		t.Fatalf("bounds = %s..%s, want 2025-03-01..2025-03-31", report.StartDate, report.EndDate)
	}
	if got := report.Breakdown["2025-03-10"]; got.Seconds != 1200 || got.Count != 2 {
		t.Fatalf("week bucket 2025-03-10 = %+v, want {1200 2}", got)
	}
	if got := report.Breakdown["2025-03-24"]; got.Seconds != 300 || got.Count != 1 {
		t.Fatalf("week bucket 2025-03-24 = %+v, want {300 1}", got)
	}
}

func TestReportYearlyMonthBuckets(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)
	ctx := context.Background()

	seedEntry(t, repo, "job-1", time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC), 100)
	seedEntry(t, repo, "job-2", time.Date(2025, time.July, 20, 9, 0, 0, 0, time.UTC), 200)
	seedEntry(t, repo, "job-3", time.Date(2024, time.December, 31, 9, 0, 0, 0, time.UTC), 400)

	report, apiErr := reports.Generate(ctx, model.ReportYearly, time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC))
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.StartDate != "2025-01-01" || report.EndDate != "2025-12-31" {
		t.Fatalf("bounds = %s..%s, want 2025-01-01..2025-12-31", report.StartDate, report.EndDate)
	}
	if report.TotalSeconds != 300 {
		t.Fatalf("totalSeconds = %d, want 300", report.TotalSeconds)
	}
	if got := report.Breakdown["2025-01"].Seconds; got != 100 {
		t.Fatalf("january bucket = %d, want 100", got)
	}
	if got := report.Breakdown["2025-07"].Seconds; got != 200 {
		t.Fatalf("july bucket = %d, want 200", got)
	}
	if report.JobCount != 2 {
		t.Fatalf("jobCount = %d, want 2", report.JobCount)
	}
}

func TestReportSkipsRunningEntries(t *testing.T) {
	repo := newEntryRepo(t)
	clock := newFakeClock()
	timer := service.NewTimerService(repo, clock.Now)
	reports := service.NewReportService(repo)
	ctx := context.Background()

	seedEntry(t, repo, "job-1", clock.Now().Add(-time.Hour), 600)
	if _, apiErr := timer.Start(ctx, "job-1"); apiErr != nil {
		t.Fatalf("start: %v", apiErr)
	}

	report, apiErr := reports.Generate(ctx, model.ReportDaily, clock.Now())
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.EntryCount != 1 {
		t.Fatalf("entryCount = %d, want 1 (running entry excluded)", report.EntryCount)
	}
	if report.TotalSeconds != 600 {
		t.Fatalf("totalSeconds = %d, want 600", report.TotalSeconds)
	}
}

func TestReportInvalidKind(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)

	_, apiErr := reports.Generate(context.Background(), "quarterly", time.Now())
	if apiErr == nil {
		t.Fatal("expected error for unknown period")
	}
	if apiErr.Code != "invalid_period" {
		t.Fatalf("expected invalid_period, got %s", apiErr.Code)
	}
}

func TestReportEmptyPeriod(t *testing.T) {
	repo := newEntryRepo(t)
	reports := service.NewReportService(repo)

	report, apiErr := reports.Generate(context.Background(), model.ReportWeekly, time.Date(2025, time.March, 12, 9, 0, 0, 0, time.UTC))
	if apiErr != nil {
		t.Fatalf("generate: %v", apiErr)
	}
	if report.TotalSeconds != 0 || report.EntryCount != 0 || report.JobCount != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
	if report.TotalHours != 0 {
		t.Fatalf("totalHours = %v, want 0", report.TotalHours)
	}
}
