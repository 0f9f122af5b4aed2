package service_test

import (
	"testing"

	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/service"
)

func scheduledJob(id, date, clock string, minutes int) model.Job {
	return model.Job{
		ID:                id,
		Title:             "job " + id,
		ScheduledDate:     date,
		ScheduledTime:     clock,
		EstimatedDuration: minutes,
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		value   string
		minutes int
		wantErr bool
	}{
		{value: "09:00", minutes: 540},
		{value: "00:00", minutes: 0},
		{value: "23:59", minutes: 1439},
		{value: "9:30", minutes: 570},
		{value: "24:00", wantErr: true},
		{value: "09:60", wantErr: true},
		{value: "0900", wantErr: true},
		{value: "nine", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		minutes, err := service.ParseClock(tt.value)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseClock(%q) expected error, got %d", tt.value, minutes)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseClock(%q) unexpected error: %v", tt.value, err)
			continue
		}
		if minutes != tt.minutes {
			t.Errorf("ParseClock(%q) = %d, want %d", tt.value, minutes, tt.minutes)
		}
	}
}

func TestDetectConflictsOverlap(t *testing.T) {
	existing := scheduledJob("a", "2025-03-10", "09:00", 60)

	overlapping := scheduledJob("b", "2025-03-10", "09:30", 60)
	conflicts := service.DetectConflicts([]model.Job{existing}, overlapping)
	if len(conflicts) != 1 || conflicts[0].ID != "a" {
		t.Fatalf("expected conflict with job a, got %v", conflicts)
	}

	// Symmetric.
	conflicts = service.DetectConflicts([]model.Job{overlapping}, existing)
	if len(conflicts) != 1 || conflicts[0].ID != "b" {
		t.Fatalf("expected conflict with job b, got %v", conflicts)
	}
}

func TestDetectConflictsBackToBack(t *testing.T) {
	existing := scheduledJob("a", "2025-03-10", "09:00", 60)
	backToBack := scheduledJob("b", "2025-03-10", "10:00", 60)

	if conflicts := service.DetectConflicts([]model.Job{existing}, backToBack); len(conflicts) != 0 {
		t.Fatalf("back-to-back jobs must not conflict, got %v", conflicts)
	}
}

func TestDetectConflictsDifferentDate(t *testing.T) {
	existing := scheduledJob("a", "2025-03-10", "09:00", 60)
	otherDay := scheduledJob("b", "2025-03-11", "09:00", 60)

	if conflicts := service.DetectConflicts([]model.Job{existing}, otherDay); len(conflicts) != 0 {
		t.Fatalf("jobs on different dates must not conflict, got %v", conflicts)
	}
}

func TestDetectConflictsSkipsSameJob(t *testing.T) {
	job := scheduledJob("a", "2025-03-10", "09:00", 60)

	if conflicts := service.DetectConflicts([]model.Job{job}, job); len(conflicts) != 0 {
		t.Fatalf("a job must not conflict with itself, got %v", conflicts)
	}
}

func TestDetectConflictsMissingTimeFallback(t *testing.T) {
	timed := scheduledJob("a", "2025-03-10", "09:00", 60)
	allDay := scheduledJob("b", "2025-03-10", "", 0)

	// No time granularity: same date is enough.
	if conflicts := service.DetectConflicts([]model.Job{timed}, allDay); len(conflicts) != 1 {
		t.Fatalf("expected all-day job to conflict on matching date, got %v", conflicts)
	}
	if conflicts := service.DetectConflicts([]model.Job{allDay}, timed); len(conflicts) != 1 {
		t.Fatalf("expected timed job to conflict with all-day job, got %v", conflicts)
	}
}

func TestDetectConflictsDefaultDuration(t *testing.T) {
	// No explicit duration defaults to 60 minutes.
	existing := scheduledJob("a", "2025-03-10", "09:00", 0)
	candidate := scheduledJob("b", "2025-03-10", "09:45", 0)

	if conflicts := service.DetectConflicts([]model.Job{existing}, candidate); len(conflicts) != 1 {
		t.Fatalf("expected default-duration windows to overlap, got %v", conflicts)
	}
}

func TestConflictsOnDate(t *testing.T) {
	jobs := []model.Job{
		scheduledJob("a", "2025-03-10", "09:00", 60),
		scheduledJob("b", "2025-03-10", "09:30", 60),
		scheduledJob("c", "2025-03-10", "13:00", 60),
		scheduledJob("d", "2025-03-11", "09:00", 60),
		scheduledJob("e", "2025-03-10", "", 0),
	}

	conflicts := service.ConflictsOnDate(jobs, "2025-03-10")
	if len(conflicts) != 2 {
		t.Fatalf("expected 2 conflicting jobs, got %d: %v", len(conflicts), conflicts)
	}

	got := map[string]bool{}
	for _, job := range conflicts {
		got[job.ID] = true
	}
	if !got["a"] || !got["b"] {
		t.Fatalf("expected jobs a and b, got %v", got)
	}
}

func TestConflictsOnDateDeduplicates(t *testing.T) {
	// Job a overlaps both b and c but appears once.
	jobs := []model.Job{
		scheduledJob("a", "2025-03-10", "09:00", 180),
		scheduledJob("b", "2025-03-10", "09:30", 60),
		scheduledJob("c", "2025-03-10", "11:00", 60),
	}

	conflicts := service.ConflictsOnDate(jobs, "2025-03-10")
	if len(conflicts) != 3 {
		t.Fatalf("expected 3 conflicting jobs, got %d", len(conflicts))
	}
	seen := map[string]int{}
	for _, job := range conflicts {
		seen[job.ID]++
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("job %s appears %d times, want 1", id, count)
		}
	}
}
