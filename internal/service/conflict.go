package service

import (
	"fmt"
	"strconv"
	"strings"

	"fachowiec/backend/internal/model"
)

// ParseClock converts an "HH:mm" wall clock string to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("malformed time %q", value)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("time %q out of range", value)
	}
	return hours*60 + minutes, nil
}

// windowsOverlap tests two half-open minute windows, inclusive start,
// exclusive end. Back-to-back jobs do not overlap.
func windowsOverlap(start1, duration1, start2, duration2 int) bool {
	end1 := start1 + duration1
	end2 := start2 + duration2
	return start1 < end2 && end1 > start2
}

// DetectConflicts returns every job scheduled on the candidate's date whose
// time window overlaps the candidate's. Jobs without a wall clock time are
// treated as all-day and conflict with anything on the same date.
func DetectConflicts(jobs []model.Job, candidate model.Job) []model.Job {
	if candidate.ScheduledDate == "" {
		return nil
	}

	candidateStart, candidateErr := ParseClock(candidate.ScheduledTime)

	var conflicts []model.Job
	for _, job := range jobs {
		if job.ID == candidate.ID || job.ScheduledDate == "" {
			continue
		}
		if job.ScheduledDate != candidate.ScheduledDate {
			continue
		}

		jobStart, jobErr := ParseClock(job.ScheduledTime)
		if candidate.ScheduledTime != "" && candidateErr == nil &&
			job.ScheduledTime != "" && jobErr == nil {
			if windowsOverlap(candidateStart, candidate.DurationMinutes(), jobStart, job.DurationMinutes()) {
				conflicts = append(conflicts, job)
			}
			continue
		}

		// No time granularity on one side: same day is enough.
		conflicts = append(conflicts, job)
	}
	return conflicts
}

// ConflictsOnDate scans all pairs of jobs scheduled on the given calendar date
// ("2006-01-02") and returns the deduplicated union of every job that overlaps
// at least one other. Only timed jobs participate here.
func ConflictsOnDate(jobs []model.Job, date string) []model.Job {
	var onDate []model.Job
	for _, job := range jobs {
		if job.ScheduledDate == date {
			onDate = append(onDate, job)
		}
	}

	seen := make(map[string]struct{})
	var conflicts []model.Job
	add := func(job model.Job) {
		if _, ok := seen[job.ID]; ok {
			return
		}
		seen[job.ID] = struct{}{}
		conflicts = append(conflicts, job)
	}

	for i := 0; i < len(onDate); i++ {
		for j := i + 1; j < len(onDate); j++ {
			first, second := onDate[i], onDate[j]
			if first.ScheduledTime == "" || second.ScheduledTime == "" {
				continue
			}
			firstStart, err1 := ParseClock(first.ScheduledTime)
			secondStart, err2 := ParseClock(second.ScheduledTime)
			if err1 != nil || err2 != nil {
				continue
			}
			if windowsOverlap(firstStart, first.DurationMinutes(), secondStart, second.DurationMinutes()) {
				add(first)
				add(second)
			}
		}
	}
	return conflicts
}
