package service

import (
	"context"
	"time"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
)

const dateLayout = "2006-01-02"

// ReportService aggregates finalized time entries over calendar periods.
// Reports are derived on demand and never written back to the store.
type ReportService struct {
	entries *repository.TimeEntryRepository
}

func NewReportService(entries *repository.TimeEntryRepository) *ReportService {
	return &ReportService{entries: entries}
}

// Generate builds the report whose period contains ref. Period bounds are
// computed in ref's location. An entry is included when its startTime falls
// inside the bounds and it is not running; entries referencing deleted jobs
// still count.
func (s *ReportService) Generate(ctx context.Context, kind string, ref time.Time) (*model.Report, *apperrors.APIError) {
	start, end, apiErr := periodBounds(kind, ref)
	if apiErr != nil {
		return nil, apiErr
	}

	all, err := s.entries.All(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to read time entries")
	}

	loc := ref.Location()
	selected := make([]model.TimeEntry, 0, len(all))
	totalSeconds := 0
	jobs := make(map[string]struct{})
	for _, entry := range all {
		if entry.IsRunning {
			continue
		}
		if entry.StartTime.Before(start) || entry.StartTime.After(end) {
			continue
		}
		selected = append(selected, entry)
		totalSeconds += entry.Duration
		jobs[entry.JobID] = struct{}{}
	}

	report := &model.Report{
		Kind:         kind,
		StartDate:    start.Format(dateLayout),
		EndDate:      end.Format(dateLayout),
		TotalSeconds: totalSeconds,
		TotalHours:   round2(float64(totalSeconds) / 3600),
		JobCount:     len(jobs),
		EntryCount:   len(selected),
		Entries:      selected,
		Breakdown:    breakdown(kind, selected, loc),
	}
	return report, nil
}

func periodBounds(kind string, ref time.Time) (time.Time, time.Time, *apperrors.APIError) {
	loc := ref.Location()
	year, month, day := ref.Date()

	switch kind {
	case model.ReportDaily:
		start := time.Date(year, month, day, 0, 0, 0, 0, loc)
		return start, endOfDay(start), nil
	case model.ReportWeekly:
		monday := mondayOf(ref)
		start := time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, loc)
		return start, endOfDay(start.AddDate(0, 0, 6)), nil
	case model.ReportMonthly:
		start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
		return start, endOfDay(start.AddDate(0, 1, -1)), nil
	case model.ReportYearly:
		start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
		return start, endOfDay(time.Date(year, time.December, 31, 0, 0, 0, 0, loc)), nil
	default:
		return time.Time{}, time.Time{}, apperrors.BadRequest("invalid_period", "period must be one of daily, weekly, monthly, yearly")
	}
}

func breakdown(kind string, entries []model.TimeEntry, loc *time.Location) map[string]model.ReportBucket {
	var keyFn func(time.Time) string
	switch kind {
	case model.ReportWeekly:
		// Calendar day buckets.
		keyFn = func(t time.Time) string { return t.Format(dateLayout) }
	case model.ReportMonthly:
		// Monday-anchored week buckets.
		keyFn = func(t time.Time) string { return mondayOf(t).Format(dateLayout) }
	case model.ReportYearly:
		// Month buckets.
		keyFn = func(t time.Time) string { return t.Format("2006-01") }
	default:
		return nil
	}

	buckets := make(map[string]model.ReportBucket)
	for _, entry := range entries {
		key := keyFn(entry.StartTime.In(loc))
		bucket := buckets[key]
		bucket.Seconds += entry.Duration
		bucket.Count++
		buckets[key] = bucket
	}
	return buckets
}

// mondayOf rolls the date back to the Monday of its ISO week, treating Sunday
// as day seven.
func mondayOf(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return t.AddDate(0, 0, -(weekday - 1))
}

func endOfDay(start time.Time) time.Time {
	return start.Add(24*time.Hour - time.Millisecond)
}
