package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	apperrors "fachowiec/backend/internal/errors"
	"fachowiec/backend/internal/model"
	"fachowiec/backend/internal/repository"
)

// TimerService drives the per-job time tracking state machine:
// Idle -> Running -> Paused <-> Running -> finalized. At most one entry is
// running across the whole store; starting or resuming anywhere preempts
// whatever else is running.
type TimerService struct {
	entries *repository.TimeEntryRepository
	now     func() time.Time
}

// NewTimerService wires the service to the entry repository. A nil clock
// defaults to time.Now; tests inject their own.
func NewTimerService(entries *repository.TimeEntryRepository, now func() time.Time) *TimerService {
	if now == nil {
		now = time.Now
	}
	return &TimerService{entries: entries, now: now}
}

// Start creates a running entry for the job. Any currently running entry is
// finalized in the same transaction, so the single-runner invariant holds even
// if the process dies between the two writes.
func (s *TimerService) Start(ctx context.Context, jobID string) (*model.TimeEntry, *apperrors.APIError) {
	now := s.now().UTC()
	tx, err := s.entries.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to start transaction")
	}
	defer tx.Rollback()

	if apiErr := s.finalizeActiveTx(ctx, tx, now, ""); apiErr != nil {
		return nil, apiErr
	}

	entry := &model.TimeEntry{
		ID:        uuid.NewString(),
		JobID:     jobID,
		StartTime: now,
		IsRunning: true,
	}

	if err := s.entries.PutTx(ctx, tx, entry); err != nil {
		return nil, apperrors.Persistence("failed to save time entry")
	}
	if err := s.entries.SetActiveTx(ctx, tx, entry.ID); err != nil {
		return nil, apperrors.Persistence("failed to mark active timer")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Persistence("failed to commit transaction")
	}

	return entry, nil
}

// Pause folds the running segment into pausedTime. Pausing an entry that is
// not running is a harmless no-op so UI double clicks stay silent.
func (s *TimerService) Pause(ctx context.Context, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	now := s.now().UTC()
	tx, err := s.entries.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to start transaction")
	}
	defer tx.Rollback()

	entry, apiErr := s.getEntryTx(ctx, tx, entryID)
	if apiErr != nil {
		return nil, apiErr
	}
	if entry.Finalized() || !entry.IsRunning {
		return entry, nil
	}

	entry.PausedTime = wholeSeconds(now.Sub(entry.StartTime))
	entry.IsRunning = false

	if err := s.entries.PutTx(ctx, tx, entry); err != nil {
		return nil, apperrors.Persistence("failed to save time entry")
	}
	if err := s.entries.ClearActiveTx(ctx, tx); err != nil {
		return nil, apperrors.Persistence("failed to clear active timer")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Persistence("failed to commit transaction")
	}

	return entry, nil
}

// Resume restarts a paused entry. The start time is reset to now and the
// accumulated pausedTime carries forward as the elapsed-time offset. Any other
// running entry is finalized first, same as Start.
func (s *TimerService) Resume(ctx context.Context, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	now := s.now().UTC()
	tx, err := s.entries.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to start transaction")
	}
	defer tx.Rollback()

	entry, apiErr := s.getEntryTx(ctx, tx, entryID)
	if apiErr != nil {
		return nil, apiErr
	}
	if entry.Finalized() || entry.IsRunning {
		return entry, nil
	}

	if apiErr := s.finalizeActiveTx(ctx, tx, now, entry.ID); apiErr != nil {
		return nil, apiErr
	}

	entry.StartTime = now
	entry.IsRunning = true

	if err := s.entries.PutTx(ctx, tx, entry); err != nil {
		return nil, apperrors.Persistence("failed to save time entry")
	}
	if err := s.entries.SetActiveTx(ctx, tx, entry.ID); err != nil {
		return nil, apperrors.Persistence("failed to mark active timer")
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Persistence("failed to commit transaction")
	}

	return entry, nil
}

// Stop finalizes the entry from Running or Paused. The stored duration is
// now - startTime - pausedTime, floored to whole seconds and clamped at zero.
// Stopping a finalized entry is a no-op.
func (s *TimerService) Stop(ctx context.Context, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	now := s.now().UTC()
	tx, err := s.entries.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to start transaction")
	}
	defer tx.Rollback()

	entry, apiErr := s.getEntryTx(ctx, tx, entryID)
	if apiErr != nil {
		return nil, apiErr
	}
	if entry.Finalized() {
		return entry, nil
	}

	active, err := s.entries.ActiveEntryTx(ctx, tx)
	if err != nil {
		return nil, apperrors.Persistence("failed to read active timer")
	}

	finalize(entry, now)

	if err := s.entries.PutTx(ctx, tx, entry); err != nil {
		return nil, apperrors.Persistence("failed to save time entry")
	}
	if active != nil && active.ID == entry.ID {
		if err := s.entries.ClearActiveTx(ctx, tx); err != nil {
			return nil, apperrors.Persistence("failed to clear active timer")
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Persistence("failed to commit transaction")
	}

	return entry, nil
}

// ActiveForJob is the recovery read: after a restart the caller re-attaches to
// a job by asking for the running entry with a matching jobId, if any.
func (s *TimerService) ActiveForJob(ctx context.Context, jobID string) (*model.TimeEntry, *apperrors.APIError) {
	entry, err := s.entries.ActiveEntry(ctx)
	if err != nil {
		return nil, apperrors.Persistence("failed to read active timer")
	}
	if entry == nil || entry.JobID != jobID {
		return nil, nil
	}
	return entry, nil
}

func (s *TimerService) EntriesForJob(ctx context.Context, jobID string) ([]model.TimeEntry, *apperrors.APIError) {
	entries, err := s.entries.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperrors.Persistence("failed to list time entries")
	}
	return entries, nil
}

// Now exposes the service clock so handlers compute elapsed time against the
// same reference the state machine uses.
func (s *TimerService) Now() time.Time {
	return s.now().UTC()
}

// Elapsed is the display value for an entry: seconds since the current start
// reference minus the paused offset while running, zero while paused. The
// zero-while-paused convention mirrors the product's visible behavior, where
// the counter resets on pause.
func Elapsed(entry *model.TimeEntry, now time.Time) int {
	if entry == nil || !entry.IsRunning || entry.Finalized() {
		return 0
	}
	elapsed := wholeSeconds(now.Sub(entry.StartTime)) - entry.PausedTime
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (s *TimerService) getEntryTx(ctx context.Context, tx *sql.Tx, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	entry, err := s.entries.GetTx(ctx, tx, entryID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("entry_not_found", "time entry not found")
	}
	if err != nil {
		return nil, apperrors.Persistence("failed to read time entry")
	}
	return entry, nil
}

// finalizeActiveTx stops whatever entry the marker points at, unless it is the
// one identified by exceptID.
func (s *TimerService) finalizeActiveTx(ctx context.Context, tx *sql.Tx, now time.Time, exceptID string) *apperrors.APIError {
	active, err := s.entries.ActiveEntryTx(ctx, tx)
	if err != nil {
		return apperrors.Persistence("failed to read active timer")
	}
	if active == nil || active.ID == exceptID {
		return nil
	}

	finalize(active, now)
	if err := s.entries.PutTx(ctx, tx, active); err != nil {
		return apperrors.Persistence("failed to stop previous timer")
	}
	return nil
}

func finalize(entry *model.TimeEntry, now time.Time) {
	duration := wholeSeconds(now.Sub(entry.StartTime)) - entry.PausedTime
	if duration < 0 {
		duration = 0
	}
	endTime := now
	entry.Duration = duration
	entry.EndTime = &endTime
	entry.IsRunning = false
}

func wholeSeconds(d time.Duration) int {
	return int(d / time.Second)
}
