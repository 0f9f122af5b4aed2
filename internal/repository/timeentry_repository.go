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

const (
	collectionTimeEntries = "timeEntries"
	collectionMarkers     = "markers"

	// activeTimerID is the fixed id of the marker record pointing at the one
	// running time entry. It is written in the same transaction as the entry
	// itself, so the at-most-one-running invariant never depends on a scan
	// over the whole collection.
	activeTimerID = "active_timer"
)

type activeTimerMarker struct {
	EntryID string `json:"entryId"`
}

type TimeEntryRepository struct {
	store *store.Store
}

func NewTimeEntryRepository(s *store.Store) *TimeEntryRepository {
	return &TimeEntryRepository{store: s}
}

func (r *TimeEntryRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.store.BeginTx(ctx)
}

func (r *TimeEntryRepository) Get(ctx context.Context, id string) (*model.TimeEntry, error) {
	record, err := r.store.Get(ctx, collectionTimeEntries, id)
	if err != nil {
		return nil, err
	}
	return decodeTimeEntry(record.Data)
}

func (r *TimeEntryRepository) GetTx(ctx context.Context, tx *sql.Tx, id string) (*model.TimeEntry, error) {
	record, err := r.store.GetTx(ctx, tx, collectionTimeEntries, id)
	if err != nil {
		return nil, err
	}
	return decodeTimeEntry(record.Data)
}

func (r *TimeEntryRepository) Put(ctx context.Context, entry *model.TimeEntry) error {
	data, err := encodeTimeEntry(entry)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, collectionTimeEntries, entry.ID, data)
}

func (r *TimeEntryRepository) PutTx(ctx context.Context, tx *sql.Tx, entry *model.TimeEntry) error {
	data, err := encodeTimeEntry(entry)
	if err != nil {
		return err
	}
	return r.store.PutTx(ctx, tx, collectionTimeEntries, entry.ID, data)
}

// All returns every time entry, newest first.
func (r *TimeEntryRepository) All(ctx context.Context) ([]model.TimeEntry, error) {
	records, err := r.store.All(ctx, collectionTimeEntries)
	if err != nil {
		return nil, err
	}

	entries := make([]model.TimeEntry, 0, len(records))
	for _, record := range records {
		entry, decodeErr := decodeTimeEntry(record.Data)
		if decodeErr != nil {
			return nil, decodeErr
		}
		entries = append(entries, *entry)
	}
	sortEntriesNewestFirst(entries)
	return entries, nil
}

func (r *TimeEntryRepository) ListByJob(ctx context.Context, jobID string) ([]model.TimeEntry, error) {
	entries, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := entries[:0]
	for _, entry := range entries {
		if entry.JobID == jobID {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

// ActiveEntry resolves the marker to the running entry. A missing marker, a
// dangling marker or a marker pointing at a non-running entry all read as "no
// active timer".
func (r *TimeEntryRepository) ActiveEntry(ctx context.Context) (*model.TimeEntry, error) {
	record, err := r.store.Get(ctx, collectionMarkers, activeTimerID)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.resolveMarker(ctx, nil, record.Data)
}

func (r *TimeEntryRepository) ActiveEntryTx(ctx context.Context, tx *sql.Tx) (*model.TimeEntry, error) {
	record, err := r.store.GetTx(ctx, tx, collectionMarkers, activeTimerID)
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.resolveMarker(ctx, tx, record.Data)
}

func (r *TimeEntryRepository) SetActiveTx(ctx context.Context, tx *sql.Tx, entryID string) error {
	data, err := json.Marshal(activeTimerMarker{EntryID: entryID})
	if err != nil {
		return fmt.Errorf("encode active timer marker: %w", err)
	}
	return r.store.PutTx(ctx, tx, collectionMarkers, activeTimerID, data)
}

func (r *TimeEntryRepository) ClearActiveTx(ctx context.Context, tx *sql.Tx) error {
	return r.store.DeleteTx(ctx, tx, collectionMarkers, activeTimerID)
}

func (r *TimeEntryRepository) resolveMarker(ctx context.Context, tx *sql.Tx, data []byte) (*model.TimeEntry, error) {
	var marker activeTimerMarker
	if err := json.Unmarshal(data, &marker); err != nil {
		return nil, fmt.Errorf("decode active timer marker: %w", err)
	}
	if marker.EntryID == "" {
		return nil, nil
	}

	var entry *model.TimeEntry
	var err error
	if tx != nil {
		entry, err = r.GetTx(ctx, tx, marker.EntryID)
	} else {
		entry, err = r.Get(ctx, marker.EntryID)
	}
	if err == store.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !entry.IsRunning {
		return nil, nil
	}
	return entry, nil
}

func encodeTimeEntry(entry *model.TimeEntry) ([]byte, error) {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	entry.UpdatedAt = now

	data, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("encode time entry: %w", err)
	}
	return data, nil
}

func decodeTimeEntry(data []byte) (*model.TimeEntry, error) {
	var entry model.TimeEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode time entry: %w", err)
	}
	return &entry, nil
}

func sortEntriesNewestFirst(entries []model.TimeEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
}
