// Package store is the record store: schemaless JSON records keyed by
// (collection, id) on top of sqlite. Jobs, estimates, time entries and the
// active-timer marker all live here; callers that need a temporal order
// re-sort by createdAt themselves.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrNotFound = errors.New("record not found")

type Record struct {
	ID        string
	Data      []byte
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// runner abstracts *sql.DB and *sql.Tx so every operation has a transactional
// variant without duplicating the SQL.
type runner interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (s *Store) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (s *Store) Put(ctx context.Context, collection, id string, data []byte) error {
	return put(ctx, s.db, collection, id, data)
}

func (s *Store) PutTx(ctx context.Context, tx *sql.Tx, collection, id string, data []byte) error {
	return put(ctx, tx, collection, id, data)
}

func (s *Store) Get(ctx context.Context, collection, id string) (*Record, error) {
	return get(ctx, s.db, collection, id)
}

func (s *Store) GetTx(ctx context.Context, tx *sql.Tx, collection, id string) (*Record, error) {
	return get(ctx, tx, collection, id)
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	return del(ctx, s.db, collection, id)
}

func (s *Store) DeleteTx(ctx context.Context, tx *sql.Tx, collection, id string) error {
	return del(ctx, tx, collection, id)
}

// All returns every record in the collection, in no particular order.
func (s *Store) All(ctx context.Context, collection string) ([]Record, error) {
	return all(ctx, s.db, collection)
}

func (s *Store) AllTx(ctx context.Context, tx *sql.Tx, collection string) ([]Record, error) {
	return all(ctx, tx, collection)
}

func put(ctx context.Context, r runner, collection, id string, data []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := r.ExecContext(
		ctx,
		`INSERT INTO records (collection, id, data, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET
		     data = excluded.data,
		     updated_at = excluded.updated_at`,
		collection,
		id,
		string(data),
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", collection, id, err)
	}
	return nil
}

func get(ctx context.Context, r runner, collection, id string) (*Record, error) {
	row := r.QueryRowContext(
		ctx,
		`SELECT id, data, created_at, updated_at
		 FROM records
		 WHERE collection = ? AND id = ?`,
		collection,
		id,
	)
	record, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return record, nil
}

func del(ctx context.Context, r runner, collection, id string) error {
	if _, err := r.ExecContext(
		ctx,
		`DELETE FROM records WHERE collection = ? AND id = ?`,
		collection,
		id,
	); err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	return nil
}

func all(ctx context.Context, r runner, collection string) ([]Record, error) {
	rows, err := r.QueryContext(
		ctx,
		`SELECT id, data, created_at, updated_at FROM records WHERE collection = ?`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		record, scanErr := scanRecord(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("list %s: %w", collection, scanErr)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(s scanner) (*Record, error) {
	var record Record
	var data string
	var createdAt string
	var updatedAt string
	if err := s.Scan(&record.ID, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record.Data = []byte(data)

	parsedCreatedAt, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	record.CreatedAt = parsedCreatedAt
	record.UpdatedAt = parsedUpdatedAt
	return &record, nil
}

func parseTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err == nil {
		return t.UTC(), nil
	}
	t, err = time.Parse(time.RFC3339, raw)
	if err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}
