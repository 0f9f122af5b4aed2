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

const collectionEstimates = "estimates"

type EstimateRepository struct {
	store *store.Store
}

func NewEstimateRepository(s *store.Store) *EstimateRepository {
	return &EstimateRepository{store: s}
}

func (r *EstimateRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return r.store.BeginTx(ctx)
}

func (r *EstimateRepository) Get(ctx context.Context, id string) (*model.Estimate, error) {
	record, err := r.store.Get(ctx, collectionEstimates, id)
	if err != nil {
		return nil, err
	}
	return decodeEstimate(record.Data)
}

func (r *EstimateRepository) GetTx(ctx context.Context, tx *sql.Tx, id string) (*model.Estimate, error) {
	record, err := r.store.GetTx(ctx, tx, collectionEstimates, id)
	if err != nil {
		return nil, err
	}
	return decodeEstimate(record.Data)
}

func (r *EstimateRepository) Put(ctx context.Context, estimate *model.Estimate) error {
	data, err := encodeEstimate(estimate)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, collectionEstimates, estimate.ID, data)
}

func (r *EstimateRepository) PutTx(ctx context.Context, tx *sql.Tx, estimate *model.Estimate) error {
	data, err := encodeEstimate(estimate)
	if err != nil {
		return err
	}
	return r.store.PutTx(ctx, tx, collectionEstimates, estimate.ID, data)
}

func (r *EstimateRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, collectionEstimates, id)
}

// All returns every estimate, newest first.
func (r *EstimateRepository) All(ctx context.Context) ([]model.Estimate, error) {
	records, err := r.store.All(ctx, collectionEstimates)
	if err != nil {
		return nil, err
	}

	estimates := make([]model.Estimate, 0, len(records))
	for _, record := range records {
		estimate, decodeErr := decodeEstimate(record.Data)
		if decodeErr != nil {
			return nil, decodeErr
		}
		estimates = append(estimates, *estimate)
	}
	sort.SliceStable(estimates, func(i, j int) bool {
		return estimates[i].CreatedAt.After(estimates[j].CreatedAt)
	})
	return estimates, nil
}

func (r *EstimateRepository) ListByStatus(ctx context.Context, status string) ([]model.Estimate, error) {
	estimates, err := r.All(ctx)
	if err != nil {
		return nil, err
	}

	filtered := estimates[:0]
	for _, estimate := range estimates {
		if estimate.Status == status {
			filtered = append(filtered, estimate)
		}
	}
	return filtered, nil
}

func encodeEstimate(estimate *model.Estimate) ([]byte, error) {
	now := time.Now().UTC()
	if estimate.CreatedAt.IsZero() {
		estimate.CreatedAt = now
	}
	estimate.UpdatedAt = now

	data, err := json.Marshal(estimate)
	if err != nil {
		return nil, fmt.Errorf("encode estimate: %w", err)
	}
	return data, nil
}

func decodeEstimate(data []byte) (*model.Estimate, error) {
	var estimate model.Estimate
	if err := json.Unmarshal(data, &estimate); err != nil {
		return nil, fmt.Errorf("decode estimate: %w", err)
	}
	return &estimate, nil
}
