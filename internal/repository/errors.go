package repository

import "fachowiec/backend/internal/store"

// ErrNotFound is returned when a referenced record id is absent.
var ErrNotFound = store.ErrNotFound
