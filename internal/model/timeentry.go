package model

import "time"

// TimeEntry is a single tracked work interval for a job. It is created by
// starting the timer, mutated by pause/resume, finalized by stop and never
// touched again after that.
type TimeEntry struct {
	ID        string     `json:"id"`
	JobID     string     `json:"jobId"`
	StartTime time.Time  `json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	IsRunning bool       `json:"isRunning"`
	// PausedTime is the accumulated paused offset in seconds. While running,
	// elapsed = floor(now - StartTime) - PausedTime.
	PausedTime int       `json:"pausedTime"`
	Duration   int       `json:"duration"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Finalized reports whether the entry has been stopped for good.
func (e *TimeEntry) Finalized() bool {
	return e.EndTime != nil
}
