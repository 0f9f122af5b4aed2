package model

import "time"

const (
	JobStatusScheduled  = "scheduled"
	JobStatusInProgress = "in_progress"
	JobStatusCompleted  = "completed"
	JobStatusCancelled  = "cancelled"
)

// DefaultJobDurationMinutes is assumed for conflict detection when a job has
// no explicit estimated duration.
const DefaultJobDurationMinutes = 60

type Job struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	ClientID    string `json:"clientId,omitempty"`
	Status      string `json:"status"`
	// ScheduledDate is a calendar date in "2006-01-02" form; ScheduledTime,
	// when present, is a wall clock "15:04".
	ScheduledTime     string    `json:"scheduledTime,omitempty"`
	ScheduledDate     string    `json:"scheduledDate,omitempty"`
	EstimatedDuration int       `json:"estimatedDuration,omitempty"`
	EstimatedPrice    float64   `json:"estimatedPrice,omitempty"`
	EstimateID        string    `json:"estimateId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// DurationMinutes returns the estimated duration, defaulted when unset.
func (j *Job) DurationMinutes() int {
	if j.EstimatedDuration <= 0 {
		return DefaultJobDurationMinutes
	}
	return j.EstimatedDuration
}
