package model

import "time"

const (
	EstimateStatusDraft    = "draft"
	EstimateStatusSent     = "sent"
	EstimateStatusAccepted = "accepted"
	EstimateStatusRejected = "rejected"
)

type EstimateItem struct {
	Description string  `json:"description,omitempty"`
	Quantity    float64 `json:"quantity"`
	Rate        float64 `json:"rate"`
}

type Estimate struct {
	ID          string         `json:"id"`
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	ClientID    string         `json:"clientId,omitempty"`
	Status      string         `json:"status"`
	Items       []EstimateItem `json:"items,omitempty"`
	Subtotal    float64        `json:"subtotal"`
	Tax         float64        `json:"tax"`
	Total       float64        `json:"total"`
	TaxRate     float64        `json:"taxRate"`
	// DueDate is a calendar date in "2006-01-02" form.
	DueDate string `json:"dueDate,omitempty"`
	// JobID is set exactly once, when the estimate is converted to a job.
	JobID       string     `json:"jobId,omitempty"`
	ConvertedAt *time.Time `json:"convertedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
