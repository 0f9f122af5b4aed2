package model

const (
	ReportDaily   = "daily"
	ReportWeekly  = "weekly"
	ReportMonthly = "monthly"
	ReportYearly  = "yearly"
)

// ReportBucket is one sub-period slice of a report: days of a week, weeks of a
// month or months of a year.
type ReportBucket struct {
	Seconds int `json:"seconds"`
	Count   int `json:"count"`
}

// Report is a derived aggregate over finalized time entries. It is never
// written back to the record store.
type Report struct {
	Kind         string                  `json:"type"`
	StartDate    string                  `json:"startDate"`
	EndDate      string                  `json:"endDate"`
	TotalSeconds int                     `json:"totalSeconds"`
	TotalHours   float64                 `json:"totalHours"`
	JobCount     int                     `json:"jobCount"`
	EntryCount   int                     `json:"entryCount"`
	Entries      []TimeEntry             `json:"entries"`
	Breakdown    map[string]ReportBucket `json:"breakdown,omitempty"`
}

// Totals is the tax-inclusive pricing summary of an estimate.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
	TaxRate  float64 `json:"taxRate"`
}
