package model

import "time"

type ClaimStatus string

const (
	StatusPending  ClaimStatus = "Pending"
	StatusVerified ClaimStatus = "Verified"
	StatusApproved ClaimStatus = "Approved"
	StatusRejected ClaimStatus = "Rejected"
)

// AllStatuses in lifecycle order: Pending -> Verified -> Approved/Rejected.
var AllStatuses = []ClaimStatus{StatusPending, StatusVerified, StatusApproved, StatusRejected}

func IsValidStatus(s ClaimStatus) bool {
	for _, st := range AllStatuses {
		if st == s {
			return true
		}
	}
	return false
}

// Claim is a lecturer's request for payment for hours worked in a period.
// HourlyRate is snapshotted from the user at submission time and Amount is
// frozen as HoursWorked * HourlyRate; neither tracks later rate changes.
type Claim struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	SubmissionDate  time.Time   `json:"submission_date"`
	Description     string      `json:"description"`
	HoursWorked     float64     `json:"hours_worked"`
	HourlyRate      float64     `json:"hourly_rate"`
	Amount          float64     `json:"amount"`
	AdditionalNotes string      `json:"additional_notes,omitempty"`
	DocumentPath    string      `json:"document_path,omitempty"`
	Status          ClaimStatus `json:"status"`
	UpdatedAt       time.Time   `json:"updated_at"`
	LecturerName    *string     `json:"lecturer_name,omitempty"` // For display
}
