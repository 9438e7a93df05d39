package model

// LecturerStats is one row of the admin dashboard's per-lecturer table.
type LecturerStats struct {
	LecturerID      string  `json:"lecturer_id"`
	LecturerName    string  `json:"lecturer_name"`
	TotalClaimValue float64 `json:"total_claim_value"`
	ClaimsSubmitted int     `json:"claims_submitted"`
	ApprovalRate    float64 `json:"approval_rate"`
}

type DashboardStats struct {
	PendingClaims  int             `json:"pending_claims"`
	VerifiedClaims int             `json:"verified_claims"`
	ApprovedClaims int             `json:"approved_claims"`
	RejectedClaims int             `json:"rejected_claims"`
	TopLecturers   []LecturerStats `json:"top_lecturers"`
	ChartLabels    []string        `json:"chart_labels"`
	ChartData      []int           `json:"chart_data"`
}

// LecturerReport summarizes a single lecturer's claim history. The chart
// series covers approved claims only, summed by amount per month.
type LecturerReport struct {
	TotalClaimsSubmitted int       `json:"total_claims_submitted"`
	ApprovedClaims       int       `json:"approved_claims"`
	ApprovalRate         float64   `json:"approval_rate"`
	TotalAmountClaimed   float64   `json:"total_amount_claimed"`
	TotalAmountApproved  float64   `json:"total_amount_approved"`
	AverageClaimAmount   float64   `json:"average_claim_amount"`
	ChartLabels          []string  `json:"chart_labels"`
	ChartData            []float64 `json:"chart_data"`
}

// LecturerSummary backs the lecturer's home view: own status counts plus
// the most recent claims.
type LecturerSummary struct {
	FullName       string  `json:"full_name"`
	PendingClaims  int     `json:"pending_claims"`
	ApprovedClaims int     `json:"approved_claims"`
	RejectedClaims int     `json:"rejected_claims"`
	RecentClaims   []Claim `json:"recent_claims"`
}
