package service

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"
	"cmcs_backend/internal/platform/storage"

	"github.com/google/uuid"
)

const (
	minDescriptionLen = 10
	maxDescriptionLen = 500
	maxNotesLen       = 1000
	monthlyHoursCap   = 180
	maxUploadBytes    = 5 * 1024 * 1024
)

// allowedDocExtensions are the only supporting-document types accepted,
// compared case-insensitively.
var allowedDocExtensions = map[string]bool{".pdf": true, ".docx": true, ".xlsx": true}

// DashboardCacheKey indexes the cached admin dashboard aggregate; every
// claim mutation deletes it.
const DashboardCacheKey = "cmcs:dashboard_stats"

type ClaimService struct {
	claimRepo repository.ClaimRepository
	userRepo  repository.UserRepository
	files     *storage.FileStore
	cache     Cache
	now       func() time.Time
}

func NewClaimService(
	claimRepo repository.ClaimRepository,
	userRepo repository.UserRepository,
	files *storage.FileStore,
	cacheClient Cache,
) *ClaimService {
	return &ClaimService{
		claimRepo: claimRepo,
		userRepo:  userRepo,
		files:     files,
		cache:     cacheClient,
		now:       time.Now,
	}
}

// DocumentUpload is an optional supporting document attached to a claim.
type DocumentUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

type SubmitClaimRequest struct {
	HoursWorked     float64
	Description     string
	AdditionalNotes string
	Document        *DocumentUpload
}

// SubmitClaim validates the candidate claim and persists it. The hourly rate
// is always taken from the lecturer's current record, never from the
// request, and the amount is frozen at submission: later HR rate changes do
// not touch existing claims.
func (s *ClaimService) SubmitClaim(ctx context.Context, userID string, req SubmitClaimRequest) (*model.Claim, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to load lecturer: %w", err)
	}

	if vErr := validateSubmission(req, user.HourlyRate); vErr.HasErrors() {
		return nil, vErr
	}

	claim := &model.Claim{
		ID:              uuid.NewString(),
		UserID:          user.ID,
		SubmissionDate:  s.now().UTC(),
		Description:     req.Description,
		HoursWorked:     req.HoursWorked,
		HourlyRate:      user.HourlyRate,
		Amount:          req.HoursWorked * user.HourlyRate,
		AdditionalNotes: req.AdditionalNotes,
		Status:          model.StatusPending,
	}

	if req.Document != nil {
		// The file is written before the record; a failed insert leaves an
		// orphaned file behind rather than risking a claim without its
		// evidence.
		path, err := s.files.Save(req.Document.Filename, req.Document.Content)
		if err != nil {
			return nil, common.Errorf("failed to store document: %w", err)
		}
		claim.DocumentPath = path
	}

	if err := s.claimRepo.Create(ctx, nil, claim); err != nil {
		return nil, common.Errorf("failed to create claim: %w", err)
	}

	s.invalidateDashboard(ctx)
	log.Printf("Claim %s submitted by %s for %.2f", claim.ID, user.ID, claim.Amount)
	return claim, nil
}

// validateSubmission checks every rule independently and collects all
// violations; no field is applied unless the whole submission passes.
func validateSubmission(req SubmitClaimRequest, hourlyRate float64) *common.ValidationError {
	vErr := &common.ValidationError{}

	switch {
	// NaN slips past both range comparisons, so finiteness is checked first.
	case math.IsNaN(req.HoursWorked) || math.IsInf(req.HoursWorked, 0):
		vErr.Add("hours_worked", "Hours worked must be a finite number.")
	case req.HoursWorked <= 0:
		vErr.Add("hours_worked", "Hours worked must be greater than zero.")
	case req.HoursWorked > monthlyHoursCap:
		vErr.Add("hours_worked", "You cannot claim more than 180 hours in a month.")
	}

	if hourlyRate <= 0 {
		vErr.AddCause("hourly_rate", common.ErrRateNotSet, "Your hourly rate has not been set by HR. Please contact them.")
	}

	// Length limits count characters, not bytes.
	if n := utf8.RuneCountInString(req.Description); n < minDescriptionLen || n > maxDescriptionLen {
		vErr.Add("description", "Description must be between 10 and 500 characters.")
	}

	if utf8.RuneCountInString(req.AdditionalNotes) > maxNotesLen {
		vErr.Add("additional_notes", "Additional notes cannot exceed 1000 characters.")
	}

	if req.Document != nil {
		if req.Document.Size > maxUploadBytes {
			vErr.Add("document", "The file size cannot exceed 5 MB.")
		}
		ext := strings.ToLower(filepath.Ext(req.Document.Filename))
		if !allowedDocExtensions[ext] {
			vErr.Add("document", "Invalid file type. Only .pdf, .docx, and .xlsx are allowed.")
		}
	}

	return vErr
}

// UpdateStatus overwrites a claim's status and persists immediately. The
// caller's role has already been checked at the router; the engine itself
// only rejects unknown status values. A missing claim is a silent no-op
// rather than a not-found failure, matching the long-standing behavior of
// the coordinator flow.
func (s *ClaimService) UpdateStatus(ctx context.Context, claimID string, status model.ClaimStatus) error {
	if !model.IsValidStatus(status) {
		return common.Errorf("unknown claim status %q: %w", status, common.ErrBadRequest)
	}

	_, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil
		}
		return common.Errorf("failed to load claim: %w", err)
	}

	if err := s.claimRepo.UpdateStatus(ctx, claimID, status); err != nil {
		return common.Errorf("failed to update claim status: %w", err)
	}

	s.invalidateDashboard(ctx)
	log.Printf("Claim %s moved to %s", claimID, status)
	return nil
}

// GetClaim returns a single claim. Lecturers may only see their own claims;
// reviewers (coordinator/admin/HR) may see any.
func (s *ClaimService) GetClaim(ctx context.Context, claimID, requesterID string, reviewer bool) (*model.Claim, error) {
	claim, err := s.claimRepo.FindByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !reviewer && claim.UserID != requesterID {
		return nil, common.ErrNotFound
	}
	return claim, nil
}

func (s *ClaimService) ListOwnClaims(ctx context.Context, userID string) ([]model.Claim, error) {
	return s.claimRepo.ListByUser(ctx, userID)
}

func (s *ClaimService) ListAllClaims(ctx context.Context) ([]model.Claim, error) {
	return s.claimRepo.ListAll(ctx)
}

// GetLecturerSummary backs the lecturer's home view: own status counts and
// the five most recent claims.
func (s *ClaimService) GetLecturerSummary(ctx context.Context, userID string) (*model.LecturerSummary, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to load lecturer: %w", err)
	}
	claims, err := s.claimRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, common.Errorf("failed to list claims: %w", err)
	}

	summary := &model.LecturerSummary{FullName: user.FullName()}
	for _, c := range claims {
		switch c.Status {
		case model.StatusPending:
			summary.PendingClaims++
		case model.StatusApproved:
			summary.ApprovedClaims++
		case model.StatusRejected:
			summary.RejectedClaims++
		}
	}
	if len(claims) > 5 {
		claims = claims[:5]
	}
	summary.RecentClaims = claims
	return summary, nil
}

func (s *ClaimService) invalidateDashboard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, DashboardCacheKey); err != nil {
		log.Printf("Failed to invalidate dashboard cache: %v", err)
	}
}
