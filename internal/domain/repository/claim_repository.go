package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
)

type ClaimRepository interface {
	Create(ctx context.Context, tx *sql.Tx, claim *model.Claim) error
	FindByID(ctx context.Context, id string) (*model.Claim, error)
	ListByUser(ctx context.Context, userID string) ([]model.Claim, error)
	ListAll(ctx context.Context) ([]model.Claim, error)
	ListApprovedInMonth(ctx context.Context, year int, month int) ([]model.Claim, error)
	UpdateStatus(ctx context.Context, claimID string, status model.ClaimStatus) error
}

type pgClaimRepository struct {
	db *sql.DB
}

func NewPgClaimRepository(db *sql.DB) ClaimRepository {
	return &pgClaimRepository{db: db}
}

const claimColumns = `c.id, c.user_id, c.submission_date, c.description, c.hours_worked,
               c.hourly_rate, c.amount, c.additional_notes, c.document_path, c.status, c.updated_at,
               u.first_name || ' ' || u.last_name AS lecturer_name`

func (r *pgClaimRepository) Create(ctx context.Context, tx *sql.Tx, claim *model.Claim) error {
	query := `INSERT INTO claims (id, user_id, submission_date, description, hours_worked, hourly_rate, amount, additional_notes, document_path, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, claim.ID, claim.UserID, claim.SubmissionDate, claim.Description, claim.HoursWorked, claim.HourlyRate, claim.Amount, claim.AdditionalNotes, claim.DocumentPath, claim.Status)
	} else {
		_, err = r.db.ExecContext(ctx, query, claim.ID, claim.UserID, claim.SubmissionDate, claim.Description, claim.HoursWorked, claim.HourlyRate, claim.Amount, claim.AdditionalNotes, claim.DocumentPath, claim.Status)
	}
	if err != nil {
		return fmt.Errorf("pgClaimRepository.Create: %w", err)
	}
	return nil
}

func (r *pgClaimRepository) FindByID(ctx context.Context, id string) (*model.Claim, error) {
	query := `SELECT ` + claimColumns + `
	          FROM claims c JOIN users u ON c.user_id = u.id
	          WHERE c.id = $1`
	claim := &model.Claim{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&claim.ID, &claim.UserID, &claim.SubmissionDate, &claim.Description, &claim.HoursWorked,
		&claim.HourlyRate, &claim.Amount, &claim.AdditionalNotes, &claim.DocumentPath, &claim.Status, &claim.UpdatedAt,
		&claim.LecturerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgClaimRepository.FindByID: %w", err)
	}
	return claim, nil
}

func (r *pgClaimRepository) ListByUser(ctx context.Context, userID string) ([]model.Claim, error) {
	query := `SELECT ` + claimColumns + `
	          FROM claims c JOIN users u ON c.user_id = u.id
	          WHERE c.user_id = $1
	          ORDER BY c.submission_date DESC`
	return r.queryClaims(ctx, query, userID)
}

func (r *pgClaimRepository) ListAll(ctx context.Context) ([]model.Claim, error) {
	query := `SELECT ` + claimColumns + `
	          FROM claims c JOIN users u ON c.user_id = u.id
	          ORDER BY c.submission_date DESC`
	return r.queryClaims(ctx, query)
}

func (r *pgClaimRepository) ListApprovedInMonth(ctx context.Context, year int, month int) ([]model.Claim, error) {
	query := `SELECT ` + claimColumns + `
	          FROM claims c JOIN users u ON c.user_id = u.id
	          WHERE c.status = $1
	            AND EXTRACT(YEAR FROM c.submission_date) = $2
	            AND EXTRACT(MONTH FROM c.submission_date) = $3
	          ORDER BY c.submission_date`
	return r.queryClaims(ctx, query, model.StatusApproved, year, month)
}

func (r *pgClaimRepository) UpdateStatus(ctx context.Context, claimID string, status model.ClaimStatus) error {
	query := `UPDATE claims SET status = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, status, claimID); err != nil {
		return fmt.Errorf("pgClaimRepository.UpdateStatus: %w", err)
	}
	return nil
}

func (r *pgClaimRepository) queryClaims(ctx context.Context, query string, args ...interface{}) ([]model.Claim, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgClaimRepository.queryClaims: %w", err)
	}
	defer rows.Close()

	var claims []model.Claim
	for rows.Next() {
		var claim model.Claim
		if err := rows.Scan(
			&claim.ID, &claim.UserID, &claim.SubmissionDate, &claim.Description, &claim.HoursWorked,
			&claim.HourlyRate, &claim.Amount, &claim.AdditionalNotes, &claim.DocumentPath, &claim.Status, &claim.UpdatedAt,
			&claim.LecturerName,
		); err != nil {
			return nil, fmt.Errorf("pgClaimRepository.queryClaims: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgClaimRepository.queryClaims: %w", err)
	}
	return claims, nil
}
