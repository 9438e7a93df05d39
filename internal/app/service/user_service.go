package service

import (
	"context"
	"database/sql"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
	db       *sql.DB // For transactions
}

func NewUserService(userRepo repository.UserRepository, db *sql.DB) *UserService {
	return &UserService{userRepo: userRepo, db: db}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, common.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.HashedPassword = ""
	return user, nil
}

// UpdateHourlyRate sets a lecturer's pay rate. Existing claims keep the
// rate that was snapshotted at their submission.
func (s *UserService) UpdateHourlyRate(ctx context.Context, userID string, rate float64) error {
	if rate < 0 {
		return common.Errorf("hourly rate cannot be negative: %w", common.ErrValidation)
	}
	if err := s.userRepo.UpdateHourlyRate(ctx, userID, rate); err != nil {
		return common.Errorf("failed to update hourly rate: %w", err)
	}
	return nil
}

// UpdateRoles replaces a user's role set. Unknown role names are rejected
// before anything is written.
func (s *UserService) UpdateRoles(ctx context.Context, userID string, roles []string) error {
	for _, role := range roles {
		if !model.IsValidRole(role) {
			return common.Errorf("unknown role %q: %w", role, common.ErrBadRequest)
		}
	}

	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.ReplaceRoles(ctx, tx, userID, roles); err != nil {
		return common.Errorf("failed to replace roles: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return common.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
