package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/common/security"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo repository.UserRepository
	db       *sql.DB // For transactions
}

func NewAuthService(userRepo repository.UserRepository, db *sql.DB) *AuthService {
	return &AuthService{userRepo: userRepo, db: db}
}

type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	User        *model.User `json:"user"`
	Token       string      `json:"token"`
	LandingPage string      `json:"landing_page"`
}

func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		HourlyRate:     0, // Set by HR once the contract is on file
		Roles:          []string{model.RoleLecturer},
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.userRepo.Create(ctx, tx, user); err != nil {
		// Repo might return common.ErrConflict
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	if err := s.userRepo.ReplaceRoles(ctx, tx, user.ID, user.Roles); err != nil {
		return nil, fmt.Errorf("failed to assign default role: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	token, err := security.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = "" // Clear password before returning
	return &AuthResponse{User: user, Token: token, LandingPage: LandingPageFor(user.Roles)}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token, LandingPage: LandingPageFor(user.Roles)}, nil
}

// LandingPageFor maps a caller's full role set to the view they land on
// after login. Admin and HR outrank coordinators, who outrank lecturers;
// the mapping is evaluated once over the resolved set rather than probing
// each role in sequence.
func LandingPageFor(roles []string) string {
	set := make(map[string]bool, len(roles))
	for _, r := range roles {
		set[r] = true
	}
	switch {
	case set[model.RoleAdmin] || set[model.RoleHR]:
		return "/admin/dashboard"
	case set[model.RoleCoordinator]:
		return "/coordinator"
	case set[model.RoleLecturer]:
		return "/lecturer"
	default:
		return "/"
	}
}
