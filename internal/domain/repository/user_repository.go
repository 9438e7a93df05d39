package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	Create(ctx context.Context, tx *sql.Tx, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateHourlyRate(ctx context.Context, userID string, rate float64) error
	ReplaceRoles(ctx context.Context, tx *sql.Tx, userID string, roles []string) error
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) Create(ctx context.Context, tx *sql.Tx, user *model.User) error {
	query := `INSERT INTO users (id, first_name, last_name, email, hashed_password, hourly_rate)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, user.ID, user.FirstName, user.LastName, user.Email, user.HashedPassword, user.HourlyRate)
	} else {
		_, err = r.db.ExecContext(ctx, query, user.ID, user.FirstName, user.LastName, user.Email, user.HashedPassword, user.HourlyRate)
	}
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, email, hashed_password, hourly_rate, created_at, updated_at
	          FROM users WHERE email = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword, &user.HourlyRate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByEmail: %w", err)
	}
	if user.Roles, err = r.rolesFor(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT id, first_name, last_name, email, hashed_password, hourly_rate, created_at, updated_at
	          FROM users WHERE id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword, &user.HourlyRate, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	if user.Roles, err = r.rolesFor(ctx, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, first_name, last_name, email, hashed_password, hourly_rate, created_at, updated_at
	          FROM users ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.HashedPassword, &user.HourlyRate, &user.CreatedAt, &user.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}

	for i := range users {
		if users[i].Roles, err = r.rolesFor(ctx, users[i].ID); err != nil {
			return nil, err
		}
	}
	return users, nil
}

func (r *pgUserRepository) UpdateHourlyRate(ctx context.Context, userID string, rate float64) error {
	query := `UPDATE users SET hourly_rate = $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, rate, userID)
	if err != nil {
		return fmt.Errorf("pgUserRepository.UpdateHourlyRate: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ReplaceRoles swaps the user's entire role set. Callers run it inside a
// transaction so a failed insert never leaves the user role-less.
func (r *pgUserRepository) ReplaceRoles(ctx context.Context, tx *sql.Tx, userID string, roles []string) error {
	exec := r.db.ExecContext
	if tx != nil {
		exec = tx.ExecContext
	}
	if _, err := exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("pgUserRepository.ReplaceRoles: %w", err)
	}
	for _, role := range roles {
		if _, err := exec(ctx, `INSERT INTO user_roles (user_id, role) VALUES ($1, $2)`, userID, role); err != nil {
			return fmt.Errorf("pgUserRepository.ReplaceRoles: %w", err)
		}
	}
	return nil
}

func (r *pgUserRepository) rolesFor(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY role`, userID)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.rolesFor: %w", err)
	}
	defer rows.Close()

	var roles []string
	for rows.Next() {
		var role string
		if err := rows.Scan(&role); err != nil {
			return nil, fmt.Errorf("pgUserRepository.rolesFor: %w", err)
		}
		roles = append(roles, role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.rolesFor: %w", err)
	}
	return roles, nil
}
