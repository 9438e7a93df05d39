package service

import (
	"context"
	"os"
	"testing"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/common/security"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

func TestLogin(t *testing.T) {
	userRepo := newMemUserRepo()
	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), nil, &model.User{
		ID: "u1", FirstName: "Jane", LastName: "Mokoena",
		Email: "jane@university.ac.za", HashedPassword: hash,
		Roles: []string{model.RoleLecturer},
	}))
	svc := NewAuthService(userRepo, nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "jane@university.ac.za",
		Password: "correct horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Empty(t, resp.User.HashedPassword)
	assert.Equal(t, "/lecturer", resp.LandingPage)
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMemUserRepo()
	hash, err := security.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(context.Background(), nil, &model.User{
		ID: "u1", Email: "jane@university.ac.za", HashedPassword: hash,
	}))
	svc := NewAuthService(userRepo, nil)

	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "jane@university.ac.za",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), nil)
	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@university.ac.za",
		Password: "whatever",
	})
	// Indistinguishable from a bad password.
	assert.ErrorIs(t, err, common.ErrUnauthorized)
}

func TestSignupRequiresAllFields(t *testing.T) {
	svc := NewAuthService(newMemUserRepo(), nil)
	_, err := svc.Signup(context.Background(), SignupRequest{
		FirstName: "Jane",
		Email:     "jane@university.ac.za",
	})
	assert.ErrorIs(t, err, common.ErrBadRequest)
}

func TestLandingPageFor(t *testing.T) {
	tests := []struct {
		name  string
		roles []string
		want  string
	}{
		{"admin outranks all", []string{model.RoleLecturer, model.RoleAdmin}, "/admin/dashboard"},
		{"hr lands on admin dashboard", []string{model.RoleHR}, "/admin/dashboard"},
		{"coordinator", []string{model.RoleCoordinator, model.RoleLecturer}, "/coordinator"},
		{"plain lecturer", []string{model.RoleLecturer}, "/lecturer"},
		{"no roles", nil, "/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LandingPageFor(tt.roles))
		})
	}
}
