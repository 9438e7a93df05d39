package service

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"cmcs_backend/internal/common"
	"cmcs_backend/internal/domain/model"
	"cmcs_backend/internal/domain/repository"
	"cmcs_backend/internal/platform/cache"
)

// In-memory repository and cache fakes. The pg implementations need a live
// cluster and the cache a running Redis, so the services are exercised
// against these instead.

var (
	_ repository.UserRepository  = (*memUserRepo)(nil)
	_ repository.ClaimRepository = (*memClaimRepo)(nil)
	_ Cache                      = (*memCache)(nil)
)

type memUserRepo struct {
	users map[string]*model.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*model.User{}}
}

func (r *memUserRepo) Create(_ context.Context, _ *sql.Tx, user *model.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return common.ErrConflict
		}
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) List(_ context.Context) ([]model.User, error) {
	var users []model.User
	for _, u := range r.users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].LastName < users[j].LastName })
	return users, nil
}

func (r *memUserRepo) UpdateHourlyRate(_ context.Context, userID string, rate float64) error {
	u, ok := r.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.HourlyRate = rate
	return nil
}

func (r *memUserRepo) ReplaceRoles(_ context.Context, _ *sql.Tx, userID string, roles []string) error {
	u, ok := r.users[userID]
	if !ok {
		return common.ErrNotFound
	}
	u.Roles = append([]string(nil), roles...)
	return nil
}

type memClaimRepo struct {
	claims map[string]*model.Claim
	order  []string
}

func newMemClaimRepo() *memClaimRepo {
	return &memClaimRepo{claims: map[string]*model.Claim{}}
}

func (r *memClaimRepo) Create(_ context.Context, _ *sql.Tx, claim *model.Claim) error {
	cp := *claim
	r.claims[claim.ID] = &cp
	r.order = append(r.order, claim.ID)
	return nil
}

func (r *memClaimRepo) FindByID(_ context.Context, id string) (*model.Claim, error) {
	c, ok := r.claims[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *memClaimRepo) ListByUser(_ context.Context, userID string) ([]model.Claim, error) {
	var out []model.Claim
	for _, id := range r.order {
		if r.claims[id].UserID == userID {
			out = append(out, *r.claims[id])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

func (r *memClaimRepo) ListAll(_ context.Context) ([]model.Claim, error) {
	var out []model.Claim
	for _, id := range r.order {
		out = append(out, *r.claims[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.After(out[j].SubmissionDate) })
	return out, nil
}

func (r *memClaimRepo) ListApprovedInMonth(_ context.Context, year int, month int) ([]model.Claim, error) {
	var out []model.Claim
	for _, id := range r.order {
		c := r.claims[id]
		if c.Status == model.StatusApproved && c.SubmissionDate.Year() == year && int(c.SubmissionDate.Month()) == month {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmissionDate.Before(out[j].SubmissionDate) })
	return out, nil
}

func (r *memClaimRepo) UpdateStatus(_ context.Context, claimID string, status model.ClaimStatus) error {
	c, ok := r.claims[claimID]
	if !ok {
		return common.ErrNotFound
	}
	c.Status = status
	return nil
}

type memCache struct {
	entries map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return append([]byte(nil), v...), nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.entries[key] = append([]byte(nil), value...)
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}
