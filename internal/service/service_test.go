package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hjhuang/identity-service/internal/apperrors"
	"github.com/hjhuang/identity-service/internal/models"
)

// fakeStore is an in-memory UserStore with the same error contract as the
// Postgres repository.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[int64]*models.Account
	failure error
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int64]*models.Account)}
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return f.failure
	}
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return apperrors.ErrDuplicateCredential
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeStore) FindByUsernameOrEmail(_ context.Context, username, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) FindByID(_ context.Context, id int64) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *u
	cp.PasswordHash = nil
	return &cp, nil
}

func (f *fakeStore) ListUsers(_ context.Context) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	var out []models.Account
	for _, u := range f.users {
		cp := *u
		cp.PasswordHash = nil
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateUser(_ context.Context, id int64, p models.UpdateParams) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return nil, f.failure
	}
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.PasswordHash != nil {
		u.PasswordHash = p.PasswordHash
	}
	if p.Role != nil {
		u.Role = p.Role
	}
	u.UpdatedAt = time.Now()
	cp := *u
	cp.PasswordHash = nil
	return &cp, nil
}

func (f *fakeStore) DeleteUser(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failure != nil {
		return false, f.failure
	}
	if _, ok := f.users[id]; !ok {
		return false, nil
	}
	delete(f.users, id)
	return true, nil
}

// seed inserts an account directly, bypassing the service layer.
func (f *fakeStore) seed(username, email string, passwordHash, role *string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	now := time.Now()
	f.users[f.nextID] = &models.Account{
		ID:           f.nextID,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return f.nextID
}

type recordedNotice struct {
	to, username string
}

type fakeNotifier struct {
	mu      sync.Mutex
	notices []recordedNotice
	done    chan struct{}
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan struct{}, 1)}
}

func (n *fakeNotifier) SendWelcome(to, username string) error {
	n.mu.Lock()
	n.notices = append(n.notices, recordedNotice{to: to, username: username})
	n.mu.Unlock()
	n.done <- struct{}{}
	return nil
}
