package memory

import (
	"context"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

type Users struct{ s *Store }

func (r *Users) Create(ctx context.Context, user *model.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email || u.Username == user.Username {
			return util.ErrStorageConflict
		}
	}
	stamp(&user.BaseModel, r.s.id())
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *Users) find(match func(*model.User) bool) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *Users) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.ID == id })
}

func (r *Users) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Email == email })
}

func (r *Users) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.find(func(u *model.User) bool { return u.Username == username })
}

func (r *Users) UpdatePassword(ctx context.Context, id uint, hash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return util.ErrNotFound
	}
	u.Password = hash
	return nil
}

func (r *Users) UpdateLastSeen(userID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[userID]; ok {
		now := time.Now()
		u.LastSeen = &now
	}
	return nil
}

// Delete removes a user; used to simulate accounts deleted after a token was issued.
func (r *Users) Delete(id uint) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
}
