package memory

import (
	"context"
	"sort"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

type Subscriptions struct{ s *Store }

func (r *Subscriptions) FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]model.UserSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.UserSubscription
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID && sub.ActiveAt(now) {
			out = append(out, *sub)
		}
	}
	return out, nil
}

// Create enforces the active-key unique index.
func (r *Subscriptions) Create(ctx context.Context, sub *model.UserSubscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	sub.SyncActiveKey()

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sub.ActiveKey != nil {
		for _, existing := range r.s.subscriptions {
			if existing.ActiveKey != nil && *existing.ActiveKey == *sub.ActiveKey {
				return util.ErrStorageConflict
			}
		}
	}
	stamp(&sub.BaseModel, r.s.id())
	cp := *sub
	r.s.subscriptions[sub.ID] = &cp
	return nil
}

func (r *Subscriptions) FindByID(ctx context.Context, id uint) (*model.UserSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subscriptions[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *sub
	return &cp, nil
}

func (r *Subscriptions) ListByUser(ctx context.Context, userID uint) ([]model.UserSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.UserSubscription
	for _, sub := range r.s.subscriptions {
		if sub.UserID == userID {
			out = append(out, *sub)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *Subscriptions) List(ctx context.Context, page, limit int) ([]model.UserSubscription, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.UserSubscription
	for _, sub := range r.s.subscriptions {
		all = append(all, *sub)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *Subscriptions) Deactivate(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sub, ok := r.s.subscriptions[id]
	if !ok {
		return util.ErrNotFound
	}
	now := time.Now()
	sub.IsActive = false
	sub.ActiveKey = nil
	sub.EndDate = &now
	return nil
}
