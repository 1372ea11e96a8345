package memory

import (
	"context"
	"sort"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

type News struct{ s *Store }

func (r *News) List(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.News
	for _, n := range r.s.news {
		if publishedOnly && !n.IsPublished {
			continue
		}
		all = append(all, *n)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, page, limit), int64(len(all)), nil
}

func (r *News) FindByID(ctx context.Context, id uint) (*model.News, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.news[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *News) save(n *model.News, create bool) error {
	if err := n.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if !create {
		if _, ok := r.s.news[n.ID]; !ok {
			return util.ErrNotFound
		}
	}
	for _, other := range r.s.news {
		if other.ID != n.ID && other.Slug == n.Slug {
			return util.ErrStorageConflict
		}
	}
	id := n.ID
	if create {
		id = r.s.id()
	}
	stamp(&n.BaseModel, id)
	cp := *n
	r.s.news[n.ID] = &cp
	return nil
}

func (r *News) Create(ctx context.Context, n *model.News) error { return r.save(n, true) }
func (r *News) Update(ctx context.Context, n *model.News) error { return r.save(n, false) }

func (r *News) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.news[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.news, id)
	return nil
}

type Notices struct{ s *Store }

func (r *Notices) List(ctx context.Context, activeOnly bool) ([]model.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Notice
	for _, n := range r.s.notices {
		if activeOnly && !n.IsActive {
			continue
		}
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *Notices) FindByID(ctx context.Context, id uint) (*model.Notice, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n, ok := r.s.notices[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (r *Notices) Create(ctx context.Context, n *model.Notice) error {
	if err := n.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&n.BaseModel, r.s.id())
	cp := *n
	r.s.notices[n.ID] = &cp
	return nil
}

func (r *Notices) Update(ctx context.Context, n *model.Notice) error {
	if err := n.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notices[n.ID]; !ok {
		return util.ErrNotFound
	}
	stamp(&n.BaseModel, n.ID)
	cp := *n
	r.s.notices[n.ID] = &cp
	return nil
}

func (r *Notices) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.notices[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.notices, id)
	return nil
}
