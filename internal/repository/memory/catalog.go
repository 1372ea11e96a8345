package memory

import (
	"context"
	"sort"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

type Categories struct{ s *Store }

func (r *Categories) List(ctx context.Context) ([]model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Category
	for _, c := range r.s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *Categories) FindByID(ctx context.Context, id uint) (*model.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *Categories) taken(c *model.Category) bool {
	for _, other := range r.s.categories {
		if other.ID != c.ID && (other.Slug == c.Slug || other.Name == c.Name) {
			return true
		}
	}
	return false
}

func (r *Categories) Create(ctx context.Context, c *model.Category) error {
	if err := c.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(c) {
		return util.ErrStorageConflict
	}
	stamp(&c.BaseModel, r.s.id())
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

func (r *Categories) Update(ctx context.Context, c *model.Category) error {
	if err := c.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return util.ErrNotFound
	}
	if r.taken(c) {
		return util.ErrStorageConflict
	}
	stamp(&c.BaseModel, c.ID)
	cp := *c
	r.s.categories[c.ID] = &cp
	return nil
}

// Delete refuses to drop a category that still has topics.
func (r *Categories) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return util.ErrNotFound
	}
	for _, t := range r.s.topics {
		if t.CategoryID == id {
			return util.Invalid("category still has topics")
		}
	}
	delete(r.s.categories, id)
	return nil
}

type Topics struct{ s *Store }

func (r *Topics) List(ctx context.Context, categoryID uint) ([]model.Topic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Topic
	for _, t := range r.s.topics {
		if categoryID == 0 || t.CategoryID == categoryID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *Topics) FindByID(ctx context.Context, id uint) (*model.Topic, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.topics[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *Topics) taken(t *model.Topic) bool {
	for _, other := range r.s.topics {
		if other.ID != t.ID && other.Slug == t.Slug {
			return true
		}
	}
	return false
}

func (r *Topics) Create(ctx context.Context, t *model.Topic) error {
	if err := t.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.taken(t) {
		return util.ErrStorageConflict
	}
	stamp(&t.BaseModel, r.s.id())
	cp := *t
	r.s.topics[t.ID] = &cp
	return nil
}

func (r *Topics) Update(ctx context.Context, t *model.Topic) error {
	if err := t.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.topics[t.ID]; !ok {
		return util.ErrNotFound
	}
	if r.taken(t) {
		return util.ErrStorageConflict
	}
	stamp(&t.BaseModel, t.ID)
	cp := *t
	r.s.topics[t.ID] = &cp
	return nil
}

func (r *Topics) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.topics[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.topics, id)
	return nil
}
