package memory

import (
	"context"
	"sort"
	"strings"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

type Essays struct{ s *Store }

func (r *Essays) FindByID(ctx context.Context, id uint) (*model.Essay, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.essays[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *Essays) List(ctx context.Context, f repository.ContentFilter) ([]model.Essay, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.Essay
	for _, e := range r.s.essays {
		if f.TopicID != 0 && e.TopicID != f.TopicID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Search != "" && !strings.Contains(e.Title, f.Search) {
			continue
		}
		cp := *e
		cp.HTMLContent = ""
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *Essays) Create(ctx context.Context, e *model.Essay) error {
	if err := e.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&e.BaseModel, r.s.id())
	cp := *e
	r.s.essays[e.ID] = &cp
	return nil
}

func (r *Essays) Update(ctx context.Context, e *model.Essay) error {
	if err := e.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.essays[e.ID]; !ok {
		return util.ErrNotFound
	}
	stamp(&e.BaseModel, e.ID)
	cp := *e
	r.s.essays[e.ID] = &cp
	return nil
}

func (r *Essays) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.essays[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.essays, id)
	return nil
}

type StaticExams struct{ s *Store }

func (r *StaticExams) FindByID(ctx context.Context, id uint) (*model.Exam, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.staticExams[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *StaticExams) List(ctx context.Context, f repository.ContentFilter) ([]model.Exam, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var all []model.Exam
	for _, e := range r.s.staticExams {
		if f.TopicID != 0 && e.TopicID != f.TopicID {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Subject != "" && e.Subject != f.Subject {
			continue
		}
		if f.Search != "" && !strings.Contains(e.Title, f.Search) {
			continue
		}
		cp := *e
		cp.HTMLContent = ""
		all = append(all, cp)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return paginate(all, f.Page, f.Limit), int64(len(all)), nil
}

func (r *StaticExams) Create(ctx context.Context, e *model.Exam) error {
	if err := e.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stamp(&e.BaseModel, r.s.id())
	cp := *e
	r.s.staticExams[e.ID] = &cp
	return nil
}

func (r *StaticExams) Update(ctx context.Context, e *model.Exam) error {
	if err := e.BeforeSave(nil); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.staticExams[e.ID]; !ok {
		return util.ErrNotFound
	}
	stamp(&e.BaseModel, e.ID)
	cp := *e
	r.s.staticExams[e.ID] = &cp
	return nil
}

func (r *StaticExams) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.staticExams[id]; !ok {
		return util.ErrNotFound
	}
	delete(r.s.staticExams, id)
	return nil
}
