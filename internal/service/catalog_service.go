package service

import (
	"context"
	"errors"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

type CatalogService struct {
	Categories CategoryStore
	Topics     TopicStore
}

func NewCatalogService(categories CategoryStore, topics TopicStore) *CatalogService {
	return &CatalogService{Categories: categories, Topics: topics}
}

// swagger:model CategoryRequest
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=128"`
	Slug        string `json:"slug" binding:"required,max=128,slug"`
	Description string `json:"description"`
}

// swagger:model TopicRequest
type TopicRequest struct {
	CategoryID  uint   `json:"categoryId" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=191,slug"`
	Description string `json:"description"`
}

func slugConflict(err error, slug string) error {
	if errors.Is(err, util.ErrStorageConflict) {
		return util.Invalid("slug %q is already taken", slug)
	}
	return err
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.Categories.List(ctx)
}

func (s *CatalogService) GetCategory(ctx context.Context, id uint) (*model.Category, error) {
	return s.Categories.FindByID(ctx, id)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req CategoryRequest) (*model.Category, error) {
	c := &model.Category{Name: req.Name, Slug: req.Slug, Description: req.Description}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return c, nil
}

func (s *CatalogService) UpdateCategory(ctx context.Context, id uint, req CategoryRequest) (*model.Category, error) {
	c, err := s.Categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Slug, c.Description = req.Name, req.Slug, req.Description
	if err := s.Categories.Update(ctx, c); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return c, nil
}

func (s *CatalogService) DeleteCategory(ctx context.Context, id uint) error {
	return s.Categories.Delete(ctx, id)
}

func (s *CatalogService) ListTopics(ctx context.Context, categoryID uint) ([]model.Topic, error) {
	return s.Topics.List(ctx, categoryID)
}

func (s *CatalogService) GetTopic(ctx context.Context, id uint) (*model.Topic, error) {
	return s.Topics.FindByID(ctx, id)
}

func (s *CatalogService) CreateTopic(ctx context.Context, req TopicRequest) (*model.Topic, error) {
	if _, err := s.Categories.FindByID(ctx, req.CategoryID); err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.Invalid("category %d does not exist", req.CategoryID)
		}
		return nil, err
	}
	t := &model.Topic{CategoryID: req.CategoryID, Title: req.Title, Slug: req.Slug, Description: req.Description}
	if err := s.Topics.Create(ctx, t); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return t, nil
}

func (s *CatalogService) UpdateTopic(ctx context.Context, id uint, req TopicRequest) (*model.Topic, error) {
	t, err := s.Topics.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.CategoryID != req.CategoryID {
		if _, err := s.Categories.FindByID(ctx, req.CategoryID); err != nil {
			if errors.Is(err, util.ErrNotFound) {
				return nil, util.Invalid("category %d does not exist", req.CategoryID)
			}
			return nil, err
		}
	}
	t.CategoryID, t.Title, t.Slug, t.Description = req.CategoryID, req.Title, req.Slug, req.Description
	if err := s.Topics.Update(ctx, t); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return t, nil
}

func (s *CatalogService) DeleteTopic(ctx context.Context, id uint) error {
	return s.Topics.Delete(ctx, id)
}
