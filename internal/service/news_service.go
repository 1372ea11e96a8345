package service

import (
	"context"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"

	"go.uber.org/zap"
)

const activeNoticesCacheKey = "notices:active"

// NewsService 新闻与公告，活动公告列表走缓存
type NewsService struct {
	News     NewsStore
	Notices  NoticeStore
	Cache    Cache
	CacheTTL time.Duration
}

func NewNewsService(news NewsStore, notices NoticeStore, cache Cache, ttl time.Duration) *NewsService {
	return &NewsService{News: news, Notices: notices, Cache: cacheOrNop(cache), CacheTTL: ttl}
}

// swagger:model NewsRequest
type NewsRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Slug        string `json:"slug" binding:"required,max=191,slug"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	ImageURL    string `json:"imageUrl" binding:"omitempty,url"`
	IsPublished bool   `json:"isPublished"`
}

// swagger:model NoticeRequest
type NoticeRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content"`
	Priority int    `json:"priority" binding:"min=0,max=100"`
	IsActive bool   `json:"isActive"`
}

func (s *NewsService) ListNews(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error) {
	return s.News.List(ctx, publishedOnly, page, limit)
}

func (s *NewsService) GetNews(ctx context.Context, id uint, publishedOnly bool) (*model.News, error) {
	n, err := s.News.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if publishedOnly && !n.IsPublished {
		return nil, util.ErrNotFound
	}
	return n, nil
}

func (s *NewsService) CreateNews(ctx context.Context, req NewsRequest) (*model.News, error) {
	n := &model.News{}
	applyNews(n, req)
	if err := s.News.Create(ctx, n); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return n, nil
}

func (s *NewsService) UpdateNews(ctx context.Context, id uint, req NewsRequest) (*model.News, error) {
	n, err := s.News.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyNews(n, req)
	if err := s.News.Update(ctx, n); err != nil {
		return nil, slugConflict(err, req.Slug)
	}
	return n, nil
}

func (s *NewsService) DeleteNews(ctx context.Context, id uint) error {
	return s.News.Delete(ctx, id)
}

func applyNews(n *model.News, req NewsRequest) {
	n.Title = req.Title
	n.Slug = req.Slug
	n.Summary = req.Summary
	n.Content = req.Content
	n.ImageURL = req.ImageURL
	if !req.IsPublished {
		n.PublishedAt = nil
	}
	n.IsPublished = req.IsPublished
}

// ListActiveNotices 公开公告列表，按优先级排序
func (s *NewsService) ListActiveNotices(ctx context.Context) ([]model.Notice, error) {
	var cached []model.Notice
	if hit, err := s.Cache.GetJSON(ctx, activeNoticesCacheKey, &cached); err != nil {
		logger.Log.Warn("读取公告缓存失败", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	notices, err := s.Notices.List(ctx, true)
	if err != nil {
		return nil, err
	}
	if err := s.Cache.SetJSON(ctx, activeNoticesCacheKey, notices, s.CacheTTL); err != nil {
		logger.Log.Warn("写入公告缓存失败", zap.Error(err))
	}
	return notices, nil
}

func (s *NewsService) ListAllNotices(ctx context.Context) ([]model.Notice, error) {
	return s.Notices.List(ctx, false)
}

func (s *NewsService) CreateNotice(ctx context.Context, req NoticeRequest) (*model.Notice, error) {
	n := &model.Notice{Title: req.Title, Content: req.Content, Priority: req.Priority, IsActive: req.IsActive}
	if err := s.Notices.Create(ctx, n); err != nil {
		return nil, err
	}
	s.invalidateNotices(ctx)
	return n, nil
}

func (s *NewsService) UpdateNotice(ctx context.Context, id uint, req NoticeRequest) (*model.Notice, error) {
	n, err := s.Notices.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	n.Title, n.Content, n.Priority, n.IsActive = req.Title, req.Content, req.Priority, req.IsActive
	if err := s.Notices.Update(ctx, n); err != nil {
		return nil, err
	}
	s.invalidateNotices(ctx)
	return n, nil
}

func (s *NewsService) DeleteNotice(ctx context.Context, id uint) error {
	if err := s.Notices.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateNotices(ctx)
	return nil
}

func (s *NewsService) invalidateNotices(ctx context.Context) {
	if err := s.Cache.DeletePrefix(ctx, activeNoticesCacheKey); err != nil {
		logger.Log.Warn("清除公告缓存失败", zap.Error(err))
	}
}
