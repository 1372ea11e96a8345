package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const interactiveExamCachePrefix = "interactive_exams:list:"

type InteractiveExamService struct {
	Exams    InteractiveExamStore
	Cache    Cache
	CacheTTL time.Duration
}

func NewInteractiveExamService(exams InteractiveExamStore, cache Cache, ttl time.Duration) *InteractiveExamService {
	return &InteractiveExamService{Exams: exams, Cache: cacheOrNop(cache), CacheTTL: ttl}
}

// QuestionInput defines model for question creation and update
// swagger:model QuestionInput
type QuestionInput struct {
	QuestionNumber int                    `json:"questionNumber" binding:"required,min=1"`
	Text           string                 `json:"text" binding:"required"`
	Image          string                 `json:"image"`
	Options        []model.QuestionOption `json:"options" binding:"required,min=2,dive"`
	CorrectAnswer  string                 `json:"correctAnswer" binding:"required"`
	Explanation    string                 `json:"explanation"`
}

// swagger:model CreateInteractiveExamRequest
type CreateInteractiveExamRequest struct {
	Title       string          `json:"title" binding:"required,max=255"`
	Subject     string          `json:"subject" binding:"required,max=128"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" binding:"required,min=1"`
	Difficulty  string          `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Grade       string          `json:"grade"`
	Status      string          `json:"status" binding:"omitempty,oneof=draft published"`
	Questions   []QuestionInput `json:"questions" binding:"omitempty,dive"`
}

// swagger:model UpdateInteractiveExamRequest
type UpdateInteractiveExamRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Subject     *string `json:"subject" binding:"omitempty,max=128"`
	Description *string `json:"description"`
	Duration    *int    `json:"duration" binding:"omitempty,min=1"`
	Difficulty  *string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Grade       *string `json:"grade"`
	Status      *string `json:"status" binding:"omitempty,oneof=draft published"`
}

// ExamListQuery 公开列表的过滤条件，同时决定缓存键
type ExamListQuery struct {
	Subject    string `form:"subject" binding:"omitempty,max=128"`
	Grade      string `form:"grade" binding:"omitempty,max=64"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=easy medium hard"`
}

func (q ExamListQuery) validate() error {
	if len(q.Subject) > 128 || len(q.Grade) > 64 {
		return util.Invalid("subject or grade filter too long")
	}
	switch model.Difficulty(q.Difficulty) {
	case "", model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
		return nil
	}
	return util.Invalid("difficulty must be one of easy, medium, hard")
}

// PublicInteractiveExam 考生可见的考试信息
type PublicInteractiveExam struct {
	ID          string              `json:"id"`
	Title       string              `json:"title"`
	Subject     string              `json:"subject"`
	Description string              `json:"description"`
	Duration    int                 `json:"duration"`
	Difficulty  model.Difficulty    `json:"difficulty"`
	Grade       string              `json:"grade"`
	Status      model.PublishStatus `json:"status"`
	CreatedAt   time.Time           `json:"createdAt"`
}

func publicExam(e *model.InteractiveExam) PublicInteractiveExam {
	return PublicInteractiveExam{
		ID:          e.ID,
		Title:       e.Title,
		Subject:     e.Subject,
		Description: e.Description,
		Duration:    e.Duration,
		Difficulty:  e.Difficulty,
		Grade:       e.Grade,
		Status:      e.Status,
		CreatedAt:   e.CreatedAt,
	}
}

type InteractiveExamListItem struct {
	PublicInteractiveExam
	QuestionCount int `json:"questionCount"`
}

type AdminInteractiveExamListItem struct {
	model.InteractiveExam
	QuestionCount int `json:"questionCount"`
}

// PublicQuestion 公开题目视图，不含正确答案和解析
type PublicQuestion struct {
	ID             string                 `json:"id"`
	QuestionNumber int                    `json:"questionNumber"`
	Text           string                 `json:"text"`
	Image          string                 `json:"image,omitempty"`
	Options        []model.QuestionOption `json:"options"`
}

type InteractiveExamDetail struct {
	PublicInteractiveExam
	Questions []PublicQuestion `json:"questions"`
}

type AdminInteractiveExamDetail struct {
	model.InteractiveExam
	Questions []model.Question `json:"questions"`
}

func listCacheKey(f repository.InteractiveExamFilter) string {
	return fmt.Sprintf("%s%s:%s:%s:%s", interactiveExamCachePrefix, f.Status, f.Subject, f.Grade, f.Difficulty)
}

// ListPublished 公开列表，只包含已发布考试，结果走缓存
func (s *InteractiveExamService) ListPublished(ctx context.Context, q ExamListQuery) ([]InteractiveExamListItem, error) {
	if err := q.validate(); err != nil {
		return nil, err
	}
	f := repository.InteractiveExamFilter{
		Status:     model.StatusPublished,
		Subject:    q.Subject,
		Grade:      q.Grade,
		Difficulty: model.Difficulty(q.Difficulty),
	}

	key := listCacheKey(f)
	var cached []InteractiveExamListItem
	if hit, err := s.Cache.GetJSON(ctx, key, &cached); err != nil {
		logger.Log.Warn("读取考试列表缓存失败", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	all, err := s.list(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]InteractiveExamListItem, 0, len(all))
	for i := range all {
		items = append(items, InteractiveExamListItem{
			PublicInteractiveExam: publicExam(&all[i].InteractiveExam),
			QuestionCount:         all[i].QuestionCount,
		})
	}
	if err := s.Cache.SetJSON(ctx, key, items, s.CacheTTL); err != nil {
		logger.Log.Warn("写入考试列表缓存失败", zap.Error(err))
	}
	return items, nil
}

func (s *InteractiveExamService) ListAll(ctx context.Context, status string) ([]AdminInteractiveExamListItem, error) {
	return s.list(ctx, repository.InteractiveExamFilter{Status: model.PublishStatus(status)})
}

func (s *InteractiveExamService) list(ctx context.Context, f repository.InteractiveExamFilter) ([]AdminInteractiveExamListItem, error) {
	exams, err := s.Exams.ListExams(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(exams))
	for _, e := range exams {
		ids = append(ids, e.ID)
	}
	counts, err := s.Exams.CountQuestions(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]AdminInteractiveExamListItem, 0, len(exams))
	for _, e := range exams {
		items = append(items, AdminInteractiveExamListItem{InteractiveExam: e, QuestionCount: counts[e.ID]})
	}
	return items, nil
}

// GetForTaker returns the exam with its questions stripped of answers.
// Drafts are visible to admins only.
func (s *InteractiveExamService) GetForTaker(ctx context.Context, id string, viewer *model.User) (*InteractiveExamDetail, error) {
	exam, err := s.Exams.FindExamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exam.IsPublished() && !viewer.IsAdmin() {
		return nil, util.ErrNotFound
	}

	questions, err := s.Exams.FindQuestionsByExam(ctx, id, false)
	if err != nil {
		return nil, err
	}

	public := make([]PublicQuestion, 0, len(questions))
	for _, q := range questions {
		public = append(public, PublicQuestion{
			ID:             q.ID,
			QuestionNumber: q.QuestionNumber,
			Text:           q.Text,
			Image:          q.Image,
			Options:        []model.QuestionOption(q.Options),
		})
	}
	return &InteractiveExamDetail{PublicInteractiveExam: publicExam(exam), Questions: public}, nil
}

func (s *InteractiveExamService) GetForAdmin(ctx context.Context, id string) (*AdminInteractiveExamDetail, error) {
	exam, err := s.Exams.FindExamByID(ctx, id)
	if err != nil {
		return nil, err
	}
	questions, err := s.Exams.FindQuestionsByExam(ctx, id, true)
	if err != nil {
		return nil, err
	}
	return &AdminInteractiveExamDetail{InteractiveExam: *exam, Questions: questions}, nil
}

func toQuestion(examID string, in QuestionInput) model.Question {
	return model.Question{
		InteractiveExamID: examID,
		QuestionNumber:    in.QuestionNumber,
		Text:              in.Text,
		Image:             in.Image,
		Options:           datatypes.JSONSlice[model.QuestionOption](in.Options),
		CorrectAnswer:     in.CorrectAnswer,
		Explanation:       in.Explanation,
	}
}

// Create 创建考试及其题目，在同一事务内完成
func (s *InteractiveExamService) Create(ctx context.Context, creatorID uint, req CreateInteractiveExamRequest) (*AdminInteractiveExamDetail, error) {
	exam := &model.InteractiveExam{
		Title:       req.Title,
		Subject:     req.Subject,
		Description: req.Description,
		Duration:    req.Duration,
		Difficulty:  model.Difficulty(req.Difficulty),
		Grade:       req.Grade,
		Status:      model.PublishStatus(req.Status),
		CreatorID:   creatorID,
	}
	exam.ID = model.GenerateUUID()
	if err := exam.Validate(); err != nil {
		return nil, err
	}

	numbers := make(map[int]bool, len(req.Questions))
	questions := make([]model.Question, 0, len(req.Questions))
	for _, in := range req.Questions {
		if numbers[in.QuestionNumber] {
			return nil, util.Invalid("duplicate questionNumber %d", in.QuestionNumber)
		}
		numbers[in.QuestionNumber] = true

		q := toQuestion(exam.ID, in)
		q.ID = model.GenerateUUID()
		if err := q.Validate(); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}

	if err := s.Exams.CreateExamWithQuestions(ctx, exam, questions); err != nil {
		return nil, err
	}
	s.invalidate(ctx)

	logger.Log.Info("交互式考试已创建", zap.String("examId", exam.ID), zap.Int("questions", len(questions)))
	return &AdminInteractiveExamDetail{InteractiveExam: *exam, Questions: questions}, nil
}

func (s *InteractiveExamService) Update(ctx context.Context, id string, req UpdateInteractiveExamRequest) (*model.InteractiveExam, error) {
	exam, err := s.Exams.FindExamByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		exam.Title = *req.Title
	}
	if req.Subject != nil {
		exam.Subject = *req.Subject
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.Duration != nil {
		exam.Duration = *req.Duration
	}
	if req.Difficulty != nil {
		exam.Difficulty = model.Difficulty(*req.Difficulty)
	}
	if req.Grade != nil {
		exam.Grade = *req.Grade
	}
	if req.Status != nil {
		exam.Status = model.PublishStatus(*req.Status)
	}

	if err := s.Exams.UpdateExam(ctx, exam); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return exam, nil
}

// Delete 级联删除考试、题目和答题记录
func (s *InteractiveExamService) Delete(ctx context.Context, id string) error {
	if err := s.Exams.DeleteExamCascade(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	logger.Log.Info("交互式考试已删除", zap.String("examId", id))
	return nil
}

func (s *InteractiveExamService) AddQuestion(ctx context.Context, examID string, in QuestionInput) (*model.Question, error) {
	if _, err := s.Exams.FindExamByID(ctx, examID); err != nil {
		return nil, err
	}
	q := toQuestion(examID, in)
	q.ID = model.GenerateUUID()
	if err := s.Exams.CreateQuestion(ctx, &q); err != nil {
		return nil, questionConflict(err, in.QuestionNumber)
	}
	s.invalidate(ctx)
	return &q, nil
}

func (s *InteractiveExamService) UpdateQuestion(ctx context.Context, examID, questionID string, in QuestionInput) (*model.Question, error) {
	existing, err := s.Exams.FindQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if existing.InteractiveExamID != examID {
		return nil, util.ErrNotFound
	}

	q := toQuestion(examID, in)
	q.UUIDBase = existing.UUIDBase
	if err := s.Exams.UpdateQuestion(ctx, &q); err != nil {
		return nil, questionConflict(err, in.QuestionNumber)
	}
	return &q, nil
}

func (s *InteractiveExamService) DeleteQuestion(ctx context.Context, examID, questionID string) error {
	existing, err := s.Exams.FindQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	if existing.InteractiveExamID != examID {
		return util.ErrNotFound
	}
	if err := s.Exams.DeleteQuestion(ctx, questionID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// questionConflict 题号唯一索引冲突转为可读的校验错误
func questionConflict(err error, number int) error {
	if errors.Is(err, util.ErrStorageConflict) {
		return util.Invalid("questionNumber %d already exists in this exam", number)
	}
	return err
}

func (s *InteractiveExamService) invalidate(ctx context.Context) {
	if err := s.Cache.DeletePrefix(ctx, interactiveExamCachePrefix); err != nil {
		logger.Log.Warn("清除考试列表缓存失败", zap.Error(err))
	}
}
