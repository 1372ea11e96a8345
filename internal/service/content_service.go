package service

import (
	"context"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
)

// ContentService 文章与静态试卷，读取时按订阅状态裁剪正文
type ContentService struct {
	Essays EssayStore
	Exams  ExamStore
	Policy *AccessPolicy
}

func NewContentService(essays EssayStore, exams ExamStore, policy *AccessPolicy) *ContentService {
	return &ContentService{Essays: essays, Exams: exams, Policy: policy}
}

// swagger:model EssayRequest
type EssayRequest struct {
	TopicID     uint   `json:"topicId"`
	Title       string `json:"title" binding:"required,max=255"`
	Author      string `json:"author" binding:"max=128"`
	Excerpt     string `json:"excerpt"`
	HTMLContent string `json:"htmlContent"`
	CoverImage  string `json:"coverImage" binding:"omitempty,url"`
	Status      string `json:"status" binding:"omitempty,oneof=draft published"`
}

// swagger:model ExamRequest
type ExamRequest struct {
	TopicID        uint   `json:"topicId"`
	Title          string `json:"title" binding:"required,max=255"`
	Subject        string `json:"subject" binding:"max=128"`
	Grade          string `json:"grade" binding:"max=64"`
	Year           int    `json:"year" binding:"omitempty,min=1900,max=2100"`
	Description    string `json:"description"`
	PreviewContent string `json:"previewContent"`
	HTMLContent    string `json:"htmlContent"`
	Status         string `json:"status" binding:"omitempty,oneof=draft published"`
}

// GatedEssay is the reader view of an essay. Exactly one of HTMLContent and
// PreviewContent is set.
type GatedEssay struct {
	ID                 uint               `json:"id"`
	TopicID            uint               `json:"topicId"`
	Title              string             `json:"title"`
	Author             string             `json:"author"`
	Excerpt            string             `json:"excerpt"`
	CoverImage         string             `json:"coverImage"`
	CreatedAt          string             `json:"createdAt"`
	CanViewFullContent bool               `json:"canViewFullContent"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	HTMLContent        string             `json:"htmlContent,omitempty"`
	PreviewContent     string             `json:"previewContent,omitempty"`
}

type GatedExam struct {
	ID                 uint               `json:"id"`
	TopicID            uint               `json:"topicId"`
	Title              string             `json:"title"`
	Subject            string             `json:"subject"`
	Grade              string             `json:"grade"`
	Year               int                `json:"year"`
	Description        string             `json:"description"`
	CreatedAt          string             `json:"createdAt"`
	CanViewFullContent bool               `json:"canViewFullContent"`
	SubscriptionStatus SubscriptionStatus `json:"subscriptionStatus"`
	HTMLContent        string             `json:"htmlContent,omitempty"`
	PreviewContent     string             `json:"previewContent,omitempty"`
}

func publicFilter(f repository.ContentFilter, viewer *model.User) repository.ContentFilter {
	if !viewer.IsAdmin() {
		f.Status = model.StatusPublished
	}
	return f
}

func (s *ContentService) ListEssays(ctx context.Context, f repository.ContentFilter, viewer *model.User) ([]model.Essay, int64, error) {
	return s.Essays.List(ctx, publicFilter(f, viewer))
}

// GetEssay 读取文章，未订阅时只返回预览
func (s *ContentService) GetEssay(ctx context.Context, id uint, viewer *model.User) (*GatedEssay, error) {
	essay, err := s.Essays.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if essay.Status != model.StatusPublished && !viewer.IsAdmin() {
		return nil, util.ErrNotFound
	}

	decision, err := s.Policy.Evaluate(ctx, viewer, ContentRef{Type: model.ContentEssay, ID: essay.ID})
	if err != nil {
		return nil, err
	}

	out := &GatedEssay{
		ID:                 essay.ID,
		TopicID:            essay.TopicID,
		Title:              essay.Title,
		Author:             essay.Author,
		Excerpt:            essay.Excerpt,
		CoverImage:         essay.CoverImage,
		CreatedAt:          essay.CreatedAt.Format(util.TimeFormat),
		CanViewFullContent: decision.CanViewFull,
		SubscriptionStatus: decision.Status,
	}
	if decision.CanViewFull {
		out.HTMLContent = essay.HTMLContent
	} else {
		out.PreviewContent = s.Policy.Preview(essay.Excerpt, essay.HTMLContent)
	}
	return out, nil
}

func (s *ContentService) GetEssayForAdmin(ctx context.Context, id uint) (*model.Essay, error) {
	return s.Essays.FindByID(ctx, id)
}

func (s *ContentService) CreateEssay(ctx context.Context, req EssayRequest) (*model.Essay, error) {
	essay := &model.Essay{}
	applyEssay(essay, req)
	if err := s.Essays.Create(ctx, essay); err != nil {
		return nil, err
	}
	return essay, nil
}

func (s *ContentService) UpdateEssay(ctx context.Context, id uint, req EssayRequest) (*model.Essay, error) {
	essay, err := s.Essays.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyEssay(essay, req)
	if err := s.Essays.Update(ctx, essay); err != nil {
		return nil, err
	}
	return essay, nil
}

func (s *ContentService) DeleteEssay(ctx context.Context, id uint) error {
	return s.Essays.Delete(ctx, id)
}

func applyEssay(e *model.Essay, req EssayRequest) {
	e.TopicID = req.TopicID
	e.Title = req.Title
	e.Author = req.Author
	e.Excerpt = req.Excerpt
	e.HTMLContent = req.HTMLContent
	e.CoverImage = req.CoverImage
	e.Status = model.PublishStatus(req.Status)
}

func (s *ContentService) ListExams(ctx context.Context, f repository.ContentFilter, viewer *model.User) ([]model.Exam, int64, error) {
	return s.Exams.List(ctx, publicFilter(f, viewer))
}

// GetExam 读取静态试卷，未订阅时只返回预览
func (s *ContentService) GetExam(ctx context.Context, id uint, viewer *model.User) (*GatedExam, error) {
	exam, err := s.Exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam.Status != model.StatusPublished && !viewer.IsAdmin() {
		return nil, util.ErrNotFound
	}

	decision, err := s.Policy.Evaluate(ctx, viewer, ContentRef{Type: model.ContentExam, ID: exam.ID})
	if err != nil {
		return nil, err
	}

	out := &GatedExam{
		ID:                 exam.ID,
		TopicID:            exam.TopicID,
		Title:              exam.Title,
		Subject:            exam.Subject,
		Grade:              exam.Grade,
		Year:               exam.Year,
		Description:        exam.Description,
		CreatedAt:          exam.CreatedAt.Format(util.TimeFormat),
		CanViewFullContent: decision.CanViewFull,
		SubscriptionStatus: decision.Status,
	}
	if decision.CanViewFull {
		out.HTMLContent = exam.HTMLContent
	} else {
		out.PreviewContent = s.Policy.Preview(exam.PreviewContent, exam.HTMLContent)
	}
	return out, nil
}

func (s *ContentService) GetExamForAdmin(ctx context.Context, id uint) (*model.Exam, error) {
	return s.Exams.FindByID(ctx, id)
}

func (s *ContentService) CreateExam(ctx context.Context, req ExamRequest) (*model.Exam, error) {
	exam := &model.Exam{}
	applyExam(exam, req)
	if err := s.Exams.Create(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ContentService) UpdateExam(ctx context.Context, id uint, req ExamRequest) (*model.Exam, error) {
	exam, err := s.Exams.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	applyExam(exam, req)
	if err := s.Exams.Update(ctx, exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ContentService) DeleteExam(ctx context.Context, id uint) error {
	return s.Exams.Delete(ctx, id)
}

func applyExam(e *model.Exam, req ExamRequest) {
	e.TopicID = req.TopicID
	e.Title = req.Title
	e.Subject = req.Subject
	e.Grade = req.Grade
	e.Year = req.Year
	e.Description = req.Description
	e.PreviewContent = req.PreviewContent
	e.HTMLContent = req.HTMLContent
	e.Status = model.PublishStatus(req.Status)
}
