package service

import (
	"context"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
)

// The services below depend on these interfaces rather than on the GORM
// repositories so the grading and access logic can run against any store.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
}

type InteractiveExamStore interface {
	FindExamByID(ctx context.Context, id string) (*model.InteractiveExam, error)
	ListExams(ctx context.Context, f repository.InteractiveExamFilter) ([]model.InteractiveExam, error)
	CreateExamWithQuestions(ctx context.Context, exam *model.InteractiveExam, questions []model.Question) error
	UpdateExam(ctx context.Context, exam *model.InteractiveExam) error
	DeleteExamCascade(ctx context.Context, id string) error
	FindQuestionsByExam(ctx context.Context, examID string, withAnswers bool) ([]model.Question, error)
	CountQuestions(ctx context.Context, examIDs []string) (map[string]int, error)
	FindQuestionByID(ctx context.Context, id string) (*model.Question, error)
	CreateQuestion(ctx context.Context, q *model.Question) error
	UpdateQuestion(ctx context.Context, q *model.Question) error
	DeleteQuestion(ctx context.Context, id string) error
}

type SubmissionStore interface {
	CreateSubmission(ctx context.Context, s *model.UserSubmission) error
	FindSubmissionByID(ctx context.Context, id string) (*model.UserSubmission, error)
	ListSubmissionsByUser(ctx context.Context, userID uint) ([]model.UserSubmission, error)
	ListSubmissionsByExam(ctx context.Context, examID string, page, limit int) ([]model.UserSubmission, int64, error)
}

type SubscriptionStore interface {
	FindActiveByUser(ctx context.Context, userID uint, now time.Time) ([]model.UserSubscription, error)
	Create(ctx context.Context, s *model.UserSubscription) error
	FindByID(ctx context.Context, id uint) (*model.UserSubscription, error)
	ListByUser(ctx context.Context, userID uint) ([]model.UserSubscription, error)
	List(ctx context.Context, page, limit int) ([]model.UserSubscription, int64, error)
	Deactivate(ctx context.Context, id uint) error
}

type EssayStore interface {
	FindByID(ctx context.Context, id uint) (*model.Essay, error)
	List(ctx context.Context, f repository.ContentFilter) ([]model.Essay, int64, error)
	Create(ctx context.Context, e *model.Essay) error
	Update(ctx context.Context, e *model.Essay) error
	Delete(ctx context.Context, id uint) error
}

type ExamStore interface {
	FindByID(ctx context.Context, id uint) (*model.Exam, error)
	List(ctx context.Context, f repository.ContentFilter) ([]model.Exam, int64, error)
	Create(ctx context.Context, e *model.Exam) error
	Update(ctx context.Context, e *model.Exam) error
	Delete(ctx context.Context, id uint) error
}

type CategoryStore interface {
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, c *model.Category) error
	Delete(ctx context.Context, id uint) error
}

type TopicStore interface {
	List(ctx context.Context, categoryID uint) ([]model.Topic, error)
	FindByID(ctx context.Context, id uint) (*model.Topic, error)
	Create(ctx context.Context, t *model.Topic) error
	Update(ctx context.Context, t *model.Topic) error
	Delete(ctx context.Context, id uint) error
}

type NewsStore interface {
	List(ctx context.Context, publishedOnly bool, page, limit int) ([]model.News, int64, error)
	FindByID(ctx context.Context, id uint) (*model.News, error)
	Create(ctx context.Context, n *model.News) error
	Update(ctx context.Context, n *model.News) error
	Delete(ctx context.Context, id uint) error
}

type NoticeStore interface {
	List(ctx context.Context, activeOnly bool) ([]model.Notice, error)
	FindByID(ctx context.Context, id uint) (*model.Notice, error)
	Create(ctx context.Context, n *model.Notice) error
	Update(ctx context.Context, n *model.Notice) error
	Delete(ctx context.Context, id uint) error
}

// Cache is the read-through cache used for public listings.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) (bool, error)
	SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type noCache struct{}

func (noCache) GetJSON(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noCache) SetJSON(context.Context, string, interface{}, time.Duration) error { return nil }
func (noCache) DeletePrefix(context.Context, string) error { return nil }

func cacheOrNop(c Cache) Cache {
	if c == nil {
		return noCache{}
	}
	return c
}
