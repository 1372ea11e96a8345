// Package memory provides in-process implementations of the service stores.
// They enforce the same unique keys as the MySQL schema and return the same
// error kinds as the GORM repositories.
package memory

import (
	"sync"
	"time"

	"studyhub_backend/internal/model"
)

type Store struct {
	mu     sync.Mutex
	nextID uint

	users         map[uint]*model.User
	exams         map[string]*model.InteractiveExam
	questions     map[string]*model.Question
	submissions   map[string]*model.UserSubmission
	subscriptions map[uint]*model.UserSubscription
	essays        map[uint]*model.Essay
	staticExams   map[uint]*model.Exam
	categories    map[uint]*model.Category
	topics        map[uint]*model.Topic
	news          map[uint]*model.News
	notices       map[uint]*model.Notice

	// SubmissionErr, when set, is returned by CreateSubmission instead of storing.
	SubmissionErr error
}

func New() *Store {
	return &Store{
		users:         make(map[uint]*model.User),
		exams:         make(map[string]*model.InteractiveExam),
		questions:     make(map[string]*model.Question),
		submissions:   make(map[string]*model.UserSubmission),
		subscriptions: make(map[uint]*model.UserSubscription),
		essays:        make(map[uint]*model.Essay),
		staticExams:   make(map[uint]*model.Exam),
		categories:    make(map[uint]*model.Category),
		topics:        make(map[uint]*model.Topic),
		news:          make(map[uint]*model.News),
		notices:       make(map[uint]*model.Notice),
	}
}

func (s *Store) id() uint {
	s.nextID++
	return s.nextID
}

func stamp(b *model.BaseModel, id uint) {
	now := time.Now()
	if b.ID == 0 {
		b.ID = id
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func stampUUID(b *model.UUIDBase) {
	now := time.Now()
	if b.ID == "" {
		b.ID = model.GenerateUUID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = now
	}
	b.UpdatedAt = now
}

func (s *Store) Users() *Users                 { return &Users{s} }
func (s *Store) InteractiveExams() *Exams      { return &Exams{s} }
func (s *Store) Submissions() *Submissions     { return &Submissions{s} }
func (s *Store) Subscriptions() *Subscriptions { return &Subscriptions{s} }
func (s *Store) Essays() *Essays               { return &Essays{s} }
func (s *Store) StaticExams() *StaticExams     { return &StaticExams{s} }
func (s *Store) Categories() *Categories       { return &Categories{s} }
func (s *Store) Topics() *Topics               { return &Topics{s} }
func (s *Store) News() *News                   { return &News{s} }
func (s *Store) Notices() *Notices             { return &Notices{s} }

// SubmissionCount reports how many submissions are stored.
func (s *Store) SubmissionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.submissions)
}
