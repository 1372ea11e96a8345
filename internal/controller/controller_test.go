package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"studyhub_backend/internal/config"
	"studyhub_backend/internal/controller"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository/memory"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "controller-test-secret-controller-test"

type testServer struct {
	router *gin.Engine
	store  *memory.Store
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, util.RegisterValidators())

	store := memory.New()
	cfg := &config.Config{
		JWT:    config.JWTConfig{Secret: secret, ExpireTime: time.Hour},
		Auth:   config.AuthConfig{BcryptCost: bcrypt.MinCost},
		Admin:  config.AdminConfig{Email: "admin@example.com"},
		Access: config.AccessConfig{PreviewChars: 50},
	}

	authSvc := service.NewAuthService(store.Users(), cfg)
	policy := service.NewAccessPolicy(store.Subscriptions(), cfg.Access)
	examSvc := service.NewInteractiveExamService(store.InteractiveExams(), nil, time.Minute)
	gradingSvc := service.NewGradingService(store.InteractiveExams(), store.Submissions())
	contentSvc := service.NewContentService(store.Essays(), store.StaticExams(), policy)
	subSvc := service.NewSubscriptionService(store.Subscriptions(), store.Essays(), store.StaticExams())

	authCtl := controller.NewAuthController(authSvc)
	examCtl := controller.NewInteractiveExamController(examSvc, gradingSvc)
	contentCtl := controller.NewContentController(contentSvc)
	subCtl := controller.NewSubscriptionController(subSvc)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Identity(authSvc))
	api.POST("/auth/register", authCtl.Register)
	api.POST("/auth/login", authCtl.Login)
	api.GET("/interactive-exams", examCtl.ListExams)
	api.GET("/interactive-exams/:id", examCtl.GetExam)
	api.GET("/essays/:id", contentCtl.GetEssay)

	user := api.Group("")
	user.Use(middleware.RequireAuth())
	user.GET("/auth/me", authCtl.Me)
	user.POST("/interactive-exams/submit", examCtl.Submit)
	user.GET("/interactive-exams/submissions/me", examCtl.ListMySubmissions)
	user.GET("/interactive-exams/submissions/:id", examCtl.GetSubmission)
	user.POST("/subscriptions/essay/:id", subCtl.SubscribeEssay)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(), middleware.RoleMiddleware(model.RoleAdmin))
	admin.POST("/interactive-exams", examCtl.CreateExam)
	admin.POST("/essays", contentCtl.CreateEssay)

	return &testServer{router: r, store: store, auth: authSvc}
}

// register creates an account and returns a bearer token for it.
func (s *testServer) register(t *testing.T, username, email string) string {
	t.Helper()
	u, err := s.auth.Register(context.Background(), service.RegisterRequest{Username: username, Email: email, Password: "password1"})
	require.NoError(t, err)
	token, err := util.GenerateJWT(u, secret, time.Hour)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func options() []map[string]string {
	return []map[string]string{{"id": "A", "text": "a"}, {"id": "B", "text": "b"}, {"id": "C", "text": "c"}, {"id": "D", "text": "d"}}
}

// createExam creates a published two-question exam (answers B and C) through the admin API.
func (s *testServer) createExam(t *testing.T, adminToken string) service.AdminInteractiveExamDetail {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/admin/interactive-exams", adminToken, map[string]interface{}{
		"title": "Geometry", "subject": "math", "duration": 15, "status": "published",
		"questions": []map[string]interface{}{
			{"questionNumber": 1, "text": "angles in a triangle?", "options": options(), "correctAnswer": "B", "explanation": "180"},
			{"questionNumber": 2, "text": "sides of a square?", "options": options(), "correctAnswer": "C"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var exam service.AdminInteractiveExamDetail
	require.NoError(t, json.Unmarshal(env.Data, &exam))
	return exam
}

func questionIDs(exam service.AdminInteractiveExamDetail) (string, string) {
	var q1, q2 string
	for _, q := range exam.Questions {
		switch q.QuestionNumber {
		case 1:
			q1 = q.ID
		case 2:
			q2 = q.ID
		}
	}
	return q1, q2
}

func TestSubmitFlow(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	aliceToken := s.register(t, "alice", "alice@example.com")
	bobToken := s.register(t, "bob", "bob@example.com")

	exam := s.createExam(t, adminToken)
	q1, q2 := questionIDs(exam)

	body := map[string]interface{}{
		"interactiveExamId": exam.ID,
		"userAnswers":       map[string]string{q1: "B", q2: "D"},
	}

	w, _ := s.do(t, http.MethodPost, "/api/interactive-exams/submit", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/interactive-exams/submit", aliceToken, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, "Exam submitted successfully", res["message"])
	assert.EqualValues(t, 1, res["score"])
	assert.EqualValues(t, 2, res["totalQuestions"])
	assert.NotContains(t, res, "details")
	assert.NotContains(t, w.Body.String(), "correctAnswer")
	submissionID, _ := res["submissionId"].(string)
	require.NotEmpty(t, submissionID)

	path := "/api/interactive-exams/submissions/" + submissionID

	w, env = s.do(t, http.MethodGet, path, aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sub model.UserSubmission
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	require.Len(t, sub.Details, 2)
	assert.Equal(t, "180", sub.Details[0].Explanation)

	w, _ = s.do(t, http.MethodGet, path, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodGet, path, adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/interactive-exams/submissions/unknown", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/interactive-exams/submissions/me", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []service.SubmissionSummary
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	assert.Len(t, mine, 1)
}

func TestSubmitValidation(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	token := s.register(t, "carol", "carol@example.com")
	exam := s.createExam(t, adminToken)

	w, _ := s.do(t, http.MethodPost, "/api/interactive-exams/submit", token, map[string]interface{}{"interactiveExamId": exam.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/interactive-exams/submit", token, map[string]interface{}{
		"interactiveExamId": "missing", "userAnswers": map[string]string{},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/interactive-exams/submit", token, map[string]interface{}{
		"interactiveExamId": exam.ID, "userAnswers": map[string]string{},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var res service.SubmitResult
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 2, res.TotalQuestions)
}

func TestSubmitEmptyExamReturns400(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	token := s.register(t, "dave", "dave@example.com")

	w, env := s.do(t, http.MethodPost, "/api/admin/interactive-exams", adminToken, map[string]interface{}{
		"title": "Blank", "subject": "art", "duration": 5, "status": "published",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var exam service.AdminInteractiveExamDetail
	require.NoError(t, json.Unmarshal(env.Data, &exam))

	w, _ = s.do(t, http.MethodPost, "/api/interactive-exams/submit", token, map[string]interface{}{
		"interactiveExamId": exam.ID, "userAnswers": map[string]string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, s.store.SubmissionCount())
}

func TestTakerViewHidesAnswers(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	exam := s.createExam(t, adminToken)

	w, _ := s.do(t, http.MethodGet, "/api/interactive-exams/"+exam.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "correctAnswer")
	assert.NotContains(t, w.Body.String(), "explanation")
}

func TestTokenFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "erin", "erin@example.com")

	u, err := s.store.Users().FindByUsername(context.Background(), "erin")
	require.NoError(t, err)
	expired, err := util.GenerateJWT(u, secret, -time.Minute)
	require.NoError(t, err)
	forged, err := util.GenerateJWT(u, "wrong-secret-wrong-secret-wrong-secret", time.Hour)
	require.NoError(t, err)

	w, _ := s.do(t, http.MethodGet, "/api/auth/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/auth/me", forged, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodGet, "/api/auth/me", "not.a.token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// 可选身份的接口把失败的令牌当作匿名
	w, _ = s.do(t, http.MethodGet, "/api/interactive-exams/missing", forged, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	token := s.register(t, "frank", "frank@example.com")

	w, _ := s.do(t, http.MethodPost, "/api/admin/essays", token, map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = s.do(t, http.MethodPost, "/api/admin/essays", "", map[string]interface{}{"title": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestEssayGating(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	token := s.register(t, "gina", "gina@example.com")

	w, env := s.do(t, http.MethodPost, "/api/admin/essays", adminToken, map[string]interface{}{
		"title": "Secrets", "htmlContent": "<p>members only text</p>", "status": "published",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var essay model.Essay
	require.NoError(t, json.Unmarshal(env.Data, &essay))
	path := "/api/essays/" + fmt.Sprint(essay.ID)

	w, env = s.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var gated service.GatedEssay
	require.NoError(t, json.Unmarshal(env.Data, &gated))
	assert.False(t, gated.CanViewFullContent)
	assert.Equal(t, service.StatusAnonymous, gated.SubscriptionStatus)
	assert.NotContains(t, w.Body.String(), "htmlContent")
	assert.Equal(t, "members only text", gated.PreviewContent)

	w, _ = s.do(t, http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(essay.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w, env = s.do(t, http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(essay.ID), token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, util.ErrAlreadySubscribed.Error(), env.Message)

	w, env = s.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &gated))
	assert.True(t, gated.CanViewFullContent)
	assert.Equal(t, service.StatusSubscribed, gated.SubscriptionStatus)
	assert.Equal(t, "<p>members only text</p>", gated.HTMLContent)
}

func (s *testServer) createEssay(t *testing.T, adminToken, status string) uint {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/admin/essays", adminToken, map[string]interface{}{
		"title": "Essay " + status, "htmlContent": "<p>body</p>", "status": status,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var essay model.Essay
	require.NoError(t, json.Unmarshal(env.Data, &essay))
	return essay.ID
}

func TestSubscribeBody(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")

	t.Run("chunked empty body", func(t *testing.T) {
		token := s.register(t, "hank", "hank@example.com")
		id := s.createEssay(t, adminToken, "published")

		req := httptest.NewRequest(http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(id), strings.NewReader(""))
		req.ContentLength = -1
		req.TransferEncoding = []string{"chunked"}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var sub model.UserSubscription
		require.NoError(t, json.Unmarshal(env.Data, &sub))
		assert.Nil(t, sub.EndDate)
	})

	t.Run("duration", func(t *testing.T) {
		token := s.register(t, "ivy", "ivy@example.com")
		id := s.createEssay(t, adminToken, "published")

		w, env := s.do(t, http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(id), token, map[string]int{"durationDays": 3})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var sub model.UserSubscription
		require.NoError(t, json.Unmarshal(env.Data, &sub))
		require.NotNil(t, sub.EndDate)
		assert.WithinDuration(t, time.Now().AddDate(0, 0, 3), *sub.EndDate, time.Minute)
	})

	t.Run("malformed body", func(t *testing.T) {
		token := s.register(t, "jack", "jack@example.com")
		id := s.createEssay(t, adminToken, "published")

		req := httptest.NewRequest(http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(id), strings.NewReader("{"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("draft essay", func(t *testing.T) {
		token := s.register(t, "kate", "kate@example.com")
		id := s.createEssay(t, adminToken, "draft")

		w, _ := s.do(t, http.MethodPost, "/api/subscriptions/essay/"+fmt.Sprint(id), token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListExamsFilters(t *testing.T) {
	s := newTestServer(t)
	adminToken := s.register(t, "root", "admin@example.com")
	exam := s.createExam(t, adminToken)

	w, _ := s.do(t, http.MethodGet, "/api/interactive-exams?difficulty=nightmare", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/interactive-exams?difficulty=medium&subject=math", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []service.InteractiveExamListItem
	require.NoError(t, json.Unmarshal(env.Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, exam.ID, items[0].ID)
	assert.Equal(t, 2, items[0].QuestionCount)
	assert.NotContains(t, w.Body.String(), "creatorId")

	w, _ = s.do(t, http.MethodGet, "/api/interactive-exams/"+exam.ID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "creatorId")
}
