package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpErr     error
	authUsername  string
	authErr       error
	genTokenToken string
	genTokenErr   error
	parseUsername string
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastAuthUsername   string
	lastAuthPassword   string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
	signUpCalls        int
}

func (m *mockAuth) SignUp(ctx context.Context, username, password string) error {
	m.signUpCalls++
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpErr
}
func (m *mockAuth) Authenticate(ctx context.Context, username, password string) (string, error) {
	m.lastAuthUsername = username
	m.lastAuthPassword = password
	return m.authUsername, m.authErr
}
func (m *mockAuth) GenerateToken(ctx context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUsername, m.parseErr
}

type mockTodos struct {
	mu        sync.Mutex
	user      models.User
	fetchErr  error
	upsertErr error

	lastFetch    string
	lastUpsertBy string
	lastItem     models.TodoItem
	upsertCalls  int
}

func (m *mockTodos) FetchUser(ctx context.Context, username string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFetch = username
	return m.user, m.fetchErr
}
func (m *mockTodos) AddOrUpdateTodo(ctx context.Context, username string, item models.TodoItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++
	m.lastUpsertBy = username
	m.lastItem = item
	return m.upsertErr
}

type mockActivity struct {
	resp         []models.ActivityEvent
	err          error
	lastUsername string
	lastFrom     time.Time
	lastTo       time.Time
	lastType     string
}

func (m *mockActivity) List(ctx context.Context, username string, f service.LogFilter) ([]models.ActivityEvent, error) {
	m.lastUsername = username
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}

func claimHeader(username, password string) http.Header {
	h := http.Header{}
	h.Set(authClaimHeader, `{"username":"`+username+`","password":"`+password+`"}`)
	return h
}

func applyHeaders(req *http.Request, hdr http.Header) {
	for k, vv := range hdr {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
}
