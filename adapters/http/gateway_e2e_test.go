package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	directoryUC "github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/directory"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/application/usecase/notifications"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/contract"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/profile"
	"github.com/redoficios2025-Inicial/redoficios-gateway/internal/domain/session"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/apperror"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/auth"
	"github.com/redoficios2025-Inicial/redoficios-gateway/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*session.Session
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{sessions: map[uuid.UUID]*session.Session{}}
}

func (m *memorySessionStore) Save(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memorySessionStore) Get(_ context.Context, id uuid.UUID) (*session.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperror.NewUnauthorized("session expired or unknown", nil)
	}
	return s, nil
}

func (m *memorySessionStore) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

type stubContractService struct {
	all      []contract.Contract
	fetchErr error
}

func (s *stubContractService) FetchAll(_ context.Context, _ string) ([]contract.Contract, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.all, nil
}

func (s *stubContractService) Create(_ context.Context, _, _ string, hirer, worker contract.Party) (*contract.Contract, error) {
	return &contract.Contract{ID: "new", State: contract.StatePending, Hirer: hirer, Worker: worker}, nil
}

func (s *stubContractService) UpdateState(_ context.Context, _, contractID string, state contract.State) (*contract.Contract, error) {
	return &contract.Contract{ID: contractID, State: state}, nil
}

func (s *stubContractService) Delete(_ context.Context, _, _ string) error {
	return nil
}

type stubDirectory struct {
	workers []profile.Profile
}

func (s *stubDirectory) FetchByID(_ context.Context, _, _ string) (*profile.Profile, error) {
	return nil, apperror.NewNotFound("profile", "unknown")
}

func (s *stubDirectory) FetchAll(_ context.Context, _ string) ([]profile.Profile, error) {
	return s.workers, nil
}

func (s *stubDirectory) Update(_ context.Context, _, _ string, _ profile.Update) (*profile.Profile, error) {
	return nil, apperror.NewNotFound("profile", "unknown")
}

type GatewayE2ETestSuite struct {
	suite.Suite
	Router    *gin.Engine
	jwtSvc    *auth.JWTService
	sessions  *memorySessionStore
	contracts *stubContractService
	worker    *session.Session
}

func (s *GatewayE2ETestSuite) SetupTest() {
	appLogger := logger.NewZapLogger("development")

	s.jwtSvc = auth.NewJWTService("e2e-secret", time.Hour)
	s.sessions = newMemorySessionStore()

	s.worker = &session.Session{
		ID:            uuid.New(),
		UserID:        "w1",
		ProfileID:     "pw1",
		Role:          profile.RoleWorker,
		Name:          "Mariela",
		UpstreamToken: "tok",
	}
	s.Require().NoError(s.sessions.Save(context.Background(), s.worker))

	s.contracts = &stubContractService{all: []contract.Contract{
		{
			ID:     "n1",
			State:  contract.StatePending,
			Hirer:  contract.Party{UserID: "h1", Name: "Carlos", Role: "empleador"},
			Worker: contract.Party{UserID: "w1", Name: "Mariela", Role: "empleado", Phone: "3415550101"},
		},
	}}
	dir := &stubDirectory{workers: []profile.Profile{
		{UserID: "w1", ProfileID: "pw1", Role: profile.RoleWorker, Name: "Mariela", Profession: "Plomera", Rating: 4.8},
		{UserID: "w2", ProfileID: "pw2", Role: profile.RoleWorker, Name: "Ramón", Profession: "Electricista", Rating: 3.2},
	}}

	registry := notifications.NewRegistry()
	syncUC := notifications.NewSyncUseCase(s.contracts, registry, appLogger)
	markReadUC := notifications.NewMarkReadUseCase(registry)
	listWorkersUC := directoryUC.NewListWorkersUseCase(dir, 3, appLogger)

	notificationHandler := &NotificationHandler{
		syncUseCase:     syncUC,
		markReadUseCase: markReadUC,
	}
	directoryHandler := NewDirectoryHandler(listWorkersUC)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler(appLogger))

	api := router.Group("/api")
	private := api.Group("/")
	private.Use(AuthMiddleware(s.jwtSvc, s.sessions))
	{
		private.GET("/notifications", notificationHandler.List)
		private.POST("/notifications/read", notificationHandler.MarkRead)
		private.GET("/workers", directoryHandler.ListWorkers)
	}

	s.Router = router
}

func (s *GatewayE2ETestSuite) token() string {
	token, err := s.jwtSvc.GenerateToken(s.worker.ID, s.worker.UserID, string(s.worker.Role))
	s.Require().NoError(err)
	return token
}

func (s *GatewayE2ETestSuite) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *GatewayE2ETestSuite) TestMissingTokenIsRejected() {
	w := s.do(http.MethodGet, "/api/notifications", "", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *GatewayE2ETestSuite) TestGarbageTokenIsRejected() {
	w := s.do(http.MethodGet, "/api/notifications", "not-a-token", nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *GatewayE2ETestSuite) TestExpiredSessionIsRejected() {
	token := s.token()
	s.Require().NoError(s.sessions.Delete(context.Background(), s.worker.ID))

	w := s.do(http.MethodGet, "/api/notifications", token, nil)
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
}

func (s *GatewayE2ETestSuite) TestListAndMarkRead() {
	token := s.token()

	w := s.do(http.MethodGet, "/api/notifications", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list NotificationListDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	s.Require().Len(list.Notifications, 1)
	assert.Equal(s.T(), "n1", list.Notifications[0].ID)
	assert.Equal(s.T(), "Carlos", list.Notifications[0].Counterpart.Name)
	assert.True(s.T(), list.Notifications[0].CanResolve)
	assert.Equal(s.T(), 1, list.Unseen)

	w = s.do(http.MethodPost, "/api/notifications/read", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(s.T(), 0, list.Unseen)
}

func (s *GatewayE2ETestSuite) TestSyncFailureAnswersEmptyListWithNotice() {
	s.contracts.fetchErr = errors.New("backend down")

	w := s.do(http.MethodGet, "/api/notifications", s.token(), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var list NotificationListDTO
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &list))
	assert.Empty(s.T(), list.Notifications)
	assert.Equal(s.T(), 0, list.Unseen)
	assert.NotEmpty(s.T(), list.Error)
}

func (s *GatewayE2ETestSuite) TestWorkerDirectory() {
	w := s.do(http.MethodGet, "/api/workers?q=plome", s.token(), nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var page struct {
		Items      []profile.Profile `json:"items"`
		TotalItems int               `json:"total_items"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(s.T(), 1, page.TotalItems)
	s.Require().Len(page.Items, 1)
	assert.Equal(s.T(), "Mariela", page.Items[0].Name)
}

func TestGatewayE2ETestSuite(t *testing.T) {
	suite.Run(t, new(GatewayE2ETestSuite))
}
