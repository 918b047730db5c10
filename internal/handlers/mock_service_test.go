package handlers

import (
	"context"
	"net/http"

	"learning_platform/internal/config"
	"learning_platform/internal/models"
	"learning_platform/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	registerErr error
	loginPair   service.TokenPair
	loginErr    error
	refreshTok  string
	refreshErr  error
	parseUser   string
	parseErr    error

	lastRegisterUsername string
	lastRegisterPassword string
	lastLoginUsername    string
	lastRefreshToken     string
	lastParseToken       string
}

func (m *mockAuth) Register(_ context.Context, username, password string) error {
	m.lastRegisterUsername = username
	m.lastRegisterPassword = password
	return m.registerErr
}

func (m *mockAuth) Login(_ context.Context, username, _ string) (service.TokenPair, error) {
	m.lastLoginUsername = username
	return m.loginPair, m.loginErr
}

func (m *mockAuth) Refresh(_ context.Context, token string) (string, error) {
	m.lastRefreshToken = token
	return m.refreshTok, m.refreshErr
}

func (m *mockAuth) ParseToken(token string) (string, error) {
	m.lastParseToken = token
	return m.parseUser, m.parseErr
}

type mockAccounts struct {
	list      []models.Account
	listErr   error
	updateErr error
	deleteErr error

	lastUsername string
	lastPassword string
	lastActor    string
}

func (m *mockAccounts) List(context.Context) ([]models.Account, error) {
	return m.list, m.listErr
}

func (m *mockAccounts) UpdatePassword(ctx context.Context, username, password string) error {
	m.lastUsername, m.lastPassword = username, password
	m.lastActor = service.ActorFromContext(ctx)
	return m.updateErr
}

func (m *mockAccounts) Delete(_ context.Context, username string) error {
	m.lastUsername = username
	return m.deleteErr
}

type mockModules struct {
	module   models.Module
	modules  []models.Module
	err      error
	getFn    func(id string) (models.Module, error)
	lastID   string
	lastName string
}

func (m *mockModules) Create(_ context.Context, title string) (models.Module, error) {
	m.lastName = title
	return m.module, m.err
}

func (m *mockModules) Get(_ context.Context, id string) (models.Module, error) {
	m.lastID = id
	if m.getFn != nil {
		return m.getFn(id)
	}
	return m.module, m.err
}

func (m *mockModules) List(context.Context) ([]models.Module, error) {
	return m.modules, m.err
}

func (m *mockModules) UpdateTitle(_ context.Context, id, title string) (models.Module, error) {
	m.lastID, m.lastName = id, title
	return m.module, m.err
}

func (m *mockModules) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.err
}

type mockExercises struct {
	exercise  models.Exercise
	exercises []models.Exercise
	err       error

	lastModuleID   string
	lastExerciseID string
	lastInput      service.ExerciseInput
	lastBatch      []service.ExerciseInput
	lastPatch      service.ExercisePatch
}

func (m *mockExercises) Add(_ context.Context, moduleID string, in service.ExerciseInput) (models.Exercise, error) {
	m.lastModuleID, m.lastInput = moduleID, in
	return m.exercise, m.err
}

func (m *mockExercises) AddMany(_ context.Context, moduleID string, in []service.ExerciseInput) ([]models.Exercise, error) {
	m.lastModuleID, m.lastBatch = moduleID, in
	return m.exercises, m.err
}

func (m *mockExercises) List(_ context.Context, moduleID string) ([]models.Exercise, error) {
	m.lastModuleID = moduleID
	return m.exercises, m.err
}

func (m *mockExercises) Get(_ context.Context, moduleID, exerciseID string) (models.Exercise, error) {
	m.lastModuleID, m.lastExerciseID = moduleID, exerciseID
	return m.exercise, m.err
}

func (m *mockExercises) Update(_ context.Context, moduleID, exerciseID string, p service.ExercisePatch) (models.Exercise, error) {
	m.lastModuleID, m.lastExerciseID, m.lastPatch = moduleID, exerciseID, p
	return m.exercise, m.err
}

func (m *mockExercises) Remove(_ context.Context, moduleID, exerciseID string) error {
	m.lastModuleID, m.lastExerciseID = moduleID, exerciseID
	return m.err
}

type mockActivity struct {
	resp       []models.Activity
	err        error
	lastFilter service.ActivityFilter
	calls      int
}

func (m *mockActivity) Record(context.Context, models.Activity) {}

func (m *mockActivity) List(_ context.Context, f service.ActivityFilter) ([]models.Activity, error) {
	m.calls++
	m.lastFilter = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

// validAuth accepts any token as belonging to "tester".
func validAuth() *mockAuth {
	return &mockAuth{parseUser: "tester"}
}

func testCORS(origins ...string) config.CORSConfig {
	return config.CORSConfig{AllowedOrigins: origins}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, testCORS(), nil)
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
