// Package testutils provides an end-to-end suite that serves the real fiber
// app over an in-memory sqlite database.
package testutils

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/amirasaad/ledger/infra"
	infra_eventbus "github.com/amirasaad/ledger/infra/eventbus"
	"github.com/amirasaad/ledger/pkg/app"
	"github.com/amirasaad/ledger/pkg/config"
	"github.com/amirasaad/ledger/pkg/dto"
	"github.com/amirasaad/ledger/webapi"
	"github.com/amirasaad/ledger/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "password123"

// E2ETestSuite provides a test suite backed by a fresh sqlite database per
// test.
type E2ETestSuite struct {
	suite.Suite
	App    *app.App
	Fiber  *fiber.App
	Config *config.App
	Bus    *infra_eventbus.MemoryEventBus
}

// TestConfig returns a configuration for an isolated in-memory database.
func TestConfig() *config.App {
	return &config.App{
		Env: "test",
		Log: &config.Log{Level: "error", Format: "text"},
		DB: &config.DB{
			Driver: "sqlite",
			// one named database per test
			Url:          fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
			MaxOpenConns: 1,
			MaxIdleConns: 1,
			AutoMigrate:  true,
		},
		Auth: &config.Auth{Jwt: &config.Jwt{
			Secret: "e2e-secret",
			Expiry: time.Hour,
		}},
		Lock:      &config.Lock{Backend: "memory", TTL: 5 * time.Second, Wait: 5 * time.Second},
		Redis:     &config.Redis{},
		RateLimit: &config.RateLimit{MaxRequests: 10000, Window: time.Minute},
	}
}

func (s *E2ETestSuite) SetupTest() {
	if s.Config == nil {
		s.Config = TestConfig()
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	uow, closeDB, err := infra.NewUnitOfWork(s.Config, logger)
	s.Require().NoError(err)
	locker, closeLocker, err := infra.NewLocker(s.Config, logger)
	s.Require().NoError(err)
	s.Bus = infra_eventbus.NewWithMemory(logger)

	s.App = app.New(&app.Deps{
		Uow:      uow,
		Locker:   locker,
		EventBus: s.Bus,
		Logger:   logger,
		Cleanup: func() error {
			_ = closeLocker()
			return closeDB()
		},
	}, s.Config)
	s.Fiber = webapi.SetupApp(s.App)
}

func (s *E2ETestSuite) TearDownTest() {
	if s.App != nil {
		s.NoError(s.App.Close())
	}
	s.Config = nil
}

// MakeRequest sends a request through the fiber app.
func (s *E2ETestSuite) MakeRequest(method, path, body, token string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.Fiber.Test(req, -1)
	s.Require().NoError(err)
	return resp
}

// DecodeResponse closes resp and decodes its success envelope, re-encoding
// Data into out when out is non-nil.
func (s *E2ETestSuite) DecodeResponse(resp *http.Response, out any) common.Response {
	defer resp.Body.Close() //nolint:errcheck
	var envelope struct {
		common.Response
		Data json.RawMessage `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	if out != nil {
		s.Require().NoError(json.Unmarshal(envelope.Data, out))
	}
	return envelope.Response
}

// DecodeProblem closes resp and decodes its problem details body.
func (s *E2ETestSuite) DecodeProblem(resp *http.Response) common.ProblemDetails {
	defer resp.Body.Close() //nolint:errcheck
	var pd common.ProblemDetails
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	return pd
}

// CreateTestUser registers a random user through the API.
func (s *E2ETestSuite) CreateTestUser() *dto.UserRead {
	suffix := uuid.NewString()[:8]
	body := fmt.Sprintf(
		`{"name":"user %s","email":"user_%s@example.com","password":"%s"}`,
		suffix, suffix, TestPassword,
	)
	resp := s.MakeRequest(fiber.MethodPost, "/api/v1/users", body, "")
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)
	var u dto.UserRead
	s.DecodeResponse(resp, &u)
	return &u
}

// LoginUser opens a session for u and returns its token.
func (s *E2ETestSuite) LoginUser(u *dto.UserRead) string {
	body := fmt.Sprintf(`{"email":"%s","password":"%s"}`, u.Email, TestPassword)
	resp := s.MakeRequest(fiber.MethodPost, "/api/v1/sessions", body, "")
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)
	var session struct {
		Token string `json:"token"`
	}
	s.DecodeResponse(resp, &session)
	s.Require().NotEmpty(session.Token)
	return session.Token
}
