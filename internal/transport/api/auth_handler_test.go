package api

import (
	"bytes"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/logger"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/mocks"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/testutils"
)

type AuthHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockUserService *mocks.MockUserServicer
}

func TestAuthHandlerSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}

func (s *AuthHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUserService = mocks.NewMockUserServicer(mockCtrl)

	s.router = New(RouterArgs{
		Logger:       logger.New(io.Discard),
		UserService:  s.mockUserService,
		JWTSecretKey: []byte("super secret key"),
	})
}

func (s *AuthHandlerTestSuite) TestSignup() {
	newUser := domain.User{
		ID:        gofakeit.UUID(),
		CreatedAt: time.Now(),
		Username:  "newcomer",
		Email:     "newcomer@example.com",
		Password:  "hash",
		Role:      domain.RoleInvestor,
	}

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{
			Username: newUser.Username,
			Email:    newUser.Email,
			Password: "password",
			Role:     domain.RoleInvestor,
		}).
		Return(&newUser, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{
			Username: "investor1",
			Email:    "investor@test.com",
			Password: "password",
			Role:     domain.RoleInvestor,
		}).
		Return(nil, "", domain.ErrDuplicateKey)

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
		wantToken  bool
	}{
		{
			name:       "ok",
			body:       `{"username":"newcomer","email":"newcomer@example.com","password":"password","role":"investor"}`,
			wantStatus: http.StatusOK,
			wantToken:  true,
		},
		{
			name:       "duplicate",
			body:       `{"username":"investor1","email":"investor@test.com","password":"password","role":"investor"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "User already exists",
		},
		{
			name:       "invalid role",
			body:       `{"username":"admin","email":"admin@example.com","password":"password","role":"admin"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "missing email",
			body:       `{"username":"noemail","password":"password","role":"investor"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "username over byte limit",
			body: `{"username":"` + testutils.MultiByteString(20) +
				`","email":"long@example.com","password":"password","role":"creator"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + SignupRoute,
				Body:   bytes.NewReader([]byte(t.body)),
			})
			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)

			var body map[string]any
			s.Require().NoError(testutils.DecodeJSON(res, &body))

			if t.wantError != "" {
				s.Equal(t.wantError, body["error"])
			}
			if t.wantToken {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
				s.Equal(true, body["success"])
				user, ok := body["user"].(map[string]any)
				s.Require().True(ok)
				s.Equal(newUser.ID, user["id"])
				s.Equal("investor", user["role"])
				s.NotContains(user, "password")
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestLogin() {
	investor := domain.User{
		ID:       gofakeit.UUID(),
		Username: "investor1",
		Email:    "investor@test.com",
		Password: "hash",
		Role:     domain.RoleInvestor,
	}

	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "investor1", Password: "password"}).
		Return(&investor, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "investor1", Password: "wrong"}).
		Return(nil, "", domain.ErrInvalidCredentials)

	cases := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{
			name:       "ok",
			body:       `{"username":"investor1","password":"password"}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"username":"investor1","password":"wrong"}`,
			wantStatus: http.StatusUnauthorized,
			wantError:  "Invalid credentials",
		},
		{
			name:       "missing password",
			body:       `{"username":"investor1"}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed json",
			body:       `{"username":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + LoginRoute,
				Body:   bytes.NewReader([]byte(t.body)),
			})
			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)

			var body map[string]any
			s.Require().NoError(testutils.DecodeJSON(res, &body))
			if t.wantError != "" {
				s.Equal(t.wantError, body["error"])
				return
			}
			if t.wantStatus == http.StatusOK {
				s.Equal("Bearer jwt-token", res.Header.Get("Authorization"))
				user, ok := body["user"].(map[string]any)
				s.Require().True(ok)
				s.Equal("investor", user["role"])
			}
		})
	}
}

func (s *AuthHandlerTestSuite) TestHealth() {
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + HealthRoute,
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.StatusCode)

	var body map[string]string
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal("ok", body["status"])
}
