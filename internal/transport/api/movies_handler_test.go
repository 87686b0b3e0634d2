package api

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/logger"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/mocks"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/testutils"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/tokens"
)

type MoviesHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockMovieService *mocks.MockMovieServicer
	jwtSecret        []byte
	movie            domain.Movie
}

func TestMoviesHandlerSuite(t *testing.T) {
	suite.Run(t, new(MoviesHandlerTestSuite))
}

func (s *MoviesHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockMovieService = mocks.NewMockMovieServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:       logger.New(io.Discard),
		MovieService: s.mockMovieService,
		JWTSecretKey: s.jwtSecret,
	})

	s.movie = domain.Movie{
		ID:              "movie-1",
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
		CreatorID:       "creator-1",
		Title:           "Epic Adventure",
		Director:        "John Director",
		TotalAmount:     decimal.NewFromInt(1_000_000),
		InvestedAmount:  decimal.NewFromInt(750_000),
		StockPrice:      decimal.NewFromInt(100),
		AvailableStocks: 3000,
	}
}

func (s *MoviesHandlerTestSuite) token(id string, role domain.RoleType) string {
	token, err := tokens.GenerateUserJWT(tokens.UserClaimsArgs{
		ID:       id,
		Username: id,
		Role:     string(role),
	}, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func (s *MoviesHandlerTestSuite) TestIndex() {
	s.mockMovieService.EXPECT().List(gomock.Any()).Return([]domain.Movie{s.movie}, nil)
	s.mockMovieService.EXPECT().ListByCreator(gomock.Any(), "creator-2").Return([]domain.Movie{}, nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + MoviesRoute,
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.StatusCode)

	var movies []MovieResponse
	s.Require().NoError(testutils.DecodeJSON(res, &movies))
	s.Require().Len(movies, 1)
	s.InDelta(250_000, movies[0].RequiredAmount, 0.001)
	s.InDelta(75, movies[0].FundedPercent, 0.001)
	s.Equal(int64(2500), movies[0].MaxPurchasable)

	res, err = testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + MoviesRoute + "?creatorId=creator-2",
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.StatusCode)
	s.Require().NoError(testutils.DecodeJSON(res, &movies))
	s.Empty(movies)
}

func (s *MoviesHandlerTestSuite) TestShow() {
	s.mockMovieService.EXPECT().Get(gomock.Any(), "movie-1").Return(&s.movie, nil)
	s.mockMovieService.EXPECT().Get(gomock.Any(), "missing").Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name       string
		id         string
		wantStatus int
		wantError  string
	}{
		{name: "ok", id: "movie-1", wantStatus: http.StatusOK},
		{name: "not found", id: "missing", wantStatus: http.StatusNotFound, wantError: "Movie not found"},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + MoviesRoute + "/" + t.id,
			})
			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)

			var body map[string]any
			s.Require().NoError(testutils.DecodeJSON(res, &body))
			if t.wantError != "" {
				s.Equal(t.wantError, body["error"])
			} else {
				s.Equal("Epic Adventure", body["title"])
				s.InDelta(100, body["stockPrice"], 0.001)
			}
		})
	}
}

func (s *MoviesHandlerTestSuite) TestCreate() {
	s.mockMovieService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.CreateMovieArgs) (*domain.Movie, error) {
			s.Equal("creator-1", args.CreatorID)
			s.Equal("Epic Adventure", args.Title)
			s.True(args.TotalAmount.Equal(decimal.NewFromInt(1_000_000)))
			s.True(args.StockPrice.Equal(decimal.NewFromInt(100)))
			s.True(args.InvestedAmount.IsZero())
			s.Nil(args.AvailableStocks)
			return &s.movie, nil
		}).Times(3)

	validBody := `{"creatorId":"creator-1","title":"Epic Adventure","totalAmount":1000000,"stockPrice":100}`

	cases := []struct {
		name       string
		body       string
		token      string
		wantStatus int
	}{
		{name: "ok", body: validBody, wantStatus: http.StatusOK},
		{
			name:       "creator from token",
			body:       `{"title":"Epic Adventure","totalAmount":"1000000","stockPrice":"100"}`,
			token:      s.token("creator-1", domain.RoleCreator),
			wantStatus: http.StatusOK,
		},
		{
			name:       "investor token",
			body:       validBody,
			token:      s.token("investor-1", domain.RoleInvestor),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "zero price",
			body:       `{"creatorId":"creator-1","title":"t","totalAmount":1000,"stockPrice":0}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "invested amount from body ignored",
			body: `{"creatorId":"creator-1","title":"Epic Adventure","totalAmount":1000000,` +
				`"investedAmount":999999,"stockPrice":100}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "no title",
			body:       `{"creatorId":"creator-1","totalAmount":1000,"stockPrice":1}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "invalid token",
			body:       validBody,
			token:      "broken",
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.token != "" {
				opts = append(opts, testutils.WithBearer(t.token))
			}
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + MoviesRoute,
				Body:   bytes.NewReader([]byte(t.body)),
			}, opts...)
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *MoviesHandlerTestSuite) TestCreateInvalidMovie() {
	s.mockMovieService.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewInvalidMovieError("stockPrice must be greater than 0"))

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + MoviesRoute,
		Body: bytes.NewReader([]byte(
			`{"creatorId":"c","title":"t","totalAmount":10,"stockPrice":0.004}`,
		)),
	})
	s.Require().NoError(err)
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)

	var body map[string]string
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal("stockPrice must be greater than 0", body["error"])
}

func (s *MoviesHandlerTestSuite) TestUpdate() {
	updated := s.movie
	updated.Title = "Epic Adventure II"

	s.mockMovieService.EXPECT().Get(gomock.Any(), "movie-1").Return(&s.movie, nil).AnyTimes()
	s.mockMovieService.EXPECT().
		Update(gomock.Any(), "movie-1", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, args service.UpdateMovieArgs) (*domain.Movie, error) {
			s.Require().NotNil(args.Title)
			s.Equal("Epic Adventure II", *args.Title)
			s.Nil(args.TotalAmount)
			s.Nil(args.StockPrice)
			s.Nil(args.AvailableStocks)
			return &updated, nil
		}).Times(2)
	s.mockMovieService.EXPECT().
		Update(gomock.Any(), "missing", gomock.Any()).
		Return(nil, domain.ErrRecordNotFound)

	body := `{"title":"Epic Adventure II"}`
	cases := []struct {
		name       string
		id         string
		token      string
		wantStatus int
	}{
		{name: "ok", id: "movie-1", wantStatus: http.StatusOK},
		{name: "owner", id: "movie-1", token: s.token("creator-1", domain.RoleCreator), wantStatus: http.StatusOK},
		{
			name:       "not owner",
			id:         "movie-1",
			token:      s.token("creator-2", domain.RoleCreator),
			wantStatus: http.StatusForbidden,
		},
		{name: "not found", id: "missing", wantStatus: http.StatusNotFound},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.token != "" {
				opts = append(opts, testutils.WithBearer(t.token))
			}
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPut,
				URL:    RouteGroup + MoviesRoute + "/" + t.id,
				Body:   bytes.NewReader([]byte(body)),
			}, opts...)
			s.Require().NoError(err)
			defer func() {
				s.Require().NoError(res.Body.Close())
			}()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}
