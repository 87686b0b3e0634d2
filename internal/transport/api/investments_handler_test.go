package api

import (
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

type InvestmentsHandlerTestSuite struct {
	suite.Suite
	router                *gin.Engine
	mockInvestmentService *mocks.MockInvestmentServicer
	mockQueryService      *mocks.MockQueryServicer
	jwtSecret             []byte
}

func TestInvestmentsHandlerSuite(t *testing.T) {
	suite.Run(t, new(InvestmentsHandlerTestSuite))
}

func (s *InvestmentsHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockInvestmentService = mocks.NewMockInvestmentServicer(mockCtrl)
	s.mockQueryService = mocks.NewMockQueryServicer(mockCtrl)
	s.jwtSecret = []byte("super secret key")

	s.router = New(RouterArgs{
		Logger:            logger.New(io.Discard),
		InvestmentService: s.mockInvestmentService,
		QueryService:      s.mockQueryService,
		JWTSecretKey:      s.jwtSecret,
	})
}

func (s *InvestmentsHandlerTestSuite) token(id string, role domain.RoleType) string {
	token, err := tokens.GenerateUserJWT(tokens.UserClaimsArgs{
		ID:       id,
		Username: id + "-name",
		Role:     string(role),
	}, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	return token
}

func purchaseResult(args service.PurchaseArgs) *service.PurchaseResult {
	price := decimal.NewFromInt(100)
	return &service.PurchaseResult{
		Investment: &domain.Investment{
			ID:           "inv-1",
			CreatedAt:    time.Now(),
			MovieID:      args.MovieID,
			MovieTitle:   "Epic Adventure",
			InvestorID:   args.InvestorID,
			InvestorName: args.InvestorName,
			StockCount:   args.StockCount,
			StockPrice:   price,
			TotalAmount:  price.Mul(decimal.NewFromInt(args.StockCount)),
		},
		Movie: &domain.Movie{
			ID:              args.MovieID,
			CreatorID:       "creator-1",
			Title:           "Epic Adventure",
			TotalAmount:     decimal.NewFromInt(1_000_000),
			InvestedAmount:  decimal.NewFromInt(1_000_000),
			StockPrice:      price,
			AvailableStocks: 500,
		},
	}
}

func (s *InvestmentsHandlerTestSuite) TestCreate() {
	s.mockInvestmentService.EXPECT().
		Purchase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.PurchaseArgs) (*service.PurchaseResult, error) {
			switch args.MovieID {
			case "missing":
				return nil, domain.ErrRecordNotFound
			case "full":
				return nil, domain.NewQuantityLimitError(args.MovieID, args.StockCount, 0)
			case "repriced":
				return nil, domain.ErrPriceChanged
			}
			return purchaseResult(args), nil
		}).AnyTimes()

	cases := []struct {
		name       string
		body       map[string]any
		token      string
		wantStatus int
		wantError  string
		wantIDs    [2]string
	}{
		{
			name: "ok anonymous",
			body: map[string]any{
				"movieId": "movie-1", "investorId": "investor-1", "investorName": "investor1",
				"stockCount": 2500, "stockPrice": 100, "totalAmount": 250000,
			},
			wantStatus: http.StatusOK,
			wantIDs:    [2]string{"investor-1", "investor1"},
		},
		{
			name:       "investor from token",
			body:       map[string]any{"movieId": "movie-1", "investorId": "someone-else", "stockCount": 1},
			token:      s.token("investor-7", domain.RoleInvestor),
			wantStatus: http.StatusOK,
			wantIDs:    [2]string{"investor-7", "investor-7-name"},
		},
		{
			name:       "creator token",
			body:       map[string]any{"movieId": "movie-1", "stockCount": 1},
			token:      s.token("creator-1", domain.RoleCreator),
			wantStatus: http.StatusForbidden,
			wantError:  "Only investors can invest",
		},
		{
			name:       "no investor",
			body:       map[string]any{"movieId": "movie-1", "stockCount": 1},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "inconsistent total",
			body: map[string]any{
				"movieId": "movie-1", "investorId": "investor-1",
				"stockCount": 2, "stockPrice": 100, "totalAmount": 150,
			},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "movie not found",
			body:       map[string]any{"movieId": "missing", "investorId": "investor-1", "stockCount": 1},
			wantStatus: http.StatusNotFound,
			wantError:  "Movie not found",
		},
		{
			name:       "over limit",
			body:       map[string]any{"movieId": "full", "investorId": "investor-1", "stockCount": 1},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "requested 1 stocks of movie full, allowed from 1 to 0",
		},
		{
			name:       "price changed",
			body:       map[string]any{"movieId": "repriced", "investorId": "investor-1", "stockCount": 1},
			wantStatus: http.StatusConflict,
			wantError:  "Stock price changed",
		},
		{
			name:       "no movie",
			body:       map[string]any{"investorId": "investor-1", "stockCount": 1},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			reqBody, bodyErr := testutils.JSONBody(t.body)
			s.Require().NoError(bodyErr)

			var opts []func(*testutils.RequestOptions)
			if t.token != "" {
				opts = append(opts, testutils.WithBearer(t.token))
			}
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + InvestmentsRoute,
				Body:   reqBody,
			}, opts...)
			s.Require().NoError(err)
			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus != http.StatusOK {
				var body map[string]string
				s.Require().NoError(testutils.DecodeJSON(res, &body))
				s.NotEmpty(body["error"])
				if t.wantError != "" {
					s.Equal(t.wantError, body["error"])
				}
				return
			}

			var body InvestmentResponse
			s.Require().NoError(testutils.DecodeJSON(res, &body))
			s.Equal(t.wantIDs[0], body.InvestorID)
			s.Equal(t.wantIDs[1], body.InvestorName)
			s.InDelta(float64(body.StockCount)*100, body.TotalAmount, 0.001)
			s.Require().NotNil(body.Movie)
			s.Equal(int64(500), body.Movie.AvailableStocks)
		})
	}
}

func (s *InvestmentsHandlerTestSuite) TestCreatePassesExpectedPrice() {
	s.mockInvestmentService.EXPECT().
		Purchase(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.PurchaseArgs) (*service.PurchaseResult, error) {
			s.True(args.ExpectedPrice.Valid)
			s.True(args.ExpectedPrice.Decimal.Equal(decimal.RequireFromString("99.5")))
			s.Equal(int64(4), args.StockCount)
			return purchaseResult(args), nil
		})

	reqBody, err := testutils.JSONBody(map[string]any{
		"movieId": "movie-1", "investorId": "investor-1", "stockCount": 4, "stockPrice": "99.5", "totalAmount": 398,
	})
	s.Require().NoError(err)
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    RouteGroup + InvestmentsRoute,
		Body:   reqBody,
	})
	s.Require().NoError(err)
	s.Require().NoError(res.Body.Close())
	s.Equal(http.StatusOK, res.StatusCode)
}

func (s *InvestmentsHandlerTestSuite) TestIndex() {
	investments := []domain.Investment{{
		ID:          "inv-1",
		MovieID:     "movie-1",
		InvestorID:  "investor-1",
		StockCount:  2,
		StockPrice:  decimal.NewFromInt(100),
		TotalAmount: decimal.NewFromInt(200),
	}}
	s.mockQueryService.EXPECT().InvestmentsForCreator(gomock.Any(), "").Return(investments, nil)
	s.mockQueryService.EXPECT().InvestmentsForCreator(gomock.Any(), "creator-1").Return(investments, nil)
	s.mockQueryService.EXPECT().InvestmentsForInvestor(gomock.Any(), "investor-1").Return(investments, nil)

	for _, query := range []string{"", "?creatorId=creator-1", "?investorId=investor-1"} {
		s.Run("query "+query, func() {
			res, err := testutils.MakeRequest(testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodGet,
				URL:    RouteGroup + InvestmentsRoute + query,
			})
			s.Require().NoError(err)
			s.Equal(http.StatusOK, res.StatusCode)

			var body []InvestmentResponse
			s.Require().NoError(testutils.DecodeJSON(res, &body))
			s.Require().Len(body, 1)
			s.InDelta(200, body[0].TotalAmount, 0.001)
			s.Nil(body[0].Movie)
		})
	}
}

func (s *InvestmentsHandlerTestSuite) TestDashboard() {
	investments := []domain.Investment{
		{ID: "a", MovieID: "m1", InvestorID: "i1", StockCount: 1, TotalAmount: decimal.NewFromInt(10)},
		{ID: "b", MovieID: "m1", InvestorID: "i2", StockCount: 2, TotalAmount: decimal.NewFromInt(20)},
	}
	s.mockQueryService.EXPECT().CreatorDashboard(gomock.Any(), "creator-1").Return(&service.Dashboard{
		CreatorID: "creator-1",
		Movies:    []domain.Movie{{ID: "m1", CreatorID: "creator-1", Title: "M"}},
		Totals:    service.AggregateTotals(investments),
		Groups:    service.GroupByMovie(investments),
	}, nil)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    RouteGroup + "/creators/creator-1/dashboard",
	})
	s.Require().NoError(err)
	s.Equal(http.StatusOK, res.StatusCode)

	var body DashboardResponse
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal(2, body.Totals.Investors)
	s.Equal(int64(3), body.Totals.Stocks)
	s.InDelta(30, body.Totals.Amount, 0.001)
	s.Require().Len(body.Groups, 1)
	s.Len(body.Groups[0].Investments, 2)
	s.Len(body.Movies, 1)
}
