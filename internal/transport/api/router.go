package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/middlewares"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup            = "/api"
	SignupRoute           = "/signup"
	LoginRoute            = "/login"
	MoviesRoute           = "/movies"
	MovieRoute            = "/movies/:id"
	InvestmentsRoute      = "/investments"
	CreatorDashboardRoute = "/creators/:id/dashboard"
	HealthRoute           = "/health"
)

type RouterArgs struct {
	Logger            *logrus.Logger
	UserService       UserServicer
	MovieService      MovieServicer
	InvestmentService InvestmentServicer
	QueryService      QueryServicer
	JWTSecretKey      []byte
}

func New(args RouterArgs) *gin.Engine {
	mustRegisterValidators()

	r := gin.New()
	r.Use(gin.Recovery())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	authHandler := NewAuthHandler(args.UserService)
	moviesHandler := NewMoviesHandler(args.MovieService)
	investmentsHandler := NewInvestmentsHandler(args.InvestmentService, args.QueryService)

	api := r.Group(RouteGroup)

	api.GET(HealthRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST(SignupRoute, authHandler.Signup)
	api.POST(LoginRoute, authHandler.Login)

	// токен необязателен, но если передан, он должен быть действительным.
	api.Use(middlewares.OptionalAuth(args.JWTSecretKey))

	api.GET(MoviesRoute, moviesHandler.Index)
	api.POST(MoviesRoute, moviesHandler.Create)
	api.GET(MovieRoute, moviesHandler.Show)
	api.PUT(MovieRoute, moviesHandler.Update)

	api.GET(InvestmentsRoute, investmentsHandler.Index)
	api.POST(InvestmentsRoute, investmentsHandler.Create)
	api.GET(CreatorDashboardRoute, investmentsHandler.Dashboard)
	return r
}
