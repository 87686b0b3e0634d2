package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
}

type MovieServicer interface {
	Get(ctx context.Context, movieID string) (*domain.Movie, error)
	List(ctx context.Context) ([]domain.Movie, error)
	ListByCreator(ctx context.Context, creatorID string) ([]domain.Movie, error)
	Create(ctx context.Context, args service.CreateMovieArgs) (*domain.Movie, error)
	Update(ctx context.Context, movieID string, args service.UpdateMovieArgs) (*domain.Movie, error)
}

type InvestmentServicer interface {
	Purchase(ctx context.Context, args service.PurchaseArgs) (*service.PurchaseResult, error)
}

type QueryServicer interface {
	InvestmentsForCreator(ctx context.Context, creatorID string) ([]domain.Investment, error)
	InvestmentsForInvestor(ctx context.Context, investorID string) ([]domain.Investment, error)
	CreatorDashboard(ctx context.Context, creatorID string) (*service.Dashboard, error)
}
