package service

import (
	"context"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id string) (*domain.User, error)
}

type MovieRepository interface {
	Create(ctx context.Context, args repoargs.CreateMovie) (*domain.Movie, error)
	FindByID(ctx context.Context, id string) (*domain.Movie, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.Movie, error)
	GetAll(ctx context.Context) ([]domain.Movie, error)
	GetByCreatorID(ctx context.Context, creatorID string) ([]domain.Movie, error)
	Update(ctx context.Context, args repoargs.UpdateMovie) (*domain.Movie, error)
	ApplyInvestment(ctx context.Context, args repoargs.ApplyInvestment) (*domain.Movie, error)
}

type InvestmentRepository interface {
	Create(ctx context.Context, args repoargs.CreateInvestment) (*domain.Investment, error)
	GetAll(ctx context.Context) ([]domain.Investment, error)
	GetByCreatorID(ctx context.Context, creatorID string) ([]domain.Investment, error)
	GetByInvestorID(ctx context.Context, investorID string) ([]domain.Investment, error)
}
