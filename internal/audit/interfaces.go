package audit

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
)

type MovieServicer interface {
	List(ctx context.Context) ([]domain.Movie, error)
}

type InvestmentServicer interface {
	List(ctx context.Context) ([]domain.Investment, error)
}
