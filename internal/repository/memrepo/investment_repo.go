package memrepo

import (
	"context"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
)

type InvestmentRepository struct {
	st state
}

func (r *InvestmentRepository) Create(_ context.Context, args repoargs.CreateInvestment) (*domain.Investment, error) {
	investment := domain.Investment{
		ID:           r.st.nextID(),
		CreatedAt:    r.st.now(),
		MovieID:      args.MovieID,
		MovieTitle:   args.MovieTitle,
		InvestorID:   args.InvestorID,
		InvestorName: args.InvestorName,
		StockCount:   args.StockCount,
		StockPrice:   args.StockPrice,
		TotalAmount:  args.TotalAmount,
	}
	r.st.insertInvestment(investment)
	return &investment, nil
}

func (r *InvestmentRepository) GetAll(_ context.Context) ([]domain.Investment, error) {
	return r.st.allInvestments(), nil
}

func (r *InvestmentRepository) GetByInvestorID(_ context.Context, investorID string) ([]domain.Investment, error) {
	return r.filter(func(inv domain.Investment) bool { return inv.InvestorID == investorID }), nil
}

// GetByCreatorID возвращает инвестиции во все проекты создателя creatorID.
func (r *InvestmentRepository) GetByCreatorID(_ context.Context, creatorID string) ([]domain.Investment, error) {
	movieIDs := make(map[string]struct{})
	for _, m := range r.st.allMovies() {
		if m.CreatorID == creatorID {
			movieIDs[m.ID] = struct{}{}
		}
	}
	return r.filter(func(inv domain.Investment) bool {
		_, ok := movieIDs[inv.MovieID]
		return ok
	}), nil
}

func (r *InvestmentRepository) filter(match func(domain.Investment) bool) []domain.Investment {
	var res = make([]domain.Investment, 0)
	for _, inv := range r.st.allInvestments() {
		if match(inv) {
			res = append(res, inv)
		}
	}
	return res
}
