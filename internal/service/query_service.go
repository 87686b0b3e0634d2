package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
)

// QueryService только читает: сводки по инвестициям для создателей и инвесторов.
type QueryService struct {
	movies      *MovieService
	investments *InvestmentService
}

func NewQueryService(movies *MovieService, investments *InvestmentService) *QueryService {
	return &QueryService{movies: movies, investments: investments}
}

type Totals struct {
	Investors int
	Amount    decimal.Decimal
	Stocks    int64
}

type MovieInvestments struct {
	MovieID     string
	MovieTitle  string
	Investments []domain.Investment
	Totals      Totals
}

type Dashboard struct {
	CreatorID string
	Movies    []domain.Movie
	Totals    Totals
	Groups    []MovieInvestments
}

// InvestmentsForCreator инвестиции во все проекты создателя. Пустой creatorID - все инвестиции.
func (s *QueryService) InvestmentsForCreator(ctx context.Context, creatorID string) ([]domain.Investment, error) {
	if creatorID == "" {
		return s.investments.List(ctx)
	}
	return s.investments.ListByCreator(ctx, creatorID)
}

// InvestmentsForInvestor портфель инвестора.
func (s *QueryService) InvestmentsForInvestor(ctx context.Context, investorID string) ([]domain.Investment, error) {
	return s.investments.ListByInvestor(ctx, investorID)
}

// CreatorDashboard сводка по проектам создателя: итоги и инвестиции, сгруппированные по проектам.
func (s *QueryService) CreatorDashboard(ctx context.Context, creatorID string) (*Dashboard, error) {
	movies, err := s.movies.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator dashboard: %w", err)
	}
	investments, err := s.InvestmentsForCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("creator dashboard: %w", err)
	}
	return &Dashboard{
		CreatorID: creatorID,
		Movies:    movies,
		Totals:    AggregateTotals(investments),
		Groups:    GroupByMovie(investments),
	}, nil
}

// AggregateTotals считает кол-во уникальных инвесторов, сумму вложений и кол-во акций.
func AggregateTotals(investments []domain.Investment) Totals {
	investors := make(map[string]struct{}, len(investments))
	totals := Totals{Amount: decimal.Zero}
	for _, inv := range investments {
		investors[inv.InvestorID] = struct{}{}
		totals.Amount = totals.Amount.Add(inv.TotalAmount)
		totals.Stocks += inv.StockCount
	}
	totals.Investors = len(investors)
	return totals
}

// GroupByMovie группирует инвестиции по проекту. Группы идут в порядке первого появления проекта,
// внутри группы порядок исходный.
func GroupByMovie(investments []domain.Investment) []MovieInvestments {
	var groups = make([]MovieInvestments, 0)
	idx := make(map[string]int)
	for _, inv := range investments {
		i, ok := idx[inv.MovieID]
		if !ok {
			i = len(groups)
			idx[inv.MovieID] = i
			groups = append(groups, MovieInvestments{MovieID: inv.MovieID, MovieTitle: inv.MovieTitle})
		}
		groups[i].Investments = append(groups[i].Investments, inv)
	}
	for i := range groups {
		groups[i].Totals = AggregateTotals(groups[i].Investments)
	}
	return groups
}
