package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service/keylock"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

type InvestmentService struct {
	uow            uow.UOW
	investmentRepo InvestmentRepository
	locks          *keylock.KeyLock
}

func NewInvestmentService(u uow.UOW, locks *keylock.KeyLock) (*InvestmentService, error) {
	investmentRepo, err := uow.GetRepositoryAs[InvestmentRepository](
		u,
		uow.RepositoryName(repoargs.InvestmentRepoName),
	)
	if err != nil {
		return nil, err
	}
	return &InvestmentService{
		uow:            u,
		investmentRepo: investmentRepo,
		locks:          locks,
	}, nil
}

type PurchaseArgs struct {
	InvestorID   string
	InvestorName string
	MovieID      string
	StockCount   int64
	// ExpectedPrice цена акции, которую видел инвестор. Если задана и не совпадает с текущей,
	// покупка отклоняется с domain.ErrPriceChanged.
	ExpectedPrice decimal.NullDecimal
}

type PurchaseResult struct {
	Investment *domain.Investment
	Movie      *domain.Movie
}

// Purchase покупает StockCount акций проекта. Проверка лимита, изменение леджера и запись инвестиции
// выполняются в одной транзакции под блокировкой проекта: либо применяется все, либо ничего.
//
// Ошибки: domain.ErrRecordNotFound, domain.ErrQuantityExceedsLimit (*domain.QuantityLimitError),
// domain.ErrPriceChanged.
func (s *InvestmentService) Purchase(ctx context.Context, args PurchaseArgs) (*PurchaseResult, error) {
	unlock := s.locks.Lock(args.MovieID)
	defer unlock()

	var result PurchaseResult
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		movieRepo, movieRepoErr := uow.GetAs[MovieRepository](tx, uow.RepositoryName(repoargs.MovieRepoName))
		if movieRepoErr != nil {
			return movieRepoErr //nolint:wrapcheck
		}
		investmentRepo, invRepoErr := uow.GetAs[InvestmentRepository](
			tx,
			uow.RepositoryName(repoargs.InvestmentRepoName),
		)
		if invRepoErr != nil {
			return invRepoErr //nolint:wrapcheck
		}

		movie, findErr := movieRepo.FindByIDForUpdate(c, args.MovieID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		maxAllowed := movie.MaxPurchasableStocks()
		if args.StockCount < 1 || args.StockCount > maxAllowed {
			return domain.NewQuantityLimitError(movie.ID, args.StockCount, maxAllowed)
		}
		if args.ExpectedPrice.Valid && !args.ExpectedPrice.Decimal.Equal(movie.StockPrice) {
			return fmt.Errorf(
				"movie %s: expected %s, current %s: %w",
				movie.ID,
				args.ExpectedPrice.Decimal,
				movie.StockPrice,
				domain.ErrPriceChanged,
			)
		}

		price := movie.StockPrice
		updated, applyErr := applyInvestment(c, movieRepo, movie, args.StockCount, price)
		if applyErr != nil {
			return applyErr
		}

		investment, createErr := investmentRepo.Create(c, repoargs.CreateInvestment{
			MovieID:      movie.ID,
			MovieTitle:   movie.Title,
			InvestorID:   args.InvestorID,
			InvestorName: args.InvestorName,
			StockCount:   args.StockCount,
			StockPrice:   price,
			TotalAmount:  price.Mul(decimal.NewFromInt(args.StockCount)),
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		result.Investment = investment
		result.Movie = updated
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("purchasing stocks: %w", txErr)
	}
	return &result, nil
}

// List возвращает все инвестиции в порядке создания.
func (s *InvestmentService) List(ctx context.Context) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing investments: %w", err)
	}
	return investments, nil
}

func (s *InvestmentService) ListByInvestor(ctx context.Context, investorID string) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.GetByInvestorID(ctx, investorID)
	if err != nil {
		return nil, fmt.Errorf("listing investments of investor %s: %w", investorID, err)
	}
	return investments, nil
}

func (s *InvestmentService) ListByCreator(ctx context.Context, creatorID string) ([]domain.Investment, error) {
	investments, err := s.investmentRepo.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing investments of creator %s: %w", creatorID, err)
	}
	return investments, nil
}
