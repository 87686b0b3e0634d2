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

// MovieService леджер проектов: единственное место, где меняется состояние финансирования.
type MovieService struct {
	uow       uow.UOW
	movieRepo MovieRepository
	locks     *keylock.KeyLock
}

func NewMovieService(u uow.UOW, locks *keylock.KeyLock) (*MovieService, error) {
	movieRepo, err := uow.GetRepositoryAs[MovieRepository](u, uow.RepositoryName(repoargs.MovieRepoName))
	if err != nil {
		return nil, err
	}
	return &MovieService{
		uow:       u,
		movieRepo: movieRepo,
		locks:     locks,
	}, nil
}

// Get возвращает проект или domain.ErrRecordNotFound.
func (s *MovieService) Get(ctx context.Context, movieID string) (*domain.Movie, error) {
	movie, err := s.movieRepo.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("getting movie: %w", err)
	}
	return movie, nil
}

// List возвращает все проекты в порядке создания.
func (s *MovieService) List(ctx context.Context) ([]domain.Movie, error) {
	movies, err := s.movieRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing movies: %w", err)
	}
	return movies, nil
}

func (s *MovieService) ListByCreator(ctx context.Context, creatorID string) ([]domain.Movie, error) {
	movies, err := s.movieRepo.GetByCreatorID(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("listing movies of creator %s: %w", creatorID, err)
	}
	return movies, nil
}

type CreateMovieArgs struct {
	CreatorID      string
	Title          string
	Description    string
	Poster         string
	Director       string
	Producer       string
	Singer         string
	Hero           string
	Heroine        string
	TotalAmount    decimal.Decimal
	InvestedAmount decimal.Decimal
	StockPrice     decimal.Decimal
	// AvailableStocks nil - остаток акций вычисляется из разрыва финансирования.
	AvailableStocks *int64
}

// Create создает проект. Если кол-во акций не задано, оно вычисляется как
// floor((TotalAmount - InvestedAmount) / StockPrice). Нарушение инвариантов - domain.ErrInvalidMovie.
func (s *MovieService) Create(ctx context.Context, args CreateMovieArgs) (*domain.Movie, error) {
	movie := domain.Movie{
		CreatorID:      args.CreatorID,
		Title:          args.Title,
		TotalAmount:    args.TotalAmount,
		InvestedAmount: args.InvestedAmount,
		StockPrice:     args.StockPrice,
	}
	if args.AvailableStocks != nil {
		movie.AvailableStocks = *args.AvailableStocks
	} else {
		movie.AvailableStocks = movie.MaxAffordableStocks()
	}
	if err := movie.Validate(); err != nil {
		return nil, fmt.Errorf("creating movie: %w", err)
	}

	created, err := s.movieRepo.Create(ctx, repoargs.CreateMovie{
		CreatorID:       args.CreatorID,
		Title:           args.Title,
		Description:     args.Description,
		Poster:          args.Poster,
		Director:        args.Director,
		Producer:        args.Producer,
		Singer:          args.Singer,
		Hero:            args.Hero,
		Heroine:         args.Heroine,
		TotalAmount:     movie.TotalAmount,
		InvestedAmount:  movie.InvestedAmount,
		StockPrice:      movie.StockPrice,
		AvailableStocks: movie.AvailableStocks,
	})
	if err != nil {
		return nil, fmt.Errorf("creating movie: %w", err)
	}
	return created, nil
}

// UpdateMovieArgs частичное обновление: nil поля не меняются.
type UpdateMovieArgs struct {
	Title           *string
	Description     *string
	Poster          *string
	Director        *string
	Producer        *string
	Singer          *string
	Hero            *string
	Heroine         *string
	TotalAmount     *decimal.Decimal
	StockPrice      *decimal.Decimal
	AvailableStocks *int64
}

// Update редактирует проект. При изменении цели или цены без явного AvailableStocks остаток акций
// пересчитывается из нового разрыва финансирования, чтобы он не расходился с ним.
func (s *MovieService) Update(ctx context.Context, movieID string, args UpdateMovieArgs) (*domain.Movie, error) {
	unlock := s.locks.Lock(movieID)
	defer unlock()

	var updated *domain.Movie
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[MovieRepository](tx, uow.RepositoryName(repoargs.MovieRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		movie, findErr := repo.FindByIDForUpdate(c, movieID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}

		mergeMovieUpdate(movie, args)
		if err := movie.Validate(); err != nil {
			return err //nolint:wrapcheck
		}

		var updErr error
		updated, updErr = repo.Update(c, repoargs.UpdateMovie{
			ID:              movie.ID,
			Title:           movie.Title,
			Description:     movie.Description,
			Poster:          movie.Poster,
			Director:        movie.Director,
			Producer:        movie.Producer,
			Singer:          movie.Singer,
			Hero:            movie.Hero,
			Heroine:         movie.Heroine,
			TotalAmount:     movie.TotalAmount,
			StockPrice:      movie.StockPrice,
			AvailableStocks: movie.AvailableStocks,
		})
		return updErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("updating movie %s: %w", movieID, txErr)
	}
	return updated, nil
}

func mergeMovieUpdate(movie *domain.Movie, args UpdateMovieArgs) {
	setIfNotNil(&movie.Title, args.Title)
	setIfNotNil(&movie.Description, args.Description)
	setIfNotNil(&movie.Poster, args.Poster)
	setIfNotNil(&movie.Director, args.Director)
	setIfNotNil(&movie.Producer, args.Producer)
	setIfNotNil(&movie.Singer, args.Singer)
	setIfNotNil(&movie.Hero, args.Hero)
	setIfNotNil(&movie.Heroine, args.Heroine)

	fundingChanged := false
	if args.TotalAmount != nil && !args.TotalAmount.Equal(movie.TotalAmount) {
		movie.TotalAmount = *args.TotalAmount
		fundingChanged = true
	}
	if args.StockPrice != nil && !args.StockPrice.Equal(movie.StockPrice) {
		movie.StockPrice = *args.StockPrice
		fundingChanged = true
	}

	switch {
	case args.AvailableStocks != nil:
		movie.AvailableStocks = *args.AvailableStocks
	case fundingChanged:
		movie.AvailableStocks = movie.MaxAffordableStocks()
	}
}

func setIfNotNil[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// ApplyInvestment увеличивает собранную сумму проекта на stockCount * unitPrice и уменьшает остаток акций
// на stockCount. Ошибки: domain.ErrRecordNotFound, domain.ErrInvalidQuantity.
func (s *MovieService) ApplyInvestment(
	ctx context.Context,
	movieID string,
	stockCount int64,
	unitPrice decimal.Decimal,
) (*domain.Movie, error) {
	unlock := s.locks.Lock(movieID)
	defer unlock()

	var updated *domain.Movie
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[MovieRepository](tx, uow.RepositoryName(repoargs.MovieRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		movie, findErr := repo.FindByIDForUpdate(c, movieID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		var applyErr error
		updated, applyErr = applyInvestment(c, repo, movie, stockCount, unitPrice)
		return applyErr
	})
	if txErr != nil {
		return nil, fmt.Errorf("applying investment: %w", txErr)
	}
	return updated, nil
}

// applyInvestment общая часть изменения леджера. Вызывающий держит блокировку проекта и транзакцию.
func applyInvestment(
	ctx context.Context,
	repo MovieRepository,
	movie *domain.Movie,
	stockCount int64,
	unitPrice decimal.Decimal,
) (*domain.Movie, error) {
	if stockCount <= 0 {
		return nil, fmt.Errorf("movie %s: %d stocks: %w", movie.ID, stockCount, domain.ErrInvalidQuantity)
	}
	updated, err := repo.ApplyInvestment(ctx, repoargs.ApplyInvestment{
		MovieID:    movie.ID,
		StockCount: stockCount,
		Amount:     unitPrice.Mul(decimal.NewFromInt(stockCount)),
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return updated, nil
}
