package memrepo

import (
	"context"
	"fmt"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
)

type MovieRepository struct {
	st state
}

func (r *MovieRepository) Create(_ context.Context, args repoargs.CreateMovie) (*domain.Movie, error) {
	now := r.st.now()
	movie := domain.Movie{
		ID:              r.st.nextID(),
		CreatedAt:       now,
		UpdatedAt:       now,
		CreatorID:       args.CreatorID,
		Title:           args.Title,
		Description:     args.Description,
		Poster:          args.Poster,
		Director:        args.Director,
		Producer:        args.Producer,
		Singer:          args.Singer,
		Hero:            args.Hero,
		Heroine:         args.Heroine,
		TotalAmount:     args.TotalAmount,
		InvestedAmount:  args.InvestedAmount,
		StockPrice:      args.StockPrice,
		AvailableStocks: args.AvailableStocks,
	}
	r.st.insertMovie(movie)
	return &movie, nil
}

// FindByID возвращает domain.ErrRecordNotFound если проект не найден.
func (r *MovieRepository) FindByID(_ context.Context, id string) (*domain.Movie, error) {
	movie, ok := r.st.findMovie(id)
	if !ok {
		return nil, fmt.Errorf("[repository/finding movie %s] %w", id, domain.ErrRecordNotFound)
	}
	return &movie, nil
}

// FindByIDForUpdate в памяти эквивалентен FindByID: сериализацию изменений одного проекта
// обеспечивает сервисный слой.
func (r *MovieRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Movie, error) {
	return r.FindByID(ctx, id)
}

func (r *MovieRepository) GetAll(_ context.Context) ([]domain.Movie, error) {
	return r.st.allMovies(), nil
}

func (r *MovieRepository) GetByCreatorID(_ context.Context, creatorID string) ([]domain.Movie, error) {
	var movies = make([]domain.Movie, 0)
	for _, m := range r.st.allMovies() {
		if m.CreatorID == creatorID {
			movies = append(movies, m)
		}
	}
	return movies, nil
}

func (r *MovieRepository) Update(_ context.Context, args repoargs.UpdateMovie) (*domain.Movie, error) {
	movie, ok := r.st.findMovie(args.ID)
	if !ok {
		return nil, fmt.Errorf("[repository/updating movie %s] %w", args.ID, domain.ErrRecordNotFound)
	}
	movie.Title = args.Title
	movie.Description = args.Description
	movie.Poster = args.Poster
	movie.Director = args.Director
	movie.Producer = args.Producer
	movie.Singer = args.Singer
	movie.Hero = args.Hero
	movie.Heroine = args.Heroine
	movie.TotalAmount = args.TotalAmount
	movie.StockPrice = args.StockPrice
	movie.AvailableStocks = args.AvailableStocks
	movie.UpdatedAt = r.st.now()

	if err := r.st.replaceMovie(movie); err != nil {
		return nil, fmt.Errorf("[repository/updating movie %s] %w", args.ID, err)
	}
	return &movie, nil
}

// ApplyInvestment увеличивает собранную сумму и уменьшает остаток акций. Повторяет ограничения таблицы
// movies: собранная сумма не превышает цель, остаток акций неотрицателен. Нарушение -
// domain.ErrQuantityExceedsLimit.
func (r *MovieRepository) ApplyInvestment(_ context.Context, args repoargs.ApplyInvestment) (*domain.Movie, error) {
	movie, ok := r.st.findMovie(args.MovieID)
	if !ok {
		return nil, fmt.Errorf("[repository/applying investment to movie %s] %w", args.MovieID, domain.ErrRecordNotFound)
	}
	movie.InvestedAmount = movie.InvestedAmount.Add(args.Amount)
	movie.AvailableStocks -= args.StockCount
	movie.UpdatedAt = r.st.now()

	if movie.InvestedAmount.GreaterThan(movie.TotalAmount) || movie.AvailableStocks < 0 {
		return nil, fmt.Errorf(
			"[repository/applying investment to movie %s] %w",
			args.MovieID,
			domain.ErrQuantityExceedsLimit,
		)
	}

	if err := r.st.replaceMovie(movie); err != nil {
		return nil, fmt.Errorf("[repository/applying investment to movie %s] %w", args.MovieID, err)
	}
	return &movie, nil
}
