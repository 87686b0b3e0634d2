package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const movieColumns = `id, created_at, updated_at, creator_id, title, description, poster, director, producer,
	singer, hero, heroine, total_amount, invested_amount, stock_price, available_stocks`

type MovieRepository struct {
	conn uow.DBTX
}

func NewMovieRepository(conn uow.DBTX) *MovieRepository {
	return &MovieRepository{conn: conn}
}

func (r *MovieRepository) Create(ctx context.Context, args repoargs.CreateMovie) (*domain.Movie, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO movies (id, creator_id, title, description, poster, director, producer, singer, hero, heroine,
			total_amount, invested_amount, stock_price, available_stocks)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+movieColumns,
		uuid.NewString(),
		args.CreatorID,
		args.Title,
		args.Description,
		args.Poster,
		args.Director,
		args.Producer,
		args.Singer,
		args.Hero,
		args.Heroine,
		args.TotalAmount,
		args.InvestedAmount,
		args.StockPrice,
		args.AvailableStocks,
	)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, convertErr(err, "creating movie %s", args.Title)
	}
	return movie, nil
}

// FindByID возвращает domain.ErrRecordNotFound если проект не найден.
func (r *MovieRepository) FindByID(ctx context.Context, id string) (*domain.Movie, error) {
	row := r.conn.QueryRow(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1", id)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, convertErr(err, "finding movie %s", id)
	}
	return movie, nil
}

// FindByIDForUpdate блокирует строку проекта до конца транзакции. Вне транзакции блокировка
// снимается сразу после запроса.
func (r *MovieRepository) FindByIDForUpdate(ctx context.Context, id string) (*domain.Movie, error) {
	row := r.conn.QueryRow(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = $1 FOR UPDATE", id)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, convertErr(err, "finding movie %s for update", id)
	}
	return movie, nil
}

func (r *MovieRepository) GetAll(ctx context.Context) ([]domain.Movie, error) {
	rows, err := r.conn.Query(ctx, "SELECT "+movieColumns+" FROM movies ORDER BY seq")
	if err != nil {
		return nil, convertErr(err, "getting movies")
	}
	movies, err := collectMovies(rows)
	if err != nil {
		return nil, convertErr(err, "getting movies")
	}
	return movies, nil
}

func (r *MovieRepository) GetByCreatorID(ctx context.Context, creatorID string) ([]domain.Movie, error) {
	rows, err := r.conn.Query(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE creator_id = $1 ORDER BY seq",
		creatorID,
	)
	if err != nil {
		return nil, convertErr(err, "getting movies of creator %s", creatorID)
	}
	movies, err := collectMovies(rows)
	if err != nil {
		return nil, convertErr(err, "getting movies of creator %s", creatorID)
	}
	return movies, nil
}

func (r *MovieRepository) Update(ctx context.Context, args repoargs.UpdateMovie) (*domain.Movie, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE movies SET title = $2, description = $3, poster = $4, director = $5, producer = $6, singer = $7,
			hero = $8, heroine = $9, total_amount = $10, stock_price = $11, available_stocks = $12, updated_at = now()
		WHERE id = $1
		RETURNING `+movieColumns,
		args.ID,
		args.Title,
		args.Description,
		args.Poster,
		args.Director,
		args.Producer,
		args.Singer,
		args.Hero,
		args.Heroine,
		args.TotalAmount,
		args.StockPrice,
		args.AvailableStocks,
	)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, convertErr(err, "updating movie %s", args.ID)
	}
	return movie, nil
}

// ApplyInvestment атомарно увеличивает собранную сумму и уменьшает остаток акций. Выход за цель или
// отрицательный остаток отклоняется check-ограничениями таблицы (domain.ErrQuantityExceedsLimit).
func (r *MovieRepository) ApplyInvestment(ctx context.Context, args repoargs.ApplyInvestment) (*domain.Movie, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE movies SET invested_amount = invested_amount + $2, available_stocks = available_stocks - $3,
			updated_at = now()
		WHERE id = $1
		RETURNING `+movieColumns,
		args.MovieID,
		args.Amount,
		args.StockCount,
	)
	movie, err := scanMovie(row)
	if err != nil {
		return nil, convertErr(err, "applying investment to movie %s", args.MovieID)
	}
	return movie, nil
}

func collectMovies(rows pgx.Rows) ([]domain.Movie, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Movie, error) { //nolint:wrapcheck
		movie, err := scanMovie(row)
		if err != nil {
			return domain.Movie{}, err
		}
		return *movie, nil
	})
}

func scanMovie(row pgx.Row) (*domain.Movie, error) {
	var m domain.Movie
	if err := row.Scan(
		&m.ID,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.CreatorID,
		&m.Title,
		&m.Description,
		&m.Poster,
		&m.Director,
		&m.Producer,
		&m.Singer,
		&m.Hero,
		&m.Heroine,
		&m.TotalAmount,
		&m.InvestedAmount,
		&m.StockPrice,
		&m.AvailableStocks,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &m, nil
}
