package pgrepo

import (
	"context"

	"github.com/google/uuid"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
	"github.com/jackc/pgx/v5"
)

const investmentColumns = `i.id, i.created_at, i.movie_id, i.movie_title, i.investor_id, i.investor_name,
	i.stock_count, i.stock_price, i.total_amount`

type InvestmentRepository struct {
	conn uow.DBTX
}

func NewInvestmentRepository(conn uow.DBTX) *InvestmentRepository {
	return &InvestmentRepository{conn: conn}
}

func (r *InvestmentRepository) Create(ctx context.Context, args repoargs.CreateInvestment) (*domain.Investment, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO investments AS i (id, movie_id, movie_title, investor_id, investor_name, stock_count,
			stock_price, total_amount)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+investmentColumns,
		uuid.NewString(),
		args.MovieID,
		args.MovieTitle,
		args.InvestorID,
		args.InvestorName,
		args.StockCount,
		args.StockPrice,
		args.TotalAmount,
	)
	investment, err := scanInvestment(row)
	if err != nil {
		return nil, convertErr(err, "creating investment in movie %s", args.MovieID)
	}
	return investment, nil
}

func (r *InvestmentRepository) GetAll(ctx context.Context) ([]domain.Investment, error) {
	return r.query(ctx, "getting investments", "SELECT "+investmentColumns+" FROM investments i ORDER BY i.seq")
}

func (r *InvestmentRepository) GetByInvestorID(ctx context.Context, investorID string) ([]domain.Investment, error) {
	return r.query(ctx,
		"getting investments of investor "+investorID,
		"SELECT "+investmentColumns+" FROM investments i WHERE i.investor_id = $1 ORDER BY i.seq",
		investorID,
	)
}

// GetByCreatorID возвращает инвестиции во все проекты создателя creatorID.
func (r *InvestmentRepository) GetByCreatorID(ctx context.Context, creatorID string) ([]domain.Investment, error) {
	return r.query(ctx,
		"getting investments of creator "+creatorID,
		`SELECT `+investmentColumns+` FROM investments i
		JOIN movies m ON m.id = i.movie_id
		WHERE m.creator_id = $1
		ORDER BY i.seq`,
		creatorID,
	)
}

func (r *InvestmentRepository) query(
	ctx context.Context,
	errMsg string,
	sql string,
	args ...any,
) ([]domain.Investment, error) {
	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	investments, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Investment, error) {
		investment, scanErr := scanInvestment(row)
		if scanErr != nil {
			return domain.Investment{}, scanErr
		}
		return *investment, nil
	})
	if err != nil {
		return nil, convertErr(err, "%s", errMsg)
	}
	return investments, nil
}

func scanInvestment(row pgx.Row) (*domain.Investment, error) {
	var i domain.Investment
	if err := row.Scan(
		&i.ID,
		&i.CreatedAt,
		&i.MovieID,
		&i.MovieTitle,
		&i.InvestorID,
		&i.InvestorName,
		&i.StockCount,
		&i.StockPrice,
		&i.TotalAmount,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &i, nil
}
