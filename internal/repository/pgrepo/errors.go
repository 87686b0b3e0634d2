package pgrepo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode = "23505"
	checkViolationCode  = "23514"
)

// movieCheckReasons check-ограничения movies, которые нарушает сам проект, а не покупка.
// NUMERIC(18,2) округляет цену вроде 0.004 до 0.
var movieCheckReasons = map[string]string{
	"movies_stock_price_check":  "stockPrice must be greater than 0",
	"movies_total_amount_check": "totalAmount must be greater than 0",
}

// convertErr преобразует ошибку к стандартному виду для слоя репозитория.
// Добавляет форматированное сообщение контекста, тип бизнес-ошибки и оригинальное сообщение.
// Особенности:
//   - Для ошибок отсутствия данных (pgx.ErrNoRows) возвращает ErrRecordNotFound из domain.
//   - Для ошибок базы Postgres определяет дубликаты ключей (uniqueViolationCode) как ErrDuplicateKey из domain.
//   - Нарушение check-ограничений цены и цели проекта возвращается как *domain.InvalidMovieError,
//     остальные check-ограничения (собранная сумма выше цели, отрицательный остаток акций) - ErrQuantityExceedsLimit.
//   - Все остальные ошибки возвращаются как ErrUnknown с оригинальным сообщением.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("[repository/%s] %w", msg, domain.ErrRecordNotFound)
	}

	var pgErr *pgconn.PgError
	errType := domain.ErrUnknown

	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolationCode:
			errType = domain.ErrDuplicateKey
		case checkViolationCode:
			if reason, ok := movieCheckReasons[pgErr.ConstraintName]; ok {
				return fmt.Errorf("[repository/%s] %w: %s", msg, domain.NewInvalidMovieError(reason), err.Error())
			}
			errType = domain.ErrQuantityExceedsLimit
		}
	}

	return fmt.Errorf("[repository/%s] %w: %s", msg, errType, err.Error())
}
