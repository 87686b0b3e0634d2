// Package seed наполняет пустое хранилище демонстрационными юзерами и проектами.
package seed

import (
	"context"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

type UserRegistrar interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
}

type MovieCreator interface {
	Create(ctx context.Context, args service.CreateMovieArgs) (*domain.Movie, error)
}

// Run регистрирует демонстрационных юзеров (пароль у всех "password") и создает их проекты. Если
// первый юзер уже существует, хранилище считается наполненным и Run ничего не делает.
func Run(ctx context.Context, users UserRegistrar, movies MovieCreator, l *logrus.Logger) error {
	log := l.WithField("component", "seed")

	creatorIDs := make(map[string]string, len(sampleUsers))
	for i, u := range sampleUsers {
		user, _, err := users.Register(ctx, service.RegisterUserArgs{
			Username: u.Username,
			Email:    u.Email,
			Password: samplePassword,
			Role:     domain.RoleType(u.Role),
		})
		if err != nil {
			if i == 0 && errors.Is(err, domain.ErrDuplicateKey) {
				log.Info("storage already seeded, skipping")
				return nil
			}
			return errors.Wrapf(err, "seed user %s", u.Username)
		}
		creatorIDs[u.Username] = user.ID
	}

	for _, m := range sampleMovies {
		_, err := movies.Create(ctx, service.CreateMovieArgs{
			CreatorID:      creatorIDs[m.Creator],
			Title:          m.Title,
			Poster:         m.Poster,
			Director:       m.Director,
			Producer:       m.Producer,
			Singer:         m.Singer,
			Hero:           m.Hero,
			Heroine:        m.Heroine,
			TotalAmount:    decimal.NewFromInt(m.Total),
			InvestedAmount: decimal.NewFromInt(m.Invested),
			StockPrice:     decimal.NewFromInt(m.Price),
		})
		if err != nil {
			return errors.Wrapf(err, "seed movie %q", m.Title)
		}
	}

	log.WithFields(logrus.Fields{
		"users":  len(sampleUsers),
		"movies": len(sampleMovies),
	}).Info("storage seeded")
	return nil
}
