package seed

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/memrepo"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
)

func TestRun(t *testing.T) {
	ctx := t.Context()
	l := logrus.New()
	l.SetOutput(io.Discard)

	services, err := service.Factory(memrepo.New(), []byte("secret"))
	require.NoError(t, err)

	require.NoError(t, Run(ctx, services.UserService, services.MovieService, l))

	user, token, err := services.UserService.Login(ctx, service.LoginUserArgs{
		Username: "investor1",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleInvestor, user.Role)
	assert.NotEmpty(t, token)

	_, _, err = services.UserService.Login(ctx, service.LoginUserArgs{
		Username: "investor1",
		Password: "wrong",
	})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	movies, err := services.MovieService.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, len(sampleMovies))

	byTitle := make(map[string]domain.Movie, len(movies))
	for _, m := range movies {
		require.NoError(t, m.Validate())
		byTitle[m.Title] = m
	}
	// остаток акций выводится из разрыва финансирования с округлением вниз.
	assert.Equal(t, int64(7500), byTitle["The Last Horizon"].AvailableStocks)
	assert.Equal(t, int64(19285), byTitle["Shadows of Truth"].AvailableStocks)
	assert.Equal(t, int64(6666), byTitle["The Forgotten Symphony"].AvailableStocks)

	creator, _, err := services.UserService.Login(ctx, service.LoginUserArgs{
		Username: "creator1",
		Password: "password",
	})
	require.NoError(t, err)
	assert.Equal(t, creator.ID, byTitle["Epic Adventure"].CreatorID)

	// повторный запуск ничего не меняет.
	require.NoError(t, Run(ctx, services.UserService, services.MovieService, l))
	movies, err = services.MovieService.List(ctx)
	require.NoError(t, err)
	assert.Len(t, movies, len(sampleMovies))
}
