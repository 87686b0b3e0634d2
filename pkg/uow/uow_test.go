package uow_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow/mocks"
)

type greeter struct{ conn uow.DBTX }

func TestUnitOfWork_Registry(t *testing.T) {
	u := uow.NewUnitOfWork(nil)
	factory := func(dbtx uow.DBTX) uow.Repository { return &greeter{conn: dbtx} }

	require.NoError(t, u.Register("greeter", factory))
	require.ErrorIs(t, u.Register("greeter", factory), uow.ErrRepositoryAlreadyRegistered)

	repo, err := uow.GetRepositoryAs[*greeter](u, "greeter")
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = uow.GetRepositoryAs[string](u, "greeter")
	require.ErrorIs(t, err, uow.ErrInvalidRepositoryType)

	_, err = u.GetRepository("missing")
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)
}

func TestGetAs(t *testing.T) {
	ctrl := gomock.NewController(t)
	tx := mocks.NewMockTX(ctrl)

	tx.EXPECT().Get(uow.RepositoryName("greeter")).Return(&greeter{}, nil).Times(2)
	tx.EXPECT().Get(uow.RepositoryName("missing")).Return(nil, uow.ErrRepositoryNotRegistered)

	repo, err := uow.GetAs[*greeter](tx, "greeter")
	require.NoError(t, err)
	assert.NotNil(t, repo)

	_, err = uow.GetAs[int](tx, "greeter")
	require.ErrorIs(t, err, uow.ErrInvalidRepositoryType)

	_, err = uow.GetAs[*greeter](tx, "missing")
	require.ErrorIs(t, err, uow.ErrRepositoryNotRegistered)
}
