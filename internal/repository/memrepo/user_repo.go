package memrepo

import (
	"context"
	"fmt"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
)

type UserRepository struct {
	st state
}

// CreateUser сохраняет юзера. В случае конфликта username или email возвращает domain.ErrDuplicateKey.
func (u *UserRepository) CreateUser(_ context.Context, args repoargs.CreateUser) (*domain.User, error) {
	user := domain.User{
		ID:        u.st.nextID(),
		CreatedAt: u.st.now(),
		Username:  args.Username,
		Email:     args.Email,
		Password:  args.Password,
		Role:      args.Role,
	}
	if err := u.st.insertUser(user); err != nil {
		return nil, fmt.Errorf("[repository/creating user] %w", err)
	}
	return &user, nil
}

// FindUserByUsername возвращает domain.ErrRecordNotFound если юзер не найден.
func (u *UserRepository) FindUserByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := u.st.findUser(func(user domain.User) bool { return user.Username == username })
	if !ok {
		return nil, fmt.Errorf("[repository/finding user by username %s] %w", username, domain.ErrRecordNotFound)
	}
	return &user, nil
}

func (u *UserRepository) FindUserByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := u.st.findUser(func(user domain.User) bool { return user.ID == id })
	if !ok {
		return nil, fmt.Errorf("[repository/finding user by id %s] %w", id, domain.ErrRecordNotFound)
	}
	return &user, nil
}
