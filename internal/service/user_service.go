package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api/tokens"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

const JWTTokenExpire = 24 * time.Hour

type UserService struct {
	uow            uow.UOW
	userRepo       UserRepository
	jwtTokenSecret []byte
	psswd          PasswordHasher
}

func NewUserService(u uow.UOW, jwtTokenSecret []byte, psswd PasswordHasher) (*UserService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	return &UserService{
		uow:            u,
		userRepo:       userRepo,
		jwtTokenSecret: jwtTokenSecret,
		psswd:          psswd,
	}, nil
}

type RegisterUserArgs struct {
	Username string
	Email    string
	Password string
	Role     domain.RoleType
}

// Register создает юзера в базе данных. После успешного создания генерирует jwt token. Возвращает 3 значения:
// созданный юзер, токен и ошибку. Занятый username или email - domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	if !args.Role.IsValid() {
		return nil, "", fmt.Errorf("registering user: %w", domain.ErrInvalidRole)
	}
	password, hashErr := s.psswd.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}
	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		var userErr, tokenErr error
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		user, userErr = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: args.Username,
			Email:    args.Email,
			Password: password,
			Role:     args.Role,
		})
		if userErr != nil {
			return userErr //nolint:wrapcheck
		}

		token, tokenErr = s.generateToken(user)
		if tokenErr != nil {
			return tokenErr //nolint:wrapcheck
		}
		return nil
	})

	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

type LoginUserArgs struct {
	Username string
	Password string
}

// Login аутентифицирует юзера по паре логин/пароль. И неизвестный логин, и неверный пароль
// возвращают domain.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, args.Username)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("login user %s: %w", args.Username, domain.ErrInvalidCredentials)
		}
		return nil, "", fmt.Errorf("login user %s: %w", args.Username, err)
	}

	if !s.psswd.ComparePassword(args.Password, user.Password) {
		return nil, "", fmt.Errorf("login user %s: %w", args.Username, domain.ErrInvalidCredentials)
	}

	token, tokenErr := s.generateToken(user)
	if tokenErr != nil {
		return nil, "", fmt.Errorf("login user %s: %w", args.Username, tokenErr)
	}
	return user, token, nil
}

// Get возвращает юзера по id или domain.ErrRecordNotFound.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, id)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return user, nil
}

func (s *UserService) generateToken(user *domain.User) (string, error) {
	return tokens.GenerateUserJWT(tokens.UserClaimsArgs{ //nolint:wrapcheck
		ID:       user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	}, JWTTokenExpire, s.jwtTokenSecret)
}
