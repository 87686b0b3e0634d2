package service

import (
	"fmt"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service/keylock"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service/psswd"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

type AppServices struct {
	UserService       *UserService
	MovieService      *MovieService
	InvestmentService *InvestmentService
	QueryService      *QueryService
}

// Factory собирает сервисы поверх единицы работы. MovieService и InvestmentService делят одну
// блокировку проектов.
func Factory(unitOfWork uow.UOW, jwtSecret []byte) (*AppServices, error) {
	userService, userServiceErr := NewUserService(unitOfWork, jwtSecret, psswd.Bcrypt{})
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	locks := keylock.New()

	movieService, movieServiceErr := NewMovieService(unitOfWork, locks)
	if movieServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", movieServiceErr.Error())
	}

	investmentService, investmentServiceErr := NewInvestmentService(unitOfWork, locks)
	if investmentServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", investmentServiceErr.Error())
	}

	return &AppServices{
		UserService:       userService,
		MovieService:      movieService,
		InvestmentService: investmentService,
		QueryService:      NewQueryService(movieService, investmentService),
	}, nil
}
