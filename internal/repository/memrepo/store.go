// Package memrepo хранилище в памяти процесса. Store реализует uow.UOW: изменения внутри Do
// накапливаются в транзакции и применяются к хранилищу целиком при успешном завершении fn.
package memrepo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

// state набор примитивов, поверх которых работают репозитории. Реализуется как самим Store
// (запись сразу видна всем), так и транзакцией tx (запись видна только внутри транзакции до commit).
type state interface {
	findUser(match func(domain.User) bool) (domain.User, bool)
	insertUser(user domain.User) error
	findMovie(id string) (domain.Movie, bool)
	allMovies() []domain.Movie
	insertMovie(movie domain.Movie)
	replaceMovie(movie domain.Movie) error
	insertInvestment(investment domain.Investment)
	allInvestments() []domain.Investment
	nextID() string
	now() time.Time
}

type Store struct {
	mu          sync.RWMutex
	users       []domain.User
	movies      []domain.Movie
	movieIdx    map[string]int
	investments []domain.Investment
	idFn        func() string
	clock       func() time.Time
}

func New() *Store {
	return &Store{
		movieIdx: make(map[string]int),
		idFn:     uuid.NewString,
		clock:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock подменяет источник времени. Используется в тестах.
func (s *Store) SetClock(clock func() time.Time) *Store {
	s.clock = clock
	return s
}

// Do выполняет fn в транзакции. Изменения применяются к хранилищу только если fn и commit завершились
// без ошибки, иначе они отбрасываются целиком.
func (s *Store) Do(ctx context.Context, fn func(context.Context, uow.TX) error) error {
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	t := newTx(s)
	if err := fn(ctx, t); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	return t.commit()
}

// GetRepository возвращает репозиторий, работающий напрямую с хранилищем.
func (s *Store) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return newRepository(name, s)
}

func newRepository(name uow.RepositoryName, st state) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.UserRepoName:
		return &UserRepository{st: st}, nil
	case repoargs.MovieRepoName:
		return &MovieRepository{st: st}, nil
	case repoargs.InvestmentRepoName:
		return &InvestmentRepository{st: st}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}

func (s *Store) findUser(match func(domain.User) bool) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findUserLocked(match)
}

func (s *Store) findUserLocked(match func(domain.User) bool) (domain.User, bool) {
	for _, u := range s.users {
		if match(u) {
			return u, true
		}
	}
	return domain.User{}, false
}

func (s *Store) insertUser(user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.checkUserUniqueLocked(user); err != nil {
		return err
	}
	s.users = append(s.users, user)
	return nil
}

func (s *Store) checkUserUniqueLocked(user domain.User) error {
	if _, exists := s.findUserLocked(sameUserKeys(user)); exists {
		return fmt.Errorf("user %s: %w", user.Username, domain.ErrDuplicateKey)
	}
	return nil
}

func (s *Store) findMovie(id string) (domain.Movie, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.movieIdx[id]
	if !ok {
		return domain.Movie{}, false
	}
	return s.movies[i], true
}

func (s *Store) allMovies() []domain.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	movies := make([]domain.Movie, len(s.movies))
	copy(movies, s.movies)
	return movies
}

func (s *Store) insertMovie(movie domain.Movie) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertMovieLocked(movie)
}

func (s *Store) insertMovieLocked(movie domain.Movie) {
	s.movieIdx[movie.ID] = len(s.movies)
	s.movies = append(s.movies, movie)
}

func (s *Store) replaceMovie(movie domain.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceMovieLocked(movie)
}

func (s *Store) replaceMovieLocked(movie domain.Movie) error {
	i, ok := s.movieIdx[movie.ID]
	if !ok {
		return fmt.Errorf("movie %s: %w", movie.ID, domain.ErrRecordNotFound)
	}
	s.movies[i] = movie
	return nil
}

func (s *Store) insertInvestment(investment domain.Investment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments = append(s.investments, investment)
}

func (s *Store) allInvestments() []domain.Investment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	investments := make([]domain.Investment, len(s.investments))
	copy(investments, s.investments)
	return investments
}

func (s *Store) nextID() string {
	return s.idFn()
}

func (s *Store) now() time.Time {
	return s.clock()
}

// sameUserKeys возвращает предикат совпадения по уникальным ключам юзера: username или email.
// Пустой email тоже ключ, как и в postgres (email NOT NULL UNIQUE).
func sameUserKeys(user domain.User) func(domain.User) bool {
	return func(u domain.User) bool {
		return u.Username == user.Username || u.Email == user.Email
	}
}
