package memrepo

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

var ErrTxClosed = errors.New("[memrepo] transaction already closed")

// tx накапливает изменения поверх Store. Чтение внутри транзакции видит и хранилище, и свои
// незафиксированные изменения.
type tx struct {
	store       *Store
	users       []domain.User
	movies      map[string]domain.Movie
	created     []string
	investments []domain.Investment
	closed      bool
}

func newTx(s *Store) *tx {
	return &tx{
		store:  s,
		movies: make(map[string]domain.Movie),
	}
}

func (t *tx) Get(name uow.RepositoryName) (uow.Repository, error) {
	if t.closed {
		return nil, ErrTxClosed
	}
	return newRepository(name, t)
}

func (t *tx) findUser(match func(domain.User) bool) (domain.User, bool) {
	for _, u := range t.users {
		if match(u) {
			return u, true
		}
	}
	return t.store.findUser(match)
}

func (t *tx) insertUser(user domain.User) error {
	if _, exists := t.findUser(sameUserKeys(user)); exists {
		return fmt.Errorf("user %s: %w", user.Username, domain.ErrDuplicateKey)
	}
	t.users = append(t.users, user)
	return nil
}

func (t *tx) findMovie(id string) (domain.Movie, bool) {
	if m, ok := t.movies[id]; ok {
		return m, true
	}
	return t.store.findMovie(id)
}

func (t *tx) allMovies() []domain.Movie {
	movies := t.store.allMovies()
	for i, m := range movies {
		if staged, ok := t.movies[m.ID]; ok {
			movies[i] = staged
		}
	}
	for _, id := range t.created {
		movies = append(movies, t.movies[id])
	}
	return movies
}

func (t *tx) insertMovie(movie domain.Movie) {
	t.movies[movie.ID] = movie
	t.created = append(t.created, movie.ID)
}

func (t *tx) replaceMovie(movie domain.Movie) error {
	if _, ok := t.findMovie(movie.ID); !ok {
		return fmt.Errorf("movie %s: %w", movie.ID, domain.ErrRecordNotFound)
	}
	t.movies[movie.ID] = movie
	return nil
}

func (t *tx) insertInvestment(investment domain.Investment) {
	t.investments = append(t.investments, investment)
}

func (t *tx) allInvestments() []domain.Investment {
	return append(t.store.allInvestments(), t.investments...)
}

func (t *tx) nextID() string {
	return t.store.nextID()
}

func (t *tx) now() time.Time {
	return t.store.now()
}

// commit применяет накопленные изменения под блокировкой хранилища. Уникальность юзеров проверяется
// повторно: между чтением и commit другая транзакция могла занять тот же username.
func (t *tx) commit() error {
	if t.closed {
		return ErrTxClosed
	}
	t.closed = true

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range t.users {
		if err := s.checkUserUniqueLocked(u); err != nil {
			return err
		}
	}
	for id := range t.movies {
		if _, ok := s.movieIdx[id]; !ok && !slices.Contains(t.created, id) {
			return fmt.Errorf("movie %s: %w", id, domain.ErrRecordNotFound)
		}
	}

	// все проверки пройдены, дальше только запись.
	s.users = append(s.users, t.users...)
	for id, m := range t.movies {
		if i, ok := s.movieIdx[id]; ok {
			s.movies[i] = m
		}
	}
	for _, id := range t.created {
		s.insertMovieLocked(t.movies[id])
	}
	s.investments = append(s.investments, t.investments...)
	return nil
}
