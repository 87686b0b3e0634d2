// Package audit периодически сверяет состояние леджера проектов с записанными инвестициями.
package audit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/domain"
)

const (
	defaultServiceTimeout      = 3 * time.Second
	defaultInterval            = time.Minute
	defaultWorkers        uint = 4
)

// Finding расхождение, найденное при проверке одного проекта.
type Finding struct {
	MovieID string
	Problem string
}

type Report struct {
	CheckedMovies      int
	CheckedInvestments int
	Findings           []Finding
}

// Auditor проверяет инварианты леджера: границы собранной суммы и остатка акций, сумму каждой инвестиции
// и то, что записанные инвестиции не превышают собранную сумму проекта. Ничего не исправляет, только логирует.
type Auditor struct {
	movies      MovieServicer
	investments InvestmentServicer
	l           *logrus.Entry
	interval    time.Duration
	workers     uint
}

func New(movies MovieServicer, investments InvestmentServicer, l *logrus.Logger) *Auditor {
	return &Auditor{
		movies:      movies,
		investments: investments,
		l: l.WithFields(logrus.Fields{
			"component": "audit",
			"module":    "auditor",
		}),
		interval: defaultInterval,
		workers:  defaultWorkers,
	}
}

// SetInterval устанавливает паузу между проверками. Фактическая пауза рассыпается на ±15%.
func (a *Auditor) SetInterval(interval time.Duration) *Auditor {
	if interval > 0 {
		a.interval = interval
	}
	return a
}

// SetWorkers устанавливает кол-во воркеров, проверяющих проекты параллельно.
func (a *Auditor) SetWorkers(workers uint) *Auditor {
	if workers > 0 {
		a.workers = workers
	}
	return a
}

// Run запускает проверки в цикле до отмены контекста.
func (a *Auditor) Run(ctx context.Context) {
	a.l.WithFields(logrus.Fields{
		"interval": a.interval.String(),
		"workers":  a.workers,
	}).Info("Starting")

	for {
		report, err := a.Check(ctx)
		if err != nil {
			a.l.WithError(err).Error("audit error")
		} else {
			a.logReport(report)
		}

		wait := time.Duration(jitter(float64(a.interval), 0.15, 0.15)) //nolint:mnd
		select {
		case <-ctx.Done():
			a.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(wait):
		}
	}
}

func (a *Auditor) logReport(report *Report) {
	l := a.l.WithFields(logrus.Fields{
		"movies":      report.CheckedMovies,
		"investments": report.CheckedInvestments,
	})
	if len(report.Findings) == 0 {
		l.Debug("ledger is consistent")
		return
	}
	for _, f := range report.Findings {
		l.WithField("movieID", f.MovieID).Warn(f.Problem)
	}
}

// Check выполняет одну проверку всего леджера.
func (a *Auditor) Check(ctx context.Context) (*Report, error) {
	movies, investments, err := a.produce(ctx)
	if err != nil {
		return nil, fmt.Errorf("audit check: %w", err)
	}

	byMovie := make(map[string][]domain.Investment, len(movies))
	for _, inv := range investments {
		byMovie[inv.MovieID] = append(byMovie[inv.MovieID], inv)
	}

	report := &Report{
		CheckedMovies:      len(movies),
		CheckedInvestments: len(investments),
		Findings:           a.runWorkers(ctx, movies, byMovie),
	}

	known := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		known[m.ID] = struct{}{}
	}
	for movieID := range byMovie {
		if _, ok := known[movieID]; !ok {
			report.Findings = append(report.Findings, Finding{
				MovieID: movieID,
				Problem: "investments reference unknown movie",
			})
		}
	}
	return report, nil
}

func (a *Auditor) produce(ctx context.Context) ([]domain.Movie, []domain.Investment, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	movies, err := a.movies.List(produceCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("produce: %w", err)
	}
	investments, err := a.investments.List(produceCtx)
	if err != nil {
		return nil, nil, fmt.Errorf("produce: %w", err)
	}
	return movies, investments, nil
}

type task struct {
	movie       domain.Movie
	investments []domain.Investment
}

// runWorkers раздает проекты воркерам и собирает найденные расхождения.
func (a *Auditor) runWorkers(
	ctx context.Context,
	movies []domain.Movie,
	byMovie map[string][]domain.Investment,
) []Finding {
	taskCh := make(chan task, len(movies))
	for _, m := range movies {
		taskCh <- task{movie: m, investments: byMovie[m.ID]}
	}
	close(taskCh)

	resultCh := make(chan []Finding, len(movies))
	wg := new(sync.WaitGroup)
	wg.Add(int(a.workers)) //nolint:gosec

	for range a.workers {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case t, ok := <-taskCh:
					if !ok {
						return
					}
					resultCh <- checkMovie(t.movie, t.investments)
				}
			}
		}()
	}
	wg.Wait()
	close(resultCh)

	var findings = make([]Finding, 0)
	for res := range resultCh {
		findings = append(findings, res...)
	}
	return findings
}

func checkMovie(movie domain.Movie, investments []domain.Investment) []Finding {
	var findings []Finding
	add := func(format string, args ...any) {
		findings = append(findings, Finding{MovieID: movie.ID, Problem: fmt.Sprintf(format, args...)})
	}

	if err := movie.Validate(); err != nil {
		add("%s", err.Error())
	}

	recorded := decimal.Zero
	for _, inv := range investments {
		recorded = recorded.Add(inv.TotalAmount)
		if inv.StockCount <= 0 {
			add("investment %s has %d stocks", inv.ID, inv.StockCount)
		}
		if !inv.TotalAmount.Equal(inv.StockPrice.Mul(decimal.NewFromInt(inv.StockCount))) {
			add("investment %s total %s does not match %d x %s", inv.ID, inv.TotalAmount, inv.StockCount, inv.StockPrice)
		}
	}
	// Начальная собранная сумма проекта может не иметь записей об инвестициях, поэтому проверяется только
	// что записанные инвестиции ее не превышают.
	if recorded.GreaterThan(movie.InvestedAmount) {
		add("recorded investments %s exceed invested amount %s", recorded, movie.InvestedAmount)
	}
	return findings
}
