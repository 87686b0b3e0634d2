package app

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/audit"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/config"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/memrepo"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/pgrepo"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/repository/repoargs"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/seed"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/service"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/transport/api"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/pkg/uow"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"runAddress":    a.Config.RunAddress,
		"postgres":      a.Config.DatabaseDSN != "",
		"seed":          a.Config.SeedData,
		"auditInterval": a.Config.AuditInterval.String(),
	}).Info("Starting app")
	if a.Config.UsesDefaultJWTSecret() {
		a.Logger.Warn("JWT_SECRET is not set, bearer tokens are signed with the default development secret")
	}

	unitOfWork, closeStorage, storageErr := a.initStorage(notifyCtx)
	if storageErr != nil {
		return pkgerrors.Wrap(storageErr, "app run")
	}
	defer closeStorage()

	services, sErr := service.Factory(unitOfWork, []byte(a.Config.JWTUserSecret))
	if sErr != nil {
		return pkgerrors.Wrap(sErr, "app run")
	}

	if a.Config.SeedData {
		if seedErr := seed.Run(notifyCtx, services.UserService, services.MovieService, a.Logger); seedErr != nil {
			return pkgerrors.Wrap(seedErr, "app run")
		}
	}

	if a.Config.AuditInterval > 0 {
		auditor := audit.New(services.MovieService, services.InvestmentService, a.Logger).
			SetInterval(a.Config.AuditInterval)
		go auditor.Run(notifyCtx)
	}

	router := api.New(api.RouterArgs{
		Logger:            a.Logger,
		UserService:       services.UserService,
		MovieService:      services.MovieService,
		InvestmentService: services.InvestmentService,
		QueryService:      services.QueryService,
		JWTSecretKey:      []byte(a.Config.JWTUserSecret),
	})

	srv := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)
	go func() {
		if runErr := srv.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	select {
	case <-notifyCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
			a.Logger.WithError(shutdownErr).Error("http server shutdown")
		}
		return notifyCtx.Err() //nolint:wrapcheck
	case err := <-errChan:
		return pkgerrors.Wrap(err, "http server")
	}
}

// initStorage без DATABASE_URI данные хранятся в памяти процесса, иначе в postgres с применением миграций.
func (a *App) initStorage(ctx context.Context) (uow.UOW, func(), error) {
	if a.Config.DatabaseDSN == "" {
		a.Logger.Info("using in-memory storage")
		return memrepo.New(), func() {}, nil
	}

	conn, connErr := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return nil, nil, pkgerrors.Wrap(connErr, "init storage")
	}

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		conn.Close()
		return nil, nil, pkgerrors.Wrap(uowErr, "init storage")
	}
	return unitOfWork, conn.Close, nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.MovieRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewMovieRepository(dbtx)
		},
		repoargs.InvestmentRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewInvestmentRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, pkgerrors.Wrapf(regErr, "init UOW: register %s", name)
		}
	}

	return unitOfWork, nil
}
