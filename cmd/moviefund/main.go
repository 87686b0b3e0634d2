package main

import (
	"context"
	"errors"
	"os"

	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/app"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/config"
	"github.com/KBhuvanArjun/Smart-Investment-Platform/internal/logger"
)

func main() {
	conf := config.MustLoadConfig()
	l := logger.New(os.Stdout)

	if err := app.New(conf, l).Run(); err != nil {
		if errors.Is(err, context.Canceled) {
			l.Info("graceful shutdown")
			os.Exit(0)
		}
		l.WithError(err).Fatal("app stopped")
	}
}
