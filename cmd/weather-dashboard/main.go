package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Otigef/weather-dashboard/config"
	v1 "github.com/Otigef/weather-dashboard/internal/controllers/http/v1"
	"github.com/Otigef/weather-dashboard/internal/repositories"
	"github.com/Otigef/weather-dashboard/internal/services/session"
	"github.com/Otigef/weather-dashboard/internal/storage"
	"github.com/Otigef/weather-dashboard/pkg/httpserver"
	"github.com/Otigef/weather-dashboard/pkg/observe"
)

// @title Weather Dashboard API
// @version 1.0.0
// @description An AI-backed weather dashboard: city search with live suggestions, favorites and periodic refresh, all data supplied by a generative backend.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http

// @tag.name Dashboard
// @tag.description Weather dashboard state and search operations
// @tag.name Favorites
// @tag.description Favorite city management
func main() {
	ctx, cancel := context.WithCancel(context.Background())

	_ = godotenv.Load()

	cnf := config.NewConfig()

	var l *observe.Logger
	if cnf.SentryDSN != "" {
		hook := observe.NewSentryHook(cnf.AppEnv, cnf.AppName, 0, false, cnf.SentryDSN)
		l = observe.NewZapLogger(cnf.AppName, os.Stdout, hook)
		hook.SetLogger(l)
	} else {
		l = observe.NewZapLogger(cnf.AppName, os.Stdout)
	}
	l.SetEnv(cnf.AppEnv)

	app := httpserver.InitFiberServer(cnf.AppName)

	repo := repositories.InitQueryRepository(cnf, l)

	store, err := storage.NewSQLiteFavorites(cnf.Dashboard.FavoritesDBPath, l)
	if err != nil {
		l.Fatal("cannot open favorites store", map[string]any{"err": err})
	}

	sess := session.New(repo, store, l, session.Options{
		Debounce:        cnf.Dashboard.Debounce(),
		RefreshInterval: cnf.Dashboard.RefreshInterval(),
		DefaultCity:     cnf.Dashboard.DefaultCity,
	})

	v1.NewRouter(
		app,
		sess,
		l,
	)

	go func() {
		if err := app.Listen(":" + cnf.Port); err != nil {
			l.Fatal("cannot run the server", map[string]any{"err": err})
		}
	}()

	// First paint: first favorite or the default city.
	go sess.Start(ctx)

	l.Info("application started successfully", map[string]any{"port": cnf.Port})

	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		l.Warning("stopping application services")
		signal.Stop(sigCh)
		close(sigCh)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			fmt.Printf("server shutdown error: %v\n", err)
		}

		sess.Stop()

		if err := store.Close(); err != nil {
			fmt.Printf("favorites store close error: %v\n", err)
		}

		cancel()

		if err := l.Stop(); err != nil {
			fmt.Printf("logger stop error: %v\n", err)
		}
	}()

	<-sigCh
}
