package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	_ "fulfillment/internal/generated/docs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	_ "github.com/lib/pq"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.LogLevel}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var gormDB *gorm.DB
	if configs.Storage == cmd.StoragePostgres {
		gormDB = mustOpenDatabase(configs)
	}

	app, err := cmd.NewCompositionRoot(ctx, configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}

	app.Notifier().Start(ctx)
	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}

	e := newWebServer(app)
	if err := runWebServer(ctx, e, configs.HTTPPort); err != nil {
		logger.Error("web server stopped with error", "error", err)
	}

	jobManager.StopAll()
	if err := app.Close(); err != nil {
		logger.Error("failed to close application", "error", err)
	}
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DriverName: "postgres",
		DSN:        configs.DSN(),
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := orderrepo.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
	return gormDB
}

func newWebServer(app *cmd.CompositionRoot) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(app.Metrics().Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if err := app.CreateHTTPServer().Register(e); err != nil {
		e.Logger.Fatal(err)
	}
	return e
}

func runWebServer(ctx context.Context, e *echo.Echo, port string) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := e.Start(fmt.Sprintf("0.0.0.0:%s", port))
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
