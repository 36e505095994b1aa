package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/ankit-bind/shared-space-seekers/internal/config"
	applog "github.com/ankit-bind/shared-space-seekers/internal/logger"
	"github.com/ankit-bind/shared-space-seekers/internal/repository"
	"github.com/ankit-bind/shared-space-seekers/internal/routes"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		envFiles     []string
		port         string
		fixturesPath string
	)
	flagSet := pflag.NewFlagSet("server", pflag.ContinueOnError)
	flagSet.StringArrayVar(&envFiles, "env-file", nil, "env file to load (repeatable, default .env)")
	flagSet.StringVar(&port, "port", "", "listen port (overrides PORT)")
	flagSet.StringVar(&fixturesPath, "fixtures", "", "seed fixture YAML (overrides FIXTURES_PATH)")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	// 1. Load Config
	cfg, err := config.LoadConfig(envFiles...)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if port != "" {
		cfg.Port = port
	}
	if fixturesPath != "" {
		cfg.FixturesPath = fixturesPath
	}

	log := applog.New(cfg)

	// 2. Load seed data
	fixtures, err := repository.LoadFixtures(cfg.FixturesPath)
	if err != nil {
		return fmt.Errorf("load fixtures %q: %w", cfg.FixturesPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName:               "shared-space-seekers",
		DisableStartupMessage: !cfg.IsDevelopment(),
	})

	// Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(splitOrigins(cfg.CORSAllowOrigins), ","),
	}))
	app.Use(logger.New())
	app.Use(recover.New())

	// Routes
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})
	if err := routes.RegisterRoutes(ctx, app, cfg, fixtures, log); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	// 4. Start Server
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("port", cfg.Port).Msg("server starting")
		return app.Listen(":" + cfg.Port)
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.ShutdownWithContext(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return err
	}
	log.Info().Msg("server exited cleanly")
	return nil
}

func splitOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
