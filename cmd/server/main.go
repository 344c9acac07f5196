package main

import (
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/benbeisheim/variantchess-backend/internal/config"
	"github.com/benbeisheim/variantchess-backend/internal/controller"
	"github.com/benbeisheim/variantchess-backend/internal/service"
	"github.com/benbeisheim/variantchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hashicorp/go-multierror"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "results directory; empty keeps results in memory")
	flag.StringVar(&cfg.Layout, "layout", cfg.Layout, "default layout for new games (standard or mega)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "trace, debug, info, warn or error")
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	log.SetLevel(level)

	store, err := storage.Open(cfg.DataDir)
	if err != nil {
		log.Fatalw("failed to open results store", "error", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "variantchess",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.Origins(), ","),
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	gameManager := service.NewGameManager(store, cfg.Layout)
	gameService := service.NewGameService(gameManager, store)

	// Initialize controllers
	gameController := controller.NewGameController(gameService)
	wsController := controller.NewWebSocketController(gameService)
	controller.SetupRoutes(app, gameController, wsController, cfg.Origins())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Errorw("server shutdown failed", "error", err)
		}
	}()

	log.Infow("listening", "addr", cfg.Addr, "layout", cfg.Layout, "dataDir", cfg.DataDir)
	listenErr := app.Listen(cfg.Addr)

	var result *multierror.Error
	if listenErr != nil {
		result = multierror.Append(result, listenErr)
	}
	if err := gameService.Shutdown(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := store.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if err := result.ErrorOrNil(); err != nil {
		log.Fatalw("server stopped with errors", "error", err)
	}
}
