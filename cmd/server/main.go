package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"

	"useradmin/docs"
	"useradmin/internal/cache"
	"useradmin/internal/config"
	"useradmin/internal/handler"
	"useradmin/internal/repository"
	"useradmin/internal/router"
	"useradmin/internal/service"
)

const shutdownTimeout = 10 * time.Second

// @title User Directory API
// @version 1.0
// @description CRUD API over a single collection of users.
// @host localhost:4000
// @BasePath /api
// @schemes http
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if cfg.ResetDB {
		log.Println("RESET_DB=true detected, dropping stored users...")
	}
	repo, closeStore, err := repository.Open(cfg, cfg.ResetDB)
	if err != nil {
		log.Fatalf("store init: %v", err)
	}
	defer closeStore()
	log.Printf("Using %s store", cfg.StoreDriver)

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Printf("Warning: redis unreachable, serving without cache: %v", err)
	}

	userService := service.NewUserService(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestID())
	if err := router.Register(e, userHandler); err != nil {
		log.Fatalf("router: %v", err)
	}

	docs.SwaggerInfo.Host = swaggerHost(cfg)
	log.Printf("Swagger documentation available at: http://%s/swagger/index.html", docs.SwaggerInfo.Host)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Println("Server stopped")
}

// swaggerHost strips any scheme from SWAGGER_HOST; the default is the local listener.
func swaggerHost(cfg *config.Config) string {
	if cfg.SwaggerHost == "" {
		return "localhost:" + cfg.ServerPort
	}
	host := strings.TrimPrefix(cfg.SwaggerHost, "http://")
	return strings.TrimPrefix(host, "https://")
}
