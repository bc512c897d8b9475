package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ibeloyar/backoffice/internal/config"
	"github.com/ibeloyar/backoffice/internal/controller/admin"
	"github.com/ibeloyar/backoffice/internal/gateway"
	"github.com/ibeloyar/backoffice/internal/model"
	"github.com/ibeloyar/backoffice/internal/repository/pg"
	"github.com/ibeloyar/backoffice/internal/service"
	"github.com/ibeloyar/backoffice/internal/store"
	"github.com/ibeloyar/backoffice/pgk/logger"
	"github.com/ibeloyar/backoffice/pgk/retryablehttp"
	"go.uber.org/zap"

	httpController "github.com/ibeloyar/backoffice/internal/controller/http"
)

const shutdownTimeout = 5 * time.Second

// RunAPI поднимает REST API заказов и продуктов поверх PostgreSQL
func RunAPI(cfg config.Config, lg *zap.SugaredLogger) error {
	storage, err := pg.New(cfg.DatabaseURI, lg)
	if err != nil {
		return err
	}

	router := newRouter(lg)

	s := service.New(storage)

	handlers := httpController.New(s, lg)
	router = httpController.InitRoutes(router, handlers)

	if err := serve(cfg.RunAddress, router, lg); err != nil {
		return err
	}

	if err := storage.Shutdown(); err != nil {
		return fmt.Errorf("shutdown (repo) error: %v", err)
	}

	lg.Info("api shutdown success")
	return nil
}

// RunAdmin поднимает консоль администратора, которая ходит в REST API по cfg.APIURL
func RunAdmin(cfg config.Config, lg *zap.SugaredLogger) error {
	client := retryablehttp.NewRetryableClient(retryablehttp.RetryConfig{
		MaxRetries: cfg.APIRetries,
	})

	orders := store.NewSession[model.Order, model.OrderState](
		gateway.NewOrders(client, cfg.APIURL, lg), nil, admin.OrderDeletePrompt,
	)
	products := store.NewSession[model.Product, model.ProductState](
		gateway.NewProducts(client, cfg.APIURL, lg), nil, admin.ProductDeletePrompt,
	)

	console, err := admin.New(orders, products, lg)
	if err != nil {
		return err
	}

	router := admin.InitRoutes(newRouter(lg), console)

	if err := serve(cfg.AdminAddress, router, lg); err != nil {
		return err
	}

	lg.Info("admin shutdown success")
	return nil
}

func newRouter(lg *zap.SugaredLogger) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(logger.LoggingMiddleware(lg))
	router.Use(middleware.Recoverer)

	return router
}

// serve блокируется до SIGINT/SIGTERM, затем мягко останавливает сервер
func serve(addr string, handler http.Handler, lg *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	signalCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Infof("starting server on %s", addr)

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("server ListenAndServe error: %w", err)
		}
		return nil
	case <-signalCtx.Done():
	}

	lg.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown (server) error: %v", err)
	}

	return nil
}
