package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"
	"weatherd/internal/controllers"
	"weatherd/internal/models"
	"weatherd/internal/providers"
	"weatherd/internal/services"
	"weatherd/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
	logger    providers.Logger
}

// Close releases the log files. NewApp closes them itself when it fails.
func (a *App) Close() {
	a.logger.Close()
}

func NewHandler(healthController *controllers.HealthController, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) (http.Handler, error) {
	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	compressed, err := providers.CompressionMiddleware(apiMux)
	if err != nil {
		return nil, err
	}
	instrumentedAPI := providers.MetricsMiddleware(metrics, logger, router, compressed)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)
	return mux, nil
}

func NewApp(handler http.Handler, service services.ScreenStateServiceInterface, conf *structures.Config, logger providers.Logger) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	unsubscribe := service.Subscribe(func(state models.ScreenState) {
		logger.Debugf(providers.TypeApp, "Screen state -> %s (query #%d)", state.Phase, state.Sequence)
	})
	defer unsubscribe()

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      handler,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		logger: logger,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		service.Close()
		logger.Errorf(providers.TypeApp, "Server error: %s", err)
		logger.Close()
		return nil, fmt.Errorf("server error: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := app.WebServer.Shutdown(ctx)
	service.Close()
	if err != nil {
		logger.Errorf(providers.TypeApp, "Shutdown failed: %s", err)
		logger.Close()
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
