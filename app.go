// @title           IP Reverse App
// @version         1.0
// @description     Reflects the caller's apparent IP address with its segments reversed.

// @host      localhost:8080
// @BasePath  /
// @schemes   http
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/vit0-9/ip-reverse-app/handlers"
	"github.com/vit0-9/ip-reverse-app/pkg/utils"
)

const healthPath = "/health"

// App encapsulates all the components of the application
type App struct {
	Router           *gin.Engine
	ReflectorHandler *handlers.ReflectorHandlers
	HealthHandler    *handlers.HealthHandler

	logger *log.Logger
	server *http.Server
}

// NewApp creates and initializes a new application instance
func NewApp(logger *log.Logger, geo *utils.GeoLocator) *App {
	router := gin.New()
	// Unmatched paths, including "/health/", must reach the catch-all
	// instead of being redirected.
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(gin.Recovery(), handlers.RequestLogger(logger, healthPath))

	app := &App{
		Router:           router,
		ReflectorHandler: handlers.NewReflectorHandlers(logger, geo),
		HealthHandler:    handlers.NewHealthHandler(),
		logger:           logger,
	}
	app.server = &http.Server{Handler: router}

	app.setupRoutes()
	return app
}

// setupRoutes defines all the application routes
func (app *App) setupRoutes() {
	app.Router.GET(healthPath, app.HealthHandler.HealthCheckHandler)
	app.Router.HEAD(healthPath, app.HealthHandler.HealthCheckHandler)

	for _, method := range handlers.ReflectMethods {
		app.Router.Handle(method, "/", app.ReflectorHandler.RootHandler)
	}
	app.Router.HEAD("/", app.ReflectorHandler.RootHandler)
	app.Router.OPTIONS("/", handlers.OptionsHandler)
	app.Router.OPTIONS(healthPath, handlers.OptionsHandler)

	// Anything else, any depth. Also catches non-GET requests to /health.
	app.Router.NoRoute(app.ReflectorHandler.CatchAllHandler)
}

// Start runs the HTTP server and blocks until it stops. A clean Shutdown
// returns nil.
func (app *App) Start(addr string) error {
	app.server.Addr = addr
	app.logger.Info("API server starting", "addr", addr)
	if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return nil
}

// Shutdown gracefully stops a server started with Start.
func (app *App) Shutdown(ctx context.Context) error {
	return app.server.Shutdown(ctx)
}
