package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"ratehistory/internal/api"
	"ratehistory/internal/api/middleware"
	"ratehistory/internal/service"
)

const monitoringPath = "/monitoring"

func (app *App) initHTTP(rateService service.RateServiceInterface) {
	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.RequestLoggingMiddleware(app.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/currencies", api.HandleCurrencies(rateService, app.logger))
	r.Route("/rates", func(r chi.Router) {
		r.Get("/series", api.HandleSeries(rateService, app.logger))
		r.Get("/snapshot", api.HandleSnapshot(rateService, app.logger))
		r.Get("/status", api.HandleStatus(rateService))
		r.Post("/refresh", api.HandleRequestRefresh(rateService, app.logger))
	})
	r.Get("/healthz", api.HandleHealthz())
	r.Get("/readyz", api.HandleReadyz(app.db, app.rdbCache, app.rdbAsynq, rateService))

	if app.cfg.Server.ServeSwagger {
		r.Get("/swagger/*", api.SwaggerUIHandler())
		r.Get("/openapi.json", api.OpenAPISpecHandler())
	}

	if app.monitor != nil {
		r.Handle(monitoringPath+"/*", app.monitor)
	}

	app.httpServer = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Server.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
