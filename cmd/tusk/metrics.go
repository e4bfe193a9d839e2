package main

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/the127/tusk/internal/config"
	"github.com/the127/tusk/internal/logging"
)

func serveMetrics(c config.MetricsConfig) {
	if c.Addr == "" {
		return
	}

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	logging.Logger.Infof("Serving metrics on %s", c.Addr)
	srv := &http.Server{
		Addr:    c.Addr,
		Handler: r,
	}

	go serve(srv)
}

func serve(srv *http.Server) {
	err := srv.ListenAndServe()
	if err != nil {
		panic(fmt.Errorf("error while serving metrics: %w", err))
	}
}
