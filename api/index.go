// Package handler is the serverless entry point: one router per cold start.
package handler

import (
	"net/http"
	"sync"

	"locally/config"
	"locally/di"
	"locally/shared/logger"
	transport "locally/transport/http"
)

var (
	server *transport.HTTP
	once   sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	server.ServeHTTP(w, r)
}
