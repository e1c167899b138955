package handler

import (
	"net/http"
	"sync"

	"sportshub/config"
	"sportshub/di"
	"sportshub/shared/logger"
)

var (
	mux  http.Handler
	once sync.Once
)

// Handler is the serverless entrypoint; the router is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		mux = di.InitializeService().Handler()
	})

	mux.ServeHTTP(w, r)
}
