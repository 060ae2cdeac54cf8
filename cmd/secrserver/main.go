// Command secrserver serves the secretariat lookup and ordering endpoints
// together with pages carrying the admin DOM, backed by SQLite.
// Usage: go run ./cmd/secrserver [-addr :8000] [-db secr.db] [-seed=false]
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raysh454/secrglue/internal/logging"
	"github.com/raysh454/secrglue/internal/server"
)

func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.ListenAddr, "addr", cfg.ListenAddr, "HTTP listen address")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path (:memory: for none)")
	flag.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Load the demo data set")
	flag.BoolVar(&cfg.SecureCookies, "secure-cookies", cfg.SecureCookies, "Mark the csrftoken cookie Secure")
	flag.Parse()

	logger := logging.NewStdoutLogger("secrserver")
	cfg.Logger = logger

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("Server error: %v", err)
	}
	defer srv.Close()

	httpSrv := srv.HTTPServer()
	go func() {
		logger.Info("listening",
			logging.Field{Key: "addr", Value: cfg.ListenAddr},
			logging.Field{Key: "swagger", Value: "/swagger/index.html"})
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Warn("shutdown", logging.Err(err))
	}
}
