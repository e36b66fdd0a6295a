package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog/internal/app"
	"blog/internal/auth"
	"blog/internal/db"
	httpx "blog/internal/http"
	"blog/internal/store"
)

func main() {
	cfg := app.LoadConfig()
	d, err := db.Open(cfg.DBDriver, cfg.DatabaseURL)
	app.Must(err)
	defer d.Close()
	app.Must(db.Migrate(d, cfg.DBDriver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New(d)
	auth.PromoteAdmins(ctx, st, cfg.AdminUsernames)
	go auth.SweepExpiredSessions(ctx, st, time.Hour)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpx.NewServer(st, cfg),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("listening on %s (driver=%s)", cfg.Addr, cfg.DBDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
