package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"stargate/internal/audit"
	"stargate/internal/duty"
	dutyservice "stargate/internal/duty/service"
	dutystore "stargate/internal/duty/store"
	"stargate/internal/person"
	personservice "stargate/internal/person/service"
	personstore "stargate/internal/person/store"
	"stargate/internal/platform/config"
	"stargate/internal/platform/httpserver"
	"stargate/internal/platform/logger"
	"stargate/internal/platform/metrics"
	"stargate/internal/platform/middleware"
)

// main wires dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	m := metrics.New()

	var (
		people    personservice.Store
		directory dutyservice.PersonDirectory
		duties    dutyservice.Store
		dutyTx    dutyservice.StoreTx
		auditSink audit.Store
	)

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Error("failed to open database", "error", err.Error())
			os.Exit(1)
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			log.Error("failed to reach database", "error", err.Error())
			os.Exit(1)
		}

		pg := personstore.NewPostgres(db)
		people = pg
		directory = pg
		duties = dutystore.NewPostgres(db)
		dutyTx = dutystore.NewPostgresTx(db)
		auditSink = audit.NewPostgresStore(db)
		log.Info("using postgres stores")
	} else {
		mem := personstore.NewInMemory()
		people = mem
		directory = mem
		duties = dutystore.NewInMemory()
		dutyTx = dutyservice.NewShardedTx()
		auditSink = audit.NewInMemoryStore()
		log.Info("DATABASE_URL not set; using in-memory stores")
	}

	auditor := audit.NewService(auditSink, log)
	personSvc := person.NewService(people, auditor, m)
	dutySvc := duty.NewService(directory, duties, dutyTx, auditor, m)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Timeout(15 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	person.NewHandler(personSvc, log).Register(r)
	duty.NewHandler(dutySvc, log).Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting stargate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}
