package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/nirmala-invitations/internal/auth"
	"github.com/ariefcatur/nirmala-invitations/internal/catalog"
	"github.com/ariefcatur/nirmala-invitations/internal/config"
	"github.com/ariefcatur/nirmala-invitations/internal/httpx"
	kafkax "github.com/ariefcatur/nirmala-invitations/internal/kafka"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/ariefcatur/nirmala-invitations/internal/postgres"
	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat := catalog.Default()

	// Ledger
	var ledger orders.Ledger
	switch cfg.Storage {
	case config.StoragePostgres:
		db, err := postgres.Connect(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("db connect: %v", err)
		}
		defer db.Close()
		repo := &orders.Repo{DB: db}
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("db schema: %v", err)
		}
		ledger = repo
	case config.StorageMemory:
		ledger = orders.NewMemoryLedger()
	default:
		log.Fatalf("unknown STORAGE %q", cfg.Storage)
	}

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers (opsional)
	var submitted, statusChanged orders.Publisher = orders.NopPublisher{}, orders.NopPublisher{}
	var producers []*kafkax.Producer
	prodCtx, cancelProd := context.WithCancel(context.Background())
	defer cancelProd()
	if cfg.EventsEnabled() {
		pSub := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderSubmitted, 1024)
		pSt := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
		pSub.Start(prodCtx)
		pSt.Start(prodCtx)
		submitted, statusChanged = pSub, pSt
		producers = append(producers, pSub, pSt)
	} else {
		log.Println("KAFKA_BROKERS empty, order events disabled")
	}

	if cfg.AdminPasswordHash == "" {
		log.Println("ADMIN_PASSWORD_HASH empty, back-office login disabled")
	}

	engine := &orders.Engine{
		Catalog:       cat,
		Ledger:        ledger,
		Submitted:     submitted,
		StatusChanged: statusChanged,
		ServiceName:   cfg.ServiceName,
	}

	router := httpx.NewRouter()
	(&httpx.DesignsHandler{Catalog: cat}).Register(router)
	oh := &httpx.OrdersHandler{Engine: engine, Redis: rdb}
	oh.Register(router)
	(&httpx.AdminHandler{
		Engine:   engine,
		Admin:    auth.Admin{Username: cfg.AdminUsername, PasswordHash: cfg.AdminPasswordHash},
		Sessions: &auth.Sessions{Redis: rdb, TTL: cfg.SessionTTL},
		Orders:   oh,
	}).Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router, ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("HTTP listening at %s (storage=%s)", cfg.HTTPAddr, cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil {
		log.Printf("server: %v", err)
	}

	// flush event yang tersisa
	for _, p := range producers {
		p.Close()
	}
	for _, p := range producers {
		p.WaitClosed()
	}
}
