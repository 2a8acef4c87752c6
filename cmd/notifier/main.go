package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/ariefcatur/nirmala-invitations/internal/config"
	kafkax "github.com/ariefcatur/nirmala-invitations/internal/kafka"
	"github.com/ariefcatur/nirmala-invitations/internal/notify"
	"github.com/ariefcatur/nirmala-invitations/internal/orders"
	"github.com/ariefcatur/nirmala-invitations/internal/redisx"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.EventsEnabled() {
		log.Fatal("notifier needs KAFKA_BROKERS")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Redis:       rdb,
		Sender:      notify.LogSender{},
		ServiceName: cfg.ServiceName + "-notifier",
	}

	cons := kafkax.NewConsumer(cfg.KafkaBrokers, cfg.NotifierGroup, orders.TopicOrderSubmitted, cfg.NotifierWorkers)
	log.Printf("notifier consumer started: group=%s topic=%s workers=%d",
		cfg.NotifierGroup, orders.TopicOrderSubmitted, cfg.NotifierWorkers)
	if err := cons.Start(ctx, svc.HandleOrderSubmitted); err != nil {
		log.Fatalf("consumer exit: %v", err)
	}
	log.Println("notifier stopped")
}
