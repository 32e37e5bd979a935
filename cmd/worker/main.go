package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Domenick1991/safaribooking/config"
	"github.com/Domenick1991/safaribooking/internal/email"
	"github.com/Domenick1991/safaribooking/internal/kafka"
	"github.com/Domenick1991/safaribooking/internal/metrics"
	"github.com/Domenick1991/safaribooking/internal/repository"
	"github.com/Domenick1991/safaribooking/internal/worker"
	"github.com/gin-gonic/gin"
	kafkaGo "github.com/segmentio/kafka-go"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatalf("worker needs kafka.brokers")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.OpenPostgres(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer db.Close()

	audit := repository.NewAuditRepository(db)
	if err := audit.EnsureSchema(ctx); err != nil {
		log.Fatalf("ensure audit schema: %v", err)
	}

	m := metrics.New()
	w := worker.New(
		audit,
		email.NewSender(),
		time.Duration(cfg.Worker.AuditRetentionDays)*24*time.Hour,
		worker.WithObserver(m),
	)

	if cfg.Worker.MetricsAddress != "" {
		if cfg.HTTP.GinMode != "" {
			gin.SetMode(cfg.HTTP.GinMode)
		}
		go func() {
			if err := http.ListenAndServe(cfg.Worker.MetricsAddress, worker.NewRouter(w, m.Handler())); err != nil {
				log.Printf("[WORKER] msg=ops server stopped: %v", err)
			}
		}()
	}

	var wg sync.WaitGroup
	consume := func(topic string, handler func(context.Context, kafkaGo.Message) error) {
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, topic)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer consumer.Close()
			if err := consumer.Consume(ctx, handler); err != nil && ctx.Err() == nil {
				log.Printf("[WORKER] topic=%s msg=consumer stopped: %v", topic, err)
			}
		}()
	}
	consume(cfg.Kafka.EventsTopic, w.HandleEvent)
	consume(cfg.Kafka.NotificationsTopic, w.HandleNotification)

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.RetentionSweepHours) * time.Hour)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			if _, err := w.Sweep(ctx); err != nil {
				log.Printf("[WORKER] msg=retention sweep failed: %v", err)
			}
		case <-ctx.Done():
			log.Printf("[WORKER] msg=shutting down")
			wg.Wait()
			return
		}
	}
}
