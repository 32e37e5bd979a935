package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/safaribooking/api"
	"github.com/Domenick1991/safaribooking/config"
	dashboardapi "github.com/Domenick1991/safaribooking/internal/api/dashboard_service_api"
	"github.com/Domenick1991/safaribooking/internal/auth"
	"github.com/Domenick1991/safaribooking/internal/bootstrap"
	"github.com/Domenick1991/safaribooking/internal/cache"
	"github.com/Domenick1991/safaribooking/internal/kafka"
	"github.com/Domenick1991/safaribooking/internal/metrics"
	"github.com/Domenick1991/safaribooking/internal/service/booking"
	"github.com/Domenick1991/safaribooking/internal/service/catalog"
	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/Domenick1991/safaribooking/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"google.golang.org/grpc"
)

type publisher interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var storeOpts []store.Option
	if cfg.Store.PasswordCost > 0 {
		storeOpts = append(storeOpts, store.WithPasswordCost(cfg.Store.PasswordCost))
	}
	if !cfg.Store.Seed {
		storeOpts = append(storeOpts, store.WithoutSeed())
	}
	st, err := store.New(storeOpts...)
	if err != nil {
		log.Fatalf("init store: %v", err)
	}

	// No brokers means no events: services skip publishing on a nil producer.
	var producer publisher
	if len(cfg.Kafka.Brokers) > 0 {
		p := kafka.NewProducer(cfg.Kafka.Brokers)
		defer p.Close()
		if err := p.CheckConnection(ctx); err != nil {
			log.Printf("[APP] msg=kafka not reachable yet: %v", err)
		}
		producer = p
	}

	sessions := newSessions(ctx, cfg.Redis)

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		secret = uuid.NewString()
	}
	tokens := auth.NewTokens(secret, cfg.Auth.TokenTTL())

	userService := users.NewUserService(st.Users, tokens, sessions)
	bookingService := booking.NewBookingService(
		st,
		producer,
		cfg.Kafka.EventsTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	reportService := reports.NewReportService(st)

	m := metrics.New()
	m.RegisterCollections(map[string]metrics.Sizer{
		"agents":     st.Agents,
		"suppliers":  st.Suppliers,
		"excursions": st.Excursions,
		"vehicles":   st.Vehicles,
		"guests":     st.Guests,
		"bookings":   st.Bookings,
		"payments":   st.Payments,
		"users":      st.Users,
	})

	if cfg.HTTP.GinMode != "" {
		gin.SetMode(cfg.HTTP.GinMode)
	}
	router := api.NewRouter(api.Services{
		Catalog:  catalog.NewServices(st, producer, cfg.Kafka.EventsTopic),
		Bookings: bookingService,
		Users:    userService,
		Auth:     userService,
		Reports:  reportService,
	}, api.RouterOptions{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		AuthEnabled:    cfg.Auth.Enabled,
		Metrics:        m,
	})

	var grpcOpts []grpc.ServerOption
	if cfg.Auth.Enabled {
		grpcOpts = append(grpcOpts, grpc.UnaryInterceptor(dashboardapi.AuthInterceptor(userService)))
	}

	if err := bootstrap.Run(ctx, cfg, router, dashboardapi.NewServer(reportService), grpcOpts...); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newSessions(ctx context.Context, cfg config.RedisConfig) users.Sessions {
	if cfg.Addr == "" {
		log.Printf("[APP] msg=redis not configured, sessions kept in memory")
		return cache.NewMemorySessions()
	}
	redisSessions := cache.NewRedisSessions(cfg)
	if err := redisSessions.Ping(ctx); err != nil {
		log.Printf("[APP] addr=%s msg=redis ping failed: %v", cfg.Addr, err)
	}
	return redisSessions
}
