package api

import (
	"log"
	"net/http"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/metrics"
	"github.com/Domenick1991/safaribooking/internal/service/booking"
	"github.com/Domenick1991/safaribooking/internal/service/catalog"
	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/Domenick1991/safaribooking/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Services struct {
	Catalog  catalog.Services
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Auth     users.AuthUseCase
	Reports  reports.ReportUseCase
}

type RouterOptions struct {
	AllowedOrigins []string
	AuthEnabled    bool
	// Metrics is optional; nil disables the middleware and /metrics.
	Metrics *metrics.Metrics
}

func NewRouter(svc Services, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Logger(), gin.Recovery(), cors.New(corsConfig(opts.AllowedOrigins)))
	if opts.Metrics != nil {
		r.Use(Metrics(opts.Metrics))
		r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))
	}
	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("[HTTP] msg=failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not_found", "route not found")
	})
	r.GET("/health", health)

	api := r.Group("/api")
	NewAuthHandler(svc.Auth).Register(api.Group("/auth"))

	protected := api.Group("")
	if opts.AuthEnabled {
		protected.Use(Auth(svc.Auth))
	}

	NewCRUDHandler[domain.Agent, domain.AgentPatch](svc.Catalog.Agents).Register(protected.Group("/agents"))
	NewCRUDHandler[domain.Supplier, domain.SupplierPatch](svc.Catalog.Suppliers).Register(protected.Group("/suppliers"))
	NewCRUDHandler[domain.Excursion, domain.ExcursionPatch](svc.Catalog.Excursions).Register(protected.Group("/excursions"))
	NewCRUDHandler[domain.Vehicle, domain.VehiclePatch](svc.Catalog.Vehicles).Register(protected.Group("/vehicles"))
	NewCRUDHandler[domain.Guest, domain.GuestPatch](svc.Catalog.Guests).Register(protected.Group("/guests"))

	bookings := protected.Group("/bookings")
	bookingHandler := NewBookingHandler(svc.Bookings)
	bookingHandler.Register(bookings)
	NewCRUDHandler[domain.Booking, domain.BookingPatch](svc.Bookings).Register(bookings)
	bookingHandler.RegisterPayments(protected.Group("/payments"))

	NewUserHandler(svc.Users).Register(protected.Group("/users"))
	NewReportHandler(svc.Reports).Register(protected)

	return r
}

// corsConfig allows the listed origins, or any origin when none are configured.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}
