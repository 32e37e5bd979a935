package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/safaribooking/internal/domain"
	"github.com/Domenick1991/safaribooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

// BookingHandler adds the booking routes that are not plain CRUD.
type BookingHandler struct {
	service booking.BookingUseCase
	now     func() time.Time
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service, now: time.Now}
}

// Register mounts next to the CRUD routes on the same group.
func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/by-month", h.byMonth)
	router.GET("/:id/payments", h.payments)
}

func (h *BookingHandler) RegisterPayments(router *gin.RouterGroup) {
	router.GET("", h.listPayments)
	router.POST("", h.recordPayment)
	router.DELETE("/:id", h.deletePayment)
}

// byMonth takes month as 1-12 and defaults both parameters to the current month.
func (h *BookingHandler) byMonth(c *gin.Context) {
	now := h.now()
	month, ok := intQuery(c, "month", int(now.Month()))
	if !ok {
		return
	}
	year, ok := intQuery(c, "year", now.Year())
	if !ok {
		return
	}
	rows, err := h.service.BookingsByMonth(c.Request.Context(), time.Month(month), year)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *BookingHandler) payments(c *gin.Context) {
	rows, err := h.service.PaymentsByBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *BookingHandler) listPayments(c *gin.Context) {
	rows, err := h.service.ListPayments(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (h *BookingHandler) recordPayment(c *gin.Context) {
	var input domain.Payment
	if !bindJSON(c, &input) {
		return
	}
	payment, err := h.service.RecordPayment(c.Request.Context(), input)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (h *BookingHandler) deletePayment(c *gin.Context) {
	if err := h.service.DeletePayment(c.Request.Context(), c.Param("id")); err != nil {
		respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func intQuery(c *gin.Context, key string, fallback int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", key+": must be an integer")
		return 0, false
	}
	return v, true
}
