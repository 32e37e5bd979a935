package api

import (
	"fmt"
	"net/http"

	"github.com/Domenick1991/safaribooking/internal/service/reports"
	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	service reports.ReportUseCase
}

func NewReportHandler(service reports.ReportUseCase) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) Register(router *gin.RouterGroup) {
	router.GET("/analytics", h.analytics)
	router.GET("/dashboard", h.dashboard)
	router.GET("/reports", h.report)
	router.GET("/reports/export", h.export)
}

func (h *ReportHandler) analytics(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// dashboard and report take an optional ?year=, defaulting to the current year.
func (h *ReportHandler) dashboard(c *gin.Context) {
	year, ok := intQuery(c, "year", 0)
	if !ok {
		return
	}
	d, err := h.service.Dashboard(c.Request.Context(), year)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *ReportHandler) report(c *gin.Context) {
	year, ok := intQuery(c, "year", 0)
	if !ok {
		return
	}
	r, err := h.service.Report(c.Request.Context(), year)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

func (h *ReportHandler) export(c *gin.Context) {
	out, err := h.service.Export(c.Request.Context(), c.DefaultQuery("format", reports.FormatJSON))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Body)
}
