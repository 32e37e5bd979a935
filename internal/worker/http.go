package worker

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/safaribooking/internal/repository"
	"github.com/gin-gonic/gin"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

type auditEntryResponse struct {
	ID         int64           `json:"id"`
	EventType  string          `json:"event_type"`
	Entity     string          `json:"entity"`
	EntityID   string          `json:"entity_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// NewRouter serves the worker's operational endpoints: health, metrics and the
// newest audit journal rows.
func NewRouter(w *Worker, metrics http.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if metrics != nil {
		r.GET("/metrics", gin.WrapH(metrics))
	}
	r.GET("/audit", w.recentAudit)
	return r
}

// recentAudit lists the newest journal rows; ?limit= is capped at maxAuditLimit.
func (w *Worker) recentAudit(c *gin.Context) {
	limit := defaultAuditLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer", "code": "validation_error"})
			return
		}
		limit = min(n, maxAuditLimit)
	}

	entries, err := w.audit.Recent(c.Request.Context(), limit)
	if err != nil {
		log.Printf("[WORKER] action=recent_audit msg=query failed: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "code": "internal_error"})
		return
	}

	out := make([]auditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toAuditResponse(e))
	}
	c.JSON(http.StatusOK, out)
}

func toAuditResponse(e repository.AuditEntry) auditEntryResponse {
	resp := auditEntryResponse{
		ID:         e.ID,
		EventType:  e.EventType,
		Entity:     e.Entity,
		EntityID:   e.EntityID,
		OccurredAt: e.OccurredAt,
		RecordedAt: e.RecordedAt,
	}
	if json.Valid(e.Payload) {
		resp.Payload = e.Payload
	}
	return resp
}
