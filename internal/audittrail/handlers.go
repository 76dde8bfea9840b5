package audittrail

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler exposes read-only audit trail endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a new audit trail handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes sets up trail routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit-trail", h.QueryTrail)
	r.GET("/audit-trail/:id", h.GetEntry)
}

// QueryTrail handles GET /v1/audit-trail?from=&to=&report_type=&limit=
func (h *Handler) QueryTrail(c *gin.Context) {
	var q Query

	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": "from must be RFC3339",
			})
			return
		}
		q.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid_request",
				"message": "to must be RFC3339",
			})
			return
		}
		q.To = t
	}
	q.ReportType = c.Query("report_type")
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 {
			q.Limit = parsed
		}
	}

	entries, err := h.store.Query(c.Request.Context(), q)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetEntry handles GET /v1/audit-trail/:id and returns the archived
// report snapshot for one run.
func (h *Handler) GetEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "id must be an integer",
		})
		return
	}

	e, err := h.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "no audit trail entry with that run id",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	var report json.RawMessage
	if len(e.Report) > 0 {
		report = json.RawMessage(e.Report)
	}
	c.JSON(http.StatusOK, gin.H{
		"entry":  e,
		"report": report,
	})
}
