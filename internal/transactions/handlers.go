package transactions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/complyd/complyd/internal/validation"
)

// Handler exposes read-only transaction query endpoints.
type Handler struct {
	store Store
}

// NewHandler creates a new transactions handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes sets up transaction routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/transactions", h.ListTransactions)
	r.GET("/transactions/:id", h.GetTransaction)
}

// ListTransactions handles GET /v1/transactions with optional filters:
// supplier, country, risk_category, min_amount, max_amount, start_date,
// end_date, limit.
func (h *Handler) ListTransactions(c *gin.Context) {
	f := Filter{
		SupplierName: c.Query("supplier"),
		Country:      c.Query("country"),
		RiskCategory: c.Query("risk_category"),
	}

	if v := c.Query("min_amount"); v != "" {
		d, err := validation.Amount("min_amount", v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.MinAmount = &d
	}
	if v := c.Query("max_amount"); v != "" {
		d, err := validation.Amount("max_amount", v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.MaxAmount = &d
	}
	if v := c.Query("start_date"); v != "" {
		t, err := validation.Timestamp("start_date", v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.StartDate = t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := validation.Timestamp("end_date", v)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.EndDate = t
	}
	if v := c.Query("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, "limit must be an integer")
			return
		}
		limit, err := validation.Limit(parsed, DefaultQueryLimit)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		f.Limit = limit
	}

	txns, err := h.store.List(c.Request.Context(), f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": txns,
		"count":        len(txns),
	})
}

// GetTransaction handles GET /v1/transactions/:id
func (h *Handler) GetTransaction(c *gin.Context) {
	txn, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":   "not_found",
				"message": "no transaction with that id",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, txn)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "invalid_request",
		"message": msg,
	})
}
