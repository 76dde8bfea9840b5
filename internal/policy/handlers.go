package policy

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes read-only catalog endpoints.
type Handler struct {
	provider *Provider
}

// NewHandler creates a new policy handler.
func NewHandler(provider *Provider) *Handler {
	return &Handler{provider: provider}
}

// RegisterRoutes sets up catalog routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/policies", h.ListPolicies)
	r.GET("/policies/:type", h.ListPoliciesByType)
}

// ListPolicies handles GET /v1/policies
func (h *Handler) ListPolicies(c *gin.Context) {
	catalog := h.provider.Current()

	byType := make(map[string][]Rule, len(Types()))
	for _, t := range Types() {
		byType[string(t)] = catalog.RulesFor(t)
	}

	c.JSON(http.StatusOK, gin.H{
		"policies":    byType,
		"total_rules": catalog.Len(),
	})
}

// ListPoliciesByType handles GET /v1/policies/:type
func (h *Handler) ListPoliciesByType(c *gin.Context) {
	t, err := ParseType(c.Param("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "unknown_policy_type",
			"message": err.Error(),
		})
		return
	}

	rules := h.provider.Current().RulesFor(t)
	c.JSON(http.StatusOK, gin.H{
		"policy_type": t,
		"rules":       rules,
		"count":       len(rules),
	})
}
