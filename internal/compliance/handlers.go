package compliance

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/complyd/complyd/internal/audittrail"
	"github.com/complyd/complyd/internal/policy"
	"github.com/complyd/complyd/internal/transactions"
	"github.com/complyd/complyd/internal/validation"
)

// Handler exposes the compliance validation and reporting endpoints.
type Handler struct {
	service *Service
	txns    transactions.Store
}

// NewHandler creates a new compliance handler.
func NewHandler(service *Service, txns transactions.Store) *Handler {
	return &Handler{service: service, txns: txns}
}

// RegisterRoutes sets up compliance routes.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/compliance/validate", h.ValidateTransactions)
	r.POST("/compliance/reports", h.GenerateReport)
	r.GET("/compliance/status", h.ComplianceStatus)
}

// ---------------------------------------------------------------------------
// POST /v1/compliance/validate
// ---------------------------------------------------------------------------

type validateRequest struct {
	PolicyType   string                     `json:"policyType" binding:"required"`
	Transactions []transactions.Transaction `json:"transactions" binding:"required"`
}

// ValidateTransactions evaluates caller-supplied transactions against one
// policy family and returns violations plus the aggregate status. Nothing
// is recorded in the audit trail.
func (h *Handler) ValidateTransactions(c *gin.Context) {
	var req validateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err.Error())
		return
	}

	policyType, err := policy.ParseType(req.PolicyType)
	if err != nil {
		badRequest(c, "unknown_policy_type", err.Error())
		return
	}

	violations, status, err := h.service.Validate(c.Request.Context(), req.Transactions, policyType)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			badRequest(c, "invalid_request", verr.Reason)
			return
		}
		internalError(c, err)
		return
	}

	if violations == nil {
		violations = []policy.Violation{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     status,
		"violations": violations,
	})
}

// ---------------------------------------------------------------------------
// POST /v1/compliance/reports
// ---------------------------------------------------------------------------

type reportRequest struct {
	ReportType string `json:"reportType" binding:"required"`
	PolicyType string `json:"policyType"`
	Scope      string `json:"scope"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	Limit      int    `json:"limit"`
}

// GenerateReport runs the full pipeline over stored transactions: load
// the batch in scope, validate it, synthesize the report, and archive it
// in the audit trail. A failed archive still returns the report, marked
// unarchived.
func (h *Handler) GenerateReport(c *gin.Context) {
	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid_request", err.Error())
		return
	}

	reportType, ok := ParseReportType(req.ReportType)
	if !ok {
		badRequest(c, "unknown_report_type", fmt.Sprintf("unknown report type %q", req.ReportType))
		return
	}

	policyType := defaultPolicyFor(reportType)
	if req.PolicyType != "" {
		parsed, err := policy.ParseType(req.PolicyType)
		if err != nil {
			badRequest(c, "unknown_policy_type", err.Error())
			return
		}
		policyType = parsed
	}

	f := transactions.Filter{Limit: validation.MaxQueryLimit}
	if req.Limit > 0 {
		limit, err := validation.Limit(req.Limit, validation.MaxQueryLimit)
		if err != nil {
			badRequest(c, "invalid_request", err.Error())
			return
		}
		f.Limit = limit
	}
	if req.StartDate != "" {
		t, err := validation.Timestamp("startDate", req.StartDate)
		if err != nil {
			badRequest(c, "invalid_request", err.Error())
			return
		}
		f.StartDate = t
	}
	if req.EndDate != "" {
		t, err := validation.Timestamp("endDate", req.EndDate)
		if err != nil {
			badRequest(c, "invalid_request", err.Error())
			return
		}
		f.EndDate = t
	}

	txns, err := h.txns.List(c.Request.Context(), f)
	if err != nil {
		internalError(c, err)
		return
	}

	scope := req.Scope
	if scope == "" {
		scope = fmt.Sprintf("%d stored transactions", len(txns))
	}

	report, entry, err := h.service.Run(c.Request.Context(), txns, policyType, reportType, describePeriod(f), scope)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			if errors.Is(err, ErrEmptyTransactions) {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error":   "empty_scope",
					"message": "no transactions match the requested scope",
				})
				return
			}
			badRequest(c, "invalid_request", verr.Reason)
			return
		}

		var serr *audittrail.StoreError
		if errors.As(err, &serr) && report != nil {
			// Evaluation completed; only the archive write failed.
			c.JSON(http.StatusOK, gin.H{
				"report":   report,
				"archived": false,
				"warning":  "audit trail write failed: " + serr.Error(),
			})
			return
		}

		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"report":   report,
		"archived": true,
		"runId":    entry.ID,
	})
}

// ---------------------------------------------------------------------------
// GET /v1/compliance/status
// ---------------------------------------------------------------------------

// ComplianceStatus evaluates the stored transactions and reports the
// aggregate status. The optional severity_threshold parameter limits the
// returned violations to that severity or above; the status itself always
// reflects the full violation set.
func (h *Handler) ComplianceStatus(c *gin.Context) {
	policyType := policy.TypeAML
	if v := c.Query("policy_type"); v != "" {
		parsed, err := policy.ParseType(v)
		if err != nil {
			badRequest(c, "unknown_policy_type", err.Error())
			return
		}
		policyType = parsed
	}

	txns, err := h.txns.List(c.Request.Context(), transactions.Filter{Limit: validation.MaxQueryLimit})
	if err != nil {
		internalError(c, err)
		return
	}
	if len(txns) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"status": Status{
				PolicyType: policyType,
				Overall:    Compliant,
			},
			"violations": []policy.Violation{},
		})
		return
	}

	violations, status, err := h.service.Validate(c.Request.Context(), txns, policyType)
	if err != nil {
		internalError(c, err)
		return
	}

	resp := gin.H{"status": status}
	if v := c.Query("severity_threshold"); v != "" {
		floor, err := policy.ParseSeverity(v)
		if err != nil {
			badRequest(c, "invalid_request", err.Error())
			return
		}
		resp["severity_threshold"] = floor
		resp["violations"] = FilterBySeverity(violations, floor)
	} else {
		if violations == nil {
			violations = []policy.Violation{}
		}
		resp["violations"] = violations
	}

	c.JSON(http.StatusOK, resp)
}

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

// defaultPolicyFor maps a report type to the policy family it audits
// when the caller does not name one explicitly.
func defaultPolicyFor(rt ReportType) policy.Type {
	switch rt {
	case ReportFinancial:
		return policy.TypeFinancial
	case ReportCompliance:
		return policy.TypeRegulatory
	default:
		return policy.TypeAML
	}
}

func describePeriod(f transactions.Filter) string {
	switch {
	case !f.StartDate.IsZero() && !f.EndDate.IsZero():
		return f.StartDate.Format(time.RFC3339) + " to " + f.EndDate.Format(time.RFC3339)
	case !f.StartDate.IsZero():
		return "since " + f.StartDate.Format(time.RFC3339)
	case !f.EndDate.IsZero():
		return "until " + f.EndDate.Format(time.RFC3339)
	}
	return "full history"
}

func badRequest(c *gin.Context, code, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   code,
		"message": msg,
	})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "internal_error",
		"message": err.Error(),
	})
}
