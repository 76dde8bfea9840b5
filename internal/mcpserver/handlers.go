package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// Handlers holds the handler functions for each MCP tool.
type Handlers struct {
	client *ComplydClient
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(client *ComplydClient) *Handlers {
	return &Handlers{client: client}
}

// HandleQueryFinancialData queries the transaction store.
func (h *Handlers) HandleQueryFinancialData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	f := TransactionFilter{
		Supplier:     req.GetString("supplier", ""),
		Country:      req.GetString("country", ""),
		RiskCategory: req.GetString("risk_category", ""),
		MinAmount:    req.GetString("min_amount", ""),
		StartDate:    req.GetString("start_date", ""),
		EndDate:      req.GetString("end_date", ""),
		Limit:        req.GetInt("limit", 0),
	}

	raw, err := h.client.ListTransactions(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to query transactions: %v", err)), nil
	}

	text, err := formatTransactionList(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse transactions: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleValidateCompliance fetches stored transactions and validates them
// against one policy family without recording anything.
func (h *Handlers) HandleValidateCompliance(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	policyType := req.GetString("policy_type", "aml")

	f := TransactionFilter{
		Country:      req.GetString("country", ""),
		RiskCategory: req.GetString("risk_category", ""),
		Limit:        req.GetInt("limit", 1000),
	}
	listRaw, err := h.client.ListTransactions(ctx, f)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to load transactions: %v", err)), nil
	}

	var list struct {
		Transactions json.RawMessage `json:"transactions"`
		Count        int             `json:"count"`
	}
	if err := json.Unmarshal(listRaw, &list); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse transactions: %v", err)), nil
	}
	if list.Count == 0 {
		return mcp.NewToolResultText("No transactions match the requested scope; nothing to validate."), nil
	}

	raw, err := h.client.ValidateCompliance(ctx, policyType, list.Transactions)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Validation failed: %v", err)), nil
	}

	text, err := formatValidationResult(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse validation result: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleGenerateAuditReport runs the full reporting pipeline.
func (h *Handlers) HandleGenerateAuditReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportType := req.GetString("report_type", "")
	if reportType == "" {
		return mcp.NewToolResultError("report_type is required"), nil
	}

	raw, err := h.client.GenerateReport(ctx,
		reportType,
		req.GetString("policy_type", ""),
		req.GetString("start_date", ""),
		req.GetString("end_date", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Report generation failed: %v", err)), nil
	}

	text, err := formatReport(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse report: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleCheckComplianceStatus reports the current aggregate status.
func (h *Handlers) HandleCheckComplianceStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.ComplianceStatus(ctx,
		req.GetString("policy_type", ""),
		req.GetString("severity_threshold", ""),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Status check failed: %v", err)), nil
	}

	text, err := formatStatus(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse status: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

// HandleGetAuditTrail lists past compliance runs.
func (h *Handlers) HandleGetAuditTrail(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := h.client.AuditTrail(ctx,
		req.GetString("report_type", ""),
		req.GetString("from", ""),
		req.GetString("to", ""),
		req.GetInt("limit", 0),
	)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Audit trail query failed: %v", err)), nil
	}

	text, err := formatAuditTrail(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to parse audit trail: %v", err)), nil
	}
	return mcp.NewToolResultText(text), nil
}
