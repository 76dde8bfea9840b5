package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Config holds the configuration for connecting to the complyd API.
type Config struct {
	APIURL string // Base URL, e.g. "http://localhost:8080"
}

// ComplydClient is a pure HTTP client for the complyd API.
type ComplydClient struct {
	cfg        Config
	httpClient *http.Client
}

// NewComplydClient creates a new client for the complyd API.
func NewComplydClient(cfg Config) *ComplydClient {
	return &ComplydClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// apiError represents an error response from the API.
type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// doRequest makes an HTTP request to the API and returns the response body.
func (c *ComplydClient) doRequest(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	u, err := url.Parse(c.cfg.APIURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// TransactionFilter carries the query_financial_data filters.
type TransactionFilter struct {
	Supplier     string
	Country      string
	RiskCategory string
	MinAmount    string
	StartDate    string
	EndDate      string
	Limit        int
}

// ListTransactions queries the transaction store.
func (c *ComplydClient) ListTransactions(ctx context.Context, f TransactionFilter) (json.RawMessage, error) {
	q := url.Values{}
	if f.Supplier != "" {
		q.Set("supplier", f.Supplier)
	}
	if f.Country != "" {
		q.Set("country", f.Country)
	}
	if f.RiskCategory != "" {
		q.Set("risk_category", f.RiskCategory)
	}
	if f.MinAmount != "" {
		q.Set("min_amount", f.MinAmount)
	}
	if f.StartDate != "" {
		q.Set("start_date", f.StartDate)
	}
	if f.EndDate != "" {
		q.Set("end_date", f.EndDate)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/transactions", q, nil)
}

// ValidateCompliance evaluates the given transactions against one policy family.
func (c *ComplydClient) ValidateCompliance(ctx context.Context, policyType string, txns json.RawMessage) (json.RawMessage, error) {
	body := map[string]any{
		"policyType":   policyType,
		"transactions": txns,
	}
	return c.doRequest(ctx, http.MethodPost, "/v1/compliance/validate", nil, body)
}

// GenerateReport runs the full reporting pipeline on the server.
func (c *ComplydClient) GenerateReport(ctx context.Context, reportType, policyType, startDate, endDate string) (json.RawMessage, error) {
	body := map[string]any{
		"reportType": reportType,
	}
	if policyType != "" {
		body["policyType"] = policyType
	}
	if startDate != "" {
		body["startDate"] = startDate
	}
	if endDate != "" {
		body["endDate"] = endDate
	}
	return c.doRequest(ctx, http.MethodPost, "/v1/compliance/reports", nil, body)
}

// ComplianceStatus returns the aggregate status of the stored transactions.
func (c *ComplydClient) ComplianceStatus(ctx context.Context, policyType, severityThreshold string) (json.RawMessage, error) {
	q := url.Values{}
	if policyType != "" {
		q.Set("policy_type", policyType)
	}
	if severityThreshold != "" {
		q.Set("severity_threshold", severityThreshold)
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/compliance/status", q, nil)
}

// AuditTrail queries past compliance runs.
func (c *ComplydClient) AuditTrail(ctx context.Context, reportType, from, to string, limit int) (json.RawMessage, error) {
	q := url.Values{}
	if reportType != "" {
		q.Set("report_type", reportType)
	}
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return c.doRequest(ctx, http.MethodGet, "/v1/audit-trail", q, nil)
}
