package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

// Tool definitions for the complyd MCP server.
// Descriptions are what the LLM reads to decide which tool to use.

var ToolQueryFinancialData = mcp.NewTool("query_financial_data",
	mcp.WithDescription(
		"Query supplier payment transactions from the financial data store. "+
			"Returns transaction records with amounts in EUR, supplier details, payment "+
			"methods, and risk categories. Use this to inspect the data before running "+
			"a compliance check."),
	mcp.WithString("supplier",
		mcp.Description("Filter by exact supplier name")),
	mcp.WithString("country",
		mcp.Description("Filter by supplier country (e.g. 'Germany', 'Russia')")),
	mcp.WithString("risk_category",
		mcp.Description("Filter by supplier risk category"),
		mcp.Enum("LOW", "MEDIUM", "HIGH", "PEP")),
	mcp.WithString("min_amount",
		mcp.Description("Only transactions at or above this EUR amount (e.g. '10000')")),
	mcp.WithString("start_date",
		mcp.Description("Only transactions on or after this date (RFC 3339, e.g. '2026-01-01T00:00:00Z')")),
	mcp.WithString("end_date",
		mcp.Description("Only transactions on or before this date (RFC 3339)")),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of transactions to return (default 100)")),
)

var ToolValidateCompliance = mcp.NewTool("validate_compliance",
	mcp.WithDescription(
		"Validate stored transactions against a compliance policy family. "+
			"Evaluates every transaction against the active rule catalog and returns "+
			"the violations found plus an aggregate COMPLIANT/NON_COMPLIANT verdict. "+
			"This is a dry run: nothing is recorded in the audit trail."),
	mcp.WithString("policy_type",
		mcp.Description("Policy family to validate against (default 'aml')"),
		mcp.Enum("aml", "financial", "regulatory")),
	mcp.WithString("country",
		mcp.Description("Restrict the run to suppliers in this country")),
	mcp.WithString("risk_category",
		mcp.Description("Restrict the run to this supplier risk category"),
		mcp.Enum("LOW", "MEDIUM", "HIGH", "PEP")),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of transactions to evaluate (default 1000)")),
)

var ToolGenerateAuditReport = mcp.NewTool("generate_audit_report",
	mcp.WithDescription(
		"Generate a full audit report over stored transactions and archive it in "+
			"the audit trail. Returns the report with violations, severity breakdown, "+
			"compliance rate, recommendations, and the run ID it was archived under."),
	mcp.WithString("report_type",
		mcp.Required(),
		mcp.Description("Kind of audit report to generate"),
		mcp.Enum("aml", "compliance", "financial", "risk")),
	mcp.WithString("policy_type",
		mcp.Description("Policy family to audit. Defaults based on report_type."),
		mcp.Enum("aml", "financial", "regulatory")),
	mcp.WithString("start_date",
		mcp.Description("Start of the reporting period (RFC 3339)")),
	mcp.WithString("end_date",
		mcp.Description("End of the reporting period (RFC 3339)")),
)

var ToolCheckComplianceStatus = mcp.NewTool("check_compliance_status",
	mcp.WithDescription(
		"Check the current aggregate compliance status of all stored transactions. "+
			"Returns the overall verdict, violation counts by severity, and optionally "+
			"only the violations at or above a severity threshold."),
	mcp.WithString("policy_type",
		mcp.Description("Policy family to check (default 'aml')"),
		mcp.Enum("aml", "financial", "regulatory")),
	mcp.WithString("severity_threshold",
		mcp.Description("Only list violations at or above this severity"),
		mcp.Enum("low", "medium", "high", "critical")),
)

var ToolGetAuditTrail = mcp.NewTool("get_audit_trail",
	mcp.WithDescription(
		"Retrieve the history of past compliance runs from the audit trail, "+
			"newest first. Each entry shows when a report was generated, what it "+
			"covered, and its overall verdict."),
	mcp.WithString("report_type",
		mcp.Description("Filter entries by report type"),
		mcp.Enum("aml", "compliance", "financial", "risk")),
	mcp.WithString("from",
		mcp.Description("Only entries recorded on or after this time (RFC 3339)")),
	mcp.WithString("to",
		mcp.Description("Only entries recorded on or before this time (RFC 3339)")),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of entries to return (default 50)")),
)
