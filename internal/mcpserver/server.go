package mcpserver

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer creates a configured MCP server with all complyd tools registered.
func NewMCPServer(cfg Config) *server.MCPServer {
	s := server.NewMCPServer("complyd", "0.1.0")
	client := NewComplydClient(cfg)
	h := NewHandlers(client)

	s.AddTool(ToolQueryFinancialData, h.HandleQueryFinancialData)
	s.AddTool(ToolValidateCompliance, h.HandleValidateCompliance)
	s.AddTool(ToolGenerateAuditReport, h.HandleGenerateAuditReport)
	s.AddTool(ToolCheckComplianceStatus, h.HandleCheckComplianceStatus)
	s.AddTool(ToolGetAuditTrail, h.HandleGetAuditTrail)

	return s
}
