// ABOUTME: MCP server assembly
// ABOUTME: Registers every tool, resource, and prompt against one engine
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/touchbase/schedule"
)

// NewServer builds an MCP server exposing the engine.
func NewServer(engine *schedule.Engine, version string) *mcp.Server {
	communicationHandlers := NewCommunicationHandlers(engine)
	companyHandlers := NewCompanyHandlers(engine)
	resourceHandlers := NewResourceHandlers(engine)
	promptHandlers := NewPromptHandlers(engine)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "touchbase",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_communication",
		Description: "Log a communication with a company and reschedule its next touchpoint",
	}, communicationHandlers.LogCommunication)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_communication",
		Description: "Change the method, date, or notes of a logged communication",
	}, communicationHandlers.UpdateCommunication)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_communication",
		Description: "Delete a logged communication",
	}, communicationHandlers.DeleteCommunication)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "company_schedule",
		Description: "Show a company's history, next touchpoints, and overdue status",
	}, communicationHandlers.CompanySchedule)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_companies",
		Description: "List companies with their schedule status, optionally filtered by name or status",
	}, companyHandlers.ListCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Add a company with a contact cadence in days",
	}, companyHandlers.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "notifications",
		Description: "List companies that are overdue or due today",
	}, companyHandlers.Notifications)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_methods",
		Description: "List communication methods in preferred order",
	}, companyHandlers.ListMethods)

	for _, r := range []struct{ name, description string }{
		{"companies", "All companies with schedule status"},
		{"methods", "Communication methods"},
		{"notifications", "Overdue and due-today companies"},
	} {
		server.AddResource(&mcp.Resource{
			URI:         ResourceScheme + r.name,
			Name:        r.name,
			Description: r.description,
			MIMEType:    "application/json",
		}, resourceHandlers.ReadResource)
	}

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: ResourceScheme + "companies/{id}",
		Name:        "company",
		Description: "A company with its communication history",
		MIMEType:    "application/json",
	}, resourceHandlers.ReadResource)

	server.AddPrompt(&mcp.Prompt{
		Name:        "follow-up-suggestions",
		Description: "Plan outreach for overdue and due companies",
	}, promptHandlers.GetPrompt)

	server.AddPrompt(&mcp.Prompt{
		Name:        "company-overview",
		Description: "Summarize one company's relationship history",
		Arguments: []*mcp.PromptArgument{
			{Name: "company_id", Description: "Company ID", Required: true},
		},
	}, promptHandlers.GetPrompt)

	return server
}
