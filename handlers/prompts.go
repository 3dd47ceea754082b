// ABOUTME: MCP prompt handlers for outreach planning
// ABOUTME: Follow-up suggestions and per-company overviews built from engine state
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/touchbase/schedule"
)

type PromptHandlers struct {
	engine *schedule.Engine
}

func NewPromptHandlers(engine *schedule.Engine) *PromptHandlers {
	return &PromptHandlers{engine: engine}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(_ context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "follow-up-suggestions":
		return h.getFollowUpSuggestionsPrompt()
	case "company-overview":
		return h.getCompanyOverviewPrompt(request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) getFollowUpSuggestionsPrompt() (*mcp.GetPromptResult, error) {
	sum := h.engine.Notifications()

	var promptText strings.Builder
	promptText.WriteString("Companies that need a touchpoint:\n\n")

	for _, c := range sum.Overdue {
		promptText.WriteString(fmt.Sprintf("- %s (overdue since %s, every %d days)\n",
			c.Name, c.NextCommunication.Format("2006-01-02"), c.CommunicationPeriodicity))
	}
	for _, c := range sum.DueToday {
		promptText.WriteString(fmt.Sprintf("- %s (due today)\n", c.Name))
	}
	if len(sum.Overdue)+len(sum.DueToday) == 0 {
		promptText.WriteString("Everyone is on schedule.\n")
	}

	methods := h.engine.Methods()
	if len(methods) > 0 {
		promptText.WriteString("\nAvailable methods, in preferred order:\n")
		for _, m := range methods {
			mandatory := ""
			if m.Mandatory {
				mandatory = " (mandatory)"
			}
			promptText.WriteString(fmt.Sprintf("%d. %s%s\n", m.Sequence, m.Name, mandatory))
		}
	}

	promptText.WriteString("\nPlease:")
	promptText.WriteString("\n1. Prioritize which companies to reach out to first")
	promptText.WriteString("\n2. Suggest a method and a short message for each")

	return &mcp.GetPromptResult{
		Description: "Follow-up suggestions for overdue and due companies",
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}

func (h *PromptHandlers) getCompanyOverviewPrompt(args map[string]string) (*mcp.GetPromptResult, error) {
	companyIDStr, ok := args["company_id"]
	if !ok {
		return nil, fmt.Errorf("company_id is required")
	}

	companyID, err := uuid.Parse(companyIDStr)
	if err != nil {
		return nil, fmt.Errorf("invalid company_id: %w", err)
	}

	company, err := h.engine.Company(companyID)
	if err != nil {
		return nil, err
	}

	var promptText strings.Builder
	promptText.WriteString(fmt.Sprintf("Company: %s\n", company.Name))
	if company.Location != "" {
		promptText.WriteString(fmt.Sprintf("Location: %s\n", company.Location))
	}
	if company.Comments != "" {
		promptText.WriteString(fmt.Sprintf("Comments: %s\n", company.Comments))
	}
	promptText.WriteString(fmt.Sprintf("Cadence: every %d days\n", company.CommunicationPeriodicity))
	promptText.WriteString(fmt.Sprintf("Status: %s\n", h.engine.Status(company)))

	history := h.engine.CompanyCommunications(companyID)
	promptText.WriteString(fmt.Sprintf("\nHistory (%d):\n", len(history)))
	for _, c := range history {
		promptText.WriteString(fmt.Sprintf("- %s via %s", c.Date.Format("2006-01-02"), h.engine.MethodName(c.CommunicationType)))
		if c.Notes != "" {
			promptText.WriteString(": " + c.Notes)
		}
		promptText.WriteString("\n")
	}

	promptText.WriteString("\nUpcoming:\n")
	for _, t := range h.engine.NextCommunications(company) {
		promptText.WriteString(fmt.Sprintf("- %s\n", t.Format("2006-01-02")))
	}

	promptText.WriteString("\nPlease summarize the relationship and suggest the next touchpoint.")

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Overview of %s", company.Name),
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: promptText.String()},
			},
		},
	}, nil
}
