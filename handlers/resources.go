// ABOUTME: MCP resource handlers exposing engine state as JSON
// ABOUTME: touchbase://companies, touchbase://companies/{id}, touchbase://methods, touchbase://notifications
package handlers

import (
	"context"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/touchbase/schedule"
)

// ResourceScheme prefixes every resource URI.
const ResourceScheme = "touchbase://"

type ResourceHandlers struct {
	engine *schedule.Engine
}

func NewResourceHandlers(engine *schedule.Engine) *ResourceHandlers {
	return &ResourceHandlers{engine: engine}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(_ context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, ResourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", ResourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, ResourceScheme), "/")

	switch parts[0] {
	case "companies":
		if len(parts) == 1 {
			out := make([]CompanyOutput, 0)
			for _, c := range h.engine.Companies() {
				out = append(out, companyToOutput(h.engine, c))
			}
			return jsonResource(uri, out)
		}
		return h.readCompany(uri, parts[1])

	case "methods":
		out := make([]MethodOutput, 0)
		for _, m := range h.engine.Methods() {
			out = append(out, methodToOutput(m))
		}
		return jsonResource(uri, out)

	case "notifications":
		return jsonResource(uri, h.engine.Notifications())

	default:
		return nil, fmt.Errorf("unknown resource: %s", parts[0])
	}
}

func (h *ResourceHandlers) readCompany(uri, idStr string) (*mcp.ReadResourceResult, error) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid company ID: %w", err)
	}
	company, err := h.engine.Company(id)
	if err != nil {
		return nil, err
	}

	history := h.engine.CompanyCommunications(id)
	comms := make([]CommunicationOutput, len(history))
	for i, c := range history {
		comms[i] = communicationToOutput(h.engine, c)
	}

	return jsonResource(uri, struct {
		Company        CompanyOutput         `json:"company"`
		Communications []CommunicationOutput `json:"communications"`
	}{companyToOutput(h.engine, company), comms})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
