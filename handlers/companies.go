// ABOUTME: Company and method MCP tool handlers
// ABOUTME: Implements list_companies, add_company, notifications, and list_methods
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/schedule"
)

type CompanyHandlers struct {
	engine *schedule.Engine
}

func NewCompanyHandlers(engine *schedule.Engine) *CompanyHandlers {
	return &CompanyHandlers{engine: engine}
}

type ListCompaniesInput struct {
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive name filter"`
	Status string `json:"status,omitempty" jsonschema:"Filter by status: unscheduled, scheduled, due_today, overdue"`
}

type ListCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *CompanyHandlers) ListCompanies(_ context.Context, _ *mcp.CallToolRequest, input ListCompaniesInput) (*mcp.CallToolResult, ListCompaniesOutput, error) {
	query := strings.ToLower(input.Query)
	out := ListCompaniesOutput{Companies: []CompanyOutput{}}

	for _, c := range h.engine.Companies() {
		if query != "" && !strings.Contains(strings.ToLower(c.Name), query) {
			continue
		}
		co := companyToOutput(h.engine, c)
		if input.Status != "" && co.Status != input.Status {
			continue
		}
		out.Companies = append(out.Companies, co)
	}
	return nil, out, nil
}

type AddCompanyInput struct {
	Name                     string   `json:"name" jsonschema:"Company name (required)"`
	CommunicationPeriodicity int      `json:"communication_periodicity" jsonschema:"Days between contacts (required)"`
	Location                 string   `json:"location,omitempty" jsonschema:"Location"`
	LinkedInProfile          string   `json:"linkedin_profile,omitempty" jsonschema:"LinkedIn profile URL"`
	Emails                   []string `json:"emails,omitempty" jsonschema:"Up to 5 email addresses"`
	PhoneNumbers             []string `json:"phone_numbers,omitempty" jsonschema:"Up to 5 phone numbers"`
	Comments                 string   `json:"comments,omitempty" jsonschema:"Comments"`
}

func (h *CompanyHandlers) AddCompany(_ context.Context, _ *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	company, err := h.engine.AddCompany(models.Company{
		Name:                     input.Name,
		Location:                 input.Location,
		LinkedInProfile:          input.LinkedInProfile,
		Emails:                   input.Emails,
		PhoneNumbers:             input.PhoneNumbers,
		Comments:                 input.Comments,
		CommunicationPeriodicity: input.CommunicationPeriodicity,
	})
	if err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to add company: %w", err)
	}
	return nil, companyToOutput(h.engine, company), nil
}

type NotificationsInput struct{}

type NotificationsOutput struct {
	Overdue       []CompanyOutput `json:"overdue"`
	DueToday      []CompanyOutput `json:"due_today"`
	OverdueCount  int             `json:"overdue_count"`
	DueTodayCount int             `json:"due_today_count"`
}

func (h *CompanyHandlers) Notifications(_ context.Context, _ *mcp.CallToolRequest, _ NotificationsInput) (*mcp.CallToolResult, NotificationsOutput, error) {
	sum := h.engine.Notifications()
	out := NotificationsOutput{
		Overdue:       make([]CompanyOutput, len(sum.Overdue)),
		DueToday:      make([]CompanyOutput, len(sum.DueToday)),
		OverdueCount:  len(sum.Overdue),
		DueTodayCount: len(sum.DueToday),
	}
	for i, c := range sum.Overdue {
		out.Overdue[i] = companyToOutput(h.engine, c)
	}
	for i, c := range sum.DueToday {
		out.DueToday[i] = companyToOutput(h.engine, c)
	}
	return nil, out, nil
}

type ListMethodsInput struct{}

type ListMethodsOutput struct {
	Methods []MethodOutput `json:"methods"`
}

func (h *CompanyHandlers) ListMethods(_ context.Context, _ *mcp.CallToolRequest, _ ListMethodsInput) (*mcp.CallToolResult, ListMethodsOutput, error) {
	methods := h.engine.Methods()
	out := ListMethodsOutput{Methods: make([]MethodOutput, len(methods))}
	for i, m := range methods {
		out.Methods[i] = methodToOutput(m)
	}
	return nil, out, nil
}
